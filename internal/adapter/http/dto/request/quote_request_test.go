package request

import (
	"testing"

	"policy_checkout/internal/domain/entities"
	"policy_checkout/internal/usecase"
)

func TestCreateQuoteRequest_ToCommand(t *testing.T) {
	r := CreateQuoteRequest{
		Customer: CustomerRequest{
			FirstName:   "Ada",
			LastName:    "Lovelace",
			Email:       "ada@example.com",
			DateOfBirth: "1990-05-10",
			Address:     AddressRequest{Line1: " 1 High St ", City: "London", Postcode: "n1 1aa"},
		},
		Vehicle:       VehicleRequest{Registration: "ab12 cde"},
		Duration:      3,
		Unit:          "days",
		LicenseHeld:   "5+",
		PaymentMethod: " Manual ",
	}

	cmd := r.ToCommand()
	if cmd.Customer.Address.Line1 != "1 High St" || cmd.Customer.Address.Postcode != "N1 1AA" {
		t.Fatalf("unexpected address: %+v", cmd.Customer.Address)
	}
	if cmd.Customer.Address.Country != "GB" {
		t.Fatalf("expected default country GB, got %q", cmd.Customer.Address.Country)
	}
	if cmd.Unit != entities.DurationUnitDays || cmd.Duration != 3 {
		t.Fatalf("unexpected coverage: %d %s", cmd.Duration, cmd.Unit)
	}
	if cmd.PaymentMethod != entities.PaymentMethodManual {
		t.Fatalf("expected manual method, got %q", cmd.PaymentMethod)
	}
}

func TestListQuotesQuery_ToFilter(t *testing.T) {
	f := ListQuotesQuery{Status: " Blocked ", Sort: "AMOUNT_HIGH", Limit: 10, Offset: 20, Search: "ada"}.ToFilter()
	if f.Status != entities.QuoteStatusBlocked || f.Sort != usecase.SortAmountHigh {
		t.Fatalf("unexpected filter: %+v", f)
	}
	if f.Limit != 10 || f.Offset != 20 || f.Search != "ada" {
		t.Fatalf("unexpected paging: %+v", f)
	}
}

func TestCreateCouponRequest_ToEntity(t *testing.T) {
	c := CreateCouponRequest{Code: "SPRING", DiscountType: "percent"}.ToEntity()
	if !c.Active {
		t.Fatalf("coupons are active unless stated otherwise")
	}

	inactive := false
	c = CreateCouponRequest{Code: "SPRING", DiscountType: "fixed", Active: &inactive}.ToEntity()
	if c.Active || c.DiscountType != entities.DiscountTypeFixed {
		t.Fatalf("unexpected coupon: %+v", c)
	}
}
