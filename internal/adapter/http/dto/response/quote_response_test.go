package response

import (
	"testing"
	"time"

	"policy_checkout/internal/domain/entities"
	"policy_checkout/internal/usecase"

	"github.com/shopspring/decimal"
)

func TestFromQuote(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	score := 42.0
	q := entities.Quote{
		ID:            "POL-ABC",
		Status:        entities.QuoteStatusAwaitingPayment,
		PaymentStatus: entities.PaymentStatusUnpaid,
		FraudStatus:   entities.FraudStatusOK,
		FraudScore:    &score,
		PaymentMethod: entities.PaymentMethodCard,
		Premium: entities.Premium{
			BasePrice: decimal.RequireFromString("45"),
			Subtotal:  decimal.RequireFromString("34.21"),
			Total:     decimal.RequireFromString("30.789"),
			Details:   entities.PremiumDetails{Age: 36, Duration: "1 day", LicenseHeld: "5+"},
		},
		Currency:  "GBP",
		CreatedAt: now,
	}

	res := FromQuote(q)
	if res.ID != "POL-ABC" || res.PolicyNumber != "POL-ABC" {
		t.Fatalf("unexpected ids: %+v", res)
	}
	if res.Premium.Total != "30.79" || res.Premium.BasePrice != "45.00" || res.Premium.CouponDiscount != "0.00" {
		t.Fatalf("unexpected premium: %+v", res.Premium)
	}
	if res.Status != "awaiting_payment" || res.PaymentStatus != "unpaid" {
		t.Fatalf("unexpected statuses: %+v", res)
	}

	admin := FromAdminQuote(q)
	if admin.FraudStatus != "ok" || admin.FraudScore == nil || *admin.FraudScore != 42 {
		t.Fatalf("unexpected admin view: %+v", admin)
	}
	if admin.FraudDetails == nil {
		t.Fatalf("fraud details must render as an empty list")
	}
}

func TestFromCheckoutResult(t *testing.T) {
	res := FromCheckoutResult(usecase.CheckoutResult{
		Quote:        entities.Quote{ID: "POL-1", Status: entities.QuoteStatusAwaitingPayment},
		Status:       entities.QuoteStatusAwaitingPayment,
		ClientSecret: "pi_1_secret",
	})
	if res.Status != "awaiting_payment" || res.ClientSecret != "pi_1_secret" || res.Quote.ID != "POL-1" {
		t.Fatalf("unexpected response: %+v", res)
	}
}

func TestFromQuotePage(t *testing.T) {
	page := FromQuotePage(usecase.QuotePage{Items: []entities.Quote{{ID: "a"}, {ID: "b"}}, Total: 7}, 2, 4)
	if len(page.Items) != 2 || page.Total != 7 || page.Limit != 2 || page.Offset != 4 {
		t.Fatalf("unexpected page: %+v", page)
	}

	empty := FromCoupons(nil)
	if empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty coupon list, got %v", empty)
	}
}
