package usecase

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"policy_checkout/internal/domain/entities"

	"github.com/shopspring/decimal"
)

var policyNumberPattern = regexp.MustCompile(`^POL-[0-9A-F]{12}$`)

func TestQuoteUseCase_CreateQuote(t *testing.T) {
	h := newHarness(t, entities.GatewayKindToken, entities.ChargeStatusSucceeded)
	q := h.createQuote(t)

	if !policyNumberPattern.MatchString(q.ID) {
		t.Fatalf("unexpected policy number %q", q.ID)
	}
	if !q.Premium.Total.Equal(decimal.RequireFromString("34.21")) {
		t.Fatalf("expected total 34.21, got %s", q.Premium.Total)
	}
	if q.Status != entities.QuoteStatusPending || q.PaymentStatus != entities.PaymentStatusUnpaid || q.FraudStatus != entities.FraudStatusUnchecked {
		t.Fatalf("unexpected initial statuses %s/%s/%s", q.Status, q.PaymentStatus, q.FraudStatus)
	}
	if q.ExpiresAt == nil || !q.ExpiresAt.Equal(t0.Add(10*time.Minute)) {
		t.Fatalf("expected expiry at T0+10m, got %v", q.ExpiresAt)
	}
	if q.Coverage.Vehicle.Registration != "AB12CDE" {
		t.Fatalf("expected normalized registration, got %q", q.Coverage.Vehicle.Registration)
	}
	if !q.Coverage.EndsAt.Equal(q.Coverage.StartsAt.AddDate(0, 0, 1)) {
		t.Fatalf("expected one day of coverage, got %s..%s", q.Coverage.StartsAt, q.Coverage.EndsAt)
	}
	if q.PaymentMethod != entities.PaymentMethodCard || q.Currency != "GBP" {
		t.Fatalf("unexpected defaults %s %s", q.PaymentMethod, q.Currency)
	}
}

func TestQuoteUseCase_CreateQuoteWithCoupon(t *testing.T) {
	h := newHarness(t, entities.GatewayKindToken, entities.ChargeStatusSucceeded, percentCoupon("Save10", 10, 5))

	q := h.createQuote(t, func(c *CreateQuoteCommand) { c.CouponCode = " save10 " })
	if q.CouponCode != "Save10" {
		t.Fatalf("expected the stored coupon code, got %q", q.CouponCode)
	}
	if !q.Premium.CouponDiscount.Equal(decimal.RequireFromString("3.42")) || !q.Premium.Total.Equal(decimal.RequireFromString("30.79")) {
		t.Fatalf("unexpected discount %s total %s", q.Premium.CouponDiscount, q.Premium.Total)
	}
	if q.CouponRedeemed {
		t.Fatalf("pricing must not consume quota")
	}
	coupons, _ := h.coupons.List(context.Background())
	if coupons[0].UsedQuota != 0 {
		t.Fatalf("expected untouched quota, got %d", coupons[0].UsedQuota)
	}
}

func TestQuoteUseCase_CreateQuoteValidation(t *testing.T) {
	h := newHarness(t, entities.GatewayKindToken, entities.ChargeStatusSucceeded)
	past := t0.Add(-time.Hour)

	cases := []struct {
		name   string
		mutate func(*CreateQuoteCommand)
		code   string
	}{
		{"missing name", func(c *CreateQuoteCommand) { c.Customer.LastName = " " }, "invalid_name"},
		{"bad email", func(c *CreateQuoteCommand) { c.Customer.Email = "not-an-email" }, "invalid_email"},
		{"missing registration", func(c *CreateQuoteCommand) { c.Vehicle.Registration = "" }, "invalid_registration"},
		{"unknown license", func(c *CreateQuoteCommand) { c.LicenseHeld = "forever" }, "invalid_license_held"},
		{"start in the past", func(c *CreateQuoteCommand) { c.StartsAt = &past }, "invalid_start"},
		{"zero duration", func(c *CreateQuoteCommand) { c.Duration = 0 }, "invalid_duration"},
		{"bad date of birth", func(c *CreateQuoteCommand) { c.Customer.DateOfBirth = "10/05/1990" }, "invalid_date_of_birth"},
		{"unknown method", func(c *CreateQuoteCommand) { c.PaymentMethod = "cheque" }, "invalid_payment_method"},
		{"unknown coupon", func(c *CreateQuoteCommand) { c.CouponCode = "NOPE" }, "coupon_not_found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := quoteCommand()
			tc.mutate(&cmd)
			_, err := h.quote.CreateQuote(context.Background(), cmd)
			var ue *Error
			if !errors.As(err, &ue) || ue.Code != tc.code {
				t.Fatalf("expected %s, got %v", tc.code, err)
			}
		})
	}
}

func TestQuoteUseCase_GetQuoteExpiresLazily(t *testing.T) {
	h := newHarness(t, entities.GatewayKindToken, entities.ChargeStatusSucceeded)
	q := h.createQuote(t)
	ctx := context.Background()

	got, err := h.quote.GetQuote(ctx, q.ID)
	if err != nil || got.Status != entities.QuoteStatusPending {
		t.Fatalf("expected pending quote, got %s (%v)", got.Status, err)
	}

	h.clock.Advance(10*time.Minute + time.Second)
	got, err = h.quote.GetQuote(ctx, q.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != entities.QuoteStatusExpired {
		t.Fatalf("expected expired on read, got %s", got.Status)
	}

	if _, err := h.quote.GetQuote(ctx, ""); !errors.Is(err, ErrInvalidQuoteID) {
		t.Fatalf("expected ErrInvalidQuoteID, got %v", err)
	}
}

func TestQuoteUseCase_PreviewCoupon(t *testing.T) {
	restricted := percentCoupon("LOVELACE", 20, 1)
	restricted.Matches.LastName = "lovelace"
	exhausted := percentCoupon("GONE", 10, 1)
	exhausted.UsedQuota = 1
	h := newHarness(t, entities.GatewayKindToken, entities.ChargeStatusSucceeded, restricted, exhausted)
	ctx := context.Background()

	preview, err := h.quote.PreviewCoupon(ctx, PreviewCouponCommand{
		Code:     "lovelace",
		Total:    decimal.RequireFromString("50"),
		LastName: "Lovelace",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !preview.Discount.Equal(decimal.NewFromInt(10)) || !preview.Total.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("unexpected preview %+v", preview)
	}

	_, err = h.quote.PreviewCoupon(ctx, PreviewCouponCommand{Code: "LOVELACE", Total: decimal.NewFromInt(50), LastName: "Hopper"})
	var ue *Error
	if !errors.As(err, &ue) || ue.Code != "coupon_last_name" || ue.Kind != KindPolicyViolation {
		t.Fatalf("expected coupon_last_name, got %v", err)
	}

	_, err = h.quote.PreviewCoupon(ctx, PreviewCouponCommand{Code: "GONE", Total: decimal.NewFromInt(50)})
	if !errors.As(err, &ue) || ue.Code != "coupon_quota_exhausted" {
		t.Fatalf("expected coupon_quota_exhausted, got %v", err)
	}

	if _, err := h.quote.PreviewCoupon(ctx, PreviewCouponCommand{Code: "LOVELACE"}); KindOf(err) != KindValidation {
		t.Fatalf("expected validation error for a zero total, got %v", err)
	}
}
