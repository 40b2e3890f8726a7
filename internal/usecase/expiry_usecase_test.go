package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"policy_checkout/internal/domain/entities"
)

func TestExpiry_SweepBoundary(t *testing.T) {
	h := newHarness(t, entities.GatewayKindToken, entities.ChargeStatusSucceeded)
	q := h.createQuote(t)
	ctx := context.Background()

	h.clock.Advance(10*time.Minute - time.Second)
	if n, err := h.expiry.Sweep(ctx); err != nil || n != 0 {
		t.Fatalf("quote inside its window must survive, expired %d (%v)", n, err)
	}

	h.clock.Advance(2 * time.Second)
	if n, err := h.expiry.Sweep(ctx); err != nil || n != 1 {
		t.Fatalf("expected one expired quote, got %d (%v)", n, err)
	}
	if n, _ := h.expiry.Sweep(ctx); n != 0 {
		t.Fatalf("second sweep must be a no-op, expired %d", n)
	}
	if got := h.reload(t, q.ID); got.Status != entities.QuoteStatusExpired {
		t.Fatalf("expected expired, got %s", got.Status)
	}
}

func TestExpiry_ReleasesHeldCoupon(t *testing.T) {
	h := newHarness(t, entities.GatewayKindIntent, entities.ChargeStatusPending, percentCoupon("SAVE10", 10, 1))
	q := h.createQuote(t, func(c *CreateQuoteCommand) { c.CouponCode = "SAVE10" })
	if _, err := checkout(h, q); err != nil {
		t.Fatalf("checkout: %v", err)
	}
	coupons, _ := h.coupons.List(context.Background())
	if coupons[0].UsedQuota != 1 {
		t.Fatalf("expected the attempt to hold the coupon, got %d", coupons[0].UsedQuota)
	}

	h.clock.Advance(11 * time.Minute)
	if n, err := h.expiry.Sweep(context.Background()); err != nil || n != 1 {
		t.Fatalf("expected one expired quote, got %d (%v)", n, err)
	}
	coupons, _ = h.coupons.List(context.Background())
	if coupons[0].UsedQuota != 0 {
		t.Fatalf("expected coupon released on expiry, got %d", coupons[0].UsedQuota)
	}
	if h.reload(t, q.ID).CouponRedeemed {
		t.Fatalf("expected redemption flag cleared")
	}
}

func TestExpiry_SkipsQuotesUnderReview(t *testing.T) {
	h := newHarness(t, entities.GatewayKindToken, entities.ChargeStatusSucceeded)
	q := blockedQuote(t, h)

	h.clock.Advance(time.Hour)
	if n, _ := h.expiry.Sweep(context.Background()); n != 0 {
		t.Fatalf("blocked quotes wait for a reviewer, expired %d", n)
	}
	if _, err := h.expiry.ExpireIfPending(context.Background(), q.ID); !errors.Is(err, ErrQuoteNotExpirable) {
		t.Fatalf("expected ErrQuoteNotExpirable, got %v", err)
	}
}

func TestExpiry_ExpireIfPending(t *testing.T) {
	h := newHarness(t, entities.GatewayKindToken, entities.ChargeStatusSucceeded)
	ctx := context.Background()
	q := h.createQuote(t)

	t.Run("inside the window", func(t *testing.T) {
		if _, err := h.expiry.ExpireIfPending(ctx, q.ID); !errors.Is(err, ErrQuoteNotExpirable) {
			t.Fatalf("expected ErrQuoteNotExpirable, got %v", err)
		}
	})

	t.Run("overdue", func(t *testing.T) {
		h.clock.Advance(10 * time.Minute)
		got, err := h.expiry.ExpireIfPending(ctx, q.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Status != entities.QuoteStatusExpired {
			t.Fatalf("expected expired, got %s", got.Status)
		}
	})

	t.Run("already expired", func(t *testing.T) {
		got, err := h.expiry.ExpireIfPending(ctx, q.ID)
		if err != nil || got.Status != entities.QuoteStatusExpired {
			t.Fatalf("expected idempotent expiry, got %s (%v)", got.Status, err)
		}
	})

	t.Run("paid", func(t *testing.T) {
		paid := h.createQuote(t)
		if _, err := checkout(h, paid); err != nil {
			t.Fatalf("checkout: %v", err)
		}
		if _, err := h.expiry.ExpireIfPending(ctx, paid.ID); !errors.Is(err, ErrQuoteAlreadyPaid) {
			t.Fatalf("expected ErrQuoteAlreadyPaid, got %v", err)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if _, err := h.expiry.ExpireIfPending(ctx, "POL-MISSING"); !errors.Is(err, ErrQuoteNotFound) {
			t.Fatalf("expected ErrQuoteNotFound, got %v", err)
		}
	})
}
