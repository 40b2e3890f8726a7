package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"policy_checkout/internal/domain/entities"
	"policy_checkout/internal/usecase/interfaces"
)

func TestQuoteRepository_ConditionalUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewQuoteRepository()
	if _, err := repo.Create(ctx, entities.Quote{ID: "POL-1", Status: entities.QuoteStatusPending, PaymentStatus: entities.PaymentStatusUnpaid}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := repo.Create(ctx, entities.Quote{ID: "POL-1"}); err != ErrAlreadyExists {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	screening := entities.QuoteStatusScreening
	cond := interfaces.QuoteCondition{StatusIn: []entities.QuoteStatus{entities.QuoteStatusPending}}

	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q, err := repo.Update(ctx, "POL-1", cond, interfaces.QuoteUpdate{Status: &screening})
			if err == nil && q.ID != "" {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	wg.Wait()
	if wins != 1 {
		t.Fatalf("expected exactly one transition, got %d", wins)
	}

	q, _ := repo.Update(ctx, "missing", interfaces.QuoteCondition{}, interfaces.QuoteUpdate{Status: &screening})
	if q.ID != "" {
		t.Fatalf("missing quote must return zero value")
	}
}

func TestQuoteRepository_FraudStatusCondition(t *testing.T) {
	ctx := context.Background()
	repo := NewQuoteRepository()
	_, _ = repo.Create(ctx, entities.Quote{ID: "POL-3", Status: entities.QuoteStatusFailed, PaymentStatus: entities.PaymentStatusUnpaid, FraudStatus: entities.FraudStatusBlock})

	paid := entities.PaymentStatusPaid
	cond := interfaces.QuoteCondition{FraudStatusIn: []entities.FraudStatus{entities.FraudStatusOK, entities.FraudStatusWarn}}
	if q, _ := repo.Update(ctx, "POL-3", cond, interfaces.QuoteUpdate{PaymentStatus: &paid}); q.ID != "" {
		t.Fatalf("blocked quote must not match a cleared-fraud condition")
	}

	cond.FraudStatusIn = append(cond.FraudStatusIn, entities.FraudStatusBlock)
	if q, _ := repo.Update(ctx, "POL-3", cond, interfaces.QuoteUpdate{PaymentStatus: &paid}); q.PaymentStatus != paid {
		t.Fatalf("expected update once the status is listed, got %+v", q)
	}
}

func TestQuoteRepository_AppendAssessmentDoesNotAlias(t *testing.T) {
	ctx := context.Background()
	repo := NewQuoteRepository()
	_, _ = repo.Create(ctx, entities.Quote{ID: "POL-2", Status: entities.QuoteStatusScreening})

	first, _ := repo.Update(ctx, "POL-2", interfaces.QuoteCondition{}, interfaces.QuoteUpdate{AppendAssessment: &entities.FraudAssessment{ID: "a1"}})
	second, _ := repo.Update(ctx, "POL-2", interfaces.QuoteCondition{}, interfaces.QuoteUpdate{AppendAssessment: &entities.FraudAssessment{ID: "a2"}})

	if len(first.FraudDetails) != 1 || len(second.FraudDetails) != 2 {
		t.Fatalf("unexpected audit trail lengths %d %d", len(first.FraudDetails), len(second.FraudDetails))
	}
	if second.FraudDetails[0].ID != "a1" || second.FraudDetails[1].ID != "a2" {
		t.Fatalf("audit trail must keep insertion order: %+v", second.FraudDetails)
	}
}

func TestQuoteRepository_ListExpirable(t *testing.T) {
	ctx := context.Background()
	repo := NewQuoteRepository()
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	_, _ = repo.Create(ctx, entities.Quote{ID: "a", Status: entities.QuoteStatusAwaitingPayment, PaymentStatus: entities.PaymentStatusUnpaid, ExpiresAt: &past})
	_, _ = repo.Create(ctx, entities.Quote{ID: "b", Status: entities.QuoteStatusPending, PaymentStatus: entities.PaymentStatusUnpaid, ExpiresAt: &future})
	_, _ = repo.Create(ctx, entities.Quote{ID: "c", Status: entities.QuoteStatusBlocked, PaymentStatus: entities.PaymentStatusUnpaid, ExpiresAt: &past})
	_, _ = repo.Create(ctx, entities.Quote{ID: "d", Status: entities.QuoteStatusPending, PaymentStatus: entities.PaymentStatusUnpaid})

	got, err := repo.ListExpirable(ctx, now, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("expected only quote a, got %+v", got)
	}
}

func TestCouponRepository_RedeemRace(t *testing.T) {
	ctx := context.Background()
	repo := NewCouponRepository(entities.Coupon{Code: "LAST1", Active: true, QuotaAvailable: 1})

	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := repo.Redeem(ctx, "LAST1"); ok {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	wg.Wait()
	if wins != 1 {
		t.Fatalf("expected exactly one redemption, got %d", wins)
	}

	if err := repo.Release(ctx, "LAST1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok, _ := repo.Redeem(ctx, "LAST1"); !ok {
		t.Fatalf("released unit should be redeemable again")
	}

	found, _ := repo.FindByCode(ctx, "last1")
	if len(found) != 1 || found[0].UsedQuota != 1 {
		t.Fatalf("unexpected lookup result: %+v", found)
	}
}
