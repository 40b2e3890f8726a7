package usecase

import (
	"slices"
	"time"

	"policy_checkout/internal/domain/entities"
	"policy_checkout/internal/domain/fraud"
	"policy_checkout/internal/domain/pricing"
)

// Settings is the configuration the use cases are constructed with.
type Settings struct {
	Fraud          fraud.Config
	Rates          pricing.RateTable
	Currency       string
	ExpiryWindow   time.Duration
	DefaultStartIn time.Duration
	PolicyPrefix   string
	ManualMethods  []string
	SweepBatch     int
}

func (s Settings) isManual(method entities.PaymentMethod) bool {
	return slices.Contains(s.ManualMethods, string(method))
}

// expiresAt returns the end of the payment window. Manual payments have none.
func (s Settings) expiresAt(method entities.PaymentMethod, from time.Time) *time.Time {
	if s.isManual(method) || s.ExpiryWindow <= 0 {
		return nil
	}
	t := from.Add(s.ExpiryWindow)
	return &t
}

var (
	expirableStatuses = []entities.QuoteStatus{
		entities.QuoteStatusPending,
		entities.QuoteStatusAwaitingPayment,
		entities.QuoteStatusFailed,
	}
	payableStatuses = []entities.QuoteStatus{
		entities.QuoteStatusPending,
		entities.QuoteStatusScreening,
		entities.QuoteStatusAwaitingPayment,
		entities.QuoteStatusFailed,
	}
)

func ptr[T any](v T) *T { return &v }
