package interfaces

import (
	"context"
	"time"

	"policy_checkout/internal/domain/entities"
)

// QuoteCondition guards a conditional write. Zero-valued fields are not checked.
type QuoteCondition struct {
	StatusIn          []entities.QuoteStatus
	PaymentStatus     entities.PaymentStatus
	FraudStatusIn     []entities.FraudStatus
	PaymentAttempt    *int
	IssuanceTriggered *bool
	CouponRedeemed    *bool
	HandleEmpty       bool
	ExpiresBefore     *time.Time
}

// QuoteUpdate lists the fields to set. Nil pointers are left untouched.
type QuoteUpdate struct {
	Status            *entities.QuoteStatus
	PaymentStatus     *entities.PaymentStatus
	FraudStatus       *entities.FraudStatus
	FraudScore        *float64
	FraudCheckedAt    *time.Time
	AppendAssessment  *entities.FraudAssessment
	PaymentAttempt    *int
	PaymentProvider   *string
	PaymentHandle     *string
	PaymentReference  *string
	IssuanceTriggered *bool
	CouponRedeemed    *bool
	PaidAt            *time.Time
	ExpiresAt         *time.Time
	ClearExpiresAt    bool
	ClientIP          *string
	UserAgent         *string
}

type QuoteFilter struct {
	Status entities.QuoteStatus
}

// IQuoteRepository abstracts persistence for Quote.
//
// Every state transition goes through Update so that the guard and the write are
// one atomic operation. When the guard fails (or the quote does not exist) Update
// returns a zero Quote and a nil error.
type IQuoteRepository interface {
	Create(ctx context.Context, q entities.Quote) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	Update(ctx context.Context, id string, cond QuoteCondition, upd QuoteUpdate) (entities.Quote, error)
	List(ctx context.Context, filter QuoteFilter) ([]entities.Quote, error)
	ListExpirable(ctx context.Context, now time.Time, limit int) ([]entities.Quote, error)
	Delete(ctx context.Context, id string, cond QuoteCondition) (bool, error)
}
