package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteStatus represents the lifecycle of a quote until it becomes an issued policy.
//
// pending -> screening -> {blocked | awaiting_payment} -> {paid -> completed} | failed | expired
type QuoteStatus string

const (
	QuoteStatusPending         QuoteStatus = "pending"
	QuoteStatusScreening       QuoteStatus = "screening"
	QuoteStatusBlocked         QuoteStatus = "blocked"
	QuoteStatusAwaitingPayment QuoteStatus = "awaiting_payment"
	QuoteStatusPaid            QuoteStatus = "paid"
	QuoteStatusCompleted       QuoteStatus = "completed"
	QuoteStatusExpired         QuoteStatus = "expired"
	QuoteStatusFailed          QuoteStatus = "failed"
)

// Expirable reports whether the watchdog may still invalidate a quote in this status.
// screening is excluded because a checkout is in flight and blocked waits for review.
func (s QuoteStatus) Expirable() bool {
	switch s {
	case QuoteStatusPending, QuoteStatusAwaitingPayment, QuoteStatusFailed:
		return true
	}
	return false
}

func (s QuoteStatus) Valid() bool {
	switch s {
	case QuoteStatusPending, QuoteStatusScreening, QuoteStatusBlocked, QuoteStatusAwaitingPayment,
		QuoteStatusPaid, QuoteStatusCompleted, QuoteStatusExpired, QuoteStatusFailed:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

type FraudStatus string

const (
	FraudStatusUnchecked FraudStatus = "unchecked"
	FraudStatusOK        FraudStatus = "ok"
	FraudStatusWarn      FraudStatus = "warn"
	FraudStatusBlock     FraudStatus = "block"
	FraudStatusError     FraudStatus = "error"
)

type DurationUnit string

const (
	DurationUnitHours DurationUnit = "hours"
	DurationUnitDays  DurationUnit = "days"
	DurationUnitWeeks DurationUnit = "weeks"
)

// PaymentMethod distinguishes online gateway payments from manual/offline ones.
// Manual quotes never expire.
type PaymentMethod string

const (
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodManual PaymentMethod = "manual"
)

type Address struct {
	Line1    string `json:"line1"`
	Line2    string `json:"line2,omitempty"`
	City     string `json:"city"`
	Postcode string `json:"postcode"`
	Country  string `json:"country"`
}

// Customer is the identity snapshot taken when the quote is priced.
type Customer struct {
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone,omitempty"`
	DateOfBirth string  `json:"date_of_birth"`
	Address     Address `json:"address"`
}

func (c Customer) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

type Vehicle struct {
	Registration string `json:"registration"`
	Make         string `json:"make,omitempty"`
	Model        string `json:"model,omitempty"`
}

type Coverage struct {
	Duration    int          `json:"duration"`
	Unit        DurationUnit `json:"unit"`
	StartsAt    time.Time    `json:"starts_at"`
	EndsAt      time.Time    `json:"ends_at"`
	LicenseHeld string       `json:"license_held"`
	Vehicle     Vehicle      `json:"vehicle"`
}

type PremiumDetails struct {
	Age         int    `json:"age"`
	Duration    string `json:"duration"`
	LicenseHeld string `json:"license_held"`
}

// Premium is the priced breakdown. Total is what gets charged, after any coupon.
type Premium struct {
	BasePrice       decimal.Decimal `json:"base_price"`
	AgeDiscount     decimal.Decimal `json:"age_discount"`
	LicenseDiscount decimal.Decimal `json:"license_discount"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	CouponDiscount  decimal.Decimal `json:"coupon_discount"`
	Total           decimal.Decimal `json:"total"`
	Details         PremiumDetails  `json:"details"`
}

// Quote is a priced request for coverage. Once paid it is the policy itself.
//
// Storage model (DynamoDB):
//   - PK: id (policy number)
//   - expires_at kept as a unix timestamp so the sweeper can filter on it
type Quote struct {
	ID            string        `json:"id"`
	Customer      Customer      `json:"customer"`
	Coverage      Coverage      `json:"coverage"`
	Premium       Premium       `json:"premium"`
	Currency      string        `json:"currency"`
	PaymentMethod PaymentMethod `json:"payment_method"`

	CouponCode     string `json:"coupon_code,omitempty"`
	CouponRedeemed bool   `json:"coupon_redeemed"`

	Status        QuoteStatus       `json:"status"`
	PaymentStatus PaymentStatus     `json:"payment_status"`
	FraudStatus   FraudStatus       `json:"fraud_status"`
	FraudScore    *float64          `json:"fraud_score,omitempty"`
	FraudDetails  []FraudAssessment `json:"fraud_details,omitempty"`

	PaymentAttempt    int    `json:"payment_attempt"`
	PaymentProvider   string `json:"payment_provider,omitempty"`
	PaymentHandle     string `json:"payment_handle,omitempty"`
	PaymentReference  string `json:"payment_reference,omitempty"`
	IssuanceTriggered bool   `json:"issuance_triggered"`

	ClientIP  string `json:"client_ip,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`

	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	PaidAt         *time.Time `json:"paid_at,omitempty"`
	FraudCheckedAt *time.Time `json:"fraud_checked_at,omitempty"`
}

// IsExpiredAt reports whether an unpaid quote has outlived its payment window.
func (q Quote) IsExpiredAt(now time.Time) bool {
	if q.ExpiresAt == nil || q.PaymentStatus == PaymentStatusPaid {
		return false
	}
	return !now.Before(*q.ExpiresAt)
}

// IdempotencyKey is the key sent to the gateway for the current payment attempt.
func (q Quote) IdempotencyKey() string {
	return IdempotencyKey(q.ID, q.PaymentAttempt)
}
