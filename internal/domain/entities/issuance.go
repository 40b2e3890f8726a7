package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// IssuanceDocument is the flat field set consumed by the certificate renderer,
// the invoice generator and the confirmation email.
type IssuanceDocument struct {
	PolicyNumber string          `json:"policy_number"`
	Registration string          `json:"registration"`
	FullName     string          `json:"full_name"`
	Email        string          `json:"email"`
	Address      Address         `json:"address"`
	StartsAt     time.Time       `json:"starts_at"`
	EndsAt       time.Time       `json:"ends_at"`
	Duration     string          `json:"duration"`
	Premium      decimal.Decimal `json:"premium"`
	Currency     string          `json:"currency"`
	CouponCode   string          `json:"coupon_code,omitempty"`
	PaidAt       time.Time       `json:"paid_at"`
	Reference    string          `json:"payment_reference,omitempty"`
}

func NewIssuanceDocument(q Quote) IssuanceDocument {
	doc := IssuanceDocument{
		PolicyNumber: q.ID,
		Registration: q.Coverage.Vehicle.Registration,
		FullName:     q.Customer.FullName(),
		Email:        q.Customer.Email,
		Address:      q.Customer.Address,
		StartsAt:     q.Coverage.StartsAt,
		EndsAt:       q.Coverage.EndsAt,
		Duration:     q.Premium.Details.Duration,
		Premium:      q.Premium.Total,
		Currency:     q.Currency,
		CouponCode:   q.CouponCode,
		Reference:    q.PaymentReference,
	}
	if q.PaidAt != nil {
		doc.PaidAt = *q.PaidAt
	}
	return doc
}
