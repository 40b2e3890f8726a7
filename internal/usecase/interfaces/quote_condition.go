package interfaces

import (
	"slices"
	"time"

	"policy_checkout/internal/domain/entities"
)

// Matches evaluates the guard against an in-memory quote.
func (c QuoteCondition) Matches(q entities.Quote) bool {
	if q.ID == "" {
		return false
	}
	if len(c.StatusIn) > 0 && !slices.Contains(c.StatusIn, q.Status) {
		return false
	}
	if c.PaymentStatus != "" && q.PaymentStatus != c.PaymentStatus {
		return false
	}
	if len(c.FraudStatusIn) > 0 && !slices.Contains(c.FraudStatusIn, q.FraudStatus) {
		return false
	}
	if c.PaymentAttempt != nil && q.PaymentAttempt != *c.PaymentAttempt {
		return false
	}
	if c.IssuanceTriggered != nil && q.IssuanceTriggered != *c.IssuanceTriggered {
		return false
	}
	if c.CouponRedeemed != nil && q.CouponRedeemed != *c.CouponRedeemed {
		return false
	}
	if c.HandleEmpty && q.PaymentHandle != "" {
		return false
	}
	if c.ExpiresBefore != nil && (q.ExpiresAt == nil || q.ExpiresAt.After(*c.ExpiresBefore)) {
		return false
	}
	return true
}

// Apply returns a copy of q with the update applied and UpdatedAt set to now.
func (u QuoteUpdate) Apply(q entities.Quote, now time.Time) entities.Quote {
	if u.Status != nil {
		q.Status = *u.Status
	}
	if u.PaymentStatus != nil {
		q.PaymentStatus = *u.PaymentStatus
	}
	if u.FraudStatus != nil {
		q.FraudStatus = *u.FraudStatus
	}
	if u.FraudScore != nil {
		q.FraudScore = ptr(*u.FraudScore)
	}
	if u.FraudCheckedAt != nil {
		q.FraudCheckedAt = ptr(*u.FraudCheckedAt)
	}
	if u.AppendAssessment != nil {
		q.FraudDetails = append(slices.Clone(q.FraudDetails), *u.AppendAssessment)
	}
	if u.PaymentAttempt != nil {
		q.PaymentAttempt = *u.PaymentAttempt
	}
	if u.PaymentProvider != nil {
		q.PaymentProvider = *u.PaymentProvider
	}
	if u.PaymentHandle != nil {
		q.PaymentHandle = *u.PaymentHandle
	}
	if u.PaymentReference != nil {
		q.PaymentReference = *u.PaymentReference
	}
	if u.IssuanceTriggered != nil {
		q.IssuanceTriggered = *u.IssuanceTriggered
	}
	if u.CouponRedeemed != nil {
		q.CouponRedeemed = *u.CouponRedeemed
	}
	if u.PaidAt != nil {
		q.PaidAt = ptr(*u.PaidAt)
	}
	if u.ClearExpiresAt {
		q.ExpiresAt = nil
	} else if u.ExpiresAt != nil {
		q.ExpiresAt = ptr(*u.ExpiresAt)
	}
	if u.ClientIP != nil {
		q.ClientIP = *u.ClientIP
	}
	if u.UserAgent != nil {
		q.UserAgent = *u.UserAgent
	}
	q.UpdatedAt = now
	return q
}

func ptr[T any](v T) *T { return &v }
