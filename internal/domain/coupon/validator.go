// Package coupon resolves and validates promo codes. It never touches usage counters.
package coupon

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"policy_checkout/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type Reason string

const (
	ReasonNotFound       Reason = "not_found"
	ReasonInactive       Reason = "inactive"
	ReasonExpired        Reason = "expired"
	ReasonQuotaExhausted Reason = "quota_exhausted"
	ReasonMinSpend       Reason = "min_spend"
	ReasonLastName       Reason = "last_name"
	ReasonDateOfBirth    Reason = "date_of_birth"
	ReasonRegistration   Reason = "registration"
)

var reasonMessages = map[Reason]string{
	ReasonNotFound:       "Coupon code not found",
	ReasonInactive:       "Coupon is not active",
	ReasonExpired:        "Coupon has expired",
	ReasonQuotaExhausted: "Coupon usage limit has been reached",
	ReasonMinSpend:       "Order total is below the coupon minimum spend",
	ReasonLastName:       "Coupon is not valid for this surname",
	ReasonDateOfBirth:    "Coupon is not valid for this date of birth",
	ReasonRegistration:   "Coupon is not valid for this vehicle registration",
}

// Rejection is returned when a coupon cannot be applied. Reason is safe to show to the customer.
type Rejection struct {
	Code   string
	Reason Reason
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("coupon %q rejected: %s", r.Code, r.Reason)
}

func (r *Rejection) Message() string {
	if m, ok := reasonMessages[r.Reason]; ok {
		return m
	}
	return "Coupon cannot be applied"
}

func reject(code string, reason Reason) *Rejection {
	return &Rejection{Code: code, Reason: reason}
}

// Context carries the customer fields a coupon may be restricted to.
type Context struct {
	LastName     string
	DateOfBirth  string
	Registration string
}

// Resolve picks the coupon a code refers to among case-insensitive collisions.
// A case-sensitive coupon matching the exact input wins; otherwise the first
// case-insensitive coupon is used. Case-sensitive coupons never match loosely.
func Resolve(candidates []entities.Coupon, code string) (entities.Coupon, bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		return entities.Coupon{}, false
	}
	for _, c := range candidates {
		if c.CaseSensitive && c.Code == code {
			return c, true
		}
	}
	for _, c := range candidates {
		if !c.CaseSensitive && strings.EqualFold(c.Code, code) {
			return c, true
		}
	}
	return entities.Coupon{}, false
}

// Validate runs the eligibility checks in order; the first failure wins.
func Validate(c entities.Coupon, total decimal.Decimal, ctx Context, now time.Time) error {
	switch {
	case !c.Active || (c.StartsAt != nil && now.Before(*c.StartsAt)):
		return reject(c.Code, ReasonInactive)
	case c.ExpiresAt != nil && c.ExpiresAt.Before(now):
		return reject(c.Code, ReasonExpired)
	case c.QuotaExhausted():
		return reject(c.Code, ReasonQuotaExhausted)
	case total.LessThan(c.MinSpent):
		return reject(c.Code, ReasonMinSpend)
	}

	m := c.Matches
	if name := strings.TrimSpace(m.LastName); name != "" && !strings.EqualFold(name, strings.TrimSpace(ctx.LastName)) {
		return reject(c.Code, ReasonLastName)
	}
	if prefix := strings.TrimSpace(m.DateOfBirth); prefix != "" && !strings.HasPrefix(strings.TrimSpace(ctx.DateOfBirth), prefix) {
		return reject(c.Code, ReasonDateOfBirth)
	}
	if allowed := strings.TrimSpace(m.Registrations); allowed != "" && !registrationAllowed(allowed, ctx.Registration) {
		return reject(c.Code, ReasonRegistration)
	}
	return nil
}

// Check resolves code among candidates and validates it.
func Check(candidates []entities.Coupon, code string, total decimal.Decimal, ctx Context, now time.Time) (entities.Coupon, error) {
	c, ok := Resolve(candidates, code)
	if !ok {
		return entities.Coupon{}, reject(strings.TrimSpace(code), ReasonNotFound)
	}
	if err := Validate(c, total, ctx, now); err != nil {
		return entities.Coupon{}, err
	}
	return c, nil
}

// Apply returns the discount and the discounted total. The total never drops below minimum.
func Apply(c entities.Coupon, total, minimum decimal.Decimal) (discount, discounted decimal.Decimal) {
	switch c.DiscountType {
	case entities.DiscountTypePercent:
		discount = total.Mul(c.DiscountValue).Div(decimal.NewFromInt(100)).Round(2)
	case entities.DiscountTypeFixed:
		discount = c.DiscountValue.Round(2)
	default:
		discount = decimal.Zero
	}
	if discount.IsNegative() {
		discount = decimal.Zero
	}

	floor := decimal.Min(total, minimum)
	discounted = total.Sub(discount)
	if discounted.LessThan(floor) {
		discounted = floor
	}
	return total.Sub(discounted), discounted
}

// NormalizeRegistration strips whitespace and upper-cases a plate.
func NormalizeRegistration(reg string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToUpper(r)
	}, reg)
}

func registrationAllowed(allowList, reg string) bool {
	want := NormalizeRegistration(reg)
	if want == "" {
		return false
	}
	for _, entry := range strings.Split(allowList, ",") {
		if NormalizeRegistration(entry) == want {
			return true
		}
	}
	return false
}
