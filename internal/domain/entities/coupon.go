package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountTypePercent DiscountType = "percent"
	DiscountTypeFixed   DiscountType = "fixed"
)

// CouponMatches restricts who may redeem a coupon. Empty fields are not enforced.
type CouponMatches struct {
	LastName      string `json:"last_name,omitempty"`
	DateOfBirth   string `json:"date_of_birth,omitempty"`
	Registrations string `json:"registrations,omitempty"`
}

// Coupon is a promo code record.
//
// Storage model (DynamoDB):
//   - PK: code (original case)
//   - GSI code_lower-index: code_lower, used for case-insensitive lookup
type Coupon struct {
	Code          string          `json:"code"`
	CaseSensitive bool            `json:"case_sensitive"`
	DiscountType  DiscountType    `json:"discount_type"`
	DiscountValue decimal.Decimal `json:"discount_value"`

	Unlimited      bool `json:"unlimited"`
	QuotaAvailable int  `json:"quota_available"`
	UsedQuota      int  `json:"used_quota"`

	Active    bool       `json:"active"`
	StartsAt  *time.Time `json:"starts_at,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`

	MinSpent decimal.Decimal `json:"min_spent"`
	Matches  CouponMatches   `json:"matches"`

	CreatedAt time.Time `json:"created_at"`
}

func (c Coupon) QuotaExhausted() bool {
	return !c.Unlimited && c.UsedQuota >= c.QuotaAvailable
}
