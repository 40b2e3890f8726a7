package request

import (
	"strings"
	"time"

	"policy_checkout/internal/domain/entities"
	"policy_checkout/internal/usecase"

	"github.com/shopspring/decimal"
)

// ReviewRequest is the body of approve, reject and rescreen actions.
type ReviewRequest struct {
	Actor string `json:"actor" binding:"required"`
	Note  string `json:"note"`
}

type ManualPaymentRequest struct {
	Actor     string `json:"actor" binding:"required"`
	Reference string `json:"reference" binding:"required"`
}

// ListQuotesQuery is bound from the query string of the admin list route.
type ListQuotesQuery struct {
	Status string `form:"status"`
	Search string `form:"search"`
	Sort   string `form:"sort"`
	Limit  int    `form:"limit" binding:"omitempty,min=0"`
	Offset int    `form:"offset" binding:"omitempty,min=0"`
}

func (q ListQuotesQuery) ToFilter() usecase.ListFilter {
	return usecase.ListFilter{
		Status: entities.QuoteStatus(strings.ToLower(strings.TrimSpace(q.Status))),
		Search: q.Search,
		Sort:   usecase.SortKey(strings.ToLower(strings.TrimSpace(q.Sort))),
		Limit:  q.Limit,
		Offset: q.Offset,
	}
}

type CouponMatchesRequest struct {
	LastName      string `json:"last_name"`
	DateOfBirth   string `json:"date_of_birth"`
	Registrations string `json:"registrations"`
}

type CreateCouponRequest struct {
	Code           string               `json:"code" binding:"required"`
	CaseSensitive  bool                 `json:"case_sensitive"`
	DiscountType   string               `json:"discount_type" binding:"required,oneof=percent fixed"`
	DiscountValue  decimal.Decimal      `json:"discount_value"`
	Unlimited      bool                 `json:"unlimited"`
	QuotaAvailable int                  `json:"quota_available"`
	Active         *bool                `json:"active"`
	StartsAt       *time.Time           `json:"starts_at"`
	ExpiresAt      *time.Time           `json:"expires_at"`
	MinSpent       decimal.Decimal      `json:"min_spent"`
	Matches        CouponMatchesRequest `json:"matches"`
}

func (r CreateCouponRequest) ToEntity() entities.Coupon {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return entities.Coupon{
		Code:           r.Code,
		CaseSensitive:  r.CaseSensitive,
		DiscountType:   entities.DiscountType(r.DiscountType),
		DiscountValue:  r.DiscountValue,
		Unlimited:      r.Unlimited,
		QuotaAvailable: r.QuotaAvailable,
		Active:         active,
		StartsAt:       r.StartsAt,
		ExpiresAt:      r.ExpiresAt,
		MinSpent:       r.MinSpent,
		Matches: entities.CouponMatches{
			LastName:      strings.TrimSpace(r.Matches.LastName),
			DateOfBirth:   strings.TrimSpace(r.Matches.DateOfBirth),
			Registrations: strings.TrimSpace(r.Matches.Registrations),
		},
	}
}
