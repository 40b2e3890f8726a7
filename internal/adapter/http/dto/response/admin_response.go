package response

import (
	"time"

	"policy_checkout/internal/domain/entities"
	"policy_checkout/internal/usecase"
)

// AdminQuoteResponse adds the screening trail and payment bookkeeping a reviewer needs.
type AdminQuoteResponse struct {
	QuoteResponse
	FraudStatus       string                     `json:"fraud_status"`
	FraudScore        *float64                   `json:"fraud_score,omitempty"`
	FraudCheckedAt    *time.Time                 `json:"fraud_checked_at,omitempty"`
	FraudDetails      []entities.FraudAssessment `json:"fraud_details"`
	PaymentAttempt    int                        `json:"payment_attempt"`
	PaymentProvider   string                     `json:"payment_provider,omitempty"`
	PaymentReference  string                     `json:"payment_reference,omitempty"`
	CouponRedeemed    bool                       `json:"coupon_redeemed"`
	IssuanceTriggered bool                       `json:"issuance_triggered"`
	ClientIP          string                     `json:"client_ip,omitempty"`
	UpdatedAt         time.Time                  `json:"updated_at"`
}

func FromAdminQuote(q entities.Quote) AdminQuoteResponse {
	details := q.FraudDetails
	if details == nil {
		details = []entities.FraudAssessment{}
	}
	return AdminQuoteResponse{
		QuoteResponse:     FromQuote(q),
		FraudStatus:       string(q.FraudStatus),
		FraudScore:        q.FraudScore,
		FraudCheckedAt:    q.FraudCheckedAt,
		FraudDetails:      details,
		PaymentAttempt:    q.PaymentAttempt,
		PaymentProvider:   q.PaymentProvider,
		PaymentReference:  q.PaymentReference,
		CouponRedeemed:    q.CouponRedeemed,
		IssuanceTriggered: q.IssuanceTriggered,
		ClientIP:          q.ClientIP,
		UpdatedAt:         q.UpdatedAt,
	}
}

type QuotePageResponse struct {
	Items  []AdminQuoteResponse `json:"items"`
	Total  int                  `json:"total"`
	Limit  int                  `json:"limit"`
	Offset int                  `json:"offset"`
}

func FromQuotePage(p usecase.QuotePage, limit, offset int) QuotePageResponse {
	items := make([]AdminQuoteResponse, 0, len(p.Items))
	for _, q := range p.Items {
		items = append(items, FromAdminQuote(q))
	}
	return QuotePageResponse{Items: items, Total: p.Total, Limit: limit, Offset: offset}
}

type CouponResponse struct {
	Code           string                 `json:"code"`
	CaseSensitive  bool                   `json:"case_sensitive"`
	DiscountType   string                 `json:"discount_type"`
	DiscountValue  string                 `json:"discount_value"`
	Unlimited      bool                   `json:"unlimited"`
	QuotaAvailable int                    `json:"quota_available"`
	UsedQuota      int                    `json:"used_quota"`
	Active         bool                   `json:"active"`
	StartsAt       *time.Time             `json:"starts_at,omitempty"`
	ExpiresAt      *time.Time             `json:"expires_at,omitempty"`
	MinSpent       string                 `json:"min_spent"`
	Matches        entities.CouponMatches `json:"matches"`
	CreatedAt      time.Time              `json:"created_at"`
}

func FromCoupon(c entities.Coupon) CouponResponse {
	return CouponResponse{
		Code:           c.Code,
		CaseSensitive:  c.CaseSensitive,
		DiscountType:   string(c.DiscountType),
		DiscountValue:  c.DiscountValue.StringFixed(2),
		Unlimited:      c.Unlimited,
		QuotaAvailable: c.QuotaAvailable,
		UsedQuota:      c.UsedQuota,
		Active:         c.Active,
		StartsAt:       c.StartsAt,
		ExpiresAt:      c.ExpiresAt,
		MinSpent:       c.MinSpent.StringFixed(2),
		Matches:        c.Matches,
		CreatedAt:      c.CreatedAt,
	}
}

func FromCoupons(coupons []entities.Coupon) []CouponResponse {
	out := make([]CouponResponse, 0, len(coupons))
	for _, c := range coupons {
		out = append(out, FromCoupon(c))
	}
	return out
}
