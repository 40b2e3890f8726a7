package response

import (
	"time"

	"policy_checkout/internal/domain/entities"
	"policy_checkout/internal/usecase"
)

type PremiumResponse struct {
	BasePrice       string `json:"base_price"`
	AgeDiscount     string `json:"age_discount"`
	LicenseDiscount string `json:"license_discount"`
	Subtotal        string `json:"subtotal"`
	CouponDiscount  string `json:"coupon_discount"`
	Total           string `json:"total"`
	Age             int    `json:"age"`
	Duration        string `json:"duration"`
	LicenseHeld     string `json:"license_held"`
}

func FromPremium(p entities.Premium) PremiumResponse {
	return PremiumResponse{
		BasePrice:       p.BasePrice.StringFixed(2),
		AgeDiscount:     p.AgeDiscount.StringFixed(2),
		LicenseDiscount: p.LicenseDiscount.StringFixed(2),
		Subtotal:        p.Subtotal.StringFixed(2),
		CouponDiscount:  p.CouponDiscount.StringFixed(2),
		Total:           p.Total.StringFixed(2),
		Age:             p.Details.Age,
		Duration:        p.Details.Duration,
		LicenseHeld:     p.Details.LicenseHeld,
	}
}

// QuoteResponse is the customer-facing view of a quote. Screening details are
// never exposed here.
type QuoteResponse struct {
	ID            string            `json:"id"`
	PolicyNumber  string            `json:"policy_number"`
	Status        string            `json:"status"`
	PaymentStatus string            `json:"payment_status"`
	PaymentMethod string            `json:"payment_method"`
	Customer      entities.Customer `json:"customer"`
	Coverage      entities.Coverage `json:"coverage"`
	Premium       PremiumResponse   `json:"premium"`
	Currency      string            `json:"currency"`
	CouponCode    string            `json:"coupon_code,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	ExpiresAt     *time.Time        `json:"expires_at,omitempty"`
	PaidAt        *time.Time        `json:"paid_at,omitempty"`
}

func FromQuote(q entities.Quote) QuoteResponse {
	return QuoteResponse{
		ID:            q.ID,
		PolicyNumber:  q.ID,
		Status:        string(q.Status),
		PaymentStatus: string(q.PaymentStatus),
		PaymentMethod: string(q.PaymentMethod),
		Customer:      q.Customer,
		Coverage:      q.Coverage,
		Premium:       FromPremium(q.Premium),
		Currency:      q.Currency,
		CouponCode:    q.CouponCode,
		CreatedAt:     q.CreatedAt,
		ExpiresAt:     q.ExpiresAt,
		PaidAt:        q.PaidAt,
	}
}

// CheckoutResponse tells the client how to continue the payment.
type CheckoutResponse struct {
	Quote        QuoteResponse `json:"quote"`
	Status       string        `json:"status"`
	ClientSecret string        `json:"client_secret,omitempty"`
	RedirectURL  string        `json:"redirect_url,omitempty"`
}

func FromCheckoutResult(r usecase.CheckoutResult) CheckoutResponse {
	return CheckoutResponse{
		Quote:        FromQuote(r.Quote),
		Status:       string(r.Status),
		ClientSecret: r.ClientSecret,
		RedirectURL:  r.RedirectURL,
	}
}

type CouponPreviewResponse struct {
	Code     string `json:"code"`
	Discount string `json:"discount"`
	Total    string `json:"total"`
}

func FromCouponPreview(p usecase.CouponPreview) CouponPreviewResponse {
	return CouponPreviewResponse{
		Code:     p.Code,
		Discount: p.Discount.StringFixed(2),
		Total:    p.Total.StringFixed(2),
	}
}

type WebhookResponse struct {
	Received bool   `json:"received"`
	Status   string `json:"status,omitempty"`
}
