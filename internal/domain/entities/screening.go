package entities

import "github.com/shopspring/decimal"

// ScreeningRequest is the customer/order snapshot sent to the risk provider.
type ScreeningRequest struct {
	OrderID   string
	Customer  Customer
	Amount    decimal.Decimal
	Currency  string
	ClientIP  string
	UserAgent string
}

func NewScreeningRequest(q Quote) ScreeningRequest {
	return ScreeningRequest{
		OrderID:   q.ID,
		Customer:  q.Customer,
		Amount:    q.Premium.Total,
		Currency:  q.Currency,
		ClientIP:  q.ClientIP,
		UserAgent: q.UserAgent,
	}
}

type FeedbackDecision string

const (
	FeedbackApprove FeedbackDecision = "APPROVE"
	FeedbackReject  FeedbackDecision = "REJECT"
)

// FeedbackRequest reports a reviewer's final decision back to the risk provider.
type FeedbackRequest struct {
	OrderID  string
	Email    string
	Decision FeedbackDecision
	Actor    string
	Note     string
}
