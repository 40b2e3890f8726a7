package entities

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// GatewayKind is the interaction style of a payment back-end.
//
//   - redirect: customer is sent to a hosted page, confirmation arrives by webhook
//   - intent: a client secret is handed to the browser, confirmation arrives by webhook
//   - token: a card token is charged in one synchronous call
type GatewayKind string

const (
	GatewayKindRedirect GatewayKind = "redirect"
	GatewayKindIntent   GatewayKind = "intent"
	GatewayKindToken    GatewayKind = "token"
)

// Async reports whether a successful create call still needs a webhook to confirm payment.
func (k GatewayKind) Async() bool {
	return k == GatewayKindRedirect || k == GatewayKindIntent
}

// ChargeStatus is the provider outcome of a create call or a webhook.
type ChargeStatus string

const (
	ChargeStatusSucceeded ChargeStatus = "succeeded"
	ChargeStatusPending   ChargeStatus = "pending"
	ChargeStatusFailed    ChargeStatus = "failed"
)

// ChargeRequest is what the orchestrator asks a gateway to charge.
// Amount is the decimal total; gateways convert it to minor units themselves.
type ChargeRequest struct {
	QuoteID        string
	Description    string
	Amount         decimal.Decimal
	Currency       string
	IdempotencyKey string
	PaymentToken   string
	Customer       Customer
}

// ChargeResult is the gateway-specific handle for one payment attempt.
type ChargeResult struct {
	Provider     string          `json:"provider"`
	Handle       string          `json:"handle"`
	ClientSecret string          `json:"client_secret,omitempty"`
	RedirectURL  string          `json:"redirect_url,omitempty"`
	Status       ChargeStatus    `json:"status"`
	FailureCode  string          `json:"failure_code,omitempty"`
	FailureText  string          `json:"failure_text,omitempty"`
	Raw          json.RawMessage `json:"raw,omitempty"`
}

// PaymentConfirmation is a provider callback normalized by the gateway adapter.
type PaymentConfirmation struct {
	Provider string
	EventID  string
	Handle   string
	QuoteID  string
	Status   ChargeStatus
	Amount   int64
	Currency string
	Ignored  bool
}

// IdempotencyKey derives the gateway key for a quote's payment attempt.
func IdempotencyKey(quoteID string, attempt int) string {
	return fmt.Sprintf("%s-attempt-%d", quoteID, attempt)
}

var (
	// ErrInvalidWebhook means the callback could not be authenticated or decoded.
	ErrInvalidWebhook = errors.New("invalid webhook payload")
	// ErrChargeInFlight means another call with the same idempotency key has not finished.
	ErrChargeInFlight = errors.New("charge already in progress")
)

// GatewayError is a provider failure. Message is only shown to the customer when Safe.
type GatewayError struct {
	Provider string
	Code     string
	Message  string
	Safe     bool
	Err      error
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Provider, e.Code, e.Message)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// CustomerMessage is the text that may be returned to the payer.
func (e *GatewayError) CustomerMessage() string {
	if e.Safe && e.Message != "" {
		return e.Message
	}
	return "Payment could not be processed, please try again later"
}
