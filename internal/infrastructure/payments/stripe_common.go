package payments

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"policy_checkout/internal/domain/entities"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
)

const (
	metadataQuoteID = "quote_id"
	metadataAttempt = "idempotency_key"
	stripeSignature = "Stripe-Signature"
)

// verifyStripeEvent checks the Stripe-Signature header and decodes the event.
func verifyStripeEvent(payload []byte, header http.Header, secret string) (stripe.Event, error) {
	if secret == "" {
		return stripe.Event{}, fmt.Errorf("%w: webhook secret not configured", entities.ErrInvalidWebhook)
	}
	event, err := webhook.ConstructEventWithOptions(payload, header.Get(stripeSignature), secret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return stripe.Event{}, fmt.Errorf("%w: %v", entities.ErrInvalidWebhook, err)
	}
	return event, nil
}

// stripeGatewayError classifies a Stripe SDK error. Card errors carry a message
// written for the payer; everything else is kept internal.
func stripeGatewayError(provider string, err error) *entities.GatewayError {
	ge := &entities.GatewayError{Provider: provider, Code: "provider_error", Err: err}
	var se *stripe.Error
	if errors.As(err, &se) {
		if se.Code != "" {
			ge.Code = string(se.Code)
		}
		if se.Type == stripe.ErrorTypeCard {
			ge.Safe = true
			ge.Message = se.Msg
		}
	}
	return ge
}

func stripeCurrency(currency string) *string {
	return stripe.String(strings.ToLower(currency))
}

func confirmationCurrency(c stripe.Currency) string {
	return strings.ToUpper(string(c))
}
