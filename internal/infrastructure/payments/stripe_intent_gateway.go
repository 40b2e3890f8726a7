package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"policy_checkout/internal/domain/entities"
	"policy_checkout/internal/domain/money"
	"policy_checkout/internal/usecase/interfaces"

	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

const ProviderStripeIntent = "stripe_intent"

type paymentIntentCreator interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// StripeIntentGateway creates a PaymentIntent whose client secret is confirmed in
// the browser. Payment is confirmed by the payment_intent.* webhooks.
type StripeIntentGateway struct {
	intents       paymentIntentCreator
	webhookSecret string
	log           *logrus.Entry
}

var _ interfaces.IPaymentGateway = (*StripeIntentGateway)(nil)

func NewStripeIntentGateway(secretKey, webhookSecret string) (*StripeIntentGateway, error) {
	if secretKey == "" {
		return nil, ErrMissingStripeSecretKey
	}
	sc := client.New(secretKey, nil)
	return newStripeIntentGateway(sc.PaymentIntents, webhookSecret), nil
}

func newStripeIntentGateway(intents paymentIntentCreator, webhookSecret string) *StripeIntentGateway {
	return &StripeIntentGateway{
		intents:       intents,
		webhookSecret: webhookSecret,
		log:           logrus.WithField("component", "gateway."+ProviderStripeIntent),
	}
}

func (g *StripeIntentGateway) Name() string { return ProviderStripeIntent }

func (g *StripeIntentGateway) Kind() entities.GatewayKind { return entities.GatewayKindIntent }

func (g *StripeIntentGateway) CreateCharge(ctx context.Context, req entities.ChargeRequest) (entities.ChargeResult, error) {
	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(money.ToMinorUnits(req.Amount, req.Currency)),
		Currency:    stripeCurrency(req.Currency),
		Description: stripe.String(req.Description),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	if req.Customer.Email != "" {
		params.ReceiptEmail = stripe.String(req.Customer.Email)
	}
	params.Context = ctx
	params.SetIdempotencyKey(req.IdempotencyKey)
	params.AddMetadata(metadataQuoteID, req.QuoteID)
	params.AddMetadata(metadataAttempt, req.IdempotencyKey)

	pi, err := g.intents.New(params)
	if err != nil {
		g.log.WithError(err).WithField("quote_id", req.QuoteID).Error("[payment][gateway] create payment intent failed")
		return entities.ChargeResult{}, stripeGatewayError(ProviderStripeIntent, err)
	}

	g.log.WithFields(logrus.Fields{"quote_id": req.QuoteID, "handle": pi.ID, "status": pi.Status}).Info("[payment][gateway] payment intent created")
	return entities.ChargeResult{
		Provider:     ProviderStripeIntent,
		Handle:       pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       intentStatus(pi.Status),
	}, nil
}

func (g *StripeIntentGateway) ParseWebhook(_ context.Context, payload []byte, header http.Header) (entities.PaymentConfirmation, error) {
	event, err := verifyStripeEvent(payload, header, g.webhookSecret)
	if err != nil {
		return entities.PaymentConfirmation{}, err
	}

	conf := entities.PaymentConfirmation{Provider: ProviderStripeIntent, EventID: event.ID}
	switch event.Type {
	case "payment_intent.succeeded":
		conf.Status = entities.ChargeStatusSucceeded
	case "payment_intent.payment_failed", "payment_intent.canceled":
		conf.Status = entities.ChargeStatusFailed
	default:
		conf.Ignored = true
		return conf, nil
	}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return entities.PaymentConfirmation{}, fmt.Errorf("%w: %v", entities.ErrInvalidWebhook, err)
	}
	conf.Handle = pi.ID
	conf.QuoteID = pi.Metadata[metadataQuoteID]
	conf.Amount = pi.Amount
	conf.Currency = confirmationCurrency(pi.Currency)
	return conf, nil
}

// Automatic payment methods never succeed at creation, but a confirmed intent
// replayed through the idempotency key can.
func intentStatus(s stripe.PaymentIntentStatus) entities.ChargeStatus {
	switch s {
	case stripe.PaymentIntentStatusSucceeded:
		return entities.ChargeStatusSucceeded
	case stripe.PaymentIntentStatusCanceled:
		return entities.ChargeStatusFailed
	default:
		return entities.ChargeStatusPending
	}
}
