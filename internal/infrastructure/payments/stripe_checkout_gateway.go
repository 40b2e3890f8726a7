package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"policy_checkout/internal/domain/entities"
	"policy_checkout/internal/domain/money"
	"policy_checkout/internal/usecase/interfaces"

	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

const ProviderStripeCheckout = "stripe_checkout"

var ErrMissingStripeSecretKey = errors.New("missing STRIPE_SECRET_KEY")

type checkoutSessionCreator interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// StripeCheckoutGateway sends the payer to a hosted Stripe Checkout page.
// Payment is confirmed by the checkout.session.* webhooks.
type StripeCheckoutGateway struct {
	sessions      checkoutSessionCreator
	webhookSecret string
	successURL    string
	cancelURL     string
	log           *logrus.Entry
}

var _ interfaces.IPaymentGateway = (*StripeCheckoutGateway)(nil)

func NewStripeCheckoutGateway(secretKey, webhookSecret, successURL, cancelURL string) (*StripeCheckoutGateway, error) {
	if secretKey == "" {
		return nil, ErrMissingStripeSecretKey
	}
	sc := client.New(secretKey, nil)
	return newStripeCheckoutGateway(sc.CheckoutSessions, webhookSecret, successURL, cancelURL), nil
}

func newStripeCheckoutGateway(sessions checkoutSessionCreator, webhookSecret, successURL, cancelURL string) *StripeCheckoutGateway {
	return &StripeCheckoutGateway{
		sessions:      sessions,
		webhookSecret: webhookSecret,
		successURL:    successURL,
		cancelURL:     cancelURL,
		log:           logrus.WithField("component", "gateway."+ProviderStripeCheckout),
	}
}

func (g *StripeCheckoutGateway) Name() string { return ProviderStripeCheckout }

func (g *StripeCheckoutGateway) Kind() entities.GatewayKind { return entities.GatewayKindRedirect }

func (g *StripeCheckoutGateway) CreateCharge(ctx context.Context, req entities.ChargeRequest) (entities.ChargeResult, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(policyURL(g.successURL, req.QuoteID)),
		CancelURL:         stripe.String(policyURL(g.cancelURL, req.QuoteID)),
		ClientReferenceID: stripe.String(req.QuoteID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			Quantity: stripe.Int64(1),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripeCurrency(req.Currency),
				UnitAmount: stripe.Int64(money.ToMinorUnits(req.Amount, req.Currency)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(req.Description),
				},
			},
		}},
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			Metadata: map[string]string{metadataQuoteID: req.QuoteID},
		},
	}
	if req.Customer.Email != "" {
		params.CustomerEmail = stripe.String(req.Customer.Email)
	}
	params.Context = ctx
	params.SetIdempotencyKey(req.IdempotencyKey)
	params.AddMetadata(metadataQuoteID, req.QuoteID)
	params.AddMetadata(metadataAttempt, req.IdempotencyKey)

	session, err := g.sessions.New(params)
	if err != nil {
		g.log.WithError(err).WithField("quote_id", req.QuoteID).Error("[payment][gateway] create checkout session failed")
		return entities.ChargeResult{}, stripeGatewayError(ProviderStripeCheckout, err)
	}

	g.log.WithFields(logrus.Fields{"quote_id": req.QuoteID, "handle": session.ID}).Info("[payment][gateway] checkout session created")
	return entities.ChargeResult{
		Provider:    ProviderStripeCheckout,
		Handle:      session.ID,
		RedirectURL: session.URL,
		Status:      entities.ChargeStatusPending,
	}, nil
}

func (g *StripeCheckoutGateway) ParseWebhook(_ context.Context, payload []byte, header http.Header) (entities.PaymentConfirmation, error) {
	event, err := verifyStripeEvent(payload, header, g.webhookSecret)
	if err != nil {
		return entities.PaymentConfirmation{}, err
	}

	conf := entities.PaymentConfirmation{Provider: ProviderStripeCheckout, EventID: event.ID}
	if !strings.HasPrefix(string(event.Type), "checkout.session.") {
		conf.Ignored = true
		return conf, nil
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return entities.PaymentConfirmation{}, fmt.Errorf("%w: %v", entities.ErrInvalidWebhook, err)
	}
	conf.Handle = session.ID
	conf.QuoteID = session.ClientReferenceID
	if conf.QuoteID == "" {
		conf.QuoteID = session.Metadata[metadataQuoteID]
	}
	conf.Amount = session.AmountTotal
	conf.Currency = confirmationCurrency(session.Currency)

	switch event.Type {
	case "checkout.session.completed":
		// delayed methods complete the session before the money arrives
		if session.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid {
			conf.Status = entities.ChargeStatusSucceeded
		} else {
			conf.Status = entities.ChargeStatusPending
		}
	case "checkout.session.async_payment_succeeded":
		conf.Status = entities.ChargeStatusSucceeded
	case "checkout.session.async_payment_failed", "checkout.session.expired":
		conf.Status = entities.ChargeStatusFailed
	default:
		conf.Ignored = true
	}
	return conf, nil
}

// policyURL substitutes {POLICY} in a configured return URL.
func policyURL(template, quoteID string) string {
	return strings.ReplaceAll(template, "{POLICY}", quoteID)
}
