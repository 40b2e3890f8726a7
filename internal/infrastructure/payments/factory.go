package payments

import (
	"fmt"

	appconfig "policy_checkout/internal/config"
	"policy_checkout/internal/usecase/interfaces"
)

// NewGateway builds the single active gateway selected by payment.gateway.
// Providers without native idempotency keys are wrapped with store.
func NewGateway(cfg *appconfig.Config, store interfaces.IIdempotencyStore) (interfaces.IPaymentGateway, error) {
	name := cfg.Payment.Gateway
	if cfg.Payment.Mock || IsMockEnabled() {
		name = appconfig.GatewayMock
	}

	var gw interfaces.IPaymentGateway
	switch name {
	case appconfig.GatewayStripeCheckout:
		g, err := NewStripeCheckoutGateway(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret, cfg.Payment.SuccessURL, cfg.Payment.CancelURL)
		if err != nil {
			return nil, err
		}
		gw = g
	case appconfig.GatewayStripeIntent:
		g, err := NewStripeIntentGateway(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret)
		if err != nil {
			return nil, err
		}
		gw = g
	case appconfig.GatewayMercadoPago:
		g, err := NewMercadoPagoGateway(cfg.MercadoPago.AccessToken, cfg.MercadoPago.WebhookSecret)
		if err != nil {
			return nil, err
		}
		gw = NewIdempotentGateway(g, store)
	case appconfig.GatewayMock:
		gw = NewIdempotentGateway(NewMockGateway(), store)
	default:
		return nil, fmt.Errorf("unknown payment gateway %q", name)
	}
	return NewInstrumentedGateway(gw), nil
}
