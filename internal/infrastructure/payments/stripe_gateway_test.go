package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"testing"
	"time"

	"policy_checkout/internal/domain/entities"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v79"
)

const testWebhookSecret = "whsec_test"

type fakeIntents struct {
	params *stripe.PaymentIntentParams
	resp   *stripe.PaymentIntent
	err    error
}

func (f *fakeIntents) New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	f.params = params
	return f.resp, f.err
}

type fakeSessions struct {
	params *stripe.CheckoutSessionParams
	resp   *stripe.CheckoutSession
	err    error
}

func (f *fakeSessions) New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	f.params = params
	return f.resp, f.err
}

func signedHeader(payload []byte, secret string) http.Header {
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(ts + "." + string(payload)))
	h := http.Header{}
	h.Set("Stripe-Signature", fmt.Sprintf("t=%s,v1=%s", ts, hex.EncodeToString(mac.Sum(nil))))
	return h
}

func chargeRequest() entities.ChargeRequest {
	return entities.ChargeRequest{
		QuoteID:        "POL-1",
		Description:    "Temporary cover AB12CDE 3 days",
		Amount:         decimal.RequireFromString("59.165"),
		Currency:       "GBP",
		IdempotencyKey: entities.IdempotencyKey("POL-1", 1),
		Customer:       entities.Customer{Email: "ana@example.com"},
	}
}

func TestStripeIntentGateway_CreateCharge(t *testing.T) {
	intents := &fakeIntents{resp: &stripe.PaymentIntent{ID: "pi_1", ClientSecret: "pi_1_secret", Status: stripe.PaymentIntentStatusRequiresPaymentMethod}}
	g := newStripeIntentGateway(intents, testWebhookSecret)

	res, err := g.CreateCharge(context.Background(), chargeRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Handle != "pi_1" || res.ClientSecret != "pi_1_secret" || res.Status != entities.ChargeStatusPending {
		t.Fatalf("unexpected result: %+v", res)
	}
	if *intents.params.Amount != 5917 {
		t.Fatalf("expected half-up rounding to 5917, got %d", *intents.params.Amount)
	}
	if *intents.params.Currency != "gbp" {
		t.Fatalf("expected lower-case currency, got %s", *intents.params.Currency)
	}
	if intents.params.IdempotencyKey == nil || *intents.params.IdempotencyKey != "POL-1-attempt-1" {
		t.Fatalf("idempotency key not forwarded")
	}
	if intents.params.Metadata[metadataQuoteID] != "POL-1" {
		t.Fatalf("quote id metadata missing: %v", intents.params.Metadata)
	}
}

func TestStripeIntentGateway_CardErrorIsSafe(t *testing.T) {
	intents := &fakeIntents{err: &stripe.Error{Type: stripe.ErrorTypeCard, Code: stripe.ErrorCodeCardDeclined, Msg: "Your card was declined."}}
	g := newStripeIntentGateway(intents, testWebhookSecret)

	_, err := g.CreateCharge(context.Background(), chargeRequest())
	var ge *entities.GatewayError
	if !errors.As(err, &ge) {
		t.Fatalf("expected GatewayError, got %v", err)
	}
	if !ge.Safe || ge.CustomerMessage() != "Your card was declined." || ge.Code != "card_declined" {
		t.Fatalf("unexpected gateway error: %+v", ge)
	}

	intents.err = &stripe.Error{Type: stripe.ErrorTypeAPI, Msg: "internal: secret detail"}
	_, err = g.CreateCharge(context.Background(), chargeRequest())
	if !errors.As(err, &ge) || ge.Safe || ge.CustomerMessage() == "internal: secret detail" {
		t.Fatalf("api errors must not leak: %+v", ge)
	}
}

func TestStripeIntentGateway_ParseWebhook(t *testing.T) {
	g := newStripeIntentGateway(&fakeIntents{}, testWebhookSecret)
	payload := []byte(`{"id":"evt_1","object":"event","type":"payment_intent.succeeded","data":{"object":{"id":"pi_1","object":"payment_intent","amount":5917,"currency":"gbp","metadata":{"quote_id":"POL-1"}}}}`)

	conf, err := g.ParseWebhook(context.Background(), payload, signedHeader(payload, testWebhookSecret))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conf.Ignored || conf.Status != entities.ChargeStatusSucceeded || conf.Handle != "pi_1" || conf.QuoteID != "POL-1" || conf.Amount != 5917 || conf.Currency != "GBP" {
		t.Fatalf("unexpected confirmation: %+v", conf)
	}

	if _, err := g.ParseWebhook(context.Background(), payload, signedHeader(payload, "whsec_other")); !errors.Is(err, entities.ErrInvalidWebhook) {
		t.Fatalf("expected signature failure, got %v", err)
	}

	other := []byte(`{"id":"evt_2","object":"event","type":"charge.refunded","data":{"object":{"id":"ch_1"}}}`)
	conf, err = g.ParseWebhook(context.Background(), other, signedHeader(other, testWebhookSecret))
	if err != nil || !conf.Ignored {
		t.Fatalf("unrelated events must be ignored, got %+v %v", conf, err)
	}
}

func TestStripeCheckoutGateway(t *testing.T) {
	sessions := &fakeSessions{resp: &stripe.CheckoutSession{ID: "cs_1", URL: "https://checkout.stripe.com/c/cs_1"}}
	g := newStripeCheckoutGateway(sessions, testWebhookSecret, "https://shop/success?p={POLICY}", "https://shop/cancel?p={POLICY}")

	res, err := g.CreateCharge(context.Background(), chargeRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.RedirectURL == "" || res.Handle != "cs_1" || g.Kind() != entities.GatewayKindRedirect {
		t.Fatalf("unexpected result: %+v", res)
	}
	if *sessions.params.SuccessURL != "https://shop/success?p=POL-1" {
		t.Fatalf("policy placeholder not substituted: %s", *sessions.params.SuccessURL)
	}
	if *sessions.params.LineItems[0].PriceData.UnitAmount != 5917 {
		t.Fatalf("unexpected amount %d", *sessions.params.LineItems[0].PriceData.UnitAmount)
	}

	tests := []struct {
		name   string
		event  string
		status string
		want   entities.ChargeStatus
	}{
		{"completed and paid", "checkout.session.completed", "paid", entities.ChargeStatusSucceeded},
		{"completed awaiting funds", "checkout.session.completed", "unpaid", entities.ChargeStatusPending},
		{"async failed", "checkout.session.async_payment_failed", "unpaid", entities.ChargeStatusFailed},
		{"session expired", "checkout.session.expired", "unpaid", entities.ChargeStatusFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := []byte(fmt.Sprintf(`{"id":"evt_cs","object":"event","type":%q,"data":{"object":{"id":"cs_1","object":"checkout.session","client_reference_id":"POL-1","payment_status":%q,"amount_total":5917,"currency":"gbp"}}}`, tt.event, tt.status))
			conf, err := g.ParseWebhook(context.Background(), payload, signedHeader(payload, testWebhookSecret))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if conf.Status != tt.want || conf.QuoteID != "POL-1" || conf.Handle != "cs_1" {
				t.Fatalf("unexpected confirmation: %+v", conf)
			}
		})
	}
}
