package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"policy_checkout/internal/domain/entities"
	"policy_checkout/internal/domain/money"
	"policy_checkout/internal/usecase/interfaces"

	"github.com/sirupsen/logrus"
)

const (
	ProviderMock = "mock"

	MockTokenDecline = "tok_decline"
	MockTokenPending = "tok_pending"
	MockTokenError   = "tok_error"
)

// MockGateway is a token-style gateway for local runs. Any token approves except
// the MockToken* values. Webhooks are plain JSON without a signature.
type MockGateway struct {
	seq atomic.Int64
	log *logrus.Entry
}

var _ interfaces.IPaymentGateway = (*MockGateway)(nil)

func NewMockGateway() *MockGateway {
	g := &MockGateway{log: logrus.WithField("component", "gateway."+ProviderMock)}
	g.log.Warn("[payment][gateway] mock mode enabled")
	return g
}

func (g *MockGateway) Name() string { return ProviderMock }

func (g *MockGateway) Kind() entities.GatewayKind { return entities.GatewayKindToken }

func (g *MockGateway) CreateCharge(_ context.Context, req entities.ChargeRequest) (entities.ChargeResult, error) {
	handle := fmt.Sprintf("mock_%d_%d", time.Now().UTC().UnixNano(), g.seq.Add(1))
	result := entities.ChargeResult{Provider: ProviderMock, Handle: handle}

	switch req.PaymentToken {
	case MockTokenError:
		return entities.ChargeResult{}, &entities.GatewayError{Provider: ProviderMock, Code: "unavailable", Message: "mock provider outage"}
	case MockTokenDecline:
		result.Status = entities.ChargeStatusFailed
		result.FailureCode = "card_declined"
		result.FailureText = "The card was declined"
	case MockTokenPending:
		result.Status = entities.ChargeStatusPending
	default:
		result.Status = entities.ChargeStatusSucceeded
	}

	raw, _ := json.Marshal(map[string]any{
		"id":              handle,
		"status":          result.Status,
		"amount":          money.ToMinorUnits(req.Amount, req.Currency),
		"currency":        req.Currency,
		"idempotency_key": req.IdempotencyKey,
	})
	result.Raw = raw

	g.log.WithFields(logrus.Fields{"quote_id": req.QuoteID, "handle": handle, "status": result.Status}).Info("[payment][gateway] mock create")
	return result, nil
}

type mockWebhook struct {
	EventID  string `json:"event_id"`
	Handle   string `json:"handle"`
	QuoteID  string `json:"quote_id"`
	Status   string `json:"status"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

func (g *MockGateway) ParseWebhook(_ context.Context, payload []byte, _ http.Header) (entities.PaymentConfirmation, error) {
	var w mockWebhook
	if err := json.Unmarshal(payload, &w); err != nil {
		return entities.PaymentConfirmation{}, fmt.Errorf("%w: %v", entities.ErrInvalidWebhook, err)
	}
	if w.QuoteID == "" && w.Handle == "" {
		return entities.PaymentConfirmation{}, fmt.Errorf("%w: quote_id or handle required", entities.ErrInvalidWebhook)
	}
	if w.EventID == "" {
		w.EventID = "mock_evt_" + strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
	}

	conf := entities.PaymentConfirmation{
		Provider: ProviderMock,
		EventID:  w.EventID,
		Handle:   w.Handle,
		QuoteID:  w.QuoteID,
		Amount:   w.Amount,
		Currency: strings.ToUpper(w.Currency),
	}
	switch entities.ChargeStatus(w.Status) {
	case entities.ChargeStatusSucceeded, entities.ChargeStatusFailed, entities.ChargeStatusPending:
		conf.Status = entities.ChargeStatus(w.Status)
	default:
		conf.Ignored = true
	}
	return conf, nil
}

// IsMockEnabled honours PAYMENT_GATEWAY_MOCK / MERCADOPAGO_MOCK for local runs.
func IsMockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"} {
		switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}
