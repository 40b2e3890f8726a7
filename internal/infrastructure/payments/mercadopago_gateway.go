package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"policy_checkout/internal/domain/entities"
	"policy_checkout/internal/domain/money"
	"policy_checkout/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const ProviderMercadoPago = "mercadopago"

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")

type mercadoPagoPayments interface {
	Create(ctx context.Context, request payment.Request) (*payment.Response, error)
	Get(ctx context.Context, id int) (*payment.Response, error)
}

// MercadoPagoGateway charges a card token in one synchronous call. Webhook
// notifications only carry the payment id, so the status is re-read from the API.
type MercadoPagoGateway struct {
	client        mercadoPagoPayments
	webhookSecret string
	log           *logrus.Entry
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken, webhookSecret string) (*MercadoPagoGateway, error) {
	if accessToken == "" {
		return nil, ErrMissingMercadoPagoAccessToken
	}
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercado pago sdk config: %w", err)
	}
	g := newMercadoPagoGateway(payment.NewClient(cfg), webhookSecret)
	g.log.Info("[payment][gateway] Mercado Pago client initialized")
	return g, nil
}

func newMercadoPagoGateway(client mercadoPagoPayments, webhookSecret string) *MercadoPagoGateway {
	return &MercadoPagoGateway{
		client:        client,
		webhookSecret: webhookSecret,
		log:           logrus.WithField("component", "gateway."+ProviderMercadoPago),
	}
}

func (g *MercadoPagoGateway) Name() string { return ProviderMercadoPago }

func (g *MercadoPagoGateway) Kind() entities.GatewayKind { return entities.GatewayKindToken }

func (g *MercadoPagoGateway) CreateCharge(ctx context.Context, req entities.ChargeRequest) (entities.ChargeResult, error) {
	if strings.TrimSpace(req.PaymentToken) == "" {
		return entities.ChargeResult{}, &entities.GatewayError{
			Provider: ProviderMercadoPago, Code: "missing_token", Message: "A card token is required", Safe: true,
		}
	}

	request := payment.Request{
		TransactionAmount: req.Amount.Round(money.Exponent(req.Currency)).InexactFloat64(),
		Token:             req.PaymentToken,
		Description:       req.Description,
		Installments:      1,
		ExternalReference: req.QuoteID,
		Payer: &payment.PayerRequest{
			Email:     req.Customer.Email,
			FirstName: req.Customer.FirstName,
			LastName:  req.Customer.LastName,
		},
		Metadata: map[string]any{
			metadataQuoteID: req.QuoteID,
			metadataAttempt: req.IdempotencyKey,
		},
	}

	log := g.log.WithFields(logrus.Fields{"quote_id": req.QuoteID, "idempotency_key": req.IdempotencyKey})
	log.Info("[payment][gateway] create start")

	resp, err := g.client.Create(ctx, request)
	if err != nil {
		log.WithError(err).Error("[payment][gateway] sdk create failed")
		return entities.ChargeResult{}, &entities.GatewayError{Provider: ProviderMercadoPago, Code: "provider_error", Err: err}
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		return entities.ChargeResult{}, err
	}

	result := entities.ChargeResult{
		Provider: ProviderMercadoPago,
		Handle:   strconv.Itoa(resp.ID),
		Status:   mercadoPagoStatus(resp.Status),
		Raw:      raw,
	}
	if result.Status == entities.ChargeStatusFailed {
		result.FailureCode = resp.StatusDetail
		result.FailureText = "The payment was declined by the card issuer"
	}
	log.WithFields(logrus.Fields{"handle": result.Handle, "provider_status": resp.Status}).Info("[payment][gateway] create done")
	return result, nil
}

type mercadoPagoNotification struct {
	ID     json.RawMessage `json:"id"`
	Type   string          `json:"type"`
	Action string          `json:"action"`
	Data   struct {
		ID json.RawMessage `json:"id"`
	} `json:"data"`
}

func (g *MercadoPagoGateway) ParseWebhook(ctx context.Context, payload []byte, header http.Header) (entities.PaymentConfirmation, error) {
	var n mercadoPagoNotification
	if err := json.Unmarshal(payload, &n); err != nil {
		return entities.PaymentConfirmation{}, fmt.Errorf("%w: %v", entities.ErrInvalidWebhook, err)
	}

	conf := entities.PaymentConfirmation{Provider: ProviderMercadoPago, EventID: unquote(n.ID)}
	if n.Type != "payment" {
		conf.Ignored = true
		return conf, nil
	}

	dataID := unquote(n.Data.ID)
	if err := g.verifySignature(dataID, header); err != nil {
		return entities.PaymentConfirmation{}, err
	}
	id, err := strconv.Atoi(dataID)
	if err != nil {
		return entities.PaymentConfirmation{}, fmt.Errorf("%w: payment id %q", entities.ErrInvalidWebhook, dataID)
	}

	resp, err := g.client.Get(ctx, id)
	if err != nil {
		return entities.PaymentConfirmation{}, &entities.GatewayError{Provider: ProviderMercadoPago, Code: "provider_error", Err: err}
	}

	if conf.EventID == "" {
		conf.EventID = n.Action + ":" + dataID
	}
	conf.Handle = strconv.Itoa(resp.ID)
	conf.QuoteID = resp.ExternalReference
	conf.Status = mercadoPagoStatus(resp.Status)
	conf.Currency = strings.ToUpper(resp.CurrencyID)
	conf.Amount = money.ToMinorUnits(decimal.NewFromFloat(resp.TransactionAmount), conf.Currency)
	return conf, nil
}

// verifySignature checks the x-signature header ("ts=...,v1=...") against
// the manifest "id:<data.id>;request-id:<x-request-id>;ts:<ts>;".
func (g *MercadoPagoGateway) verifySignature(dataID string, header http.Header) error {
	if g.webhookSecret == "" {
		return nil
	}
	var ts, v1 string
	for _, part := range strings.Split(header.Get("x-signature"), ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "ts":
			ts = v
		case "v1":
			v1 = v
		}
	}
	if ts == "" || v1 == "" {
		return fmt.Errorf("%w: missing x-signature", entities.ErrInvalidWebhook)
	}

	manifest := fmt.Sprintf("id:%s;request-id:%s;ts:%s;", strings.ToLower(dataID), header.Get("x-request-id"), ts)
	mac := hmac.New(sha256.New, []byte(g.webhookSecret))
	mac.Write([]byte(manifest))
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(v1)) {
		return fmt.Errorf("%w: signature mismatch", entities.ErrInvalidWebhook)
	}
	return nil
}

func mercadoPagoStatus(status string) entities.ChargeStatus {
	switch status {
	case "approved":
		return entities.ChargeStatusSucceeded
	case "rejected", "cancelled", "refunded", "charged_back":
		return entities.ChargeStatusFailed
	default:
		return entities.ChargeStatusPending
	}
}

// unquote accepts ids sent either as JSON numbers or strings.
func unquote(raw json.RawMessage) string {
	return strings.Trim(strings.TrimSpace(string(raw)), `"`)
}
