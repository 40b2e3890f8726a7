package interfaces

import (
	"context"
	"net/http"

	"policy_checkout/internal/domain/entities"
)

// IPaymentGateway abstracts external payment providers (Stripe, Mercado Pago).
//
// Exactly one implementation is active per process. CreateCharge must honour the
// request's idempotency key so a retried call never charges twice.
type IPaymentGateway interface {
	Name() string
	Kind() entities.GatewayKind
	CreateCharge(ctx context.Context, req entities.ChargeRequest) (entities.ChargeResult, error)
	ParseWebhook(ctx context.Context, payload []byte, header http.Header) (entities.PaymentConfirmation, error)
}
