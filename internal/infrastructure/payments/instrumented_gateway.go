package payments

import (
	"context"
	"net/http"
	"time"

	"policy_checkout/internal/domain/entities"
	"policy_checkout/internal/infrastructure/metrics"
	"policy_checkout/internal/usecase/interfaces"
)

// InstrumentedGateway records call counts and latency for CreateCharge.
type InstrumentedGateway struct {
	next interfaces.IPaymentGateway
}

var _ interfaces.IPaymentGateway = (*InstrumentedGateway)(nil)

func NewInstrumentedGateway(next interfaces.IPaymentGateway) *InstrumentedGateway {
	return &InstrumentedGateway{next: next}
}

func (g *InstrumentedGateway) Name() string { return g.next.Name() }

func (g *InstrumentedGateway) Kind() entities.GatewayKind { return g.next.Kind() }

func (g *InstrumentedGateway) CreateCharge(ctx context.Context, req entities.ChargeRequest) (entities.ChargeResult, error) {
	start := time.Now()
	result, err := g.next.CreateCharge(ctx, req)
	metrics.GatewayLatency.WithLabelValues(g.next.Name()).Observe(time.Since(start).Seconds())

	outcome := string(result.Status)
	if err != nil {
		outcome = "error"
	}
	metrics.GatewayCalls.WithLabelValues(g.next.Name(), outcome).Inc()
	return result, err
}

func (g *InstrumentedGateway) ParseWebhook(ctx context.Context, payload []byte, header http.Header) (entities.PaymentConfirmation, error) {
	return g.next.ParseWebhook(ctx, payload, header)
}
