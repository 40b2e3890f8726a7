package payments

import (
	"context"
	"net/http"

	"policy_checkout/internal/domain/entities"
	"policy_checkout/internal/usecase/interfaces"

	"github.com/sirupsen/logrus"
)

// IdempotentGateway gives idempotency-key semantics to gateways that lack them.
// A completed key replays its stored result; an in-flight key is refused.
type IdempotentGateway struct {
	next  interfaces.IPaymentGateway
	store interfaces.IIdempotencyStore
	log   *logrus.Entry
}

var _ interfaces.IPaymentGateway = (*IdempotentGateway)(nil)

func NewIdempotentGateway(next interfaces.IPaymentGateway, store interfaces.IIdempotencyStore) *IdempotentGateway {
	return &IdempotentGateway{
		next:  next,
		store: store,
		log:   logrus.WithField("component", "gateway.idempotency"),
	}
}

func (g *IdempotentGateway) Name() string { return g.next.Name() }

func (g *IdempotentGateway) Kind() entities.GatewayKind { return g.next.Kind() }

func (g *IdempotentGateway) CreateCharge(ctx context.Context, req entities.ChargeRequest) (entities.ChargeResult, error) {
	cached, acquired, err := g.store.Reserve(ctx, req.IdempotencyKey)
	if err != nil {
		return entities.ChargeResult{}, &entities.GatewayError{Provider: g.next.Name(), Code: "idempotency_unavailable", Err: err}
	}
	if cached != nil {
		g.log.WithField("idempotency_key", req.IdempotencyKey).Info("[payment][gateway] replaying stored charge result")
		return *cached, nil
	}
	if !acquired {
		return entities.ChargeResult{}, entities.ErrChargeInFlight
	}

	result, err := g.next.CreateCharge(ctx, req)
	if err != nil {
		if abandonErr := g.store.Abandon(ctx, req.IdempotencyKey); abandonErr != nil {
			g.log.WithError(abandonErr).WithField("idempotency_key", req.IdempotencyKey).Warn("[payment][gateway] failed to release idempotency key")
		}
		return entities.ChargeResult{}, err
	}
	if err := g.store.Complete(ctx, req.IdempotencyKey, result); err != nil {
		g.log.WithError(err).WithField("idempotency_key", req.IdempotencyKey).Warn("[payment][gateway] failed to store charge result")
	}
	return result, nil
}

func (g *IdempotentGateway) ParseWebhook(ctx context.Context, payload []byte, header http.Header) (entities.PaymentConfirmation, error) {
	return g.next.ParseWebhook(ctx, payload, header)
}
