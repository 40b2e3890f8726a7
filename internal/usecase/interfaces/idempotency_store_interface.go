package interfaces

import (
	"context"

	"policy_checkout/internal/domain/entities"
)

// IIdempotencyStore remembers the outcome of a gateway call per idempotency key
// for providers that do not deduplicate on their own.
//
//   - Reserve returns acquired=true when the caller owns the key and must perform the call
//   - a non-nil cached result means the call already completed and must not be repeated
//   - acquired=false with no result means another call with the same key is in flight
type IIdempotencyStore interface {
	Reserve(ctx context.Context, key string) (cached *entities.ChargeResult, acquired bool, err error)
	Complete(ctx context.Context, key string, result entities.ChargeResult) error
	Abandon(ctx context.Context, key string) error
}
