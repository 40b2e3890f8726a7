package interfaces

import (
	"context"

	"policy_checkout/internal/domain/entities"
	"policy_checkout/internal/domain/fraud"
)

// IRiskProvider is the external fraud-scoring service.
type IRiskProvider interface {
	Score(ctx context.Context, req entities.ScreeningRequest) (*fraud.ProviderResponse, error)
	Feedback(ctx context.Context, req entities.FeedbackRequest) error
}
