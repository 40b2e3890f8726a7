package interfaces

import (
	"context"

	"policy_checkout/internal/domain/entities"
)

// IPolicyIssuer hands a paid policy to the document, invoice and email collaborators.
type IPolicyIssuer interface {
	Issue(ctx context.Context, doc entities.IssuanceDocument) error
}
