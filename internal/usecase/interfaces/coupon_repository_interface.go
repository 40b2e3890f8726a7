package interfaces

import (
	"context"

	"policy_checkout/internal/domain/entities"
)

// ICouponRepository abstracts persistence for Coupon.
//
//   - FindByCode returns every stored coupon whose code matches case-insensitively
//   - Redeem increments used_quota only while quota remains; false means it was lost
//   - Release gives back one unit taken by Redeem
type ICouponRepository interface {
	Create(ctx context.Context, c entities.Coupon) (entities.Coupon, error)
	FindByCode(ctx context.Context, code string) ([]entities.Coupon, error)
	List(ctx context.Context) ([]entities.Coupon, error)
	Redeem(ctx context.Context, code string) (bool, error)
	Release(ctx context.Context, code string) error
}
