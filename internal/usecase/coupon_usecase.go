package usecase

import (
	"context"
	"strings"
	"time"

	"policy_checkout/internal/domain/entities"
	"policy_checkout/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ICouponUseCase seeds and lists promo codes.
type ICouponUseCase interface {
	Create(ctx context.Context, c entities.Coupon) (entities.Coupon, error)
	List(ctx context.Context) ([]entities.Coupon, error)
}

type CouponUseCase struct {
	repo interfaces.ICouponRepository
	now  func() time.Time
	log  *logrus.Entry
}

var _ ICouponUseCase = (*CouponUseCase)(nil)

func NewCouponUseCase(repo interfaces.ICouponRepository) *CouponUseCase {
	return &CouponUseCase{repo: repo, now: time.Now, log: logrus.WithField("component", "coupon")}
}

func (u *CouponUseCase) Create(ctx context.Context, c entities.Coupon) (entities.Coupon, error) {
	c.Code = strings.TrimSpace(c.Code)
	if c.Code == "" {
		return entities.Coupon{}, validationError("invalid_coupon_code", "coupon code is required")
	}
	switch c.DiscountType {
	case entities.DiscountTypePercent:
		if c.DiscountValue.GreaterThan(decimal.NewFromInt(100)) {
			return entities.Coupon{}, validationError("invalid_discount", "percent discount cannot exceed 100")
		}
	case entities.DiscountTypeFixed:
	default:
		return entities.Coupon{}, validationError("invalid_discount_type", "discount type must be percent or fixed")
	}
	if !c.DiscountValue.IsPositive() {
		return entities.Coupon{}, validationError("invalid_discount", "discount value must be positive")
	}
	if c.MinSpent.IsNegative() {
		return entities.Coupon{}, validationError("invalid_min_spent", "minimum spend cannot be negative")
	}
	if !c.Unlimited && c.QuotaAvailable < 1 {
		return entities.Coupon{}, validationError("invalid_quota", "quota must be at least 1 unless unlimited")
	}
	if c.StartsAt != nil && c.ExpiresAt != nil && c.ExpiresAt.Before(*c.StartsAt) {
		return entities.Coupon{}, validationError("invalid_window", "coupon expires before it starts")
	}

	existing, err := u.repo.FindByCode(ctx, c.Code)
	if err != nil {
		return entities.Coupon{}, internalError("find coupon", err)
	}
	for _, e := range existing {
		if e.Code == c.Code {
			return entities.Coupon{}, ErrCouponExists
		}
	}

	c.UsedQuota = 0
	c.CreatedAt = u.now().UTC()
	created, err := u.repo.Create(ctx, c)
	if err != nil {
		u.log.WithError(err).WithField("coupon", c.Code).Error("[coupon][usecase] repository create failed")
		return entities.Coupon{}, internalError("create coupon", err)
	}
	u.log.WithField("coupon", created.Code).Info("[coupon][usecase] coupon created")
	return created, nil
}

func (u *CouponUseCase) List(ctx context.Context) ([]entities.Coupon, error) {
	out, err := u.repo.List(ctx)
	if err != nil {
		return nil, internalError("list coupons", err)
	}
	return out, nil
}
