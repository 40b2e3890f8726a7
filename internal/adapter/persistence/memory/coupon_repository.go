package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"policy_checkout/internal/domain/entities"
	"policy_checkout/internal/usecase/interfaces"
)

type CouponRepository struct {
	mu    sync.Mutex
	items map[string]entities.Coupon
}

var _ interfaces.ICouponRepository = (*CouponRepository)(nil)

func NewCouponRepository(seed ...entities.Coupon) *CouponRepository {
	r := &CouponRepository{items: map[string]entities.Coupon{}}
	for _, c := range seed {
		r.items[c.Code] = c
	}
	return r
}

func (r *CouponRepository) Create(_ context.Context, c entities.Coupon) (entities.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[c.Code]; ok {
		return entities.Coupon{}, ErrAlreadyExists
	}
	r.items[c.Code] = c
	return c, nil
}

func (r *CouponRepository) FindByCode(_ context.Context, code string) ([]entities.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.Coupon
	for _, c := range r.items {
		if strings.EqualFold(c.Code, code) {
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b entities.Coupon) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return out, nil
}

func (r *CouponRepository) List(_ context.Context) ([]entities.Coupon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.Coupon, 0, len(r.items))
	for _, c := range r.items {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b entities.Coupon) int { return strings.Compare(a.Code, b.Code) })
	return out, nil
}

func (r *CouponRepository) Redeem(_ context.Context, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[code]
	if !ok || c.QuotaExhausted() {
		return false, nil
	}
	c.UsedQuota++
	r.items[code] = c
	return true, nil
}

func (r *CouponRepository) Release(_ context.Context, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[code]
	if !ok || c.UsedQuota == 0 {
		return nil
	}
	c.UsedQuota--
	r.items[code] = c
	return nil
}
