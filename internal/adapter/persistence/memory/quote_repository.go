// Package memory holds process-local repositories used for local runs and tests.
package memory

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"policy_checkout/internal/domain/entities"
	"policy_checkout/internal/usecase/interfaces"
)

var ErrAlreadyExists = errors.New("item already exists")

// QuoteRepository keeps quotes in a map. A single mutex makes every guarded
// update atomic, mirroring DynamoDB condition expressions.
type QuoteRepository struct {
	mu    sync.Mutex
	items map[string]entities.Quote
	now   func() time.Time
}

var _ interfaces.IQuoteRepository = (*QuoteRepository)(nil)

func NewQuoteRepository() *QuoteRepository {
	return &QuoteRepository{items: map[string]entities.Quote{}, now: time.Now}
}

func (r *QuoteRepository) Create(_ context.Context, q entities.Quote) (entities.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[q.ID]; ok {
		return entities.Quote{}, ErrAlreadyExists
	}
	r.items[q.ID] = q
	return q, nil
}

func (r *QuoteRepository) GetByID(_ context.Context, id string) (entities.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[id], nil
}

func (r *QuoteRepository) Update(_ context.Context, id string, cond interfaces.QuoteCondition, upd interfaces.QuoteUpdate) (entities.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.items[id]
	if !ok || !cond.Matches(q) {
		return entities.Quote{}, nil
	}
	q = upd.Apply(q, r.now().UTC())
	r.items[id] = q
	return q, nil
}

func (r *QuoteRepository) List(_ context.Context, filter interfaces.QuoteFilter) ([]entities.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.Quote, 0, len(r.items))
	for _, q := range r.items {
		if filter.Status != "" && q.Status != filter.Status {
			continue
		}
		out = append(out, q)
	}
	slices.SortFunc(out, func(a, b entities.Quote) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out, nil
}

func (r *QuoteRepository) ListExpirable(_ context.Context, now time.Time, limit int) ([]entities.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.Quote, 0)
	for _, q := range r.items {
		if q.Status.Expirable() && q.IsExpiredAt(now) {
			out = append(out, q)
		}
	}
	slices.SortFunc(out, func(a, b entities.Quote) int { return a.ExpiresAt.Compare(*b.ExpiresAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *QuoteRepository) Delete(_ context.Context, id string, cond interfaces.QuoteCondition) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.items[id]
	if !ok || !cond.Matches(q) {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}
