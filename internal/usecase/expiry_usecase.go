package usecase

import (
	"context"
	"time"

	"policy_checkout/internal/domain/entities"
	"policy_checkout/internal/usecase/interfaces"

	"github.com/sirupsen/logrus"
)

const defaultSweepBatch = 100

// IExpiryUseCase invalidates unpaid quotes whose payment window has closed.
//
//   - Sweep expires every overdue quote found, one guarded update each
//   - ExpireIfPending is the single-quote form; it refuses quotes still in their window
type IExpiryUseCase interface {
	Sweep(ctx context.Context) (int, error)
	ExpireIfPending(ctx context.Context, id string) (entities.Quote, error)
}

type ExpiryUseCase struct {
	lc    *lifecycle
	batch int
	now   func() time.Time
	log   *logrus.Entry
}

var _ IExpiryUseCase = (*ExpiryUseCase)(nil)

func NewExpiryUseCase(quotes interfaces.IQuoteRepository, coupons interfaces.ICouponRepository, settings Settings) *ExpiryUseCase {
	batch := settings.SweepBatch
	if batch <= 0 {
		batch = defaultSweepBatch
	}
	log := logrus.WithField("component", "expiry")
	return &ExpiryUseCase{
		lc:    &lifecycle{quotes: quotes, coupons: coupons, log: log},
		batch: batch,
		now:   time.Now,
		log:   log,
	}
}

func (u *ExpiryUseCase) Sweep(ctx context.Context) (int, error) {
	now := u.now().UTC()
	candidates, err := u.lc.quotes.ListExpirable(ctx, now, u.batch)
	if err != nil {
		u.log.WithError(err).Error("[expiry][usecase] listing candidates failed")
		return 0, internalError("list expirable", err)
	}

	expired := 0
	for _, q := range candidates {
		if ctx.Err() != nil {
			return expired, ctx.Err()
		}
		_, ok, err := u.lc.expire(ctx, q, now)
		if err != nil {
			continue
		}
		if ok {
			expired++
		}
	}
	if expired > 0 {
		u.log.WithFields(logrus.Fields{"candidates": len(candidates), "expired": expired}).Info("[expiry][usecase] sweep done")
	}
	return expired, nil
}

func (u *ExpiryUseCase) ExpireIfPending(ctx context.Context, id string) (entities.Quote, error) {
	q, err := u.lc.load(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	switch {
	case q.Status == entities.QuoteStatusExpired:
		return q, nil
	case q.PaymentStatus == entities.PaymentStatusPaid:
		return q, ErrQuoteAlreadyPaid
	case !q.Status.Expirable():
		return q, ErrQuoteNotExpirable
	}

	now := u.now().UTC()
	if !q.IsExpiredAt(now) {
		return q, ErrQuoteNotExpirable
	}
	expired, ok, err := u.lc.expire(ctx, q, now)
	if err != nil {
		return q, err
	}
	if !ok {
		current, err := u.lc.load(ctx, id)
		if err != nil {
			return q, err
		}
		if current.Status != entities.QuoteStatusExpired {
			return current, ErrQuoteNotExpirable
		}
		return current, nil
	}
	return expired, nil
}
