// Package jobs runs the background work that keeps quotes consistent between requests.
package jobs

import (
	"context"
	"time"

	"policy_checkout/internal/usecase"

	"github.com/sirupsen/logrus"
)

const defaultSweepInterval = time.Minute

// ExpiryJob sweeps overdue unpaid quotes on a fixed interval.
type ExpiryJob struct {
	expiry   usecase.IExpiryUseCase
	interval time.Duration
	log      *logrus.Entry
}

func NewExpiryJob(expiry usecase.IExpiryUseCase, interval time.Duration) *ExpiryJob {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	return &ExpiryJob{expiry: expiry, interval: interval, log: logrus.WithField("component", "jobs.expiry")}
}

// Run sweeps once immediately, then on every tick until ctx is done.
// A failed sweep is logged and retried on the next tick.
func (j *ExpiryJob) Run(ctx context.Context) error {
	j.log.WithField("interval", j.interval.String()).Info("[jobs][expiry] started")
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			j.log.Info("[jobs][expiry] stopped")
			return nil
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

func (j *ExpiryJob) sweep(ctx context.Context) {
	expired, err := j.expiry.Sweep(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		j.log.WithError(err).Error("[jobs][expiry] sweep failed")
		return
	}
	if expired > 0 {
		j.log.WithField("expired", expired).Info("[jobs][expiry] quotes expired")
	}
}
