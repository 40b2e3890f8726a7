package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"policy_checkout/internal/domain/entities"
)

type countingExpiry struct {
	mu     sync.Mutex
	calls  int
	failOn int
	cancel context.CancelFunc
	stopAt int
}

func (c *countingExpiry) Sweep(context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	if c.calls == c.stopAt {
		c.cancel()
	}
	if c.calls == c.failOn {
		return 0, errors.New("dynamodb: throttled")
	}
	return 1, nil
}

func (c *countingExpiry) ExpireIfPending(context.Context, string) (entities.Quote, error) {
	return entities.Quote{}, nil
}

func (c *countingExpiry) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

func TestExpiryJob_Run(t *testing.T) {
	t.Run("sweeps until cancelled and survives failures", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		fake := &countingExpiry{failOn: 2, stopAt: 4, cancel: cancel}

		done := make(chan error, 1)
		go func() { done <- NewExpiryJob(fake, time.Millisecond).Run(ctx) }()

		select {
		case err := <-done:
			if err != nil {
				t.Fatalf("expected clean stop, got %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("job did not stop after cancellation")
		}
		if got := fake.count(); got < 4 {
			t.Fatalf("expected at least 4 sweeps, got %d", got)
		}
	})

	t.Run("sweeps immediately on start", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		fake := &countingExpiry{stopAt: 1, cancel: cancel}

		if err := NewExpiryJob(fake, time.Hour).Run(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := fake.count(); got != 1 {
			t.Fatalf("expected exactly one sweep, got %d", got)
		}
	})
}

func TestNewExpiryJob_DefaultInterval(t *testing.T) {
	j := NewExpiryJob(&countingExpiry{}, 0)
	if j.interval != defaultSweepInterval {
		t.Fatalf("expected default interval, got %s", j.interval)
	}
}
