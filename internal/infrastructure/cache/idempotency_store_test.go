package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"policy_checkout/internal/domain/entities"

	"github.com/redis/go-redis/v9"
)

type fakeKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeKV() *fakeKV { return &fakeKV{data: map[string]string{}} }

func (f *fakeKV) SetNX(_ context.Context, key string, value interface{}, _ time.Duration) *redis.BoolCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.data[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	f.data[key] = value.(string)
	return redis.NewBoolResult(true, nil)
}

func (f *fakeKV) Get(_ context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeKV) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value.(string)
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeKV) Del(_ context.Context, keys ...string) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, k := range keys {
		delete(f.data, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func TestRedisIdempotencyStore(t *testing.T) {
	ctx := context.Background()
	store := NewRedisIdempotencyStore(newFakeKV(), 0)
	key := entities.IdempotencyKey("POL-1", 1)

	cached, acquired, err := store.Reserve(ctx, key)
	if err != nil || !acquired || cached != nil {
		t.Fatalf("first reserve should acquire, got %v %v %v", cached, acquired, err)
	}

	cached, acquired, err = store.Reserve(ctx, key)
	if err != nil || acquired || cached != nil {
		t.Fatalf("in-flight reserve should be refused, got %v %v %v", cached, acquired, err)
	}

	want := entities.ChargeResult{Provider: "mercadopago", Handle: "123", Status: entities.ChargeStatusSucceeded}
	if err := store.Complete(ctx, key, want); err != nil {
		t.Fatalf("complete: %v", err)
	}

	cached, acquired, err = store.Reserve(ctx, key)
	if err != nil || acquired || cached == nil || cached.Handle != "123" || cached.Status != entities.ChargeStatusSucceeded {
		t.Fatalf("expected cached result, got %+v %v %v", cached, acquired, err)
	}

	other := entities.IdempotencyKey("POL-1", 2)
	if _, acquired, _ := store.Reserve(ctx, other); !acquired {
		t.Fatalf("a new attempt must get its own key")
	}
	if err := store.Abandon(ctx, other); err != nil {
		t.Fatalf("abandon: %v", err)
	}
	if _, acquired, _ := store.Reserve(ctx, other); !acquired {
		t.Fatalf("abandoned key should be reservable again")
	}
}

func TestMemoryIdempotencyStore_Concurrent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryIdempotencyStore()

	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, acquired, _ := store.Reserve(ctx, "POL-9-attempt-1"); acquired {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if winners != 1 {
		t.Fatalf("expected exactly one owner, got %d", winners)
	}
}
