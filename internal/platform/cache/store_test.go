package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_SharesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (string, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	errCh := make(chan error, workers)
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "same-key", loader)
			if err != nil {
				errCh <- err
				return
			}
			if v != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_ExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	store := NewStore[int](time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	var calls int
	loader := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}

	first, err := store.GetOrLoad(context.Background(), "k", loader)
	if err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	second, _ := store.GetOrLoad(context.Background(), "k", loader)
	if first != 1 || second != 1 {
		t.Fatalf("expected cached value, got first=%d second=%d", first, second)
	}

	now = now.Add(2 * time.Minute)
	third, _ := store.GetOrLoad(context.Background(), "k", loader)
	if third != 2 {
		t.Fatalf("expected reload after ttl, got %d", third)
	}
}

func TestStore_LoaderErrorsAreNotCached(t *testing.T) {
	t.Parallel()

	store := NewStore[string](0)
	errBoom := errors.New("boom")

	if _, err := store.GetOrLoad(context.Background(), "k", func(context.Context) (string, error) {
		return "", errBoom
	}); !errors.Is(err, errBoom) {
		t.Fatalf("expected loader error, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("failed load must not be cached")
	}

	store.Set(context.Background(), "lookup:a", "x")
	store.Set(context.Background(), "lookup:b", "y")
	store.Set(context.Background(), "other", "z")
	store.DeletePrefix(context.Background(), "lookup:")
	if store.Len() != 1 {
		t.Fatalf("expected prefix delete to leave 1 entry, got %d", store.Len())
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
