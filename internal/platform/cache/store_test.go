package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_SingleFlightAcrossCallers(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "same-key", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_ReusesCachedValue(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return "cached", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_Get_ExpiresAfterTTL(t *testing.T) {
	t.Parallel()

	store := NewStore(10 * time.Millisecond)
	store.Set(context.Background(), "k", 42)

	if _, ok := store.Get(context.Background(), "k"); !ok {
		t.Fatalf("value missing before ttl elapsed")
	}

	time.Sleep(25 * time.Millisecond)

	if _, ok := store.Get(context.Background(), "k"); ok {
		t.Fatalf("value survived past ttl")
	}
}

func TestStore_DeletePrefix_RemovesMatchingKeys(t *testing.T) {
	t.Parallel()

	store := NewStore(0)
	store.Set(context.Background(), "fixtures:2025", 1)
	store.Set(context.Background(), "fixtures:2024", 2)
	store.Set(context.Background(), "compare:2025:2024", 3)

	store.DeletePrefix(context.Background(), "fixtures:")

	if _, ok := store.Get(context.Background(), "fixtures:2025"); ok {
		t.Fatalf("fixtures:2025 not deleted")
	}
	if _, ok := store.Get(context.Background(), "fixtures:2024"); ok {
		t.Fatalf("fixtures:2024 not deleted")
	}
	if _, ok := store.Get(context.Background(), "compare:2025:2024"); !ok {
		t.Fatalf("compare key deleted by unrelated prefix")
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
