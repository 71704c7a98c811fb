package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"statboard-service/internal/metrics"
)

func TestTTLCacheSetAndGet(t *testing.T) {
	c := NewTTLCache[string]("overview", time.Minute, nil)

	if _, ok := c.Get("Standard"); ok {
		t.Fatalf("expected miss on empty cache")
	}
	c.Set("Standard", "snapshot")

	got, ok := c.Get("Standard")
	if !ok || got != "snapshot" {
		t.Fatalf("expected cached snapshot, got %q ok=%v", got, ok)
	}
	if c.Name() != "overview" {
		t.Fatalf("unexpected name %s", c.Name())
	}
}

func TestTTLCacheExpires(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewTTLCache[int]("overview", time.Minute, nil)
	c.now = func() time.Time { return now }

	c.Set("k", 1)
	now = now.Add(59 * time.Second)
	if _, ok := c.Get("k"); !ok {
		t.Fatalf("expected entry before ttl")
	}
	now = now.Add(time.Second)
	if _, ok := c.Get("k"); ok {
		t.Fatalf("expected entry to expire at ttl")
	}
	if c.Len() != 0 {
		t.Fatalf("expected expired entry to be evicted, len=%d", c.Len())
	}
}

func TestTTLCacheZeroTTLNeverExpires(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewTTLCache[int]("dataset", 0, nil)
	c.now = func() time.Time { return now }

	c.Set("k", 1)
	now = now.Add(24 * time.Hour)
	if _, ok := c.Get("k"); !ok {
		t.Fatalf("expected entry without ttl to persist")
	}
}

func TestTTLCacheInvalidate(t *testing.T) {
	c := NewTTLCache[int]("overview", time.Minute, nil)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Invalidate("a")
	if _, ok := c.Get("a"); ok {
		t.Fatalf("expected a invalidated")
	}
	if n := c.InvalidateAll(); n != 1 {
		t.Fatalf("expected one remaining entry dropped, got %d", n)
	}
	if c.Len() != 0 {
		t.Fatalf("expected empty cache")
	}
}

func TestTTLCacheGetOrLoadCachesSuccess(t *testing.T) {
	rec := metrics.NewRecorder()
	c := NewTTLCache[int]("overview", time.Minute, rec)
	var calls atomic.Int32
	load := func(context.Context) (int, error) {
		calls.Add(1)
		return 42, nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.GetOrLoad(context.Background(), "k", load)
		if err != nil || v != 42 {
			t.Fatalf("unexpected result %d %v", v, err)
		}
	}
	if calls.Load() != 1 {
		t.Fatalf("expected one load, got %d", calls.Load())
	}
	if rec.CacheMisses("overview") != 1 || rec.CacheHits("overview") != 2 {
		t.Fatalf("expected 1 miss and 2 hits, got %d/%d", rec.CacheMisses("overview"), rec.CacheHits("overview"))
	}
}

func TestTTLCacheGetOrLoadDoesNotCacheErrors(t *testing.T) {
	c := NewTTLCache[int]("overview", time.Minute, nil)
	boom := errors.New("boom")

	if _, err := c.GetOrLoad(context.Background(), "k", func(context.Context) (int, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected load error, got %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("expected failed load not to be cached")
	}
}

func TestTTLCacheGetOrLoadCollapsesConcurrentLoads(t *testing.T) {
	c := NewTTLCache[int]("overview", time.Minute, nil)
	var calls atomic.Int32
	release := make(chan struct{})
	load := func(context.Context) (int, error) {
		calls.Add(1)
		<-release
		return 7, nil
	}

	var wg sync.WaitGroup
	results := make([]int, 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, _ := c.GetOrLoad(context.Background(), "k", load)
			results[i] = v
		}(i)
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if calls.Load() != 1 {
		t.Fatalf("expected concurrent loads to collapse, got %d calls", calls.Load())
	}
	for _, v := range results {
		if v != 7 {
			t.Fatalf("expected every caller to receive loaded value, got %v", results)
		}
	}
}

func TestTTLCacheRefreshReplacesValue(t *testing.T) {
	c := NewTTLCache[int]("overview", time.Minute, nil)
	c.Set("k", 1)

	v, err := c.Refresh(context.Background(), "k", func(context.Context) (int, error) { return 2, nil })
	if err != nil || v != 2 {
		t.Fatalf("unexpected refresh result %d %v", v, err)
	}
	if got, _ := c.Get("k"); got != 2 {
		t.Fatalf("expected refreshed value, got %d", got)
	}

	if _, err := c.Refresh(context.Background(), "k", func(context.Context) (int, error) { return 0, errors.New("down") }); err == nil {
		t.Fatalf("expected refresh error")
	}
	if got, _ := c.Get("k"); got != 2 {
		t.Fatalf("expected failed refresh to keep previous value, got %d", got)
	}
}

func TestTTLCacheSharedLoadSurvivesOneCallerCancelling(t *testing.T) {
	c := NewTTLCache[int]("overview", time.Minute, nil)
	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	var loadErr error
	load := func(ctx context.Context) (int, error) {
		calls.Add(1)
		close(started)
		<-release
		loadErr = ctx.Err()
		return 7, nil
	}

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := c.GetOrLoad(ctxA, "Standard", load)
		errA <- err
	}()
	<-started

	type result struct {
		v   int
		err error
	}
	resB := make(chan result, 1)
	go func() {
		v, err := c.GetOrLoad(context.Background(), "Standard", load)
		resB <- result{v, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancelA()
	if err := <-errA; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancelled caller to see context.Canceled, got %v", err)
	}

	close(release)
	got := <-resB
	if got.err != nil || got.v != 7 {
		t.Fatalf("expected waiting caller to receive loaded value, got %d %v", got.v, got.err)
	}
	if loadErr != nil {
		t.Fatalf("expected shared load context to outlive the cancelled caller, got %v", loadErr)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected one shared load, got %d", calls.Load())
	}
	if v, ok := c.Get("Standard"); !ok || v != 7 {
		t.Fatalf("expected loaded value cached, got %d ok=%v", v, ok)
	}
}

func TestTTLCacheRefreshReturnsWhenCallerContextEnds(t *testing.T) {
	c := NewTTLCache[int]("overview", time.Minute, nil)
	release := make(chan struct{})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := c.Refresh(ctx, "k", func(context.Context) (int, error) {
		<-release
		return 1, nil
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
