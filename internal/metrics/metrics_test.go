package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestRecorderTracksProviderAttemptsAndErrors(t *testing.T) {
	rec := NewRecorder()
	rec.RecordProviderAttempt("poeninja", 10*time.Millisecond, nil)
	rec.RecordProviderAttempt("poeninja", 15*time.Millisecond, errors.New("boom"))

	if got := rec.ProviderCalls("poeninja"); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
	if got := rec.ProviderErrors("poeninja"); got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}
	if got := rec.LastCallLatency("poeninja"); got != 15*time.Millisecond {
		t.Fatalf("expected last latency to be 15ms, got %s", got)
	}

	snap := rec.Snapshot("poeninja")
	if snap.Calls != 2 || snap.Errors != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestRecorderTracksRateLimits(t *testing.T) {
	rec := NewRecorder()
	rec.RecordRateLimit("poeninja", 5*time.Second)
	rec.RecordRateLimit("poeninja", 0)

	if got := rec.RateLimitHits("poeninja"); got != 2 {
		t.Fatalf("expected 2 rate limit hits, got %d", got)
	}
	if got := rec.LastRetryAfter("poeninja"); got != 5*time.Second {
		t.Fatalf("expected last retry-after to be 5s, got %s", got)
	}
}

func TestRecorderTracksCacheLookups(t *testing.T) {
	rec := NewRecorder()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec.RecordCacheLookup("overview", i%2 == 0)
		}(i)
	}
	wg.Wait()

	if hits, misses := rec.CacheHits("overview"), rec.CacheMisses("overview"); hits != 5 || misses != 5 {
		t.Fatalf("expected 5 hits and 5 misses, got %d/%d", hits, misses)
	}
	if rec.CacheHits("unknown") != 0 {
		t.Fatalf("expected zero hits for unknown cache")
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder
	rec.RecordProviderAttempt("p", time.Millisecond, nil)
	rec.RecordRateLimit("p", time.Second)
	rec.RecordCacheLookup("c", true)
	rec.RecordHTTPRequest("GET", "/health", 200, time.Millisecond)
	rec.RecordWarmCycle(time.Millisecond, nil)
	if rec.ProviderCalls("p") != 0 || rec.CacheHits("c") != 0 {
		t.Fatalf("expected zero values from nil recorder")
	}
}
