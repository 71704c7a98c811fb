package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"statboard-service/internal/testutil"
)

type stubInvalidator struct {
	dropped int
	calls   int
}

func (s *stubInvalidator) Invalidate() int {
	s.calls++
	return s.dropped
}

func TestAdminInvalidateRequiresAuth(t *testing.T) {
	cache := &stubInvalidator{dropped: 2}
	h := NewAdminHandler(map[string]Invalidator{"overview": cache}, "secret", nil)

	tests := []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"wrong", "Bearer nope"},
		{"scheme", "secret"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/admin/cache/invalidate", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := testutil.ServeRequest(http.HandlerFunc(h.InvalidateCaches), req)
			testutil.AssertStatus(t, rr, http.StatusUnauthorized)
		})
	}
	if cache.calls != 0 {
		t.Fatalf("expected no invalidation without auth, got %d", cache.calls)
	}
}

func TestAdminInvalidateWithoutTokenAlwaysRejects(t *testing.T) {
	h := NewAdminHandler(nil, "", nil)

	req := httptest.NewRequest(http.MethodPost, "/admin/cache/invalidate", nil)
	req.Header.Set("Authorization", "Bearer ")
	rr := testutil.ServeRequest(http.HandlerFunc(h.InvalidateCaches), req)
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
}

func TestAdminInvalidateDropsCaches(t *testing.T) {
	overview := &stubInvalidator{dropped: 2}
	seasons := &stubInvalidator{dropped: 1}
	h := NewAdminHandler(map[string]Invalidator{"overview": overview, "seasons": seasons}, "secret", nil)

	req := httptest.NewRequest(http.MethodPost, "/admin/cache/invalidate", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rr := testutil.ServeRequest(http.HandlerFunc(h.InvalidateCaches), req)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp struct {
		Status  string         `json:"status"`
		Dropped map[string]int `json:"dropped"`
	}
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Status != "ok" || resp.Dropped["overview"] != 2 || resp.Dropped["seasons"] != 1 {
		t.Fatalf("unexpected response %+v", resp)
	}
	if overview.calls != 1 || seasons.calls != 1 {
		t.Fatalf("expected each cache invalidated once")
	}
}

func TestAdminInvalidateRejectsGet(t *testing.T) {
	h := NewAdminHandler(nil, "secret", nil)

	rr := testutil.Serve(http.HandlerFunc(h.InvalidateCaches), http.MethodGet, "/admin/cache/invalidate", nil)
	testutil.AssertStatus(t, rr, http.StatusMethodNotAllowed)
}
