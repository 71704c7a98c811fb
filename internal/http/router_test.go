package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	appcurrency "statboard-service/internal/app/currency"
	appplayers "statboard-service/internal/app/players"
	"statboard-service/internal/http/handlers"
	"statboard-service/internal/testutil"
	"statboard-service/internal/teststubs"
)

func newRouterHandler() *handlers.Handler {
	cur := testutil.NewCurrencyService(
		&teststubs.StubCurrencyProvider{Overview: testutil.SampleOverview(), Histories: testutil.SampleHistories()},
		appcurrency.Options{RollingWindowDays: 7},
	)
	ply := testutil.NewPlayersService(&teststubs.StubSeasonProvider{Seasons: testutil.SampleSeasons()}, appplayers.Options{})
	return handlers.NewHandler(cur, ply, "Standard", nil, nil)
}

func TestRouterRoutesKnownPaths(t *testing.T) {
	router := NewRouter(newRouterHandler(), nil)

	cases := map[string]int{
		"/health":                   http.StatusOK,
		"/ready":                    http.StatusOK,
		"/currency/movers":          http.StatusOK,
		"/currency/movers/chart":    http.StatusOK,
		"/players/dashboard?seed=3": http.StatusOK,
		"/players/dashboard/chart":  http.StatusOK,
		"/players/Blake/seasons":    http.StatusOK,
		"/players/Nobody/seasons":   http.StatusNotFound, // known route with missing player
	}

	for path, expected := range cases {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		if rr.Code != expected {
			t.Fatalf("route %s expected status %d, got %d", path, expected, rr.Code)
		}
	}
}

func TestRouterUnknownRouteReturns404(t *testing.T) {
	router := NewRouter(newRouterHandler(), nil)

	req := httptest.NewRequest(http.MethodGet, "/does-not-exist", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown route, got %d", rr.Code)
	}
}

func TestRouterMountsAdminOnlyWhenConfigured(t *testing.T) {
	without := NewRouter(newRouterHandler(), nil)
	rr := testutil.Serve(without, http.MethodPost, "/admin/cache/invalidate", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)

	admin := handlers.NewAdminHandler(map[string]handlers.Invalidator{}, "secret", nil)
	with := NewRouter(newRouterHandler(), admin)
	rr = testutil.Serve(with, http.MethodPost, "/admin/cache/invalidate", nil)
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
}

func TestRouterRecoversFromHandlerPanics(t *testing.T) {
	// A handler without services panics on first use.
	router := NewRouter(handlers.NewHandler(nil, nil, "", nil, nil), nil)

	rr := testutil.Serve(router, http.MethodGet, "/currency/movers", nil)
	testutil.AssertStatus(t, rr, http.StatusInternalServerError)
}

func TestRouterPassesMethodChecksToHandlers(t *testing.T) {
	router := NewRouter(newRouterHandler(), nil)

	rr := testutil.Serve(router, http.MethodDelete, "/players/Blake/seasons", nil)
	testutil.AssertStatus(t, rr, http.StatusMethodNotAllowed)
}
