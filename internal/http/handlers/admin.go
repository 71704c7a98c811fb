package handlers

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"statboard-service/internal/http/requestutil"
	"statboard-service/internal/logging"
)

// Invalidator drops cached snapshots and reports how many were dropped.
type Invalidator interface {
	Invalidate() int
}

// AdminHandler exposes admin-only endpoints.
type AdminHandler struct {
	caches map[string]Invalidator
	token  string
	logger *slog.Logger
}

// NewAdminHandler constructs an AdminHandler over named caches.
func NewAdminHandler(caches map[string]Invalidator, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		caches: caches,
		token:  token,
		logger: logger,
	}
}

// InvalidateCaches drops cached overviews and datasets so the next request refetches.
// Guarded by ADMIN_TOKEN; returns 401 if missing or invalid.
func (h *AdminHandler) InvalidateCaches(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	if !h.authorize(r) {
		logging.Warn(logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", logger)
		return
	}

	dropped := make(map[string]int, len(h.caches))
	for name, cache := range h.caches {
		dropped[name] = cache.Invalidate()
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"dropped": dropped,
	}, logger)
	logging.Info(logger, "admin caches invalidated", slog.Any("dropped", dropped))
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	got := r.Header.Get("Authorization")
	want := "Bearer " + h.token
	return subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}
