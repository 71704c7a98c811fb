package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/components"

	appplayers "statboard-service/internal/app/players"
	"statboard-service/internal/http/middleware"
	"statboard-service/internal/http/requestutil"
	"statboard-service/internal/logging"
	"statboard-service/internal/providers"
	"statboard-service/internal/render"
	"statboard-service/internal/stats"
)

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", logging.FieldError, err)
	}
}

func writeHTML(w http.ResponseWriter, r *http.Request, page *components.Page, logger *slog.Logger) {
	var buf bytes.Buffer
	if err := render.WriteHTML(&buf, page); err != nil {
		logging.Error(logger, "failed to render chart page", err)
		writeError(w, r, http.StatusInternalServerError, "failed to render chart", logger)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil && logger != nil {
		logger.Error("failed to write response", logging.FieldError, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get(requestutil.HeaderRequestID)
	}
	body := map[string]string{"error": message}
	if reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, status, body, logger)
}

// writeServiceError maps pipeline errors onto HTTP statuses. Upstream errors
// are checked first since decode failures wrap the aggregate error kinds.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	status, message := classify(err)
	if status >= http.StatusInternalServerError {
		logging.Error(logger, "request failed", err, slog.Int(logging.FieldStatusCode, status))
	} else {
		logging.Warn(logger, "request rejected", slog.Int(logging.FieldStatusCode, status), slog.Any(logging.FieldError, err))
	}
	writeError(w, r, status, message, logger)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, appplayers.ErrPlayerNotFound):
		return http.StatusNotFound, "player not found"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "upstream timed out"
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, "request cancelled"
	case providers.IsFetchError(err):
		if _, ok := providers.AsRateLimitError(err); ok {
			return http.StatusBadGateway, "upstream rate limited"
		}
		return http.StatusBadGateway, "upstream unavailable"
	case stats.IsInputError(err):
		return http.StatusUnprocessableEntity, err.Error()
	}
	return http.StatusInternalServerError, "internal error"
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string, logger *slog.Logger) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", logger)
	return false
}
