package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	appcurrency "statboard-service/internal/app/currency"
	appplayers "statboard-service/internal/app/players"
	"statboard-service/internal/logging"
	"statboard-service/internal/poller"
	"statboard-service/internal/render"
)

// PathPlayerName is the route wildcard holding a player name.
const PathPlayerName = "name"

// Handler wires HTTP routes to the currency and player services.
type Handler struct {
	currency *appcurrency.Service
	players  *appplayers.Service
	league   string
	logger   *slog.Logger
	statusFn func() poller.Status
	newSeed  func() int64
}

// NewHandler constructs a Handler. league is used when a request names none.
func NewHandler(currency *appcurrency.Service, players *appplayers.Service, league string, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		currency: currency,
		players:  players,
		league:   league,
		logger:   logger,
		statusFn: statusFn,
		newSeed:  func() int64 { return time.Now().UnixNano() },
	}
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic once the caches have been warmed.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	if h.statusFn == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, http.StatusServiceUnavailable, msg, h.logger)
}

// CurrencyMovers returns the biggest movers of a league as JSON.
func (h *Handler) CurrencyMovers(w http.ResponseWriter, r *http.Request) {
	view, ok := h.movers(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, view, loggerFromContext(r, h.logger))
}

// CurrencyMoversChart returns the movers as an HTML chart page.
func (h *Handler) CurrencyMoversChart(w http.ResponseWriter, r *http.Request) {
	view, ok := h.movers(w, r)
	if !ok {
		return
	}
	writeHTML(w, r, render.MoversPage(view), loggerFromContext(r, h.logger))
}

func (h *Handler) movers(w http.ResponseWriter, r *http.Request) (render.MoversView, bool) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return render.MoversView{}, false
	}
	logger := loggerFromContext(r, h.logger)
	league := strings.TrimSpace(r.URL.Query().Get("league"))
	if league == "" {
		league = h.league
	}

	movers, err := h.currency.Movers(r.Context(), league)
	if err != nil {
		writeServiceError(w, r, err, logger)
		return render.MoversView{}, false
	}
	logging.Info(logger, "served currency movers",
		logging.FieldLeague, league,
		logging.FieldCount, len(movers.Movers),
	)
	return render.NewMoversView(movers), true
}

// PlayersDashboard returns a random player's career with the leaderboard as JSON.
func (h *Handler) PlayersDashboard(w http.ResponseWriter, r *http.Request) {
	view, ok := h.dashboard(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, view, loggerFromContext(r, h.logger))
}

// PlayersDashboardChart returns the dashboard as an HTML chart page.
func (h *Handler) PlayersDashboardChart(w http.ResponseWriter, r *http.Request) {
	view, ok := h.dashboard(w, r)
	if !ok {
		return
	}
	writeHTML(w, r, render.PlayersPage(view), loggerFromContext(r, h.logger))
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) (render.DashboardView, bool) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return render.DashboardView{}, false
	}
	logger := loggerFromContext(r, h.logger)

	seed := h.newSeed()
	if raw := strings.TrimSpace(r.URL.Query().Get("seed")); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid seed (expected integer)", logger)
			return render.DashboardView{}, false
		}
		seed = parsed
	}

	dash, err := h.players.Dashboard(r.Context(), seed)
	if err != nil {
		writeServiceError(w, r, err, logger)
		return render.DashboardView{}, false
	}
	logging.Info(logger, "served player dashboard",
		logging.FieldPlayer, dash.Career.PlayerName,
		logging.FieldSeed, seed,
	)
	return render.NewDashboardView(dash), true
}

// PlayerSeasons returns every season of one player.
func (h *Handler) PlayerSeasons(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	logger := loggerFromContext(r, h.logger)
	name := strings.TrimSpace(r.PathValue(PathPlayerName))
	if name == "" {
		writeError(w, r, http.StatusBadRequest, "invalid player name", logger)
		return
	}

	career, err := h.players.Career(r.Context(), name)
	if err != nil {
		writeServiceError(w, r, err, logger)
		return
	}
	writeJSON(w, http.StatusOK, render.NewCareerView(career), logger)
}
