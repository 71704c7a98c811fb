package server

import (
	"context"
	"log/slog"
	"net/http"

	appcurrency "statboard-service/internal/app/currency"
	appplayers "statboard-service/internal/app/players"
	"statboard-service/internal/config"
	domaincurrency "statboard-service/internal/domain/currency"
	domainplayers "statboard-service/internal/domain/players"
	httpserver "statboard-service/internal/http"
	"statboard-service/internal/http/handlers"
	"statboard-service/internal/http/middleware"
	"statboard-service/internal/logging"
	"statboard-service/internal/metrics"
	"statboard-service/internal/poller"
	"statboard-service/internal/store"
)

var metricsSetup = metrics.Setup

const (
	overviewCacheName = "currency-overview"
	datasetCacheName  = "player-seasons"
	datasetKey        = "raptor"
)

type Server struct {
	cfg             config.Config
	logger          *slog.Logger
	metrics         *metrics.Recorder
	currencyService *appcurrency.Service
	playersService  *appplayers.Service
	httpServer      httpServer
	metricsServer   httpServer
	poller          Poller
	metricsStop     func(context.Context) error
}

// New constructs a server with the configured upstreams and cache warmer.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	return newServerWithMetrics(cfg, logger, upstreams{}, nil)
}

func newServerWithUpstreams(cfg config.Config, logger *slog.Logger, up upstreams) (*Server, error) {
	return newServerWithMetrics(cfg, logger, up, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, up upstreams, recorder *metrics.Recorder) (*Server, error) {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	factory := newProviderFactory(logger, recorder)
	if up.complete() {
		up = factory.wrap(cfg, up)
	} else {
		up = factory.build(cfg)
	}
	currencySvc, playersSvc := buildServices(cfg, up, logger, recorder)

	plr, err := poller.New(warmTasks(cfg, currencySvc, playersSvc), logger, recorder, cfg.WarmSchedule)
	if err != nil {
		if metricsShutdown != nil {
			_ = metricsShutdown(context.Background())
		}
		return nil, err
	}
	httpSrv := buildHTTPServer(cfg, currencySvc, playersSvc, logger, recorder, plr)

	return &Server{
		cfg:             cfg,
		logger:          logger,
		metrics:         recorder,
		currencyService: currencySvc,
		playersService:  playersSvc,
		httpServer:      httpSrv,
		metricsServer:   metricsSrv,
		poller:          plr,
		metricsStop:     metricsShutdown,
	}, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
		poller:     plr,
	}
}

func buildServices(cfg config.Config, up upstreams, logger *slog.Logger, recorder *metrics.Recorder) (*appcurrency.Service, *appplayers.Service) {
	d := cfg.Dashboard
	overviews := store.NewTTLCache[domaincurrency.Overview](overviewCacheName, d.CacheTTL, recorder)
	datasets := store.NewTTLCache[[]domainplayers.Season](datasetCacheName, d.CacheTTL, recorder)

	currencySvc := appcurrency.NewService(up.currency, overviews, appcurrency.Options{
		RollingWindowDays: d.RollingWindowDays,
		MoverCount:        d.MoverCount,
	}, logger)
	playersSvc := appplayers.NewService(up.seasons, datasets, datasetKey, appplayers.Options{
		TopNCount:      d.TopNCount,
		MinGamesPlayed: d.MinGamesPlayed,
		HonorFields:    d.HonorFields,
	}, logger)
	return currencySvc, playersSvc
}

// warmTasks refreshes the default league's overview and the player dataset
// so the first request after a cycle is served from cache.
func warmTasks(cfg config.Config, currencySvc *appcurrency.Service, playersSvc *appplayers.Service) []poller.Task {
	league := cfg.Dashboard.League
	return []poller.Task{
		{
			Name: overviewCacheName,
			Run: func(ctx context.Context) error {
				return currencySvc.RefreshOverview(ctx, league)
			},
		},
		{
			Name: datasetCacheName,
			Run:  playersSvc.Refresh,
		},
	}
}

func buildHTTPServer(cfg config.Config, currencySvc *appcurrency.Service, playersSvc *appplayers.Service, logger *slog.Logger, recorder *metrics.Recorder, plr Poller) httpServer {
	var statusFn func() poller.Status
	if plr != nil {
		statusFn = plr.Status
	}

	handler := handlers.NewHandler(currencySvc, playersSvc, cfg.Dashboard.League, logger, statusFn)
	// Admin invalidation is only mounted when a token is configured.
	var admin *handlers.AdminHandler
	if cfg.AdminToken != "" {
		admin = handlers.NewAdminHandler(map[string]handlers.Invalidator{
			overviewCacheName: currencySvc,
			datasetCacheName:  playersSvc,
		}, cfg.AdminToken, logger)
	}
	router := httpserver.NewRouter(handler, admin)
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           wrapped,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the cache warmer and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	if err := s.poller.Start(ctx); err != nil {
		logging.Error(s.logger, "cache warmer failed to start", err)
		if stop != nil {
			stop()
		}
	}

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", logging.FieldError, err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", logging.FieldError, err)
		}
	}

	if err := s.poller.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "failed to stop cache warmer", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", logging.FieldError, err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:    ":" + recCfg.Port,
				Handler: handler,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", logging.FieldError, err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}

// WarmNow runs one warm cycle immediately when the warmer supports it.
func (s *Server) WarmNow(ctx context.Context) error {
	if w, ok := s.poller.(interface {
		WarmNow(context.Context) error
	}); ok {
		return w.WarmNow(ctx)
	}
	return nil
}
