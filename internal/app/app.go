package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wafflemkr/points/internal/adapter/postgres"
	"github.com/wafflemkr/points/internal/adapter/postgres/bloodpressure"
	"github.com/wafflemkr/points/internal/adapter/postgres/points"
	"github.com/wafflemkr/points/internal/adapter/postgres/preferences"
	"github.com/wafflemkr/points/internal/adapter/postgres/weight"
	"github.com/wafflemkr/points/internal/config"
	"github.com/wafflemkr/points/internal/domain"
	"github.com/wafflemkr/points/internal/dto"
	"github.com/wafflemkr/points/internal/mapper"
	"github.com/wafflemkr/points/internal/metrics"
	"github.com/wafflemkr/points/internal/service/resource"
	"github.com/wafflemkr/points/internal/transport/middleware"
	"github.com/wafflemkr/points/internal/transport/rest"
)

// App is the assembled application: store, search indexes, services and
// the HTTP handler serving them.
type App struct {
	cfg     *config.Config
	log     *slog.Logger
	pool    *pgxpool.Pool
	indexes *indexes
	limiter *middleware.RateLimiter
	handler http.Handler
}

// New connects to the store, opens the search indexes and builds the HTTP
// handler. Call Close to release them.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, cfg.Database.DSN); err != nil {
			return nil, err
		}
		logger.InfoContext(ctx, "database migrations applied")
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	idx, err := openIndexes(ctx, cfg.Search)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("open search index: %w", err)
	}

	a := &App{cfg: cfg, log: logger, pool: pool, indexes: idx}
	a.handler = a.buildHandler()
	return a, nil
}

func (a *App) buildHandler() http.Handler {
	m := metrics.New()
	tx := postgres.NewTxManager(a.pool)

	opts := rest.ResourceOptions{
		Alerts: rest.NewAlerts(a.cfg.App.Name),
		Page: rest.PageConfig{
			DefaultSize: a.cfg.Pagination.DefaultSize,
			MaxSize:     a.cfg.Pagination.MaxSize,
		},
		MaxBodyBytes: a.cfg.Server.MaxBodyBytes,
	}

	pointsSvc := resource.NewService[domain.Points, dto.Points](
		a.log, domain.KindPoints, points.New(a.pool), a.indexes.points, mapper.Points{}, tx, m)
	weightSvc := resource.NewService[domain.Weight, dto.Weight](
		a.log, domain.KindWeight, weight.New(a.pool), a.indexes.weight, mapper.Weight{}, tx, m)
	bloodPressureSvc := resource.NewService[domain.BloodPressure, dto.BloodPressure](
		a.log, domain.KindBloodPressure, bloodpressure.New(a.pool), a.indexes.bloodPressure, mapper.BloodPressure{}, tx, m)
	preferencesSvc := resource.NewService[domain.Preferences, dto.Preferences](
		a.log, domain.KindPreferences, preferences.New(a.pool), a.indexes.preferences, mapper.Preferences{}, tx, m)

	health := rest.NewHealthHandler(map[string]rest.Pinger{
		"database":    a.pool,
		"searchIndex": a.indexes,
	}, BuildVersion())

	router := rest.NewRouter(health, m.Handler(), opts.Alerts,
		rest.NewResourceHandler[dto.Points](pointsSvc, opts, a.log),
		rest.NewResourceHandler[dto.Weight](weightSvc, opts, a.log),
		rest.NewResourceHandler[dto.BloodPressure](bloodPressureSvc, opts, a.log),
		rest.NewResourceHandler[dto.Preferences](preferencesSvc, opts, a.log),
	)
	router.Use(metrics.RouteTemplate)

	var limit middleware.Middleware
	if rl := a.cfg.RateLimit; rl.Enabled {
		a.limiter = middleware.NewRateLimiter(rl.RequestsPerSecond, rl.Burst, rl.CleanupInterval)
		limit = a.limiter.Middleware()
	}

	return middleware.Chain(
		middleware.Recovery(a.log),
		middleware.RequestID(),
		middleware.Logger(a.log),
		m.InstrumentHandler,
		middleware.CORS(a.cfg.CORS, opts.Alerts.ExposedHeaders()...),
		limit,
	)(router)
}

// Handler returns the HTTP handler of the application.
func (a *App) Handler() http.Handler { return a.handler }

// Pool returns the entity store connection pool.
func (a *App) Pool() *pgxpool.Pool { return a.pool }

// Close stops background work and releases the store and index handles.
func (a *App) Close() error {
	if a.limiter != nil {
		a.limiter.Stop()
	}
	a.pool.Close()
	return a.indexes.Close()
}

// Run is the application entry point. It loads configuration, initializes
// the logger, assembles the application and serves HTTP until ctx is
// cancelled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("search_backend", cfg.Search.Backend),
	)

	a, err := New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error("close application", slog.String("error", err.Error()))
		}
	}()

	srv := &http.Server{
		Addr:           net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:        a.Handler(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
