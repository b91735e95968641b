package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-panel/internal/audit"
	"github.com/BruksfildServices01/booking-panel/internal/backend"
	"github.com/BruksfildServices01/booking-panel/internal/config"
	dbpkg "github.com/BruksfildServices01/booking-panel/internal/db"
	"github.com/BruksfildServices01/booking-panel/internal/handlers"
	infraRepo "github.com/BruksfildServices01/booking-panel/internal/infra/repository"
	"github.com/BruksfildServices01/booking-panel/internal/logging"
	"github.com/BruksfildServices01/booking-panel/internal/metrics"
	"github.com/BruksfildServices01/booking-panel/internal/routes"
	"github.com/BruksfildServices01/booking-panel/internal/timezone"
	"github.com/BruksfildServices01/booking-panel/internal/validators"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

func run() error {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	if !timezone.IsValid(cfg.Timezone) {
		logger.Warn().Str("timezone", cfg.Timezone).Msg("unknown timezone, using default")
		cfg.Timezone = timezone.DefaultTimezone
	}

	if err := validators.Register(); err != nil {
		return fmt.Errorf("register validators: %w", err)
	}

	health := map[string]handlers.Pinger{}

	// ------------------------------
	// STATE STORE
	// ------------------------------
	store, rdb, err := initStore(cfg, logger)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
		health["redis"] = handlers.PingFunc(func(ctx context.Context) error {
			return infraRepo.Ping(ctx, rdb)
		})
	}

	// ------------------------------
	// METRICS + BACKEND
	// ------------------------------
	m := metrics.New(nil)

	client := backend.New(cfg.BackendURL, cfg.BackendTimeout, logger)
	client.SetObserver(m)
	if rdb != nil && cfg.CacheTTL > 0 {
		client.UseRedisCache(rdb, cfg.CacheTTL)
	}

	// ------------------------------
	// AUDIT
	// ------------------------------
	auditDB, sink := initAudit(cfg, logger)
	if auditDB != nil {
		defer func() { _ = dbpkg.Close(auditDB) }()
		health["audit_db"] = handlers.PingFunc(func(ctx context.Context) error {
			sqlDB, err := auditDB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		})
	}
	dispatcher := audit.NewDispatcher(sink, logger, 256)
	defer dispatcher.Close()

	var auditLogs handlers.AuditLogReader
	if gs, ok := sink.(*audit.GormSink); ok {
		auditLogs = gs
	}

	// ------------------------------
	// HTTP
	// ------------------------------
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		Config:    cfg,
		Logger:    logger,
		Backend:   client,
		Store:     store,
		Audit:     dispatcher,
		Metrics:   m,
		AuditLogs: auditLogs,
		Health:    health,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr()).Str("backend", cfg.BackendURL).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// initStore connects redis when configured; otherwise state lives in memory
// and is lost on restart.
func initStore(cfg *config.Config, logger zerolog.Logger) (infraRepo.Store, *redis.Client, error) {
	if cfg.RedisURL == "" {
		logger.Warn().Msg("REDIS_URL not set, using in-memory state store")
		return infraRepo.NewMemoryStore(), nil, nil
	}

	rdb, err := infraRepo.NewRedisClient(cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := infraRepo.Ping(ctx, rdb); err != nil {
		_ = rdb.Close()
		return nil, nil, err
	}

	logger.Info().Msg("redis connected")
	return infraRepo.NewRedisStore(rdb, "booking-panel:"), rdb, nil
}

// initAudit stores audit events in postgres when AUDIT_DATABASE_URL is set
// and falls back to log lines when it is missing or unreachable.
func initAudit(cfg *config.Config, logger zerolog.Logger) (*gorm.DB, audit.Sink) {
	if cfg.AuditDBUrl == "" {
		return nil, audit.NewLogSink(logger)
	}

	db, err := dbpkg.NewAuditDB(cfg.AuditDBUrl)
	if err != nil {
		logger.Warn().Err(err).Msg("audit database unavailable, logging audit events instead")
		return nil, audit.NewLogSink(logger)
	}
	return db, audit.NewGormSink(db)
}
