package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/partnerkit/adcatalog/internal/api"
	"github.com/partnerkit/adcatalog/internal/config"
	"github.com/partnerkit/adcatalog/internal/db"
	"github.com/partnerkit/adcatalog/internal/geoip"
	"github.com/partnerkit/adcatalog/internal/middleware"
	"github.com/partnerkit/adcatalog/internal/models"
	"github.com/partnerkit/adcatalog/internal/observability"
	"github.com/partnerkit/adcatalog/internal/popup"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger, err := observability.InitLoggerWithService(cfg.ServiceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}

	defer func() {
		if err := logger.Sync(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to sync logger: %v\n", err)
		}
	}()

	if err := run(logger, cfg); err != nil {
		logger.Error("server error", zap.Error(err))
		os.Exit(1)
	}
}

func run(logger *zap.Logger, cfg config.Config) error {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.TracingEnabled {
		shutdown, err := observability.InitTracing(ctx, logger, cfg.ServiceName, cfg.TracingEndpoint, cfg.TracingSampleRate)
		if err != nil {
			return fmt.Errorf("init tracing: %w", err)
		}
		defer shutdown()
	}

	pg, err := db.InitPostgres(cfg.PostgresDSN, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLifetime, cfg.DBConnMaxIdleTime)
	if err != nil {
		return fmt.Errorf("failed to connect postgres: %w", err)
	}
	defer pg.Close()

	catalog := models.NewInMemoryCatalogStore()

	// Populate the catalog before serving so the first request never sees
	// an empty snapshot.
	entities, err := pg.LoadEntities()
	if err != nil {
		return fmt.Errorf("load entities: %w", err)
	}
	creatives, err := pg.LoadCreatives()
	if err != nil {
		return fmt.Errorf("load creatives: %w", err)
	}
	if err := catalog.ReloadAll(entities, creatives); err != nil {
		return fmt.Errorf("populate catalog store: %w", err)
	}
	logger.Info("catalog loaded",
		zap.Int("entities", len(entities)),
		zap.Int("creatives", len(creatives)))

	redisStore, err := db.InitRedis(cfg.RedisAddr)
	if err != nil {
		return fmt.Errorf("failed to connect redis: %w", err)
	}
	defer redisStore.Close()

	tracker := popup.NewTracker(redisStore, cfg.PopupCooldown)

	geoSvc, err := geoip.Init(cfg.GeoIPDB)
	if err != nil {
		return fmt.Errorf("failed to load geoip db: %w", err)
	}
	defer func() { _ = geoSvc.Close() }()

	metricsRegistry := observability.NewPrometheusRegistry()

	r := mux.NewRouter()
	// Selector is nil here: NewServer wires in the daily rotation. Swap in
	// a custom Selector to change how creatives are chosen.
	srvDeps := api.NewServer(logger, catalog, pg, redisStore, tracker, geoSvc, nil, metricsRegistry, cfg)
	r.HandleFunc("/rankings/{kind}/{category}", srvDeps.RankingHandler).Methods("GET")
	r.HandleFunc("/entities/{kind}", srvDeps.EntityListHandler).Methods("GET")
	r.HandleFunc("/entities/{kind}/{slug}", srvDeps.EntityHandler).Methods("GET")
	r.HandleFunc("/slots/{slotKey}", srvDeps.SlotHandler).Methods("GET")
	r.HandleFunc("/popups/{id}", srvDeps.PopupStatusHandler).Methods("GET")
	r.HandleFunc("/popups/{id}/dismiss", srvDeps.PopupDismissHandler).Methods("POST")
	r.HandleFunc("/health", srvDeps.HealthHandler).Methods("GET")
	r.HandleFunc("/reload", srvDeps.ReloadHandler).Methods("POST")

	r.Handle("/metrics", promhttp.Handler())

	r.Use(middleware.WithTraceLogger(logger))

	addr := ":" + cfg.Port

	srv := &http.Server{
		Addr:         addr,
		Handler:      otelhttp.NewHandler(r, "adcatalog"),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	logger.Info("catalog server running", zap.String("addr", addr))

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("listen: %w", err)
		}
	}()

	if cfg.ReloadInterval > 0 {
		ticker := time.NewTicker(cfg.ReloadInterval)
		go func() {
			for {
				select {
				case <-ticker.C:
					if err := srvDeps.Reload(); err != nil {
						logger.Error("auto reload", zap.Error(err))
						metricsRegistry.IncrementReloadErrors()
					}
				case <-ctx.Done():
					ticker.Stop()
					return
				}
			}
		}()
	}

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}
