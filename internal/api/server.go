package api

import (
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/partnerkit/adcatalog/internal/config"
	"github.com/partnerkit/adcatalog/internal/db"
	"github.com/partnerkit/adcatalog/internal/geoip"
	"github.com/partnerkit/adcatalog/internal/logic/selectors"
	"github.com/partnerkit/adcatalog/internal/models"
	"github.com/partnerkit/adcatalog/internal/observability"
	"github.com/partnerkit/adcatalog/internal/popup"
)

var tracer = otel.Tracer("adcatalog")

// Server groups dependencies for HTTP handlers.
type Server struct {
	Logger   *zap.Logger
	Catalog  models.CatalogStore
	PG       *db.Postgres
	Redis    *db.RedisStore
	Popup    *popup.Tracker
	GeoIP    *geoip.GeoIP
	Selector selectors.Selector
	Metrics  observability.MetricsRegistry
	Config   config.Config
	reloadMu sync.Mutex
}

// NewServer constructs a Server. A nil selector falls back to the default
// daily rotation.
func NewServer(logger *zap.Logger, catalog models.CatalogStore, pg *db.Postgres, redis *db.RedisStore,
	tracker *popup.Tracker, geo *geoip.GeoIP, selector selectors.Selector,
	metrics observability.MetricsRegistry, cfg config.Config) *Server {

	if selector == nil {
		selector = selectors.NewRotationSelector()
	}

	return &Server{
		Logger:   logger,
		Catalog:  catalog,
		PG:       pg,
		Redis:    redis,
		Popup:    tracker,
		GeoIP:    geo,
		Selector: selector,
		Metrics:  metrics,
		Config:   cfg,
	}
}

// Reload re-fetches entities and creatives from the content backend and
// swaps them into the catalog store atomically.
func (s *Server) Reload() error {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	if s.PG == nil {
		return fmt.Errorf("postgres unavailable")
	}

	entities, err := s.PG.LoadEntities()
	if err != nil {
		return fmt.Errorf("load entities: %w", err)
	}

	creatives, err := s.PG.LoadCreatives()
	if err != nil {
		return fmt.Errorf("load creatives: %w", err)
	}

	if err := s.Catalog.ReloadAll(entities, creatives); err != nil {
		return fmt.Errorf("reload catalog: %w", err)
	}

	s.Logger.Info("catalog reloaded",
		zap.Int("entities", len(entities)),
		zap.Int("creatives", len(creatives)))
	return nil
}
