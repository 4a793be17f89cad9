package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/partnerkit/adcatalog/internal/middleware"
	"github.com/partnerkit/adcatalog/internal/models"
)

// EntityListHandler handles GET /entities/{kind}: the raw catalog listing
// of one kind with localized fields resolved, in upstream fetch order.
func (s *Server) EntityListHandler(w http.ResponseWriter, r *http.Request) {
	logger := middleware.LoggerFromRequest(r, s.Logger)

	start := time.Now()
	const endpoint = "entities"
	const method = "GET"

	kind := models.EntityKind(mux.Vars(r)["kind"])
	if !kind.Valid() {
		s.Metrics.IncrementRequests(endpoint, method, "404")
		s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
		http.Error(w, "unknown catalog kind", http.StatusNotFound)
		return
	}

	lang := s.displayLanguage(r)
	entities := s.Catalog.EntitiesByKind(kind)

	views := make([]EntityView, len(entities))
	for i, e := range entities {
		views[i] = entityView(e, lang)
	}

	s.Metrics.IncrementRequests(endpoint, method, "200")
	s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{
		"kind":     string(kind),
		"language": string(lang),
		"entities": views,
	}); err != nil {
		logger.Error("encode entity list", zap.Error(err))
	}
}

// EntityHandler handles GET /entities/{kind}/{slug}: a single localized
// catalog record.
func (s *Server) EntityHandler(w http.ResponseWriter, r *http.Request) {
	logger := middleware.LoggerFromRequest(r, s.Logger)

	start := time.Now()
	const endpoint = "entity"
	const method = "GET"

	vars := mux.Vars(r)
	kind := models.EntityKind(vars["kind"])
	slug := vars["slug"]

	e := s.Catalog.GetEntity(slug)
	if e == nil || e.Kind != kind {
		s.Metrics.IncrementRequests(endpoint, method, "404")
		s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
		http.Error(w, "entity not found", http.StatusNotFound)
		return
	}

	lang := s.displayLanguage(r)

	s.Metrics.IncrementRequests(endpoint, method, "200")
	s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(entityView(*e, lang)); err != nil {
		logger.Error("encode entity", zap.Error(err))
	}
}
