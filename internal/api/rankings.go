package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/partnerkit/adcatalog/internal/middleware"
	"github.com/partnerkit/adcatalog/internal/models"
	"github.com/partnerkit/adcatalog/internal/ranking"
)

// rankingResponse is the render-ready form of one category ranking.
type rankingResponse struct {
	Kind             string            `json:"kind"`
	Category         string            `json:"category"`
	Language         string            `json:"language"`
	Ranked           []RankedEntryView `json:"ranked"`
	BestOverall      *RankedEntryView  `json:"best_overall,omitempty"`
	BestForBeginners *RankedEntryView  `json:"best_for_beginners,omitempty"`
}

// RankingHandler handles GET /rankings/{kind}/{category}: builds the
// category ranking over the current catalog snapshot and resolves the
// entities' localized fields for the display language. An empty category
// yields an empty ranked list, not an error.
func (s *Server) RankingHandler(w http.ResponseWriter, r *http.Request) {
	_, span := tracer.Start(r.Context(), "RankingHandler")
	defer span.End()

	requestID := uuid.NewString()
	logger := middleware.LoggerFromRequest(r, s.Logger).With(zap.String("request_id", requestID))

	start := time.Now()
	const endpoint = "rankings"
	const method = "GET"

	vars := mux.Vars(r)
	kind := models.EntityKind(vars["kind"])
	category := models.CategoryKey(vars["category"])

	if !kind.Valid() {
		s.Metrics.IncrementRequests(endpoint, method, "404")
		s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
		http.Error(w, "unknown catalog kind", http.StatusNotFound)
		return
	}

	lang := s.displayLanguage(r)
	span.SetAttributes(
		attribute.String("catalog.kind", string(kind)),
		attribute.String("catalog.category", string(category)),
		attribute.String("catalog.language", string(lang)),
	)

	entities := s.Catalog.EntitiesByKind(kind)
	res := ranking.Build(entities, category)

	resp := rankingResponse{
		Kind:     string(kind),
		Category: string(category),
		Language: string(lang),
		Ranked:   make([]RankedEntryView, len(res.Ranked)),
	}
	for i, entry := range res.Ranked {
		resp.Ranked[i] = rankedEntryView(entry, lang)
	}
	if res.BestOverall != nil {
		v := rankedEntryView(*res.BestOverall, lang)
		resp.BestOverall = &v
	}
	if res.BestForBeginners != nil {
		v := rankedEntryView(*res.BestForBeginners, lang)
		resp.BestForBeginners = &v
	}

	logger.Debug("ranking built",
		zap.String("kind", string(kind)),
		zap.String("category", string(category)),
		zap.Int("ranked", len(resp.Ranked)))
	s.Metrics.IncrementRankings(string(kind))
	s.Metrics.IncrementRequests(endpoint, method, "200")
	s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("encode ranking response", zap.Error(err))
	}
}
