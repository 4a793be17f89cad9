package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/partnerkit/adcatalog/internal/logic"
	"github.com/partnerkit/adcatalog/internal/logic/selectors"
	"github.com/partnerkit/adcatalog/internal/middleware"
	"github.com/partnerkit/adcatalog/internal/models"
)

// slotResponse carries one slot render. Creative is null on the
// placeholder path: the page shows its "Advertisement" label instead.
type slotResponse struct {
	Slot     string `json:"slot"`
	Viewport string `json:"viewport"`
	// Creative is nil when nothing is eligible.
	Creative *models.CreativeDescriptor `json:"creative"`
	// Image is the asset matching the caller's viewport, empty when the
	// creative has none for it.
	Image       string `json:"image,omitempty"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

// SlotHandler handles GET /slots/{slotKey}. Audience and language come
// from query parameters; the rotation seed defaults to the calendar day
// of month and may be pinned with ?seed= for cache warming.
func (s *Server) SlotHandler(w http.ResponseWriter, r *http.Request) {
	_, span := tracer.Start(r.Context(), "SlotHandler")
	defer span.End()

	logger := middleware.LoggerFromRequest(r, s.Logger)

	start := time.Now()
	const endpoint = "slot"
	const method = "GET"

	slotKey := mux.Vars(r)["slotKey"]
	audience := r.URL.Query().Get("audience")
	lang := s.displayLanguage(r)

	seed := selectors.DaySeed(time.Now())
	if v := r.URL.Query().Get("seed"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			seed = n
		}
	}

	viewport := logic.ResolveViewport(r.Header.Get("User-Agent"))

	span.SetAttributes(
		attribute.String("slot.key", slotKey),
		attribute.String("slot.audience", audience),
		attribute.String("slot.language", string(lang)),
		attribute.Int("slot.seed", seed),
	)

	resp := slotResponse{Slot: slotKey, Viewport: viewport}

	desc, err := s.Selector.ResolveSlot(s.Catalog, slotKey, audience, lang, seed)
	switch {
	case errors.Is(err, selectors.ErrNoEligibleCreative):
		// Expected state: the caller renders a placeholder.
		resp.Placeholder = true
		s.Metrics.IncrementPlaceholders(slotKey)
	case err != nil:
		logger.Error("resolve slot", zap.Error(err), zap.String("slot", slotKey))
		s.Metrics.IncrementRequests(endpoint, method, "500")
		s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
		http.Error(w, "slot resolution failed", http.StatusInternalServerError)
		return
	default:
		resp.Creative = desc
		if viewport == logic.ViewportMobile {
			resp.Image = desc.MobileImage
		} else {
			resp.Image = desc.DesktopImage
		}
		s.Metrics.IncrementCreativesServed(slotKey)
	}

	s.Metrics.IncrementRequests(endpoint, method, "200")
	s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("encode slot response", zap.Error(err))
	}
}
