package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/partnerkit/adcatalog/internal/middleware"
)

// PopupStatusHandler handles GET /popups/{id}: reports whether the popup
// is still inside its dismissal cool-down.
func (s *Server) PopupStatusHandler(w http.ResponseWriter, r *http.Request) {
	logger := middleware.LoggerFromRequest(r, s.Logger)

	start := time.Now()
	const endpoint = "popup"
	const method = "GET"

	popupID := mux.Vars(r)["id"]

	dismissed, err := s.Popup.IsDismissed(r.Context(), popupID)
	if err != nil {
		logger.Error("popup status", zap.Error(err), zap.String("popup_id", popupID))
		s.Metrics.IncrementRequests(endpoint, method, "500")
		s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
		http.Error(w, "popup status failed", http.StatusInternalServerError)
		return
	}

	s.Metrics.IncrementRequests(endpoint, method, "200")
	s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]bool{"dismissed": dismissed}); err != nil {
		logger.Error("encode popup status", zap.Error(err))
	}
}

// PopupDismissHandler handles POST /popups/{id}/dismiss: records the
// dismissal timestamp. Repeated dismissals overwrite the timestamp.
func (s *Server) PopupDismissHandler(w http.ResponseWriter, r *http.Request) {
	logger := middleware.LoggerFromRequest(r, s.Logger)

	start := time.Now()
	const endpoint = "popup_dismiss"
	const method = "POST"

	popupID := mux.Vars(r)["id"]

	if err := s.Popup.Dismiss(r.Context(), popupID); err != nil {
		logger.Error("popup dismiss", zap.Error(err), zap.String("popup_id", popupID))
		s.Metrics.IncrementRequests(endpoint, method, "500")
		s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))
		http.Error(w, "popup dismiss failed", http.StatusInternalServerError)
		return
	}

	s.Metrics.IncrementPopupDismissals()
	s.Metrics.IncrementRequests(endpoint, method, "204")
	s.Metrics.RecordRequestLatency(endpoint, method, time.Since(start))

	w.WriteHeader(http.StatusNoContent)
}
