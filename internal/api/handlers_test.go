package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/partnerkit/adcatalog/internal/config"
	"github.com/partnerkit/adcatalog/internal/models"
	"github.com/partnerkit/adcatalog/internal/observability"
	"github.com/partnerkit/adcatalog/internal/popup"
)

type memPopupStore struct {
	data map[string]string
}

func (m *memPopupStore) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memPopupStore) Set(_ context.Context, key, value string) error {
	m.data[key] = value
	return nil
}

func newTestServer(t *testing.T) (*Server, *mux.Router) {
	t.Helper()

	catalog := models.NewTestCatalogStore()
	entities := []models.Entity{
		{
			Slug: "evadav", Kind: models.KindAdNetwork, Name: "Evadav",
			MinPayout: 25,
			Description: models.Localized[string]{
				"en": "Push and native network",
				"ru": "Пуш и нативная сеть",
			},
			Formats: []models.CategoryKey{"webPush"},
			FormatRatings: map[models.CategoryKey]models.FormatRating{
				"webPush": {Overall: 4.8},
			},
		},
		{
			Slug: "newcomer", Kind: models.KindAdNetwork, Name: "Newcomer",
			MinPayout: 10,
			Formats:   []models.CategoryKey{"webPush"},
		},
		{
			Slug: "richads", Kind: models.KindAdNetwork, Name: "RichAds",
			MinPayout: 100,
			Description: models.Localized[string]{
				"en": "Premium push traffic",
			},
			Formats: []models.CategoryKey{"webPush"},
			FormatRatings: map[models.CategoryKey]models.FormatRating{
				"webPush": {Overall: 4.2},
			},
		},
	}
	creatives := []models.Creative{
		{Slug: "banner-a", SlotKey: "sidebar", Audience: models.AudienceAffiliate, Language: "en",
			DesktopImage: "cdn/a-desktop.png", MobileImage: "cdn/a-mobile.png", DestinationURL: "https://a.example"},
		{Slug: "banner-b", SlotKey: "sidebar", Audience: models.AudienceAffiliate, Language: "en",
			DesktopImage: "cdn/b-desktop.png", DestinationURL: "https://b.example"},
	}
	require.NoError(t, catalog.ReloadAll(entities, creatives))

	tracker := popup.NewTracker(&memPopupStore{data: make(map[string]string)}, popup.DefaultCooldown)

	srv := NewServer(zap.NewNop(), catalog, nil, nil, tracker, nil, nil,
		observability.NewNoOpRegistry(), config.Load())

	r := mux.NewRouter()
	r.HandleFunc("/rankings/{kind}/{category}", srv.RankingHandler).Methods("GET")
	r.HandleFunc("/entities/{kind}", srv.EntityListHandler).Methods("GET")
	r.HandleFunc("/entities/{kind}/{slug}", srv.EntityHandler).Methods("GET")
	r.HandleFunc("/slots/{slotKey}", srv.SlotHandler).Methods("GET")
	r.HandleFunc("/popups/{id}", srv.PopupStatusHandler).Methods("GET")
	r.HandleFunc("/popups/{id}/dismiss", srv.PopupDismissHandler).Methods("POST")
	r.HandleFunc("/health", srv.HealthHandler).Methods("GET")

	return srv, r
}

func TestRankingHandler(t *testing.T) {
	_, router := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/rankings/ad-network/webPush?lang=en", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp rankingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.Len(t, resp.Ranked, 2, "unrated entity must be excluded")
	assert.Equal(t, "evadav", resp.Ranked[0].Slug)
	assert.Equal(t, 1, resp.Ranked[0].Rank)
	assert.Equal(t, 4.8, resp.Ranked[0].Score)
	assert.Equal(t, "richads", resp.Ranked[1].Slug)
	assert.Equal(t, 2, resp.Ranked[1].Rank)

	require.NotNil(t, resp.BestOverall)
	assert.Equal(t, "evadav", resp.BestOverall.Slug)
	require.NotNil(t, resp.BestForBeginners)
	assert.Equal(t, "evadav", resp.BestForBeginners.Slug, "lowest payout among ranked entities")

	assert.Equal(t, "Push and native network", resp.Ranked[0].Description)
}

func TestRankingHandlerLocalizationFallback(t *testing.T) {
	_, router := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/rankings/ad-network/webPush?lang=ru", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp rankingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "ru", resp.Language)
	assert.Equal(t, "Пуш и нативная сеть", resp.Ranked[0].Description)
	// richads has no ru variant: falls back to English.
	assert.Equal(t, "Premium push traffic", resp.Ranked[1].Description)
}

func TestRankingHandlerEmptyCategory(t *testing.T) {
	_, router := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/rankings/ad-network/inApp", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, "empty category is a result, not a failure")

	var resp rankingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Ranked)
	assert.Nil(t, resp.BestOverall)
	assert.Nil(t, resp.BestForBeginners)
}

func TestRankingHandlerUnknownKind(t *testing.T) {
	_, router := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/rankings/widgets/webPush", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSlotHandlerRotation(t *testing.T) {
	_, router := newTestServer(t)

	// Two eligible creatives, pinned seed 15: 15 % 2 picks the second.
	req := httptest.NewRequest(http.MethodGet, "/slots/sidebar?audience=affiliate&lang=en&seed=15", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp slotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Creative)
	assert.Equal(t, "banner-b", resp.Creative.Slug)
	assert.False(t, resp.Placeholder)
}

func TestSlotHandlerViewportImage(t *testing.T) {
	_, router := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/slots/sidebar?audience=affiliate&lang=en&seed=0", nil)
	req.Header.Set("User-Agent",
		"Mozilla/5.0 (iPhone; CPU iPhone OS 15_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/15.0 Mobile/15E148 Safari/605.1.15")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp slotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "mobile", resp.Viewport)
	require.NotNil(t, resp.Creative)
	assert.Equal(t, "banner-a", resp.Creative.Slug)
	assert.Equal(t, "cdn/a-mobile.png", resp.Image)
}

func TestSlotHandlerPlaceholder(t *testing.T) {
	_, router := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/slots/leaderboard?audience=affiliate&lang=en", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, "no creative is a placeholder, not an error")

	var resp slotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Nil(t, resp.Creative)
	assert.True(t, resp.Placeholder)
}

func TestPopupDismissFlow(t *testing.T) {
	_, router := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/popups/promo", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var status map[string]bool
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.False(t, status["dismissed"])

	req = httptest.NewRequest(http.MethodPost, "/popups/promo/dismiss", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/popups/promo", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.True(t, status["dismissed"])
}

func TestEntityHandlers(t *testing.T) {
	_, router := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/entities/ad-network?lang=en", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var list struct {
		Entities []EntityView `json:"entities"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list.Entities, 3, "listing includes unrated entities")

	req = httptest.NewRequest(http.MethodGet, "/entities/ad-network/evadav", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/entities/cpa-network/evadav", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code, "slug under the wrong kind is not found")
}

func TestHealthHandler(t *testing.T) {
	_, router := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
