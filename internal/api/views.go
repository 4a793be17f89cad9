package api

import (
	"net/http"

	"github.com/partnerkit/adcatalog/internal/i18n"
	"github.com/partnerkit/adcatalog/internal/logic"
	"github.com/partnerkit/adcatalog/internal/models"
)

// EntityView is a catalog entity with its localized fields resolved to the
// active display language. Fields with no usable variant stay empty and
// the presentation layer renders its empty-value marker instead.
type EntityView struct {
	Slug        string   `json:"slug"`
	Kind        string   `json:"kind"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Pros        []string `json:"pros,omitempty"`
	Website     string   `json:"website,omitempty"`
	MinPayout   float64  `json:"min_payout"`
}

// RankedEntryView is one row of a category ranking.
type RankedEntryView struct {
	EntityView
	Score float64 `json:"score"`
	Rank  int     `json:"rank"`
}

func entityView(e models.Entity, lang models.LangCode) EntityView {
	v := EntityView{
		Slug:      e.Slug,
		Kind:      string(e.Kind),
		Name:      e.Name,
		Website:   e.Website,
		MinPayout: e.MinPayout,
	}
	if desc, ok := i18n.ResolveDefault(e.Description, lang); ok {
		v.Description = desc
	}
	if pros, ok := i18n.ResolveDefault(e.Pros, lang); ok {
		v.Pros = pros
	}
	return v
}

func rankedEntryView(r models.RankedEntity, lang models.LangCode) RankedEntryView {
	return RankedEntryView{
		EntityView: entityView(r.Entity, lang),
		Score:      r.Score,
		Rank:       r.Rank,
	}
}

// displayLanguage picks the content language for a request: an explicit
// lang query parameter wins, then the visitor's country, then the default.
func (s *Server) displayLanguage(r *http.Request) models.LangCode {
	if lang := r.URL.Query().Get("lang"); lang != "" {
		return i18n.Normalize(lang)
	}
	if country := logic.ResolveCountry(r, s.GeoIP); country != "" {
		return i18n.FromCountry(country)
	}
	return i18n.Normalize(s.Config.DefaultLanguage)
}
