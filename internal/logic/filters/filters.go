// Package filters narrows a slot's creative pool to the entries eligible
// for one render. Each filter preserves the pool's fetch order; the
// rotation rule downstream depends on that ordering.
package filters

import "github.com/partnerkit/adcatalog/internal/models"

// ByAudience returns creatives eligible for the visitor's audience
// segment. Creatives without explicit audience targeting serve to anyone.
func ByAudience(creatives []models.Creative, audience string) []models.Creative {
	var out []models.Creative
	for _, c := range creatives {
		if c.Audience == "" || c.Audience == audience {
			out = append(out, c)
		}
	}
	return out
}

// ByLanguage returns creatives eligible for the display language.
// Creatives without explicit language targeting serve in any language.
func ByLanguage(creatives []models.Creative, lang models.LangCode) []models.Creative {
	var out []models.Creative
	for _, c := range creatives {
		if c.Language == "" || c.Language == lang {
			out = append(out, c)
		}
	}
	return out
}

// Eligible applies the full eligibility chain for one slot render.
func Eligible(creatives []models.Creative, audience string, lang models.LangCode) []models.Creative {
	out := ByAudience(creatives, audience)
	out = ByLanguage(out, lang)
	return out
}
