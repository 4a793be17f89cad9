// Package i18n resolves multi-language content fields to a single display
// value. A record field arrives as a mapping from language code to value;
// the requested language wins, the default language is the fallback, and a
// field with neither is reported as absent so the caller can render an
// empty state. Absence is an expected, common case, never an error.
package i18n

import "github.com/partnerkit/adcatalog/internal/models"

// DefaultLanguage is the fallback when a record has no variant for the
// requested language.
const DefaultLanguage = models.LangEN

// Resolve returns the variant of v for lang, falling back to def. The
// second return value reports whether any variant was found; when it is
// false the first value is the zero value of T and the caller renders an
// empty state. List-typed values resolve whole: items from different
// languages are never mixed.
func Resolve[T any](v models.Localized[T], lang, def models.LangCode) (T, bool) {
	if val, ok := v[lang]; ok {
		return val, true
	}
	if val, ok := v[def]; ok {
		return val, true
	}
	var zero T
	return zero, false
}

// ResolveDefault is Resolve with the package default fallback language.
func ResolveDefault[T any](v models.Localized[T], lang models.LangCode) (T, bool) {
	return Resolve(v, lang, DefaultLanguage)
}

// Normalize maps an arbitrary language tag to a supported LangCode,
// defaulting to English. Tags like "ru-RU" collapse to their base language.
func Normalize(tag string) models.LangCode {
	if len(tag) >= 2 {
		switch models.LangCode(tag[:2]) {
		case models.LangRU:
			return models.LangRU
		case models.LangEN:
			return models.LangEN
		}
	}
	return DefaultLanguage
}

// ruCountries are ISO country codes whose visitors default to Russian
// content when they have not picked a language themselves.
var ruCountries = map[string]struct{}{
	"RU": {}, "BY": {}, "KZ": {}, "UA": {}, "UZ": {}, "KG": {},
}

// FromCountry picks the default content language for a visitor country
// code as reported by the GeoIP lookup. Unknown or empty countries get
// the default language.
func FromCountry(country string) models.LangCode {
	if _, ok := ruCountries[country]; ok {
		return models.LangRU
	}
	return DefaultLanguage
}
