package models

// LangCode identifies one of the directory's supported content languages.
type LangCode string

const (
	// LangEN is the default language. Records missing a requested language
	// fall back to their English entry.
	LangEN LangCode = "en"
	// LangRU is the Russian-market language.
	LangRU LangCode = "ru"
)

// SupportedLanguages lists every language content may be authored in.
var SupportedLanguages = []LangCode{LangEN, LangRU}

// Localized holds a per-language variant of a value. At least one entry
// should exist for the record to be usable; a missing language is an
// expected state, not an error. Values are resolved whole per language,
// list-typed values are never merged across languages.
type Localized[T any] map[LangCode]T

// Has reports whether a variant exists for the given language.
func (l Localized[T]) Has(lang LangCode) bool {
	_, ok := l[lang]
	return ok
}
