package services

import (
	"sort"
	"strings"

	"github.com/chanscout/chanscout-cli/internal/core/domain"
)

// defaultSynonyms maps a term to equivalent search terms. Substitution
// is substring-based and case-insensitive.
var defaultSynonyms = map[string][]string{
	"новости":          {"news", "сми", "медиа", "лента"},
	"игры":             {"games", "gaming", "геймер"},
	"музыка":           {"music", "песни", "аудио"},
	"фильмы":           {"movies", "кино", "cinema"},
	"спорт":            {"sport", "fitness", "тренировки"},
	"криптовалюты":     {"crypto", "bitcoin", "блокчейн"},
	"программирование": {"coding", "разработка", "dev"},
	"бизнес":           {"business", "предпринимательство"},
	"образование":      {"education", "обучение", "курсы"},
}

// defaultTranslations pairs a term with its cross-language gloss.
// Expansion applies both directions.
var defaultTranslations = map[string]string{
	"news":     "новости",
	"games":    "игры",
	"music":    "музыка",
	"crypto":   "криптовалюты",
	"business": "бизнес",
	"sport":    "спорт",
}

// QueryExpander turns one query into a bounded set of variants using a
// synonym/translation table. Pure and deterministic: no external calls,
// no side effects.
type QueryExpander struct {
	synonyms     map[string][]string
	translations map[string]string
}

// NewQueryExpander creates an expander with the default tables.
func NewQueryExpander() *QueryExpander {
	return &QueryExpander{
		synonyms:     defaultSynonyms,
		translations: defaultTranslations,
	}
}

// AddSynonyms extends the synonym table, merging with existing entries.
// Keys are lowercased.
func (e *QueryExpander) AddSynonyms(extra map[string][]string) {
	merged := make(map[string][]string, len(e.synonyms)+len(extra))
	for k, v := range e.synonyms {
		merged[k] = v
	}
	for k, v := range extra {
		key := strings.ToLower(k)
		merged[key] = append(merged[key], v...)
	}
	e.synonyms = merged
}

// Expand returns the deduplicated variant list for a query. The
// original query is always element 0; when no table entry matches the
// output is exactly the original.
func (e *QueryExpander) Expand(query string) []domain.QueryVariant {
	variants := []domain.QueryVariant{{Text: query, Origin: domain.OriginOriginal}}
	seen := map[string]bool{strings.ToLower(query): true}
	lower := strings.ToLower(query)

	add := func(text string, origin domain.VariantOrigin) {
		if text == "" || seen[text] {
			return
		}
		seen[text] = true
		variants = append(variants, domain.QueryVariant{Text: text, Origin: origin})
	}

	// Sorted iteration keeps the variant order deterministic.
	for _, term := range sortedKeys(e.synonyms) {
		if !strings.Contains(lower, term) {
			continue
		}
		for _, syn := range e.synonyms[term] {
			add(strings.ReplaceAll(lower, term, syn), domain.OriginSynonym)
		}
	}

	for _, from := range sortedKeys(e.translations) {
		to := e.translations[from]
		if strings.Contains(lower, from) {
			add(strings.ReplaceAll(lower, from, to), domain.OriginTranslation)
		}
		if strings.Contains(lower, to) {
			add(strings.ReplaceAll(lower, to, from), domain.OriginTranslation)
		}
	}

	return variants
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
