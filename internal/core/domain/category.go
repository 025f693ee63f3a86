package domain

import "strings"

// CategoryGeneral is the fallback when no keyword table entry matches.
const CategoryGeneral = "general"

// categoryKeywords maps a category to the keywords that signal it.
// Telegram communities mix Russian and English freely, so both are
// listed. Matching is a deliberate cheap heuristic, isolated here so it
// can be swapped for a learned classifier without touching the
// aggregator or ranker.
var categoryKeywords = map[string][]string{
	"news":          {"news", "новости", "сми", "медиа", "лента"},
	"tech":          {"tech", "технологии", "ит", "программирование", "ai", "разработка"},
	"business":      {"business", "бизнес", "предпринимательство", "стартап", "инвестиции"},
	"education":     {"education", "образование", "курсы", "обучение", "знания"},
	"entertainment": {"entertainment", "развлечения", "юмор", "мемы", "fun"},
	"sport":         {"sport", "спорт", "фитнес", "футбол", "хоккей"},
	"games":         {"games", "игры", "gaming", "геймер", "game"},
	"music":         {"music", "музыка", "песни", "аудио", "sound"},
	"movies":        {"movies", "кино", "фильмы", "сериалы", "cinema"},
	"travel":        {"travel", "путешествия", "туризм", "страны"},
	"food":          {"cooking", "кулинария", "рецепты", "еда", "food"},
	"fashion":       {"fashion", "мода", "стиль", "одежда", "beauty"},
	"auto":          {"auto", "авто", "машины", "cars", "мото"},
	"finance":       {"finance", "финансы", "инвестиции", "деньги", "трейдинг"},
	"health":        {"health", "здоровье", "медицина", "wellness"},
	"psychology":    {"psychology", "психология", "саморазвитие", "мотивация"},
	"politics":      {"politics", "политика", "власть", "выборы"},
	"science":       {"science", "наука", "исследования", "физика", "химия"},
	"crypto":        {"crypto", "криптовалюты", "bitcoin", "блокчейн", "defi"},
	"realestate":    {"realestate", "недвижимость", "жилье", "ипотека"},
}

// Classify assigns a topic category from the title and description
// using case-insensitive keyword matching. Returns CategoryGeneral
// when nothing matches. Deterministic: categories are probed in a
// fixed order so shared keywords always resolve the same way.
func Classify(title, description string) string {
	text := strings.ToLower(title + " " + description)
	for _, category := range categoryOrder {
		for _, keyword := range categoryKeywords[category] {
			if strings.Contains(text, keyword) {
				return category
			}
		}
	}
	return CategoryGeneral
}

// Categories returns the known category names in classification order.
func Categories() []string {
	out := make([]string, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// categoryOrder fixes the probe order for deterministic classification.
var categoryOrder = []string{
	"news", "tech", "business", "education", "entertainment", "sport",
	"games", "music", "movies", "travel", "food", "fashion", "auto",
	"finance", "health", "psychology", "politics", "science", "crypto",
	"realestate",
}
