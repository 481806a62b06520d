package news

import (
	"regexp"
	"strings"
)

// Keyword tables are data, not code: both the categorizer and the scorer take
// them through their constructors so deployments can tune coverage without
// touching match logic. The defaults below mirror the feeds we actually pull,
// so most entries exist in a Latin and a Cyrillic variant.

// Rule binds one category to its keyword set. Rules are evaluated in slice
// order and the first match wins, so a story mentioning both "gpt" and
// "выборы" lands in ai, not politics.
type Rule struct {
	Category Category
	Keywords []string
}

// DefaultRules returns the category keyword tables in precedence order.
func DefaultRules() []Rule {
	return []Rule{
		{CategoryAI, []string{
			"ai", "ии", "gpt", "chatgpt", "openai", "llm",
			"artificial intelligence", "искусственный интеллект",
			"нейросет", "нейронная сеть", "machine learning",
			"машинное обучение", "deepmind", "anthropic", "copilot",
		}},
		{CategoryPolitics, []string{
			"election", "выборы", "parliament", "парламент", "president",
			"президент", "senate", "сенат", "congress", "конгресс",
			"minister", "министр", "госдума", "kremlin", "кремль",
			"white house", "белый дом", "sanctions", "санкции",
			"закон", "законопроект", "democrat", "republican", "оппозиция",
		}},
		{CategoryBusiness, []string{
			"market", "рынок", "stock", "акции", "economy", "экономика",
			"inflation", "инфляция", "банк", "bank", "invest", "инвест",
			"startup", "стартап", "profit", "прибыль", "ipo",
			"курс доллара", "курс рубля", "нефть", "oil price", "биржа",
		}},
		{CategoryConflict, []string{
			"war", "война", "attack", "атака", "missile", "ракета",
			"drone", "дрон", "front", "фронт", "troops", "войска",
			"ceasefire", "перемирие", "обстрел", "наступление",
			"nato", "нато", "weapon", "оружие", "мобилизация",
		}},
		{CategorySociety, []string{
			"school", "школа", "health", "здоровье", "education",
			"образование", "culture", "культура", "protest", "протест",
			"migrant", "мигрант", "police", "полиция", "court", "суд",
			"церковь", "пенсия", "зарплата", "общество",
		}},
	}
}

// WeightedKeyword is one entry of the controversy lexicon. Weights run 1-3;
// they are tuned by hand against real headlines, not derived.
type WeightedKeyword struct {
	Keyword string
	Weight  int
}

// DefaultControversyLexicon returns the provocation keyword weights.
func DefaultControversyLexicon() []WeightedKeyword {
	return []WeightedKeyword{
		{"скандал", 3}, {"scandal", 3},
		{"запрет", 3}, {"ban", 3},
		{"заменит", 3}, {"заменят", 3},
		{"уничтожит", 3}, {"destroy", 3},
		{"крах", 3}, {"collapse", 3},
		{"угроза", 2}, {"threat", 2},
		{"кризис", 2}, {"crisis", 2},
		{"конфликт", 2}, {"провал", 2},
		{"увольнения", 2}, {"layoffs", 2},
		{"обвинил", 2}, {"accused", 2},
		{"gpt", 2}, {"ии", 2},
		{"спор", 1}, {"dispute", 1},
		{"критика", 1}, {"criticism", 1},
		{"против", 1}, {"against", 1},
	}
}

// DefaultEmotionLexicon returns the shock/urgency markers.
func DefaultEmotionLexicon() []string {
	return []string{
		"шок", "shock", "ужас", "horror", "скандал", "scandal",
		"катастрофа", "catastrophe", "сенсация", "sensation",
		"срочно", "urgent", "breaking",
	}
}

// matcher evaluates one keyword set against lowercased text. Phrases match
// as substrings; short tokens (3 runes or fewer) require word boundaries so
// "ai" does not fire inside "said" and "ии" inside "линии"; longer single
// words match as substrings to cover Russian inflections.
type matcher struct {
	phrases []string
	words   []string
	short   []*regexp.Regexp
}

func newMatcher(keywords []string) *matcher {
	m := &matcher{}
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		switch {
		case strings.Contains(k, " "):
			m.phrases = append(m.phrases, k)
		case len([]rune(k)) <= 3:
			// \b is ASCII-only in Go regexp, which breaks Cyrillic tokens,
			// so boundaries are spelled out as non-letter/non-digit.
			re := regexp.MustCompile(`(^|[^\p{L}\p{N}])` + regexp.QuoteMeta(k) + `($|[^\p{L}\p{N}])`)
			m.short = append(m.short, re)
		default:
			m.words = append(m.words, k)
		}
	}
	return m
}

// match reports whether any keyword occurs in text (already lowercased).
func (m *matcher) match(text string) bool {
	for _, p := range m.phrases {
		if strings.Contains(text, p) {
			return true
		}
	}
	for _, w := range m.words {
		if strings.Contains(text, w) {
			return true
		}
	}
	for _, re := range m.short {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
