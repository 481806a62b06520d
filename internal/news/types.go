package news

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
	"unicode"
)

// Category is the closed topic taxonomy. Every item gets exactly one.
type Category string

const (
	CategoryAI       Category = "ai"
	CategoryPolitics Category = "politics"
	CategoryBusiness Category = "business"
	CategoryConflict Category = "conflict"
	CategorySociety  Category = "society"
	CategoryGeneral  Category = "general"
)

// Categories returns the taxonomy in evaluation precedence order.
// General is the fallback and carries no keywords.
func Categories() []Category {
	return []Category{
		CategoryAI,
		CategoryPolitics,
		CategoryBusiness,
		CategoryConflict,
		CategorySociety,
		CategoryGeneral,
	}
}

// ParseCategory validates a caller-supplied category string.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories() {
		if c == known {
			return c, true
		}
	}
	return "", false
}

// Item is the durable unit served to callers.
type Item struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Summary     string           `json:"summary"`
	Link        string           `json:"link"`
	SourceName  string           `json:"source"`
	Published   time.Time        `json:"published"`
	Category    Category         `json:"category"`
	Language    string           `json:"language"`
	Controversy ControversyScore `json:"controversy"`
	IsHot       bool             `json:"is_hot"`
}

// ItemID derives a stable identifier so the same story hashes to the same
// ID across fetches. Prefers the normalized link; falls back to title+source
// for feeds that publish items without links.
func ItemID(link, title, sourceName string) string {
	key := normalizeLink(link)
	if key == "" {
		key = strings.ToLower(strings.TrimSpace(title)) + "|" + strings.ToLower(sourceName)
	}
	h := sha256.New()
	h.Write([]byte(key))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// DetectLanguage guesses ru/en from the script of the text. Sources are
// bilingual and feed entries carry no per-item language metadata.
func DetectLanguage(text string) string {
	var cyrillic, letters int
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
			if unicode.Is(unicode.Cyrillic, r) {
				cyrillic++
			}
		}
	}
	if letters > 0 && cyrillic*2 > letters {
		return "ru"
	}
	return "en"
}
