package news

import (
	"net/url"
	"strings"
	"unicode"

	"github.com/deusflow/newspulse/internal/rss"
)

// Dedupe collapses items that are the same story within one aggregation
// pass. First occurrence wins. Two keys are checked in order: the normalized
// link (exact story), then the normalized title scoped by bucket
// (near-duplicate coverage of one story by several sources). bucket may be
// nil, which puts every item in one bucket.
//
// Dedupe is idempotent and never reorders survivors.
func Dedupe(items []rss.Item, bucket func(rss.Item) string) []rss.Item {
	seenLinks := make(map[string]struct{}, len(items))
	seenTitles := make(map[string]struct{}, len(items))

	out := make([]rss.Item, 0, len(items))
	for _, it := range items {
		if link := normalizeLink(it.Link); link != "" {
			if _, dup := seenLinks[link]; dup {
				continue
			}
			seenLinks[link] = struct{}{}
		}

		titleKey := normalizeTitle(it.Title)
		if titleKey != "" {
			if bucket != nil {
				titleKey = bucket(it) + "|" + titleKey
			}
			if _, dup := seenTitles[titleKey]; dup {
				continue
			}
			seenTitles[titleKey] = struct{}{}
		}

		out = append(out, it)
	}
	return out
}

// normalizeLink makes links comparable across casing, scheme, query-string
// and trailing-slash variance. Returns "" for unusable links.
func normalizeLink(link string) string {
	link = strings.TrimSpace(link)
	if link == "" {
		return ""
	}
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return strings.TrimSuffix(strings.ToLower(link), "/")
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	path := strings.TrimSuffix(strings.ToLower(u.Path), "/")
	return host + path
}

// normalizeTitle lowercases, strips punctuation and collapses whitespace so
// cosmetic rewording does not defeat duplicate detection.
func normalizeTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
