package news

import "strings"

// Categorizer assigns exactly one category to an item's text using ordered
// keyword rules. It holds no mutable state, so one instance is safe to share
// across goroutines.
type Categorizer struct {
	rules []Rule
	match []*matcher
}

// NewCategorizer builds a categorizer from the given rules; nil means
// DefaultRules. Rule order is the tie-break: the first rule with a keyword
// hit wins, and nothing after it is consulted.
func NewCategorizer(rules []Rule) *Categorizer {
	if rules == nil {
		rules = DefaultRules()
	}
	c := &Categorizer{rules: rules}
	for _, r := range rules {
		c.match = append(c.match, newMatcher(r.Keywords))
	}
	return c
}

// Categorize maps text to a category. Pure: same text, same answer.
func (c *Categorizer) Categorize(text string) Category {
	text = strings.ToLower(text)
	for i, r := range c.rules {
		if c.match[i].match(text) {
			return r.Category
		}
	}
	return CategoryGeneral
}
