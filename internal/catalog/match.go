package catalog

import (
	"fmt"
	"strings"
)

// DefaultMaxResults applies when a caller passes a non-positive cap.
const DefaultMaxResults = 10

type matcher struct {
	whole  string
	tokens []string
}

func newMatcher(query string) matcher {
	q := strings.ToLower(query)
	return matcher{whole: q, tokens: strings.Fields(q)}
}

func (m matcher) match(it Item) bool {
	title := strings.ToLower(it.Title)
	desc := strings.ToLower(it.Description)
	category := strings.ToLower(it.Category)

	if strings.Contains(title, m.whole) || strings.Contains(desc, m.whole) || strings.Contains(category, m.whole) {
		return true
	}
	for _, tok := range m.tokens {
		if strings.Contains(title, tok) || strings.Contains(desc, tok) {
			return true
		}
	}
	return false
}

// Match reports whether item matches query. An empty query matches everything.
func Match(item Item, query string) bool {
	return newMatcher(query).match(item)
}

// Filter returns up to limit projected matches in catalog order.
func Filter(items []Item, query string, limit int) []Product {
	if limit <= 0 {
		limit = DefaultMaxResults
	}
	m := newMatcher(query)
	out := make([]Product, 0, min(limit, len(items)))
	for _, it := range items {
		if !m.match(it) {
			continue
		}
		out = append(out, it.project())
		if len(out) >= limit {
			break
		}
	}
	return out
}

// Suggestion is the hint shown when a search finds nothing.
func Suggestion(query string) string {
	return fmt.Sprintf("No clothing items found matching '%s'. Try different keywords like 'jacket', 'shirt', 'jewelry', or 'electronics'.", query)
}
