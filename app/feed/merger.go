package feed

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// MaxArticles caps the merged snapshot size.
const MaxArticles = 150

// Merge concatenates per-feed article lists, orders them newest-first, drops
// later occurrences of the same normalized title, and caps the result at
// MaxArticles. Sort-then-dedupe means the newest copy of a duplicated title
// survives.
func Merge(lists [][]Article) []Article {
	var merged []Article
	for _, list := range lists {
		merged = append(merged, list...)
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].PublishedAt.After(merged[j].PublishedAt)
	})

	seen := make(map[string]bool, len(merged))
	unique := make([]Article, 0, len(merged))
	for _, article := range merged {
		key := titleKey(article.Title)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, article)
	}

	if len(unique) > MaxArticles {
		unique = unique[:MaxArticles]
	}
	return unique
}

// titleKey lower-cases the title, decomposes it with NFKD so accented letters
// reduce to their ASCII base, and keeps only ASCII letters and digits.
func titleKey(title string) string {
	decomposed := norm.NFKD.String(strings.ToLower(title))

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
