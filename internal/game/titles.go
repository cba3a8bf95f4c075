package game

import (
	"sort"
	"strings"
	"unicode"
)

// RankSuggestions filters and relevance-sorts candidate titles for an
// autocomplete query: prefix matches first, then earlier match
// position, then shorter titles. Titles starting with a digit are
// dropped unless the query itself starts with one, and one- or
// two-character queries only match title prefixes.
func RankSuggestions(query string, titles []string, limit int) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	queryIsNumber := startsWithDigit(q)

	seen := make(map[string]struct{})
	var matched []string
	for _, title := range titles {
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		lower := strings.ToLower(title)
		if _, dup := seen[lower]; dup {
			continue
		}
		if !strings.Contains(lower, q) {
			continue
		}
		if startsWithDigit(title) && !queryIsNumber {
			continue
		}
		if len(q) <= 2 && !strings.HasPrefix(lower, q) {
			continue
		}
		matched = append(matched, title)
		seen[lower] = struct{}{}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := strings.ToLower(matched[i]), strings.ToLower(matched[j])
		aStarts, bStarts := strings.HasPrefix(a, q), strings.HasPrefix(b, q)
		if aStarts != bStarts {
			return aStarts
		}
		ai, bi := strings.Index(a, q), strings.Index(b, q)
		if ai != bi {
			return ai < bi
		}
		return len(matched[i]) < len(matched[j])
	})

	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched
}

func startsWithDigit(s string) bool {
	for _, r := range s {
		return unicode.IsDigit(r)
	}
	return false
}
