package pathgen

import (
	"path/filepath"
	"strings"
)

// SafePathLen is the maximum length the combined target path may occupy.
const SafePathLen = 256

// MinComponentLen is the floor truncation will not go below for any single
// component.
const MinComponentLen = 10

// Truncate shortens s to at most n runes, preserving a prefix and suffix
// joined by an ellipsis, once s exceeds the budget. n is clamped to
// MinComponentLen.
func Truncate(s string, n int) string {
	if n < MinComponentLen {
		n = MinComponentLen
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	// "…" counts as one rune; split the remaining budget between prefix and
	// suffix, favoring the prefix by one on odd budgets.
	budget := n - 1
	prefixLen := (budget + 1) / 2
	suffixLen := budget - prefixLen
	return string(runes[:prefixLen]) + "…" + string(runes[len(runes)-suffixLen:])
}

// FitPath truncates book, then series, then author (deepest-first) until
// the joined path (root/author[/series]/book) fits within SafePathLen,
// never truncating root.
func FitPath(root, author, series, book string) string {
	build := func(a, s, b string) string {
		parts := []string{root, a}
		if s != "" {
			parts = append(parts, s)
		}
		parts = append(parts, b)
		return filepath.Join(parts...)
	}

	path := build(author, series, book)
	if len(path) <= SafePathLen {
		return path
	}

	overflow := len(path) - SafePathLen

	shrink := func(component string, by int) string {
		if by <= 0 {
			return component
		}
		target := len([]rune(component)) - by
		if target < MinComponentLen {
			target = MinComponentLen
		}
		return Truncate(component, target)
	}

	book = shrink(book, overflow)
	path = build(author, series, book)
	if len(path) <= SafePathLen {
		return path
	}

	overflow = len(path) - SafePathLen
	series = shrink(series, overflow)
	path = build(author, series, book)
	if len(path) <= SafePathLen {
		return path
	}

	overflow = len(path) - SafePathLen
	author = shrink(author, overflow)
	return build(author, series, book)
}

// componentIsEmpty reports whether a sanitised path component is blank
// after trimming, used to decide whether the series level participates in
// the path at all.
func componentIsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}
