// Package wordlist provides word list filtering helpers.
package wordlist

import "unicode/utf8"

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// FilterLength keeps words whose rune count lies in [minLen, maxLen].
// A non-positive bound is ignored.
func FilterLength(minLen, maxLen int) FilterFunc {
	return func(word string) bool {
		n := utf8.RuneCountInString(word)
		if n == 0 {
			return false
		}
		if minLen > 0 && n < minLen {
			return false
		}
		if maxLen > 0 && n > maxLen {
			return false
		}
		return true
	}
}

// FilterLowerASCII keeps non-empty words made of a-z only.
func FilterLowerASCII(word string) bool {
	if word == "" {
		return false
	}
	for i := 0; i < len(word); i++ {
		ch := word[i]
		if ch < 'a' || ch > 'z' {
			return false
		}
	}
	return true
}

// Apply returns the words that pass every filter.
func Apply(words []string, filters ...FilterFunc) []string {
	out := make([]string, 0, len(words))
next:
	for _, word := range words {
		for _, keep := range filters {
			if !keep(word) {
				continue next
			}
		}
		out = append(out, word)
	}
	return out
}
