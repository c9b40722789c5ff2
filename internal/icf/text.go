package icf

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// lower applies full Unicode lowercasing, including special casing rules
// such as final sigma.
func lower(s string) string {
	// Casers are not safe for concurrent use so build one per call
	return cases.Lower(language.Und).String(s)
}

// isSpace reports whether r is whitespace or a line terminator. It differs from
// unicode.IsSpace on U+0085 (not included) and U+FEFF (included).
func isSpace(r rune) bool {
	if r == '\uFEFF' {
		return true
	}
	return r != '\u0085' && unicode.IsSpace(r)
}

// stripSpace removes every whitespace character, including internal ones.
func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if isSpace(r) {
			return -1
		}
		return r
	}, s)
}

// normalize lowercases and removes all whitespace.
func normalize(s string) string {
	return stripSpace(lower(s))
}

// utf16Len counts UTF-16 code units, which is how keyword length is measured
// when ordering keywords.
func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// containsAny reports whether s contains any of the terms.
func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}

// uniqueStrings removes duplicates keeping the first occurrence of each value.
func uniqueStrings(values []string) []string {
	return removeDuplicates(values, func(v string) string {
		return v
	})
}

// Generic de-duplication based on a key.
func removeDuplicates[T any, K comparable](slice []T, keyFunc func(T) K) []T {
	seen := make(map[K]bool)
	result := []T{}

	for _, item := range slice {
		key := keyFunc(item)
		if !seen[key] {
			seen[key] = true
			result = append(result, item)
		}
	}

	return result
}
