// Package util contains the small container and slice helpers shared by the
// moray packages. Nothing in here is specific to lexing or parsing; it exists
// because the toolkit leans hard on ordered iteration over maps and on sets
// with deterministic string forms.
package util

import (
	"sort"
)

// OrderedKeys returns the keys of m, sorted. Iteration over a map is not
// deterministic in Go, and nearly every algorithm in this module needs it to
// be, so this gets used a lot.
func OrderedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))

	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// InSlice returns whether s is present in the given slice.
func InSlice[T comparable](s T, slice []T) bool {
	for i := range slice {
		if slice[i] == s {
			return true
		}
	}
	return false
}

// ArticleFor returns the article for the given string. It will be capitalized
// the same as the string. If definite is true, the returned article will be
// "the"; otherwise it will be "a"/"an" as appropriate.
func ArticleFor(s string, definite bool) string {
	sRunes := []rune(s)

	if len(sRunes) < 1 {
		return ""
	}

	leadingUpper := sRunes[0] >= 'A' && sRunes[0] <= 'Z'

	var art string
	if definite {
		art = "the"
		if leadingUpper {
			art = "The"
		}
	} else {
		art = "a"
		if leadingUpper {
			art = "A"
		}

		switch sRunes[0] {
		case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
			art += "n"
		}
	}

	return art
}
