package util

import "strings"

// SplitFields splits a separated list and calls fn with each
// non-blank, trimmed item.
func SplitFields(s string, sep string, fn func(string)) {
	for len(s) != 0 {
		item := s
		if m := strings.Index(s, sep); m < 0 {
			s = ""
		} else {
			item, s = s[:m], s[m+len(sep):]
		}

		if item = strings.TrimSpace(item); item != "" {
			fn(item)
		}
	}
}
