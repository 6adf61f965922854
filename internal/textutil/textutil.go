// Package textutil holds the small text derivations the blog service applies
// to post bodies: excerpt trimming and HTML stripping for meta descriptions.
package textutil

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// runeCut backs a byte cut index off to the nearest rune start so a slice at
// that index never splits a multi-byte rune.
func runeCut(s string, n int) int {
	if n >= len(s) {
		return len(s)
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return n
}

// SmartTrim shortens s to at most length bytes without cutting through a
// delimiter-separated word or a multi-byte rune, then appends appendix.
// Strings already within the limit come back unchanged.
func SmartTrim(s string, length int, delim, appendix string) string {
	if len(s) <= length {
		return s
	}
	trimmed := s[:runeCut(s, length+len(delim))]
	if idx := strings.LastIndex(trimmed, delim); idx >= 0 {
		trimmed = trimmed[:idx]
	}
	if trimmed == "" {
		return trimmed
	}
	return trimmed + appendix
}

// StripHTML removes markup tags, leaving the text content. Good enough for
// meta descriptions; it is not a sanitizer.
func StripHTML(s string) string {
	return strings.TrimSpace(tagPattern.ReplaceAllString(s, ""))
}

// Truncate cuts s to at most n bytes on a rune boundary.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:runeCut(s, n)]
}
