package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var textPolicy = bluemonday.StrictPolicy()

// SanitizeText strips all HTML from user supplied content and trims
// surrounding whitespace. Content is stored plain and rendered as text.
func SanitizeText(s string) string {
	return strings.TrimSpace(textPolicy.Sanitize(s))
}

// SanitizeTags sanitizes each tag and drops the ones that end up empty.
func SanitizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if clean := SanitizeText(tag); clean != "" {
			out = append(out, clean)
		}
	}
	return out
}
