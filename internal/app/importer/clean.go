package importer

import (
	"regexp"
	"strings"
)

var (
	htmlTagRe    = regexp.MustCompile(`<[^>]*>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// CleanText removes HTML tags from s, collapses whitespace runs into a
// single space, and trims. Source editions carry presentational markup
// (<b>, <i>, <br>, <small>) that must not reach the store.
func CleanText(s string) string {
	if s == "" {
		return ""
	}

	s = htmlTagRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	return s
}
