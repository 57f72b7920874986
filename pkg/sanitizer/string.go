package sanitizer

import (
	"regexp"
	"strings"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var (
	whitespaceRun  = regexp.MustCompile(`\s+`)
	unsafeFilename = regexp.MustCompile(`[^\w.\- ]+`)
)

// NormalizeText collapses internal whitespace runs to single spaces and
// trims the ends.
func NormalizeText(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// Filename reduces a client-supplied filename to a safe charset and a
// bounded length. Empty input falls back to "file".
func Filename(name string) string {
	clean := unsafeFilename.ReplaceAllString(name, "_")
	if len(clean) > 120 {
		clean = clean[:120]
	}
	if clean == "" {
		return "file"
	}
	return clean
}
