package sanitizer

import (
	"regexp"
	"strings"
)

var dataURIPrefix = regexp.MustCompile(`^data:.*?;base64,`)

// NormalizeBase64 strips a leading data-URI prefix and any embedded
// whitespace, leaving the bare base64 payload.
func NormalizeBase64(b64 string) string {
	clean := dataURIPrefix.ReplaceAllString(b64, "")
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, clean)
}

// DecodedBase64Bytes computes the decoded size of a normalized base64
// string without decoding it.
func DecodedBase64Bytes(b64 string) int {
	n := len(b64)
	if n == 0 {
		return 0
	}
	padding := 0
	if strings.HasSuffix(b64, "==") {
		padding = 2
	} else if strings.HasSuffix(b64, "=") {
		padding = 1
	}
	return n*3/4 - padding
}
