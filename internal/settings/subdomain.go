package settings

import (
	"regexp"
	"strings"
)

// MaxSubdomainLen bounds the subdomain input.
const MaxSubdomainLen = 60

var nonWord = regexp.MustCompile(`\W`)

// SanitizeSubdomain replaces every character outside [A-Za-z0-9_] with "-".
// ok is false when the result is too long to accept.
func SanitizeSubdomain(v string) (string, bool) {
	v = nonWord.ReplaceAllString(v, "-")
	if len(strings.TrimSpace(v)) > MaxSubdomainLen {
		return "", false
	}
	return v, true
}
