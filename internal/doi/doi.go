// Package doi handles DOI normalization, validation, and extraction.
package doi

import (
	"regexp"
	"strings"
)

// DOI pattern: 10.XXXX/... where XXXX is 4-9 digits.
var doiPattern = regexp.MustCompile(`10\.\d{4,9}/[^\s<>"{}|\\^~\[\]` + "`" + `]+`)

// Normalize strips URL prefixes and a leading "doi:" label, trims
// whitespace, and lowercases the result. Returns "" for empty input.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "https://doi.org/")
	s = strings.TrimPrefix(s, "http://doi.org/")
	s = strings.TrimPrefix(s, "https://dx.doi.org/")
	s = strings.TrimPrefix(s, "http://dx.doi.org/")
	if len(s) >= 4 && strings.EqualFold(s[:4], "doi:") {
		s = s[4:]
	}
	return strings.ToLower(strings.TrimSpace(s))
}

// Valid reports whether a DOI is syntactically plausible: registry prefix
// "10.<digits>" and a non-empty suffix after the slash.
func Valid(d string) bool {
	if !strings.HasPrefix(d, "10.") {
		return false
	}
	slash := strings.Index(d, "/")
	if slash <= 3 || slash >= len(d)-1 {
		return false
	}
	for _, c := range d[3:slash] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// Find extracts the first valid DOI from free text, or "" if none.
func Find(text string) string {
	for _, match := range doiPattern.FindAllString(text, -1) {
		// Trailing punctuation is usually sentence context, not DOI.
		match = strings.TrimRight(match, ".,;:)")
		if Valid(match) {
			return match
		}
	}
	return ""
}
