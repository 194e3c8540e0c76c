package dataprocessing

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Precompiled once; the validators run per cell on every row.
var (
	nonAlnumSpaceRegex = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
	whitespaceRunRegex = regexp.MustCompile(`\s+`)
)

// latinRatioThreshold is the share of non-whitespace characters that must be
// ASCII letters for a value to count as English text.
const latinRatioThreshold = 0.70

// IsEnglishText reports whether the value is mostly Latin script: the ratio
// of ASCII letters to non-whitespace characters must exceed 0.70. Empty and
// all-whitespace values are not English. This is a cheap proxy for language
// detection, not a real one; "HTTPS" and "12345" style edge cases follow the
// ratio, nothing else.
func IsEnglishText(value string) bool {
	var latin, total int
	for _, r := range value {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			latin++
		}
	}
	if total == 0 {
		return false
	}
	return float64(latin)/float64(total) > latinRatioThreshold
}

// IsURL reports whether the trimmed value starts with "http:" or "https:".
// The scheme check is case-sensitive: "HTTPS://x" is not recognized. That
// mirrors the upstream report cleaner's behavior and is kept as-is.
func IsURL(value string) bool {
	trimmed := strings.TrimSpace(value)
	return strings.HasPrefix(trimmed, "http:") || strings.HasPrefix(trimmed, "https:")
}

// IsHTTPSURL reports whether the trimmed value starts with "https:" exactly.
// Plain http and anything else, including empty values, fail.
func IsHTTPSURL(value string) bool {
	return strings.HasPrefix(strings.TrimSpace(value), "https:")
}

// StripNonAlnumSpace removes every character that is not an ASCII letter,
// digit or whitespace, collapses whitespace runs to single spaces and trims
// the ends. Applying it twice yields the same result.
func StripNonAlnumSpace(value string) string {
	stripped := nonAlnumSpaceRegex.ReplaceAllString(value, "")
	collapsed := whitespaceRunRegex.ReplaceAllString(stripped, " ")
	return strings.TrimSpace(collapsed)
}

// CoerceNumeric parses the trimmed value as a number with an optional leading
// sign and decimal part. The second return value is false for empty values
// and anything strconv rejects; thousands separators are not accepted.
func CoerceNumeric(value string) (float64, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
