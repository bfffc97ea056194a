package parser

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	unitWords     = regexp.MustCompile(`[A-Za-z]+\.?`)
	nonNumeric    = regexp.MustCompile(`[^\d.\-]`)
	numericPrefix = regexp.MustCompile(`^-?(?:\d+(?:\.\d*)?|\.\d+)`)
	anyDigit      = regexp.MustCompile(`\d`)
)

// ParseNumeric converts a sheet value into a number.
// The second return is false when the value is absent: empty, "-",
// "n/a", market-price placeholders, or text with no numeric content.
// Zero is a valid result.
func ParseNumeric(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	switch lower {
	case "", "-", "n/a", "na", "mkt.price", "market price":
		return 0, false
	}
	if containsAny(lower, "mkt", "market") && !anyDigit.MatchString(lower) {
		return 0, false
	}

	// Drop currency and unit words ("Rs.", "PKR", "kg") before filtering
	// so their dots are not read as decimal points.
	s = unitWords.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, ",", "")
	s = nonNumeric.ReplaceAllString(s, "")
	s = keepFirstDot(s)

	m := numericPrefix.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// keepFirstDot removes every '.' after the first.
func keepFirstDot(s string) string {
	i := strings.IndexByte(s, '.')
	if i < 0 {
		return s
	}
	return s[:i+1] + strings.ReplaceAll(s[i+1:], ".", "")
}

// numberPtr parses s and returns nil when absent.
func numberPtr(s string) *float64 {
	v, ok := ParseNumeric(s)
	if !ok {
		return nil
	}
	return &v
}
