package parser

import (
	"regexp"
	"strings"
)

var (
	partNumberPattern = regexp.MustCompile(`^[A-Za-z0-9-]{3,}$`)
	partNumberToken   = regexp.MustCompile(`[A-Za-z0-9-]{3,}`)
	modelCodePattern  = regexp.MustCompile(`^[A-Za-z0-9]+(?:-[A-Za-z0-9]+)?$`)
	digitsPattern     = regexp.MustCompile(`^\d+$`)
	leadingIntPattern = regexp.MustCompile(`^\s*(\d+)`)
	whitespace        = regexp.MustCompile(`\s+`)
)

// maxPartNoLen is the longest value accepted as a part number.
const maxPartNoLen = 20

// originTokens are country/source codes that share cells with part numbers.
var originTokens = map[string]bool{
	"PRC": true, "CHN": true, "USA": true, "ITAL": true, "JAP": true,
	"JPN": true, "GER": true, "IND": true, "TURK": true, "TAIW": true,
	"CAN": true, "BRAZ": true, "UK": true, "LOC": true, "LOCAL": true,
	"IMPORT": true, "PPR": true,
}

// IsOriginToken reports whether s is a known origin code.
func IsOriginToken(s string) bool {
	return originTokens[strings.ToUpper(strings.TrimSpace(s))]
}

// IsPartNumber reports whether s has the shape of a part number.
func IsPartNumber(s string) bool {
	return partNumberPattern.MatchString(s)
}

// IsModelCode reports whether s has the shape of a model code:
// 2-10 alphanumerics with at most one internal hyphen, not all digits.
func IsModelCode(s string) bool {
	if len(s) < 2 || len(s) > 10 {
		return false
	}
	return modelCodePattern.MatchString(s) && !digitsPattern.MatchString(s)
}

// NormalizeLabel folds a header label for alias comparison:
// lowercase, single spaces, no trailing '.' or ':'.
func NormalizeLabel(label string) string {
	s := strings.ToLower(label)
	s = whitespace.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	return strings.TrimRight(s, ".: ")
}

// splitLines splits cell text into trimmed, non-empty lines.
func splitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// firstLine returns the first non-empty line of s.
func firstLine(s string) string {
	if lines := splitLines(s); len(lines) > 0 {
		return lines[0]
	}
	return ""
}

// containsAny reports whether s contains any of subs.
func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// stripSpaces removes all whitespace from s.
func stripSpaces(s string) string {
	return whitespace.ReplaceAllString(s, "")
}

// leadingInt parses the leading digits of s.
func leadingInt(s string) (int, bool) {
	m := leadingIntPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n := 0
	for _, ch := range m[1] {
		n = n*10 + int(ch-'0')
		if n > 1_000_000 {
			return n, true
		}
	}
	return n, true
}

// strictInt parses s when it consists only of digits.
func strictInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if !digitsPattern.MatchString(s) {
		return 0, false
	}
	return leadingInt(s)
}
