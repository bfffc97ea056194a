package importer

import "strings"

// originRule maps any of its fragments to a catalog origin value.
type originRule struct {
	value     string
	fragments []string
}

// originRules are tried in order; the first matching fragment wins.
var originRules = []originRule{
	{"local", []string{"local", "loc"}},
	{"import", []string{"import", "imp"}},
	{"china", []string{"china", "chn", "prc"}},
	{"japan", []string{"japan", "jap", "jpn"}},
	{"germany", []string{"germany", "ger"}},
	{"usa", []string{"usa", "united states"}},
	{"ppr", []string{"ppr"}},
}

// NormalizeOrigin maps a sheet origin onto the catalog's origin values.
// Unrecognized origins pass through lowercased.
func NormalizeOrigin(origin string) string {
	o := strings.ToLower(strings.TrimSpace(origin))
	if o == "" {
		return ""
	}
	for _, rule := range originRules {
		for _, frag := range rule.fragments {
			if strings.Contains(o, frag) {
				return rule.value
			}
		}
	}
	return o
}

// NormalizeGrade maps a sheet grade onto A-D, accepting forms such as
// "grade b" or "C-Grade". Other values pass through uppercased.
func NormalizeGrade(grade string) string {
	g := strings.ToUpper(strings.TrimSpace(grade))
	letter := strings.Trim(strings.ReplaceAll(g, "GRADE", ""), " -.:")
	switch letter {
	case "A", "B", "C", "D":
		return letter
	}
	return g
}
