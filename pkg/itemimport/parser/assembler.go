package parser

import (
	"strings"

	"github.com/kirodsllc/ctc-itemimport/pkg/itemimport/models"
)

// Keys written when a multi-line part number cell is split.
const (
	keyPartNo   = "Part No"
	keySSPartNo = "SS Part No"
	keyOrigin   = "Origin"
)

var (
	masterCandidateLabels = []string{"part no", "part number", "master part no", "master part number"}
	variantLabels         = []string{"ss part no", "ss part number", "ss part"}
)

// Assembly is the result of grouping a sheet's data rows into items.
type Assembly struct {
	Items []models.RawItem
	// Skipped counts non-empty rows that belonged to no item.
	Skipped int
}

// AssembleItems walks the rows after the header and groups them into items.
// A row with a valid part number starts a new item; other non-empty rows
// continue the current one.
func AssembleItems(ws *models.Worksheet, header Header) Assembly {
	var (
		result  Assembly
		group   []*models.Record
		startAt int
	)

	flush := func() {
		if len(group) == 0 {
			return
		}
		merged := models.NewRecord()
		for _, rec := range group {
			merged.Merge(rec)
		}
		result.Items = append(result.Items, models.RawItem{
			Row:    startAt,
			Fields: merged,
			Models: FitModels(merged),
		})
		group = nil
	}

	cols := header.Columns()
	for r := header.Row + 1; r <= ws.RowCount(); r++ {
		rec := buildRowRecord(ws, r, header.Labels, cols)
		candidate := masterCandidate(rec)

		if startsItem(candidate) {
			flush()
			group = []*models.Record{rec}
			startAt = r
			continue
		}

		if !rec.HasData() {
			continue
		}

		// Repeated header rows would overwrite the part number on merge.
		if isHeaderEcho(candidate) {
			result.Skipped++
			continue
		}

		if len(group) > 0 {
			group = append(group, rec)
			continue
		}

		if orphanPartNumber(rec) != "" {
			result.Items = append(result.Items, models.RawItem{
				Row:    r,
				Fields: rec,
				Models: FitModels(rec),
			})
			continue
		}
		result.Skipped++
	}
	flush()

	return result
}

// buildRowRecord maps one row's cells onto their header labels.
func buildRowRecord(ws *models.Worksheet, row int, labels map[int]string, cols []int) *models.Record {
	rec := models.NewRecord()
	for _, c := range cols {
		label := labels[c]
		value := NormalizeCell(ws.Cell(row, c))
		if strings.Contains(value, "\n") {
			value = splitMultiline(rec, label, value)
		}
		rec.Put(label, value)

		// Combined headers such as "Part No. SS Part No. Origin" hold
		// the master part number.
		if folded := NormalizeLabel(label); folded != "part no" && strings.HasPrefix(folded, "part no") {
			rec.Put(keyPartNo, value)
		}
	}
	return rec
}

// isPartLabel reports whether a header labels the master part number
// column, alone or combined with other captions.
func isPartLabel(label string) bool {
	folded := NormalizeLabel(label)
	return strings.HasPrefix(folded, "part no") || strings.HasPrefix(folded, "master part")
}

// splitMultiline resolves a cell holding several lines of text.
// Part number cells may also fill Part No, SS Part No and Origin.
func splitMultiline(rec *models.Record, label, value string) string {
	lower := strings.ToLower(label)
	lines := splitLines(value)

	switch {
	case isPartLabel(label):
		var parts []string
		for _, line := range lines {
			if IsOriginToken(line) {
				rec.Put(keyOrigin, strings.ToUpper(line))
				continue
			}
			if isPartNumberLine(line) {
				parts = append(parts, line)
			}
		}
		if len(parts) > 0 {
			rec.Put(keyPartNo, parts[0])
			ss := parts[0]
			if len(parts) > 1 {
				ss = parts[1]
			}
			rec.Put(keySSPartNo, ss)
			return parts[0]
		}
		for _, line := range lines {
			l := strings.ToLower(line)
			if line != "-" && !containsAny(l, "part no", "origin", "desc") {
				return line
			}
		}
		if len(lines) > 0 {
			return lines[0]
		}
		return ""

	case containsAny(lower, "desc", "application", "appl"):
		return strings.Join(meaningfulLines(lines), " ")

	default:
		if m := meaningfulLines(lines); len(m) > 0 {
			return m[0]
		}
		return ""
	}
}

// isPartNumberLine reports whether one line of a part number cell is a
// part number rather than a label echo or origin code.
func isPartNumberLine(line string) bool {
	lower := strings.ToLower(line)
	return IsPartNumber(line) &&
		!containsAny(lower, "part no", "origin") &&
		!IsOriginToken(line) &&
		line != "-" &&
		len(line) <= maxPartNoLen
}

// meaningfulLines drops lines that repeat sub-header captions.
func meaningfulLines(lines []string) []string {
	var out []string
	for _, line := range lines {
		if !containsAny(strings.ToLower(line), "desc. appl.", "grade", "ord.lvl", "wheight") {
			out = append(out, line)
		}
	}
	return out
}

// masterCandidate returns the value that decides whether a row starts an item.
func masterCandidate(rec *models.Record) string {
	return lookup(rec, masterCandidateLabels...)
}

// isHeaderEcho reports whether a part number cell repeats header text.
func isHeaderEcho(v string) bool {
	lower := strings.ToLower(strings.TrimSpace(v))
	if containsAny(lower, "ss part", "origin") {
		return true
	}
	if lower == "part no" || lower == "part no." {
		return true
	}
	return len(v) > maxPartNoLen && strings.Contains(v, "\n")
}

// startsItem reports whether a master part number candidate opens a new item.
func startsItem(v string) bool {
	if v == "" || isHeaderEcho(v) {
		return false
	}
	if !IsPartNumber(stripSpaces(v)) {
		return false
	}
	return !containsAny(strings.ToLower(v), "desc", "grade", "model")
}

// orphanPartNumber looks for a part number in a row that has no open item.
func orphanPartNumber(rec *models.Record) string {
	if ss := lookup(rec, variantLabels...); ss != "" {
		lower := strings.ToLower(ss)
		if IsPartNumber(stripSpaces(ss)) && !containsAny(lower, "part no", "desc") {
			return ss
		}
	}
	for _, k := range rec.Keys() {
		if containsAny(strings.ToLower(k), "part no", "desc", "grade", "model", "origin", "cost", "price") {
			continue
		}
		v := rec.Value(k)
		if v != "" && IsPartNumber(stripSpaces(v)) && len(v) <= maxPartNoLen {
			return v
		}
	}
	return ""
}

// lookup returns the first non-empty value whose folded label equals one
// of aliases, trying aliases in order.
func lookup(rec *models.Record, aliases ...string) string {
	keys := rec.Keys()
	folded := make([]string, len(keys))
	for i, k := range keys {
		folded[i] = NormalizeLabel(k)
	}
	for _, alias := range aliases {
		for i, label := range folded {
			if label != alias {
				continue
			}
			if v := strings.TrimSpace(rec.Value(keys[i])); v != "" {
				return v
			}
		}
	}
	return ""
}
