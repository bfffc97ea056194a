package parser

import (
	"regexp"
	"strings"

	"github.com/kirodsllc/ctc-itemimport/pkg/itemimport/models"
)

// FallbackParams holds parameters for positional reading.
type FallbackParams struct {
	// MinRows is the row count a sheet must exceed to be read positionally.
	MinRows int
	// MaxRows is the number of data rows read after the header.
	MaxRows int
	// MaxCols is the number of leading columns read.
	MaxCols int
}

// DefaultFallbackParams returns default positional reading parameters.
func DefaultFallbackParams() FallbackParams {
	return FallbackParams{MinRows: 5, MaxRows: 50, MaxCols: 20}
}

// positionalColumn maps a canonical label to its column, with an alternate
// column used when the first is empty.
type positionalColumn struct {
	label  string
	col    int
	altCol int
}

// positionalLayout is the fixed column convention of the supplier export.
var positionalLayout = []positionalColumn{
	{"Origin", 3, 0},
	{"Description", 4, 5},
	{"Application", 5, 6},
	{"Grade", 6, 7},
	{"Order Level", 7, 8},
	{"Weight", 8, 9},
	{"Main Category", 9, 10},
	{"Sub Category", 10, 11},
	{"Size", 11, 12},
	{"Brand", 12, 13},
	{"Cost", 13, 14},
	{"Price A", 14, 15},
	{"Price B", 15, 16},
	{"Model", 16, 17},
	{"Quantity", 17, 18},
}

var alnumRun = regexp.MustCompile(`[A-Za-z0-9]{3,}`)

// ShouldFallback reports whether a sheet qualifies for positional reading.
func ShouldFallback(ws *models.Worksheet, itemCount int, params FallbackParams) bool {
	return itemCount == 0 && ws.RowCount() > params.MinRows
}

// ReadPositional reads items by fixed column position, ignoring header
// labels. Records are keyed by canonical labels so Canonicalize applies.
func ReadPositional(ws *models.Worksheet, headerRow int, params FallbackParams) []models.RawItem {
	var items []models.RawItem

	maxCol := min(params.MaxCols, ws.ColCount())
	last := min(headerRow+params.MaxRows, ws.RowCount())
	for r := headerRow + 1; r <= last; r++ {
		cols := make(map[int]string, maxCol)
		var texts []string
		for c := 1; c <= maxCol; c++ {
			if v := NormalizeCell(ws.Cell(r, c)); v != "" {
				cols[c] = v
				texts = append(texts, v)
			}
		}
		if len(cols) == 0 {
			continue
		}

		joined := strings.Join(texts, " ")
		if isHeaderLikeRow(joined) || !alnumRun.MatchString(joined) {
			continue
		}

		partNo := positionalPartNo(cols)
		if partNo == "" {
			continue
		}

		rec := models.NewRecord()
		rec.Put(keyPartNo, partNo)
		rec.Put("Master Part No", partNo)
		for _, pc := range positionalLayout {
			v := cols[pc.col]
			if v == "" && pc.altCol > 0 {
				v = cols[pc.altCol]
			}
			rec.Put(pc.label, v)
		}

		items = append(items, models.RawItem{Row: r, Fields: rec, Models: FitModels(rec)})
	}

	return items
}

// isHeaderLikeRow reports whether a row's joined text repeats the header.
func isHeaderLikeRow(joined string) bool {
	lower := strings.ToLower(joined)
	return strings.Contains(lower, "part no") &&
		containsAny(lower, "ss part", "origin", "desc. appl.", "models cons.qty")
}

// positionalPartNo takes the part number from column 1, or column 2 when
// column 1 is empty.
func positionalPartNo(cols map[int]string) string {
	v := cols[1]
	if v == "" {
		v = cols[2]
	}
	if strings.Contains(v, "\n") {
		picked := ""
		for _, line := range splitLines(v) {
			if IsPartNumber(line) {
				picked = line
				break
			}
		}
		v = picked
	}
	v = strings.TrimSpace(v)
	if v == "" || len(v) > maxPartNoLen || !IsPartNumber(v) {
		return ""
	}
	if containsAny(strings.ToLower(v), "part no", "desc") {
		return ""
	}
	return v
}
