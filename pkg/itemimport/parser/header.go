package parser

import (
	"slices"
	"strings"

	"github.com/kirodsllc/ctc-itemimport/pkg/itemimport/models"
)

// HeaderParams holds parameters for header row detection.
type HeaderParams struct {
	Keywords []string
	ScanRows int
	MinHits  int
	// MaxLabelLen is the longest text accepted as a column label.
	MaxLabelLen int
}

// DefaultHeaderParams returns default header detection parameters.
func DefaultHeaderParams() HeaderParams {
	return HeaderParams{
		Keywords:    []string{"part no", "master part", "origin", "description", "application", "grade"},
		ScanRows:    20,
		MinHits:     3,
		MaxLabelLen: 100,
	}
}

// Header is the located header row of a sheet.
type Header struct {
	// Row is the 1-based header row index.
	Row int
	// Labels maps column index to the literal header label.
	Labels map[int]string
	// Hits is the number of distinct keywords matched in Row.
	Hits int
	// Found is false when no row met the threshold and row 1 was used.
	Found bool
}

// Columns returns the labelled column indices in ascending order.
func (h Header) Columns() []int {
	cols := make([]int, 0, len(h.Labels))
	for c := range h.Labels {
		cols = append(cols, c)
	}
	slices.Sort(cols)
	return cols
}

// LocateHeader finds the header row by keyword density.
// The first row among the first ScanRows with at least MinHits distinct
// keywords wins; otherwise row 1 is used.
func LocateHeader(ws *models.Worksheet, params HeaderParams) Header {
	header := Header{Row: 1}

	limit := min(params.ScanRows, ws.RowCount())
	for r := 1; r <= limit; r++ {
		hits := countKeywordHits(ws, r, params.Keywords)
		if hits >= params.MinHits {
			header.Row = r
			header.Hits = hits
			header.Found = true
			break
		}
	}

	header.Labels = headerLabels(ws, header.Row, params.MaxLabelLen)
	return header
}

// countKeywordHits counts distinct keywords found in any cell of a row.
func countKeywordHits(ws *models.Worksheet, row int, keywords []string) int {
	if row > ws.RowCount() {
		return 0
	}

	var texts []string
	for _, cell := range ws.Rows[row-1] {
		if text := NormalizeCell(cell); text != "" {
			texts = append(texts, strings.ToLower(text))
		}
	}

	hits := 0
	for _, kw := range keywords {
		for _, text := range texts {
			if strings.Contains(text, kw) {
				hits++
				break
			}
		}
	}
	return hits
}

// headerLabels builds the column to label map for a header row.
func headerLabels(ws *models.Worksheet, row, maxLen int) map[int]string {
	labels := make(map[int]string)
	if row > ws.RowCount() {
		return labels
	}
	for colIdx, cell := range ws.Rows[row-1] {
		label := NormalizeCell(cell)
		if isPlausibleLabel(label, maxLen) {
			labels[colIdx+1] = label
		}
	}
	return labels
}

// isPlausibleLabel rejects empty, placeholder and data-sized labels.
func isPlausibleLabel(label string, maxLen int) bool {
	if label == "" || len(label) > maxLen {
		return false
	}
	lower := strings.ToLower(label)
	if lower == "undefined" || lower == "null" {
		return false
	}
	return !strings.HasPrefix(label, "[")
}
