package models

// Worksheet is a dense, read-only grid of cells for one sheet.
// Rows[i][j] holds the cell at row i+1, column j+1.
type Worksheet struct {
	// Name is the sheet name.
	Name string
	// Rows contains the sheet cells, row-major.
	Rows [][]Cell
}

// RowCount returns the number of rows in the sheet.
func (w *Worksheet) RowCount() int {
	return len(w.Rows)
}

// ColCount returns the width of the widest row.
func (w *Worksheet) ColCount() int {
	n := 0
	for _, row := range w.Rows {
		n = max(n, len(row))
	}
	return n
}

// Cell returns the cell at the given 1-based position.
// Positions outside the grid yield an empty cell.
func (w *Worksheet) Cell(r, c int) Cell {
	if r < 1 || r > len(w.Rows) {
		return Cell{R: r, C: c}
	}
	row := w.Rows[r-1]
	if c < 1 || c > len(row) {
		return Cell{R: r, C: c}
	}
	return row[c-1]
}

// SheetData represents the import result for a single sheet.
type SheetData struct {
	// Name is the sheet name.
	Name string `json:"name"`
	// HeaderRow is the 1-based header row index.
	HeaderRow int `json:"header_row"`
	// HeaderFound reports whether the header row met the keyword threshold.
	HeaderFound bool `json:"header_found"`
	// Headers maps column index (string) to header label.
	Headers map[string]string `json:"headers,omitempty"`
	// Items contains canonical items recovered from the sheet.
	Items []CanonicalItem `json:"items"`
	// Skipped counts data rows that could not be attached to any item.
	Skipped int `json:"skipped"`
	// UsedFallback reports whether positional column mapping was used.
	UsedFallback bool `json:"used_fallback,omitempty"`
	// Error holds the load error for a sheet that could not be read.
	Error string `json:"error,omitempty"`
}
