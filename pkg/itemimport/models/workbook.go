package models

// WorkbookData represents workbook-level container with per-sheet results.
type WorkbookData struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Sheets lists per-sheet results in workbook order.
	Sheets []SheetData `json:"sheets"`
}

// Items returns the canonical items of every sheet, in sheet order.
func (w *WorkbookData) Items() []CanonicalItem {
	var items []CanonicalItem
	for _, sheet := range w.Sheets {
		items = append(items, sheet.Items...)
	}
	return items
}
