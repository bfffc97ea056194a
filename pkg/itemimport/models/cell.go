// Package models defines data structures for spreadsheet item import.
package models

// Cell represents a single worksheet cell as read from a workbook.
type Cell struct {
	// R is the row index (1-based).
	R int `json:"r"`
	// C is the column index (1-based).
	C int `json:"c"`
	// Text is the display string rendered by the workbook reader, if any.
	Text string `json:"text,omitempty"`
	// Value is the raw cell value: string, RichText, Formula, time.Time,
	// float64, int64, bool or nil.
	Value any `json:"value,omitempty"`
}

// RichText is a rich-text cell value made of formatted text runs.
type RichText []string

// Formula is a formula cell value with its cached result.
type Formula struct {
	// Expr is the formula expression without the leading '='.
	Expr string `json:"expr"`
	// Result is the cached result value, if the workbook stored one.
	Result any `json:"result,omitempty"`
}
