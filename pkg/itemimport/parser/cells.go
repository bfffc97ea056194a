// Package parser turns worksheet cells into item records.
package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kirodsllc/ctc-itemimport/pkg/itemimport/models"
	"github.com/xuri/excelize/v2"
)

// dateLayouts are the layouts excelize uses for raw date cell values.
var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// LoadWorksheet reads a sheet into an in-memory grid.
// Text holds the formatted display value; Value holds the typed raw value
// for non-empty cells.
func LoadWorksheet(f *excelize.File, sheetName string) (*models.Worksheet, error) {
	display, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}
	raw, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	ws := &models.Worksheet{Name: sheetName, Rows: make([][]models.Cell, len(display))}
	for rowIdx, row := range display {
		rowNum := rowIdx + 1 // 1-based row index
		cells := make([]models.Cell, len(row))
		for colIdx, text := range row {
			cells[colIdx] = models.Cell{R: rowNum, C: colIdx + 1, Text: text}

			var rawValue string
			if rowIdx < len(raw) && colIdx < len(raw[rowIdx]) {
				rawValue = raw[rowIdx][colIdx]
			}
			if text == "" && rawValue == "" {
				continue
			}

			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowNum)
			if err != nil {
				continue
			}
			cells[colIdx].Value = readValue(f, sheetName, cellName, rawValue)
		}
		ws.Rows[rowIdx] = cells
	}

	return ws, nil
}

// readValue resolves the typed value of one cell.
func readValue(f *excelize.File, sheetName, cellName, rawValue string) any {
	if formula, err := f.GetCellFormula(sheetName, cellName); err == nil && formula != "" {
		return models.Formula{Expr: formula, Result: rawValue}
	}

	cellType, err := f.GetCellType(sheetName, cellName)
	if err != nil {
		return rawValue
	}

	switch cellType {
	case excelize.CellTypeBool:
		return rawValue == "1" || strings.EqualFold(rawValue, "true")
	case excelize.CellTypeNumber:
		if v, err := strconv.ParseFloat(rawValue, 64); err == nil {
			return v
		}
	case excelize.CellTypeDate:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, rawValue); err == nil {
				return t
			}
		}
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		runs, err := f.GetCellRichText(sheetName, cellName)
		if err == nil && len(runs) > 0 {
			text := make(models.RichText, len(runs))
			for i, run := range runs {
				text[i] = run.Text
			}
			return text
		}
	}
	return rawValue
}

// NormalizeCell returns the best plain-text rendering of a cell.
// Line breaks are kept; surrounding whitespace is trimmed.
func NormalizeCell(c models.Cell) string {
	text := c.Text
	if text == "" {
		text = valueText(c.Value)
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.TrimSpace(text)
}

// valueText renders a raw cell value as text.
func valueText(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case models.RichText:
		return strings.Join(val, "")
	case models.Formula:
		return valueText(val.Result)
	case time.Time:
		return val.Format("2006-01-02")
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case bool:
		return strconv.FormatBool(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
