package parser

import (
	"github.com/kirodsllc/ctc-itemimport/pkg/itemimport/models"
)

// sheetOf builds an in-memory worksheet whose cells carry display text only.
func sheetOf(rows [][]string) *models.Worksheet {
	ws := &models.Worksheet{Name: "Sheet1", Rows: make([][]models.Cell, len(rows))}
	for r, row := range rows {
		cells := make([]models.Cell, len(row))
		for c, text := range row {
			cells[c] = models.Cell{R: r + 1, C: c + 1, Text: text}
		}
		ws.Rows[r] = cells
	}
	return ws
}

// recordOf builds a record from alternating key, value arguments.
func recordOf(kv ...string) *models.Record {
	rec := models.NewRecord()
	for i := 0; i+1 < len(kv); i += 2 {
		rec.Put(kv[i], kv[i+1])
	}
	return rec
}

func fitmentsEqual(a, b []models.ModelFitment) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
