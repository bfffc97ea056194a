// Package output serializes extraction results.
package output

import (
	"encoding/json"

	"github.com/kirodsllc/ctc-itemimport/pkg/itemimport/models"
)

// ToJSON serializes a workbook result.
func ToJSON(wb *models.WorkbookData, pretty bool) ([]byte, error) {
	return marshal(wb, pretty)
}

// ItemsToJSON serializes a flat list of canonical items.
func ItemsToJSON(items []models.CanonicalItem, pretty bool) ([]byte, error) {
	if items == nil {
		items = []models.CanonicalItem{}
	}
	return marshal(items, pretty)
}

// OutcomeToJSON serializes an import outcome.
func OutcomeToJSON(o *models.ImportOutcome, pretty bool) ([]byte, error) {
	return marshal(o, pretty)
}

func marshal(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
