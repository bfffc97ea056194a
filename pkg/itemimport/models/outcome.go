package models

// ItemStatus is the result of submitting one item to the catalog.
type ItemStatus string

const (
	// StatusCreated means the catalog accepted the item.
	StatusCreated ItemStatus = "created"
	// StatusDuplicate means the catalog already holds the part number.
	StatusDuplicate ItemStatus = "duplicate"
	// StatusError means the submission failed for any other reason.
	StatusError ItemStatus = "error"
)

// ItemResult records the outcome of one submission.
type ItemResult struct {
	// Index is the 1-based position of the item in the run.
	Index  int        `json:"index"`
	PartNo string     `json:"part_no"`
	Status ItemStatus `json:"status"`
	// ID is the catalog identifier of a created item.
	ID      string `json:"id,omitempty"`
	Message string `json:"message,omitempty"`
}

// ImportOutcome accumulates the results of one import run.
type ImportOutcome struct {
	RunID string `json:"run_id"`

	Processed  int `json:"processed"`
	Succeeded  int `json:"succeeded"`
	Duplicates int `json:"duplicates"`
	Failed     int `json:"failed"`

	// ModelsImported counts model associations on created items.
	ModelsImported int `json:"models_imported"`
	// PartsWithModels counts created items carrying at least one model.
	PartsWithModels int `json:"parts_with_models"`

	StockMovements   int  `json:"stock_movements"`
	StockFailed      int  `json:"stock_failed"`
	StockUnavailable bool `json:"stock_unavailable,omitempty"`

	// Errors holds bounded error messages in submission order.
	Errors  []string     `json:"errors,omitempty"`
	Results []ItemResult `json:"results,omitempty"`
}

// Record appends an item result and updates the counters.
func (o *ImportOutcome) Record(res ItemResult) {
	o.Processed++
	switch res.Status {
	case StatusCreated:
		o.Succeeded++
	case StatusDuplicate:
		o.Duplicates++
	case StatusError:
		o.Failed++
		o.Errors = append(o.Errors, res.Message)
	}
	o.Results = append(o.Results, res)
}
