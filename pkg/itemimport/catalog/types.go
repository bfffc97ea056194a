package catalog

import "github.com/kirodsllc/ctc-itemimport/pkg/itemimport/models"

// PartRequest is the body of a part creation call.
// Empty strings and nil numbers are left out of the JSON.
type PartRequest struct {
	MasterPartNo  string                `json:"master_part_no"`
	PartNo        string                `json:"part_no"`
	BrandName     string                `json:"brand_name,omitempty"`
	Description   string                `json:"description,omitempty"`
	CategoryID    string                `json:"category_id,omitempty"`
	SubcategoryID string                `json:"subcategory_id,omitempty"`
	ApplicationID string                `json:"application_id,omitempty"`
	HSCode        string                `json:"hs_code,omitempty"`
	Size          string                `json:"size,omitempty"`
	UOM           string                `json:"uom"`
	Status        string                `json:"status"`
	Weight        *float64              `json:"weight,omitempty"`
	ReorderLevel  *float64              `json:"reorder_level,omitempty"`
	Cost          *float64              `json:"cost,omitempty"`
	PriceA        *float64              `json:"price_a,omitempty"`
	PriceB        *float64              `json:"price_b,omitempty"`
	Origin        string                `json:"origin,omitempty"`
	Grade         string                `json:"grade,omitempty"`
	Models        []models.ModelFitment `json:"models,omitempty"`
}

// Part is the subset of a created part the importer needs.
type Part struct {
	ID     string `json:"id"`
	PartNo string `json:"part_no,omitempty"`
}

// StockMovementRequest is the body of a stock movement creation call.
type StockMovementRequest struct {
	PartID   string  `json:"part_id"`
	Type     string  `json:"type"`
	Quantity float64 `json:"quantity"`
	Notes    string  `json:"notes,omitempty"`
}
