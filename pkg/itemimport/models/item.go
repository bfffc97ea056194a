package models

// ModelFitment associates a part with a vehicle or machine model it fits.
type ModelFitment struct {
	// Name is the model code (e.g. "140G").
	Name string `json:"name"`
	// QtyUsed is the quantity consumed per fitment (always >= 1).
	QtyUsed int `json:"qty_used"`
}

// RawItem is the merged record of every sheet row belonging to one item.
type RawItem struct {
	// Row is the first sheet row of the item (1-based).
	Row int `json:"row"`
	// Fields holds the merged header-label to text mapping.
	Fields *Record `json:"fields"`
	// Models contains fitments extracted from Fields.
	Models []ModelFitment `json:"models,omitempty"`
}

// CanonicalItem is an inventory item mapped onto the fixed catalog schema.
type CanonicalItem struct {
	// MasterPartNo is the part family identifier. Never empty.
	MasterPartNo string `json:"master_part_no"`
	// PartNo is the variant part number, or the master if no variant. Never empty.
	PartNo string `json:"part_no"`

	Origin      string `json:"origin,omitempty"`
	Description string `json:"description,omitempty"`
	Application string `json:"application,omitempty"`
	Grade       string `json:"grade,omitempty"`
	Category    string `json:"category,omitempty"`
	Subcategory string `json:"subcategory,omitempty"`
	Size        string `json:"size,omitempty"`
	Brand       string `json:"brand,omitempty"`
	HSCode      string `json:"hs_code,omitempty"`
	UOM         string `json:"uom,omitempty"`

	// Numeric fields are nil when the sheet value was absent or unparseable.
	OrderLevel *float64 `json:"order_level,omitempty"`
	Weight     *float64 `json:"weight,omitempty"`
	Cost       *float64 `json:"cost,omitempty"`
	PriceA     *float64 `json:"price_a,omitempty"`
	PriceB     *float64 `json:"price_b,omitempty"`
	// Quantity is the opening stock quantity.
	Quantity *float64 `json:"quantity,omitempty"`

	Models []ModelFitment `json:"models,omitempty"`

	// Sheet and Row locate the item in the source workbook.
	Sheet string `json:"sheet,omitempty"`
	Row   int    `json:"row,omitempty"`
}
