package importer

import (
	"github.com/kirodsllc/ctc-itemimport/pkg/itemimport/catalog"
	"github.com/kirodsllc/ctc-itemimport/pkg/itemimport/models"
)

const (
	defaultUOM    = "pcs"
	defaultStatus = "active"
	maxModelName  = 50
)

// BuildPartRequest converts a canonical item into a catalog creation request.
// part_no and master_part_no are always set; they backfill each other.
func BuildPartRequest(item models.CanonicalItem) catalog.PartRequest {
	partNo, master := item.PartNo, item.MasterPartNo
	if partNo == "" {
		partNo = master
	}
	if master == "" {
		master = partNo
	}

	uom := item.UOM
	if uom == "" {
		uom = defaultUOM
	}

	return catalog.PartRequest{
		MasterPartNo:  master,
		PartNo:        partNo,
		BrandName:     item.Brand,
		Description:   item.Description,
		CategoryID:    item.Category,
		SubcategoryID: item.Subcategory,
		ApplicationID: item.Application,
		HSCode:        item.HSCode,
		Size:          item.Size,
		UOM:           uom,
		Status:        defaultStatus,
		Weight:        item.Weight,
		ReorderLevel:  item.OrderLevel,
		Cost:          item.Cost,
		PriceA:        item.PriceA,
		PriceB:        item.PriceB,
		Origin:        NormalizeOrigin(item.Origin),
		Grade:         NormalizeGrade(item.Grade),
		Models:        cleanModels(item.Models),
	}
}

// cleanModels drops unusable names and clamps quantities to at least 1.
func cleanModels(in []models.ModelFitment) []models.ModelFitment {
	var out []models.ModelFitment
	for _, m := range in {
		if m.Name == "" || len(m.Name) > maxModelName {
			continue
		}
		if m.QtyUsed <= 0 {
			m.QtyUsed = 1
		}
		out = append(out, m)
	}
	return out
}
