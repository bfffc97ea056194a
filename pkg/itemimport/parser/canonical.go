package parser

import (
	"fmt"
	"strings"

	"github.com/kirodsllc/ctc-itemimport/pkg/itemimport/models"
)

// Header spellings accepted for each canonical field, after NormalizeLabel.
var (
	masterLabels      = []string{"master part no", "master part number", "master part"}
	plainPartLabels   = []string{"part no", "part number", "part #", "part"}
	originLabels      = []string{"origin", "country", "country of origin"}
	descriptionLabels = []string{"description", "desc", "item description"}
	applicationLabels = []string{"application", "appl", "applications"}
	gradeLabels       = []string{"grade"}
	orderLevelLabels  = []string{"order level", "ord.lvl", "ord lvl", "reorder level", "re-order level"}
	weightLabels      = []string{"weight", "wheight", "wt"}
	categoryLabels    = []string{"main category", "category", "main"}
	subcategoryLabels = []string{"sub category", "subcategory", "sub-category", "sub"}
	sizeLabels        = []string{"size"}
	brandLabels       = []string{"brand", "brand name"}
	hsCodeLabels      = []string{"hs code", "hs_code", "hscode"}
	uomLabels         = []string{"uom", "unit"}
	costLabels        = []string{"cost", "cost price"}
	priceALabels      = []string{"price a", "price-a", "pricea", "price"}
	priceBLabels      = []string{"price b", "price-b", "priceb"}
	quantityLabels    = []string{"quantity", "stock", "stock qty", "opening stock"}
)

// Canonicalize maps a raw item onto the fixed catalog schema.
// ordinal is the 1-based position of the item in the run and names the
// placeholder part number used when no part number can be recovered.
func Canonicalize(sheet string, raw models.RawItem, ordinal int) models.CanonicalItem {
	rec := raw.Fields
	if rec == nil {
		rec = models.NewRecord()
	}

	master, variant := resolvePartNumbers(rec)

	partNo := variant
	if partNo == "" {
		partNo = master
	}
	if partNo == "" {
		partNo = fmt.Sprintf("ITEM_%d", ordinal)
	}
	if master == "" {
		master = partNo
	}

	return models.CanonicalItem{
		MasterPartNo: master,
		PartNo:       partNo,
		Origin:       lookup(rec, originLabels...),
		Description:  lookup(rec, descriptionLabels...),
		Application:  lookup(rec, applicationLabels...),
		Grade:        lookup(rec, gradeLabels...),
		Category:     lookup(rec, categoryLabels...),
		Subcategory:  lookup(rec, subcategoryLabels...),
		Size:         lookup(rec, sizeLabels...),
		Brand:        lookup(rec, brandLabels...),
		HSCode:       lookup(rec, hsCodeLabels...),
		UOM:          lookup(rec, uomLabels...),
		OrderLevel:   numberPtr(lookup(rec, orderLevelLabels...)),
		Weight:       numberPtr(lookup(rec, weightLabels...)),
		Cost:         numberPtr(lookup(rec, costLabels...)),
		PriceA:       numberPtr(lookup(rec, priceALabels...)),
		PriceB:       numberPtr(lookup(rec, priceBLabels...)),
		Quantity:     numberPtr(lookup(rec, quantityLabels...)),
		Models:       raw.Models,
		Sheet:        sheet,
		Row:          raw.Row,
	}
}

// resolvePartNumbers picks the master and variant part numbers of a record.
func resolvePartNumbers(rec *models.Record) (master, variant string) {
	plain := cleanPartNo(lookup(rec, plainPartLabels...))
	if m := cleanPartNo(lookup(rec, masterLabels...)); m != "" {
		// With a dedicated master column the plain column is the variant.
		master = m
		variant = plain
	} else {
		master = plain
	}
	if !isValidMaster(master) {
		master = ""
	}

	if ss := cleanPartNo(lookup(rec, variantLabels...)); ss != "" {
		variant = ss
	}
	if variant == "-" || !isValidMaster(variant) {
		variant = ""
	}

	if master == "" && variant == "" {
		master = scanPartNumber(rec)
	}
	return master, variant
}

// cleanPartNo reduces a part number cell to a single token.
func cleanPartNo(v string) string {
	v = firstLine(v)
	if strings.Contains(strings.ToLower(v), "part no") || len(v) > 30 {
		v = embeddedPartNo(v)
	}
	return strings.TrimSpace(v)
}

// embeddedPartNo picks the part number token out of a label-polluted cell,
// preferring tokens with a digit over caption words.
func embeddedPartNo(v string) string {
	var fallback string
	for _, tok := range partNumberToken.FindAllString(v, -1) {
		if anyDigit.MatchString(tok) {
			return tok
		}
		switch strings.ToLower(tok) {
		case "part", "ss", "no", "origin":
			continue
		}
		if fallback == "" {
			fallback = tok
		}
	}
	return fallback
}

// isValidMaster reports whether v can serve as a part number.
func isValidMaster(v string) bool {
	if v == "" || len(v) > maxPartNoLen || !IsPartNumber(v) {
		return false
	}
	return !containsAny(strings.ToLower(v), "part no", "origin", "desc")
}

// scanPartNumber searches non-part, non-model fields for a part number,
// preferring values that contain a digit.
func scanPartNumber(rec *models.Record) string {
	var fallback string
	for _, k := range rec.Keys() {
		label := strings.ToLower(k)
		if containsAny(label, "part", "model") {
			continue
		}
		v := strings.TrimSpace(rec.Value(k))
		if v == "" || v == "-" || len(v) > maxPartNoLen || !IsPartNumber(v) {
			continue
		}
		if IsOriginToken(v) || containsAny(strings.ToLower(v), "desc", "grade", "origin") {
			continue
		}
		if anyDigit.MatchString(v) {
			return v
		}
		if fallback == "" && len(v) >= 5 {
			fallback = v
		}
	}
	return fallback
}
