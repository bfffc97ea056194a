package parser

import (
	"strings"

	"github.com/kirodsllc/ctc-itemimport/pkg/itemimport/models"
)

// nonModelFields are label fragments of columns that never hold model codes.
var nonModelFields = []string{
	"part no", "ss part no", "desc", "description", "cost", "price", "origin",
	"grade", "weight", "wheight", "size", "brand", "category", "application",
	"loc", "location", "main", "sub", "remarks", "mkt", "mkt.", "market",
	"ord.lvl", "order level", "models", "model", "qty", "quantity",
	"cons.qty", "cons qty", "consumption", "hs code", "hs_code", "uom", "smc",
	"status", "image",
}

// maxQtyDistance is how many fields away a quantity may sit from its model.
const maxQtyDistance = 3

// modelStrategy extracts fitments from a record.
type modelStrategy func(fields []field) []models.ModelFitment

// modelStrategies run in precedence order; earlier results win on name clashes.
var modelStrategies = []modelStrategy{explicitModels, scanModels}

// field is one record entry with its position and folded label.
type field struct {
	index int
	key   string
	label string
	value string
}

// recordFields flattens a record into positional fields.
func recordFields(rec *models.Record) []field {
	keys := rec.Keys()
	fields := make([]field, len(keys))
	for i, k := range keys {
		fields[i] = field{index: i, key: k, label: NormalizeLabel(k), value: strings.TrimSpace(rec.Value(k))}
	}
	return fields
}

// FitModels extracts the model fitments of a merged item record.
// Explicit Models/Cons.Qty columns are read first, then the remaining
// fields are scanned for model codes with trailing quantities.
func FitModels(rec *models.Record) []models.ModelFitment {
	if rec == nil {
		return nil
	}
	fields := recordFields(rec)

	var result []models.ModelFitment
	seen := make(map[string]bool)
	for _, strategy := range modelStrategies {
		for _, m := range strategy(fields) {
			if seen[m.Name] {
				continue
			}
			seen[m.Name] = true
			result = append(result, m)
		}
	}
	return result
}

// isModelColumn reports whether a label names an explicit model column.
func isModelColumn(label string) bool {
	return label == "models" || label == "model"
}

// isQtyColumn reports whether a label names a consumption quantity column.
func isQtyColumn(label string) bool {
	return containsAny(label, "qty", "cons") && !strings.Contains(label, "model")
}

// isNonModelField reports whether a label is on the non-model skip-list.
func isNonModelField(label string) bool {
	return containsAny(label, nonModelFields...)
}

// explicitModels pairs "Models"/"Model" columns with the nearest quantity
// column within maxQtyDistance positions.
func explicitModels(fields []field) []models.ModelFitment {
	var modelCols, qtyCols []field
	for _, f := range fields {
		switch {
		case isModelColumn(f.label):
			if IsModelCode(f.value) {
				modelCols = append(modelCols, f)
			}
		case isQtyColumn(f.label):
			if n, ok := leadingInt(f.value); ok && n > 0 {
				qtyCols = append(qtyCols, f)
			}
		}
	}

	var result []models.ModelFitment
	for _, m := range modelCols {
		qty := 1
		best := maxQtyDistance + 1
		for _, q := range qtyCols {
			if d := abs(q.index - m.index); d < best {
				best = d
				qty, _ = leadingInt(q.value)
			}
		}
		result = append(result, models.ModelFitment{Name: m.value, QtyUsed: qty})
	}
	return result
}

// candidate is a model-like or integer token found by the positional scan.
type candidate struct {
	index   int
	value   string
	numeric bool
	qty     int
	paired  bool
}

// scanModels finds model codes in unlabelled or unknown columns and pairs
// each with a small integer found shortly after it.
func scanModels(fields []field) []models.ModelFitment {
	var cands []candidate
	for i, f := range fields {
		if f.value == "" || isNonModelField(f.label) {
			continue
		}
		if n, ok := strictInt(f.value); ok {
			cands = append(cands, candidate{index: i, value: f.value, numeric: true, qty: n})
			continue
		}
		if !IsModelCode(f.value) {
			continue
		}
		c := candidate{index: i, value: f.value, qty: 1}
		if n, ok := lookAheadQty(fields, i); ok {
			c.qty = n
			c.paired = true
		}
		cands = append(cands, c)
	}

	cands = sequentialModels(cands)

	var result []models.ModelFitment
	for _, c := range cands {
		if !c.numeric {
			result = append(result, models.ModelFitment{Name: c.value, QtyUsed: c.qty})
		}
	}
	return result
}

// lookAheadQty searches the fields after position i for a quantity.
// It stops at the next model code.
func lookAheadQty(fields []field, i int) (int, bool) {
	for j := i + 1; j <= i+maxQtyDistance && j < len(fields); j++ {
		f := fields[j]
		hinted := containsAny(f.label, "qty", "quantity", "cons")
		if !hinted && isNonModelField(f.label) {
			continue
		}
		if f.value == "" {
			continue
		}
		n, ok := strictInt(f.value)
		if !ok {
			if IsModelCode(f.value) {
				return 0, false
			}
			continue
		}
		if n <= 0 || n >= 1000 {
			continue
		}
		if hinted || !containsAny(f.label, "price", "cost", "weight", "size") {
			return n, true
		}
	}
	return 0, false
}

// sequentialModels gives an unpaired model the integer token directly
// after it as its quantity, consuming that token.
func sequentialModels(cands []candidate) []candidate {
	out := make([]candidate, 0, len(cands))
	for i := 0; i < len(cands); i++ {
		c := cands[i]
		if !c.numeric && !c.paired && i+1 < len(cands) {
			next := cands[i+1]
			if next.numeric && next.index == c.index+1 {
				c.qty = max(next.qty, 1)
				c.paired = true
				i++
			}
		}
		out = append(out, c)
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
