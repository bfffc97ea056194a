package parser

import (
	"testing"

	"github.com/kirodsllc/ctc-itemimport/pkg/itemimport/models"
)

func TestFitModels(t *testing.T) {
	tests := []struct {
		name     string
		record   *models.Record
		expected []models.ModelFitment
	}{
		{
			name: "explicit models and cons qty",
			record: recordOf(
				"Part No", "TEST001", "SS Part No", "TEST001A", "Origin", "PRC",
				"Description", "Brake Pad", "Grade", "A", "Models", "140G", "Cons.Qty", "2",
			),
			expected: []models.ModelFitment{{Name: "140G", QtyUsed: 2}},
		},
		{
			name:     "trailing unlabelled pair",
			record:   recordOf("Part No", "TEST001", "Description", "Seal", "Column P", "966H", "Column Q", "3"),
			expected: []models.ModelFitment{{Name: "966H", QtyUsed: 3}},
		},
		{
			name:     "explicit model without quantity column",
			record:   recordOf("Part No", "TEST001", "Model", "D8H"),
			expected: []models.ModelFitment{{Name: "D8H", QtyUsed: 1}},
		},
		{
			name:     "quantity too far from model",
			record:   recordOf("Models", "140G", "Brand", "CAT", "Size", "10", "Cost", "5", "Cons.Qty", "4"),
			expected: []models.ModelFitment{{Name: "140G", QtyUsed: 1}},
		},
		{
			name:     "duplicate across strategies keeps first quantity",
			record:   recordOf("Models", "140G", "Cons.Qty", "2", "Fit", "140G", "Fit Count", "5"),
			expected: []models.ModelFitment{{Name: "140G", QtyUsed: 2}},
		},
		{
			name:     "look-ahead stops at next model",
			record:   recordOf("Part No", "TEST001", "M1", "966H", "M2", "D8H", "Q2", "3"),
			expected: []models.ModelFitment{{Name: "966H", QtyUsed: 1}, {Name: "D8H", QtyUsed: 3}},
		},
		{
			name:     "quantity hinted column is used by scan",
			record:   recordOf("Part No", "TEST001", "Fitment", "966H", "Qty", "4"),
			expected: []models.ModelFitment{{Name: "966H", QtyUsed: 4}},
		},
		{
			name:     "price column is not a quantity",
			record:   recordOf("Fitment", "966H", "Unit", "", "Fitment Price", "12"),
			expected: []models.ModelFitment{{Name: "966H", QtyUsed: 1}},
		},
		{
			name:     "skip-list fields are not models",
			record:   recordOf("Part No", "TEST001", "Origin", "PRC", "Brand", "CAT", "Grade", "A1", "Location", "R12"),
			expected: nil,
		},
		{
			name:     "purely numeric values are not models",
			record:   recordOf("Ref", "12345", "Other", "99"),
			expected: nil,
		},
		{
			name:     "oversized integer becomes quantity by adjacency",
			record:   recordOf("Fitment", "966H", "Count", "1500"),
			expected: []models.ModelFitment{{Name: "966H", QtyUsed: 1500}},
		},
		{
			name:     "zero quantity by adjacency defaults to one",
			record:   recordOf("Fitment", "966H", "Count", "0"),
			expected: []models.ModelFitment{{Name: "966H", QtyUsed: 1}},
		},
		{
			name:     "invalid model codes ignored",
			record:   recordOf("Models", "TOO-LONG-CODE", "Fit", "A-B-C", "Fit2", "X"),
			expected: nil,
		},
	}

	for _, tt := range tests {
		result := FitModels(tt.record)
		if !fitmentsEqual(result, tt.expected) {
			t.Errorf("%s: FitModels() = %v, expected %v", tt.name, result, tt.expected)
		}
	}
}

func TestFitModelsNilRecord(t *testing.T) {
	if got := FitModels(nil); got != nil {
		t.Errorf("FitModels(nil) = %v, expected nil", got)
	}
}

func TestIsModelCode(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"140G", true},
		{"D8H", true},
		{"PC-200", true},
		{"7A", true},
		{"X", false},
		{"12345", false},
		{"-140G", false},
		{"PC-200-8", false},
		{"ABCDEFGHIJK", false},
		{"140 G", false},
	}

	for _, tt := range tests {
		if result := IsModelCode(tt.input); result != tt.expected {
			t.Errorf("IsModelCode(%q) = %v, expected %v", tt.input, result, tt.expected)
		}
	}
}
