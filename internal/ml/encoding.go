package ml

import (
	"slices"
	"strings"

	"github.com/samber/lo"
)

// BinaryEncodings maps a two-valued categorical column to its value codes.
type BinaryEncodings map[string]map[string]float64

// LegacyBinaryEncodings is the mapping used before encodings were exported
// next to the model.
func LegacyBinaryEncodings() BinaryEncodings {
	codes := map[string]float64{"Yes": 1, "No": 0, "Male": 1, "Female": 0}

	fields := []string{"gender", "Partner", "Dependents", "PhoneService", "PaperlessBilling"}

	return lo.SliceToMap(fields, func(field string) (string, map[string]float64) {
		return field, codes
	})
}

// Encode returns the code of value in column field.
func (e BinaryEncodings) Encode(field, value string) (float64, bool) {
	codes, ok := e[field]
	if !ok {
		return 0, false
	}

	code, ok := codes[value]

	return code, ok
}

func (e BinaryEncodings) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// LabelEncoder assigns codes 0..n-1 to the sorted distinct values.
type LabelEncoder struct {
	Classes []string
}

func FitLabelEncoder(values []string) LabelEncoder {
	classes := lo.Uniq(values)
	slices.Sort(classes)

	return LabelEncoder{Classes: classes}
}

func (l LabelEncoder) Codes() map[string]float64 {
	codes := make(map[string]float64, len(l.Classes))
	for i, c := range l.Classes {
		codes[c] = float64(i)
	}

	return codes
}

// DummyColumns returns the one-hot column names for field with the first
// sorted category dropped.
func DummyColumns(field string, values []string) (columns, categories []string) {
	categories = lo.Uniq(values)
	slices.Sort(categories)

	if len(categories) > 0 {
		categories = categories[1:]
	}

	columns = lo.Map(categories, func(c string, _ int) string {
		return DummyName(field, c)
	})

	return columns, categories
}

func DummyName(field, category string) string {
	return field + "_" + category
}

// dummyField finds the longest field name that prefixes column as
// "<field>_". It returns false when no field matches.
func dummyField(column string, fields []string) (string, bool) {
	best := ""

	for _, f := range fields {
		if strings.HasPrefix(column, f+"_") && len(f) > len(best) {
			best = f
		}
	}

	return best, best != ""
}
