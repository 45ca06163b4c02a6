package ml

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

const (
	IDColumn      = "customerID"
	LabelColumn   = "Churn"
	ChargesColumn = "TotalCharges"
)

// ScaledColumns are the numeric columns standardized before training and
// inference.
func ScaledColumns() []string {
	return []string{"tenure", "MonthlyCharges", ChargesColumn}
}

// Dataset is the fully encoded training table.
type Dataset struct {
	// Columns is the model column order.
	Columns []string
	// Fields are the raw feature fields in input order.
	Fields    []string
	X         [][]float64
	Y         []float64
	Encodings BinaryEncodings
}

type encodedColumn struct {
	name   string
	values []float64
}

// Prepare encodes a raw frame: two-valued text columns get label codes, other
// text columns get one-hot columns with the first category dropped. Dummy
// columns follow the plain ones, grouped by source column.
func Prepare(frame Frame) (Dataset, error) {
	frame = frame.Drop(IDColumn)

	if frame.Index(LabelColumn) < 0 {
		return Dataset{}, fmt.Errorf("label column %q not found", LabelColumn)
	}

	if len(frame.Rows) == 0 {
		return Dataset{}, errors.New("dataset has no rows")
	}

	var (
		plain     []encodedColumn
		dummies   []encodedColumn
		encodings = BinaryEncodings{}
	)

	for _, name := range frame.Columns {
		cells, err := frame.Column(name)
		if err != nil {
			return Dataset{}, err
		}

		switch name {
		case LabelColumn:
			labels, err := encodeLabel(cells)
			if err != nil {
				return Dataset{}, fmt.Errorf("encodeLabel: %w", err)
			}

			plain = append(plain, encodedColumn{name: name, values: labels})

			continue
		case ChargesColumn:
			values, err := coerceWithMedian(cells)
			if err != nil {
				return Dataset{}, fmt.Errorf("coerceWithMedian(%s): %w", name, err)
			}

			plain = append(plain, encodedColumn{name: name, values: values})

			continue
		}

		if values, ok := parseNumeric(cells); ok {
			plain = append(plain, encodedColumn{name: name, values: values})
			continue
		}

		if len(lo.Uniq(cells)) == 2 {
			codes := FitLabelEncoder(cells).Codes()
			encodings[name] = codes

			plain = append(plain, encodedColumn{
				name:   name,
				values: lo.Map(cells, func(c string, _ int) float64 { return codes[c] }),
			})

			continue
		}

		columns, categories := DummyColumns(name, cells)

		for k, column := range columns {
			dummies = append(dummies, encodedColumn{
				name: column,
				values: lo.Map(cells, func(c string, _ int) float64 {
					return lo.Ternary(c == categories[k], 1.0, 0.0)
				}),
			})
		}
	}

	all := append(plain, dummies...)
	labelIdx := slices.IndexFunc(all, func(c encodedColumn) bool { return c.name == LabelColumn })
	label := all[labelIdx]
	features := slices.Delete(all, labelIdx, labelIdx+1)

	ds := Dataset{
		Columns:   lo.Map(features, func(c encodedColumn, _ int) string { return c.name }),
		Fields:    lo.Without(frame.Columns, LabelColumn),
		X:         make([][]float64, len(frame.Rows)),
		Y:         label.values,
		Encodings: encodings,
	}

	for i := range ds.X {
		row := make([]float64, len(features))
		for j, c := range features {
			row[j] = c.values[i]
		}

		ds.X[i] = row
	}

	return ds, nil
}

func encodeLabel(cells []string) ([]float64, error) {
	out := make([]float64, len(cells))

	for i, c := range cells {
		switch c {
		case "Yes":
			out[i] = 1
		case "No":
			out[i] = 0
		default:
			return nil, fmt.Errorf("row %d: unexpected label %q", i, c)
		}
	}

	return out, nil
}

// coerceWithMedian parses cells as numbers, replacing unparseable ones with
// the median of the parsed values.
func coerceWithMedian(cells []string) ([]float64, error) {
	out := make([]float64, len(cells))
	valid := make([]float64, 0, len(cells))

	for i, c := range cells {
		v, err := strconv.ParseFloat(strings.TrimSpace(c), 64)
		if err != nil || math.IsNaN(v) {
			out[i] = math.NaN()
			continue
		}

		out[i] = v
		valid = append(valid, v)
	}

	if len(valid) == 0 {
		return nil, errors.New("no numeric values")
	}

	m := median(valid)

	for i, v := range out {
		if math.IsNaN(v) {
			out[i] = m
		}
	}

	return out, nil
}

// median averages the two middle values for even counts. stat.Quantile has
// no such interpolation mode, hence the manual version.
func median(values []float64) float64 {
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}

	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func parseNumeric(cells []string) ([]float64, bool) {
	out := make([]float64, len(cells))

	for i, c := range cells {
		v, err := strconv.ParseFloat(c, 64)
		if err != nil {
			return nil, false
		}

		out[i] = v
	}

	return out, true
}
