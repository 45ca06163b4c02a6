package ml

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// StandardScaler centers and scales a fixed set of columns with the population
// mean and standard deviation observed at fit time.
type StandardScaler struct {
	Columns []string  `json:"columns"`
	Mean    []float64 `json:"mean"`
	Scale   []float64 `json:"scale"`
}

// FitStandardScaler fits one mean and scale per column. data[j] holds the
// values of columns[j].
func FitStandardScaler(columns []string, data [][]float64) (StandardScaler, error) {
	if len(columns) != len(data) {
		return StandardScaler{}, fmt.Errorf("got %d columns and %d value sets", len(columns), len(data))
	}

	s := StandardScaler{
		Columns: columns,
		Mean:    make([]float64, len(columns)),
		Scale:   make([]float64, len(columns)),
	}

	for j, values := range data {
		if len(values) == 0 {
			return StandardScaler{}, fmt.Errorf("column %q has no values", columns[j])
		}

		mean, variance := stat.PopMeanVariance(values, nil)

		s.Mean[j] = mean
		s.Scale[j] = math.Sqrt(variance)

		if s.Scale[j] == 0 {
			s.Scale[j] = 1
		}
	}

	return s, nil
}

func (s StandardScaler) Validate() error {
	if len(s.Columns) == 0 {
		return fmt.Errorf("scaler has no columns")
	}

	if len(s.Mean) != len(s.Columns) || len(s.Scale) != len(s.Columns) {
		return fmt.Errorf("scaler has %d columns, %d means and %d scales", len(s.Columns), len(s.Mean), len(s.Scale))
	}

	for j, scale := range s.Scale {
		if scale == 0 || math.IsNaN(scale) {
			return fmt.Errorf("scaler column %q has invalid scale %v", s.Columns[j], scale)
		}
	}

	return nil
}

// Indices resolves the scaler columns against schema.
func (s StandardScaler) Indices(schema Schema) ([]int, error) {
	idx := make([]int, len(s.Columns))

	for j, name := range s.Columns {
		i, ok := schema.Index(name)
		if !ok {
			return nil, fmt.Errorf("scaler column %q is missing from model columns", name)
		}

		idx[j] = i
	}

	return idx, nil
}

// Transform scales vector in place at the given positions.
func (s StandardScaler) Transform(vector []float64, idx []int) {
	for j, i := range idx {
		vector[i] = (vector[i] - s.Mean[j]) / s.Scale[j]
	}
}

func (s StandardScaler) InverseTransform(vector []float64, idx []int) {
	for j, i := range idx {
		vector[i] = vector[i]*s.Scale[j] + s.Mean[j]
	}
}
