package ml_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"telco_churn/internal/ml"
)

func TestStandardScaler(t *testing.T) {
	rq := require.New(t)

	scaler, err := ml.FitStandardScaler(
		[]string{"a", "b"},
		[][]float64{{1, 2, 3, 4}, {5, 5, 5, 5}},
	)
	rq.NoError(err)

	rq.InDelta(2.5, scaler.Mean[0], 1e-12)
	rq.InDelta(math.Sqrt(1.25), scaler.Scale[0], 1e-12)
	// Constant columns keep unit scale.
	rq.Equal(1.0, scaler.Scale[1])

	schema := ml.NewSchema([]string{"x", "b", "a"}, nil, nil)
	idx, err := scaler.Indices(schema)
	rq.NoError(err)
	rq.Equal([]int{2, 1}, idx)

	vector := []float64{7, 5, 4}
	original := append([]float64(nil), vector...)

	scaler.Transform(vector, idx)
	rq.Equal(7.0, vector[0])
	rq.InDelta(0, vector[1], 1e-12)
	rq.InDelta(1.5/math.Sqrt(1.25), vector[2], 1e-12)

	scaler.InverseTransform(vector, idx)
	rq.InDeltaSlice(original, vector, 1e-9)
}

func TestStandardScalerValidate(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name   string
		scaler ml.StandardScaler
		err    string
	}{
		{name: "Empty", scaler: ml.StandardScaler{}, err: "scaler has no columns"},
		{
			name:   "Length mismatch",
			scaler: ml.StandardScaler{Columns: []string{"a"}, Mean: []float64{0, 1}, Scale: []float64{1}},
			err:    "scaler has 1 columns, 2 means and 1 scales",
		},
		{
			name:   "Zero scale",
			scaler: ml.StandardScaler{Columns: []string{"a"}, Mean: []float64{0}, Scale: []float64{0}},
			err:    `scaler column "a" has invalid scale 0`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			rq.ErrorContains(tc.scaler.Validate(), tc.err)
		})
	}

	_, err := ml.FitStandardScaler([]string{"a"}, [][]float64{{}})
	rq.ErrorContains(err, `column "a" has no values`)
}
