package ml

import (
	"fmt"
	"math"
)

// Alignment is a record turned into the model input.
type Alignment struct {
	Vector []float64
	// Unknown lists "field=value" pairs that had no binary code and were
	// filled with 0.
	Unknown []string
}

// Aligner turns raw records into scaled vectors in schema order.
type Aligner struct {
	schema   Schema
	scaler   StandardScaler
	scaleIdx []int
}

func NewAligner(schema Schema, scaler StandardScaler) (Aligner, error) {
	if schema.Len() == 0 {
		return Aligner{}, fmt.Errorf("model columns are empty")
	}

	if err := scaler.Validate(); err != nil {
		return Aligner{}, fmt.Errorf("scaler.Validate: %w", err)
	}

	idx, err := scaler.Indices(schema)
	if err != nil {
		return Aligner{}, fmt.Errorf("scaler.Indices: %w", err)
	}

	return Aligner{
		schema:   schema,
		scaler:   scaler,
		scaleIdx: idx,
	}, nil
}

func (a Aligner) Schema() Schema {
	return a.schema
}

// Encode fills every schema column from rec without scaling.
func (a Aligner) Encode(rec Record) (Alignment, error) {
	out := Alignment{Vector: make([]float64, a.schema.Len())}

	for i, col := range a.schema.columns {
		v, ok := rec.Get(col.Field)
		if !ok {
			continue
		}

		switch col.Policy {
		case FillBinary:
			code, known := a.schema.encodings.Encode(col.Field, v.Text())
			if v.IsNumeric() || !known {
				out.Unknown = append(out.Unknown, col.Field+"="+v.String())
				continue
			}

			out.Vector[i] = code
		case FillDummy:
			if !v.IsNumeric() && v.Text() == col.Category {
				out.Vector[i] = 1
			}
		case FillPassthrough:
			if !v.IsNumeric() {
				return Alignment{}, fmt.Errorf("field %q: could not convert string to float: %q", col.Field, v.Text())
			}

			if !math.IsNaN(v.Number()) {
				out.Vector[i] = v.Number()
			}
		case FillZero:
		}
	}

	return out, nil
}

// Align encodes rec and applies the fitted scaler.
func (a Aligner) Align(rec Record) (Alignment, error) {
	out, err := a.Encode(rec)
	if err != nil {
		return Alignment{}, err
	}

	a.scaler.Transform(out.Vector, a.scaleIdx)

	return out, nil
}
