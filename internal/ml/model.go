package ml

import (
	"errors"
	"fmt"
)

// ErrAlignment marks records that could not be mapped onto the column schema.
var ErrAlignment = errors.New("alignment failed")

// Score is the model output for one record.
type Score struct {
	Probability float64
	Unknown     []string
}

// Model aligns raw records and scores them. It is immutable and safe for
// concurrent use.
type Model struct {
	aligner Aligner
	booster *Booster
}

// NewModel wires artifacts into a model. fields are the raw record fields
// used to resolve one-hot columns.
func NewModel(a Artifacts, fields []string) (*Model, error) {
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("artifacts.Validate: %w", err)
	}

	aligner, err := NewAligner(NewSchema(a.Columns, fields, a.Encodings), a.Scaler)
	if err != nil {
		return nil, fmt.Errorf("NewAligner: %w", err)
	}

	return &Model{aligner: aligner, booster: a.Booster}, nil
}

func LoadModel(dir string, fields []string) (*Model, error) {
	a, err := LoadArtifacts(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadArtifacts: %w", err)
	}

	return NewModel(a, fields)
}

func (m *Model) Predict(rec Record) (Score, error) {
	alignment, err := m.aligner.Align(rec)
	if err != nil {
		return Score{}, fmt.Errorf("aligner.Align: %w: %w", ErrAlignment, err)
	}

	p, err := m.booster.PredictProba(alignment.Vector)
	if err != nil {
		return Score{}, fmt.Errorf("booster.PredictProba: %w", err)
	}

	return Score{Probability: p, Unknown: alignment.Unknown}, nil
}

func (m *Model) Schema() Schema {
	return m.aligner.Schema()
}
