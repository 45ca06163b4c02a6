package ml

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const (
	ModelFile     = "model.json"
	ScalerFile    = "scaler.json"
	ColumnsFile   = "model_columns.json"
	EncodingsFile = "binary_encodings.json"
)

// Artifacts is everything the service needs to score records.
type Artifacts struct {
	Booster   *Booster
	Scaler    StandardScaler
	Columns   []string
	Encodings BinaryEncodings
}

func (a Artifacts) Validate() error {
	if a.Booster == nil {
		return errors.New("booster is missing")
	}

	if err := a.Booster.Validate(); err != nil {
		return fmt.Errorf("booster.Validate: %w", err)
	}

	if len(a.Columns) != a.Booster.NumFeatures {
		return fmt.Errorf("got %d model columns for a booster with %d features", len(a.Columns), a.Booster.NumFeatures)
	}

	if err := a.Scaler.Validate(); err != nil {
		return fmt.Errorf("scaler.Validate: %w", err)
	}

	return nil
}

// Save writes the artifacts into dir, creating it if needed.
func (a Artifacts) Save(dir string) error {
	if err := a.Validate(); err != nil {
		return fmt.Errorf("artifacts.Validate: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("os.MkdirAll: %w", err)
	}

	files := []struct {
		name  string
		value any
	}{
		{name: ModelFile, value: a.Booster},
		{name: ScalerFile, value: a.Scaler},
		{name: ColumnsFile, value: a.Columns},
		{name: EncodingsFile, value: a.Encodings},
	}

	for _, f := range files {
		if err := writeJSON(filepath.Join(dir, f.name), f.value); err != nil {
			return fmt.Errorf("writeJSON(%s): %w", f.name, err)
		}
	}

	return nil
}

// LoadArtifacts reads the artifacts from dir. A missing encodings file falls
// back to LegacyBinaryEncodings.
func LoadArtifacts(dir string) (Artifacts, error) {
	var a Artifacts

	if err := readJSON(filepath.Join(dir, ModelFile), &a.Booster); err != nil {
		return Artifacts{}, fmt.Errorf("readJSON(%s): %w", ModelFile, err)
	}

	if err := readJSON(filepath.Join(dir, ScalerFile), &a.Scaler); err != nil {
		return Artifacts{}, fmt.Errorf("readJSON(%s): %w", ScalerFile, err)
	}

	if err := readJSON(filepath.Join(dir, ColumnsFile), &a.Columns); err != nil {
		return Artifacts{}, fmt.Errorf("readJSON(%s): %w", ColumnsFile, err)
	}

	err := readJSON(filepath.Join(dir, EncodingsFile), &a.Encodings)

	switch {
	case errors.Is(err, fs.ErrNotExist):
		a.Encodings = LegacyBinaryEncodings()
	case err != nil:
		return Artifacts{}, fmt.Errorf("readJSON(%s): %w", EncodingsFile, err)
	}

	if err := a.Validate(); err != nil {
		return Artifacts{}, fmt.Errorf("artifacts.Validate: %w", err)
	}

	return a, nil
}

func writeJSON(path string, value any) error {
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("json.MarshalIndent: %w", err)
	}

	if err := os.WriteFile(path, payload, 0o600); err != nil { //nolint:mnd
		return fmt.Errorf("os.WriteFile: %w", err)
	}

	return nil
}

func readJSON(path string, dest any) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("os.ReadFile: %w", err)
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		return fmt.Errorf("json.Unmarshal: %w", err)
	}

	return nil
}
