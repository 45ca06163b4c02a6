package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"telco_churn/internal/ml"
)

const samplePath = "../../internal/ml/testdata/telco_sample.csv"

func writeBadLabel(t *testing.T) string {
	t.Helper()

	raw, err := os.ReadFile(samplePath)
	require.NoError(t, err)

	lines := strings.Split(string(raw), "\n")
	lines[1] = strings.TrimSuffix(strings.TrimSpace(lines[1]), ",Yes") + ",Maybe"

	path := filepath.Join(t.TempDir(), "bad_label.csv")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o600))

	return path
}

func TestExport(t *testing.T) {
	rq := require.New(t)

	t.Setenv("PG_DSN", "")

	testCases := []struct {
		name     string
		data     string
		errParts []string
	}{
		{
			name:     "Missing dataset",
			data:     filepath.Join(t.TempDir(), "absent.csv"),
			errParts: []string{"ml.ReadCSVFile", "absent.csv"},
		},
		{
			name:     "Unexpected label",
			data:     writeBadLabel(t),
			errParts: []string{"ml.Prepare", `unexpected label "Maybe"`},
		},
		{
			name: "Sample dataset",
			data: samplePath,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			modelsDir := t.TempDir()

			err := newApp().RunContext(context.Background(), []string{
				"exportModel",
				"--data", tc.data,
				"--models-dir", modelsDir,
				"--log-level", "error",
			})

			if len(tc.errParts) > 0 {
				rq.Error(err)

				for _, part := range tc.errParts {
					rq.ErrorContains(err, part)
				}

				_, statErr := os.Stat(filepath.Join(modelsDir, ml.ModelFile))
				rq.ErrorIs(statErr, os.ErrNotExist)

				return
			}

			rq.NoError(err)

			for _, name := range []string{ml.ModelFile, ml.ScalerFile, ml.ColumnsFile, ml.EncodingsFile} {
				rq.FileExists(filepath.Join(modelsDir, name))
			}
		})
	}
}
