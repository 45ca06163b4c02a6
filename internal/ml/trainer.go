package ml

import (
	"errors"
	"fmt"
	"slices"
)

type TrainConfig struct {
	Seed      int64
	TestRatio float64
	Params    BoosterParams
}

func DefaultTrainConfig() TrainConfig {
	return TrainConfig{
		Seed:      42,
		TestRatio: 0.2,
		Params:    DefaultBoosterParams(),
	}
}

// Report summarizes a training run.
type Report struct {
	Rows           int
	TrainRows      int
	TestRows       int
	Columns        int
	ScalePosWeight float64
	Evaluation     Evaluation
}

// Train splits the dataset, fits the scaler on the train partition only,
// fits the booster and scores the test partition.
func Train(ds Dataset, cfg TrainConfig) (Artifacts, Report, error) {
	trainIdx, testIdx, err := StratifiedSplit(ds.Y, cfg.TestRatio, cfg.Seed)
	if err != nil {
		return Artifacts{}, Report{}, fmt.Errorf("StratifiedSplit: %w", err)
	}

	schema := NewSchema(ds.Columns, ds.Fields, ds.Encodings)

	xTrain := cloneRows(take(ds.X, trainIdx))
	yTrain := take(ds.Y, trainIdx)
	xTest := cloneRows(take(ds.X, testIdx))
	yTest := take(ds.Y, testIdx)

	scaled := ScaledColumns()
	columnValues := make([][]float64, len(scaled))

	for j, name := range scaled {
		i, ok := schema.Index(name)
		if !ok {
			return Artifacts{}, Report{}, fmt.Errorf("column %q to scale not found", name)
		}

		columnValues[j] = make([]float64, len(xTrain))
		for r, row := range xTrain {
			columnValues[j][r] = row[i]
		}
	}

	scaler, err := FitStandardScaler(scaled, columnValues)
	if err != nil {
		return Artifacts{}, Report{}, fmt.Errorf("FitStandardScaler: %w", err)
	}

	idx, err := scaler.Indices(schema)
	if err != nil {
		return Artifacts{}, Report{}, fmt.Errorf("scaler.Indices: %w", err)
	}

	for _, row := range xTrain {
		scaler.Transform(row, idx)
	}

	for _, row := range xTest {
		scaler.Transform(row, idx)
	}

	var pos, neg float64

	for _, label := range yTrain {
		if label == 1 {
			pos++
		} else {
			neg++
		}
	}

	if pos == 0 {
		return Artifacts{}, Report{}, errors.New("train partition has no positive rows")
	}

	params := cfg.Params
	params.ScalePosWeight = neg / pos

	booster, err := TrainBooster(xTrain, yTrain, params)
	if err != nil {
		return Artifacts{}, Report{}, fmt.Errorf("TrainBooster: %w", err)
	}

	proba := make([]float64, len(xTest))
	for i, row := range xTest {
		if proba[i], err = booster.PredictProba(row); err != nil {
			return Artifacts{}, Report{}, fmt.Errorf("booster.PredictProba: %w", err)
		}
	}

	artifacts := Artifacts{
		Booster:   booster,
		Scaler:    scaler,
		Columns:   slices.Clone(ds.Columns),
		Encodings: ds.Encodings,
	}

	report := Report{
		Rows:           len(ds.Y),
		TrainRows:      len(trainIdx),
		TestRows:       len(testIdx),
		Columns:        len(ds.Columns),
		ScalePosWeight: params.ScalePosWeight,
		Evaluation:     Evaluate(yTest, proba),
	}

	return artifacts, report, nil
}

func cloneRows(rows [][]float64) [][]float64 {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = slices.Clone(row)
	}

	return out
}
