package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"telco_churn/internal/domain"
	"telco_churn/internal/domain/entity"
	"telco_churn/internal/infrastructure/persistence"
	"telco_churn/internal/ml"
	"telco_churn/pkg/application/connectors"
	"telco_churn/pkg/contextx"
	"telco_churn/pkg/errcodes"
	"telco_churn/pkg/logx"
)

const defaultDataset = "data/WA_Fn-UseC_-Telco-Customer-Churn.csv"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		slog.Error("export failed", logx.Error(err))
		os.Exit(1) //nolint:gocritic // cancel is a no-op past this point
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "exportModel",
		Usage: "Train the churn classifier and export its artifacts",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "data",
				Value:   defaultDataset,
				Usage:   "Path to the telco customer churn CSV",
				EnvVars: []string{"DATASET_PATH"},
			},
			&cli.StringFlag{
				Name:    "models-dir",
				Value:   "models",
				Usage:   "Directory the artifacts are written to",
				EnvVars: []string{"MODELS_DIR"},
			},
			&cli.Int64Flag{
				Name:    "seed",
				Value:   ml.DefaultTrainConfig().Seed,
				Usage:   "Seed for the split and the booster sampling",
				EnvVars: []string{"TRAIN_SEED"},
			},
			&cli.Float64Flag{
				Name:    "test-ratio",
				Value:   ml.DefaultTrainConfig().TestRatio,
				Usage:   "Share of each class held out for evaluation",
				EnvVars: []string{"TRAIN_TEST_RATIO"},
			},
			&cli.StringFlag{
				Name:    "pg-dsn",
				Usage:   "Postgres DSN, when set the run is stored in training_runs",
				EnvVars: []string{"PG_DSN"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Value:   logx.FormatText,
				Usage:   "Log format (json, text)",
				EnvVars: []string{"LOG_FORMAT"},
			},
		},
		Action: export,
	}
}

func export(c *cli.Context) error {
	log, closer, err := logx.NewLogger(logx.Options{
		Level:  c.String("log-level"),
		Format: c.String("log-format"),
	})
	if err != nil {
		return fmt.Errorf("logx.NewLogger: %w", err)
	}
	defer closer.Close()

	slog.SetDefault(log)
	ctx := contextx.WithLogger(c.Context, log)

	dataPath := c.String("data")
	modelsDir := c.String("models-dir")

	cfg := ml.DefaultTrainConfig()
	cfg.Seed = c.Int64("seed")
	cfg.Params.Seed = cfg.Seed
	cfg.TestRatio = c.Float64("test-ratio")

	log.Info("reading dataset", slog.String(logx.FieldPath, dataPath))

	frame, err := ml.ReadCSVFile(dataPath)
	if err != nil {
		return fmt.Errorf("ml.ReadCSVFile: %w", err)
	}

	ds, err := ml.Prepare(frame)
	if err != nil {
		return fmt.Errorf("ml.Prepare: %w", err)
	}

	log.Info("training model", slog.Int(logx.FieldRows, len(ds.Y)), slog.Int(logx.FieldColumns, len(ds.Columns)))

	artifacts, report, err := ml.Train(ds, cfg)
	if err != nil {
		return fmt.Errorf("ml.Train: %w", err)
	}

	if err := artifacts.Save(modelsDir); err != nil {
		return fmt.Errorf("artifacts.Save: %w", err)
	}

	log.Info(
		"model exported",
		slog.String(logx.FieldModelDir, modelsDir),
		slog.Int("train_rows", report.TrainRows),
		slog.Int("test_rows", report.TestRows),
		slog.Float64("scale_pos_weight", report.ScalePosWeight),
		slog.Float64("accuracy", report.Evaluation.Accuracy),
		slog.Float64("precision", report.Evaluation.Precision),
		slog.Float64("recall", report.Evaluation.Recall),
		slog.Float64("auc", report.Evaluation.AUC),
	)

	if dsn := c.String("pg-dsn"); dsn != "" {
		if err := storeRun(ctx, dsn, newTrainingRun(dataPath, modelsDir, report)); err != nil {
			return fmt.Errorf("storeRun: %w", err)
		}
	}

	return nil
}

func newTrainingRun(dataPath, modelsDir string, report ml.Report) entity.TrainingRun {
	return entity.TrainingRun{
		ID:             uuid.New(),
		DatasetPath:    dataPath,
		ModelsDir:      modelsDir,
		Rows:           report.Rows,
		TrainRows:      report.TrainRows,
		TestRows:       report.TestRows,
		Columns:        report.Columns,
		ScalePosWeight: report.ScalePosWeight,
		Accuracy:       report.Evaluation.Accuracy,
		Precision:      report.Evaluation.Precision,
		Recall:         report.Evaluation.Recall,
		AUC:            report.Evaluation.AUC,
		TrainedAt:      time.Now().UTC(),
	}
}

func storeRun(ctx context.Context, dsn string, run entity.TrainingRun) error {
	pg := &connectors.Postgres{
		DSN:             dsn,
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Minute,
	}
	if err := pg.Connect(ctx); err != nil {
		return fmt.Errorf("pg.Connect: %w", err)
	}
	defer pg.Close(ctx)

	repo := persistence.NewTrainingRunRepository(pg.Client())

	previous, err := repo.Latest(ctx)
	switch {
	case err == nil:
		logger(ctx).Info(
			"compared with previous training run",
			slog.String("previous-id", previous.ID.String()),
			slog.Float64("previous-auc", previous.AUC),
			slog.Float64("auc-delta", run.AUC-previous.AUC),
		)
	case domain.HasCode(err, errcodes.NotFound):
		logger(ctx).Info("first stored training run")
	default:
		return fmt.Errorf("trainingRunRepository.Latest: %w", err)
	}

	if err = repo.Create(ctx, run); err != nil {
		return fmt.Errorf("trainingRunRepository.Create: %w", err)
	}

	logger(ctx).Info("training run stored", slog.String("id", run.ID.String()))

	return nil
}

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals
