package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"telco_churn/internal/domain/entity"
	"telco_churn/internal/infrastructure/queue"
	"telco_churn/pkg/logx"
)

type PredictionRepository interface {
	Record(ctx context.Context, p entity.Prediction) error
}

// PredictionLog переносит предсказания из очереди в базу.
type PredictionLog struct {
	repo PredictionRepository
}

func NewPredictionLog(repo PredictionRepository) *PredictionLog {
	return &PredictionLog{repo: repo}
}

func (w *PredictionLog) Handle(ctx context.Context, task *asynq.Task) error {
	p, err := queue.ParsePredictionLogTask(task)
	if err != nil {
		return fmt.Errorf("queue.ParsePredictionLogTask: %w: %w", err, asynq.SkipRetry)
	}

	if err := w.repo.Record(ctx, p); err != nil {
		return fmt.Errorf("repo.Record: %w", err)
	}

	logger(ctx).Debug(
		"prediction logged",
		slog.String(logx.FieldPredictionID, p.ID.String()),
		slog.String(logx.FieldRiskLevel, p.RiskLevel.String()),
	)

	return nil
}
