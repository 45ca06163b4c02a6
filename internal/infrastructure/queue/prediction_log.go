package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"

	"telco_churn/internal/domain/entity"
	"telco_churn/internal/domain/value"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

const (
	TypePredictionLog = "prediction:log"
	QueuePredictions  = "predictions"

	predictionLogRetries = 5
)

type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// PredictionLog пишет предсказания в журнал через очередь asynq.
type PredictionLog struct {
	client Enqueuer
}

func NewPredictionLog(client Enqueuer) *PredictionLog {
	return &PredictionLog{client: client}
}

func (q *PredictionLog) Record(ctx context.Context, p entity.Prediction) error {
	task, err := NewPredictionLogTask(p)
	if err != nil {
		return fmt.Errorf("NewPredictionLogTask: %w", err)
	}

	if _, err := q.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("client.EnqueueContext: %w", err)
	}

	return nil
}

type predictionPayload struct {
	ID          uuid.UUID       `json:"id"`
	Customer    entity.Customer `json:"customer"`
	Probability float64         `json:"probability"`
	Prediction  string          `json:"prediction"`
	RiskLevel   string          `json:"risk_level"`
	Unknown     []string        `json:"unknown,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

func NewPredictionLogTask(p entity.Prediction) (*asynq.Task, error) {
	payload, err := json.Marshal(predictionPayload{
		ID:          p.ID,
		Customer:    p.Customer,
		Probability: p.Probability,
		Prediction:  p.Verdict.String(),
		RiskLevel:   p.RiskLevel.String(),
		Unknown:     p.Unknown,
		CreatedAt:   p.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return asynq.NewTask(
		TypePredictionLog,
		payload,
		asynq.Queue(QueuePredictions),
		asynq.MaxRetry(predictionLogRetries),
		asynq.TaskID(p.ID.String()),
	), nil
}

func ParsePredictionLogTask(task *asynq.Task) (entity.Prediction, error) {
	var payload predictionPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return entity.Prediction{}, fmt.Errorf("json.Unmarshal: %w", err)
	}

	verdict, err := value.ParseVerdict(payload.Prediction)
	if err != nil {
		return entity.Prediction{}, fmt.Errorf("value.ParseVerdict: %w", err)
	}

	risk, err := value.ParseRiskLevel(payload.RiskLevel)
	if err != nil {
		return entity.Prediction{}, fmt.Errorf("value.ParseRiskLevel: %w", err)
	}

	return entity.Prediction{
		ID:          payload.ID,
		Customer:    payload.Customer,
		Probability: payload.Probability,
		Verdict:     verdict,
		RiskLevel:   risk,
		Unknown:     payload.Unknown,
		CreatedAt:   payload.CreatedAt,
	}, nil
}
