package persistence

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"telco_churn/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

// predictionSchema строка таблицы predictions.
type predictionSchema struct {
	ID          uuid.UUID `db:"id"`
	Customer    []byte    `db:"customer"`
	Probability float64   `db:"probability"`
	Prediction  string    `db:"prediction"`
	RiskLevel   string    `db:"risk_level"`
	Unknown     []byte    `db:"unknown"`
	CreatedAt   time.Time `db:"created_at"`
}

func fromPrediction(p entity.Prediction) (predictionSchema, error) {
	customer, err := json.Marshal(p.Customer)
	if err != nil {
		return predictionSchema{}, fmt.Errorf("json.Marshal(customer): %w", err)
	}

	unknown := p.Unknown
	if unknown == nil {
		unknown = []string{}
	}

	rawUnknown, err := json.Marshal(unknown)
	if err != nil {
		return predictionSchema{}, fmt.Errorf("json.Marshal(unknown): %w", err)
	}

	return predictionSchema{
		ID:          p.ID,
		Customer:    customer,
		Probability: p.Probability,
		Prediction:  p.Verdict.String(),
		RiskLevel:   p.RiskLevel.String(),
		Unknown:     rawUnknown,
		CreatedAt:   p.CreatedAt,
	}, nil
}

// trainingRunSchema строка таблицы training_runs.
type trainingRunSchema struct {
	ID             uuid.UUID `db:"id"`
	DatasetPath    string    `db:"dataset_path"`
	ModelsDir      string    `db:"models_dir"`
	Rows           int       `db:"rows"`
	TrainRows      int       `db:"train_rows"`
	TestRows       int       `db:"test_rows"`
	Columns        int       `db:"columns"`
	ScalePosWeight float64   `db:"scale_pos_weight"`
	Accuracy       float64   `db:"accuracy"`
	Precision      float64   `db:"precision"`
	Recall         float64   `db:"recall"`
	AUC            float64   `db:"auc"`
	TrainedAt      time.Time `db:"trained_at"`
}

func fromTrainingRun(r entity.TrainingRun) trainingRunSchema {
	return trainingRunSchema(r)
}

func (s trainingRunSchema) toDomain() entity.TrainingRun {
	return entity.TrainingRun(s)
}
