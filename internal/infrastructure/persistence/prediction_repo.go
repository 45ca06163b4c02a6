package persistence

import (
	"context"

	"github.com/jmoiron/sqlx"

	"telco_churn/internal/domain"
	"telco_churn/internal/domain/entity"
	"telco_churn/pkg/errcodes"
)

type PredictionRepository struct {
	db *sqlx.DB
}

func NewPredictionRepository(db *sqlx.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

// Record сохраняет предсказание. Повторная запись с тем же ID игнорируется.
func (r *PredictionRepository) Record(ctx context.Context, p entity.Prediction) error {
	row, err := fromPrediction(p)
	if err != nil {
		return domain.WrapError(err, errcodes.PredictionLogFail, "failed to encode prediction")
	}

	const query = `
		INSERT INTO predictions (id, customer, probability, prediction, risk_level, unknown, created_at)
		VALUES (:id, :customer, :probability, :prediction, :risk_level, :unknown, :created_at)
		ON CONFLICT (id) DO NOTHING`

	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return domain.WrapError(err, errcodes.PredictionLogFail, "failed to insert prediction")
	}

	return nil
}
