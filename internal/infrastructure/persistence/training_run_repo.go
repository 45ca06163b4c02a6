package persistence

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"telco_churn/internal/domain"
	"telco_churn/internal/domain/entity"
	"telco_churn/pkg/errcodes"
)

type TrainingRunRepository struct {
	db *sqlx.DB
}

func NewTrainingRunRepository(db *sqlx.DB) *TrainingRunRepository {
	return &TrainingRunRepository{db: db}
}

func (r *TrainingRunRepository) Create(ctx context.Context, run entity.TrainingRun) error {
	const query = `
		INSERT INTO training_runs (
			id, dataset_path, models_dir, rows, train_rows, test_rows, columns,
			scale_pos_weight, accuracy, "precision", recall, auc, trained_at
		) VALUES (
			:id, :dataset_path, :models_dir, :rows, :train_rows, :test_rows, :columns,
			:scale_pos_weight, :accuracy, :precision, :recall, :auc, :trained_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, fromTrainingRun(run)); err != nil {
		return domain.WrapError(err, errcodes.TrainingRunFail, "failed to insert training run")
	}

	return nil
}

// Latest возвращает последний запуск обучения.
func (r *TrainingRunRepository) Latest(ctx context.Context) (entity.TrainingRun, error) {
	const query = `
		SELECT id, dataset_path, models_dir, rows, train_rows, test_rows, columns,
			scale_pos_weight, accuracy, "precision", recall, auc, trained_at
		FROM training_runs
		ORDER BY trained_at DESC
		LIMIT 1`

	var row trainingRunSchema
	if err := r.db.GetContext(ctx, &row, query); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.TrainingRun{}, domain.NewError(errcodes.NotFound, "no training runs")
		}

		return entity.TrainingRun{}, domain.WrapError(err, errcodes.InternalServerError, "failed to get training run")
	}

	return row.toDomain(), nil
}
