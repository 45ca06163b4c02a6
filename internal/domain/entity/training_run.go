package entity

import (
	"time"

	"github.com/google/uuid"
)

// TrainingRun итог одного запуска экспорта модели.
type TrainingRun struct {
	ID             uuid.UUID
	DatasetPath    string
	ModelsDir      string
	Rows           int
	TrainRows      int
	TestRows       int
	Columns        int
	ScalePosWeight float64
	Accuracy       float64
	Precision      float64
	Recall         float64
	AUC            float64
	TrainedAt      time.Time
}
