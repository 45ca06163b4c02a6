package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"telco_churn/internal/domain/value"
)

const probabilityPlaces = 4

type Prediction struct {
	ID          uuid.UUID
	Customer    Customer
	Probability float64
	Verdict     value.Verdict
	RiskLevel   value.RiskLevel
	// Unknown значения бинарных полей, которых нет в словаре модели.
	Unknown   []string
	CreatedAt time.Time
}

// NewPrediction выводит вердикт и уровень риска из неокруглённой вероятности.
func NewPrediction(customer Customer, probability float64, createdAt time.Time) Prediction {
	return Prediction{
		ID:          uuid.New(),
		Customer:    customer,
		Probability: probability,
		Verdict:     value.VerdictFromProbability(probability),
		RiskLevel:   value.RiskLevelFromProbability(probability),
		CreatedAt:   createdAt,
	}
}

// RoundedProbability вероятность, округлённая до 4 знаков. Округляется
// кратчайшая десятичная запись числа, половина от нуля: 0.45675 даёт 0.4568.
func (p Prediction) RoundedProbability() float64 {
	return decimal.NewFromFloat(p.Probability).Round(probabilityPlaces).InexactFloat64()
}
