package server

import (
	"telco_churn/internal/domain/entity"
	"telco_churn/pkg/rest"
)

// newDomainCustomer вызывается после валидации, все поля заданы.
func newDomainCustomer(r rest.PredictRequest) entity.Customer {
	return entity.Customer{
		Gender:           *r.Gender,
		SeniorCitizen:    *r.SeniorCitizen,
		Partner:          *r.Partner,
		Dependents:       *r.Dependents,
		Tenure:           *r.Tenure,
		PhoneService:     *r.PhoneService,
		MultipleLines:    *r.MultipleLines,
		InternetService:  *r.InternetService,
		OnlineSecurity:   *r.OnlineSecurity,
		OnlineBackup:     *r.OnlineBackup,
		DeviceProtection: *r.DeviceProtection,
		TechSupport:      *r.TechSupport,
		StreamingTV:      *r.StreamingTV,
		StreamingMovies:  *r.StreamingMovies,
		Contract:         *r.Contract,
		PaperlessBilling: *r.PaperlessBilling,
		PaymentMethod:    *r.PaymentMethod,
		MonthlyCharges:   *r.MonthlyCharges,
		TotalCharges:     *r.TotalCharges,
	}
}

func newRESTPrediction(p entity.Prediction) rest.PredictResponse {
	return rest.PredictResponse{
		ChurnProbability: p.RoundedProbability(),
		Prediction:       p.Verdict.String(),
		RiskLevel:        p.RiskLevel.String(),
	}
}
