package churn

import (
	"strings"

	"telco_churn/internal/domain/entity"
	"telco_churn/internal/ml"
)

// ToRecord переводит клиента в сырую запись модели в порядке датасета.
func ToRecord(c entity.Customer) ml.Record {
	return ml.Record{
		{Name: "gender", Value: ml.Text(c.Gender)},
		{Name: "SeniorCitizen", Value: ml.Number(float64(c.SeniorCitizen))},
		{Name: "Partner", Value: ml.Text(c.Partner)},
		{Name: "Dependents", Value: ml.Text(c.Dependents)},
		{Name: "tenure", Value: ml.Number(float64(c.Tenure))},
		{Name: "PhoneService", Value: ml.Text(c.PhoneService)},
		{Name: "MultipleLines", Value: ml.Text(c.MultipleLines)},
		{Name: "InternetService", Value: ml.Text(c.InternetService)},
		{Name: "OnlineSecurity", Value: ml.Text(c.OnlineSecurity)},
		{Name: "OnlineBackup", Value: ml.Text(c.OnlineBackup)},
		{Name: "DeviceProtection", Value: ml.Text(c.DeviceProtection)},
		{Name: "TechSupport", Value: ml.Text(c.TechSupport)},
		{Name: "StreamingTV", Value: ml.Text(c.StreamingTV)},
		{Name: "StreamingMovies", Value: ml.Text(c.StreamingMovies)},
		{Name: "Contract", Value: ml.Text(c.Contract)},
		{Name: "PaperlessBilling", Value: ml.Text(c.PaperlessBilling)},
		{Name: "PaymentMethod", Value: ml.Text(c.PaymentMethod)},
		{Name: "MonthlyCharges", Value: ml.Number(c.MonthlyCharges)},
		{Name: "TotalCharges", Value: ml.Number(c.TotalCharges)},
	}
}

func fieldOf(unknown string) string {
	field, _, _ := strings.Cut(unknown, "=")
	return field
}
