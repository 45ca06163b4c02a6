package ml_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"telco_churn/internal/ml"
)

const samplePath = "testdata/telco_sample.csv"

func telcoColumns() []string {
	return []string{
		"gender", "SeniorCitizen", "Partner", "Dependents", "tenure", "PhoneService",
		"PaperlessBilling", "MonthlyCharges", "TotalCharges",
		"MultipleLines_No phone service", "MultipleLines_Yes",
		"InternetService_Fiber optic", "InternetService_No",
		"OnlineSecurity_No internet service", "OnlineSecurity_Yes",
		"OnlineBackup_No internet service", "OnlineBackup_Yes",
		"DeviceProtection_No internet service", "DeviceProtection_Yes",
		"TechSupport_No internet service", "TechSupport_Yes",
		"StreamingTV_No internet service", "StreamingTV_Yes",
		"StreamingMovies_No internet service", "StreamingMovies_Yes",
		"Contract_One year", "Contract_Two year",
		"PaymentMethod_Credit card (automatic)", "PaymentMethod_Electronic check", "PaymentMethod_Mailed check",
	}
}

func telcoFields() []string {
	return []string{
		"gender", "SeniorCitizen", "Partner", "Dependents", "tenure", "PhoneService",
		"MultipleLines", "InternetService", "OnlineSecurity", "OnlineBackup",
		"DeviceProtection", "TechSupport", "StreamingTV", "StreamingMovies",
		"Contract", "PaperlessBilling", "PaymentMethod", "MonthlyCharges", "TotalCharges",
	}
}

func scenarioRecord() ml.Record {
	return ml.Record{
		{Name: "gender", Value: ml.Text("Female")},
		{Name: "SeniorCitizen", Value: ml.Number(0)},
		{Name: "Partner", Value: ml.Text("Yes")},
		{Name: "Dependents", Value: ml.Text("No")},
		{Name: "tenure", Value: ml.Number(1)},
		{Name: "PhoneService", Value: ml.Text("No")},
		{Name: "MultipleLines", Value: ml.Text("No phone service")},
		{Name: "InternetService", Value: ml.Text("Fiber optic")},
		{Name: "OnlineSecurity", Value: ml.Text("No")},
		{Name: "OnlineBackup", Value: ml.Text("Yes")},
		{Name: "DeviceProtection", Value: ml.Text("No")},
		{Name: "TechSupport", Value: ml.Text("No")},
		{Name: "StreamingTV", Value: ml.Text("No")},
		{Name: "StreamingMovies", Value: ml.Text("No")},
		{Name: "Contract", Value: ml.Text("Month-to-month")},
		{Name: "PaperlessBilling", Value: ml.Text("Yes")},
		{Name: "PaymentMethod", Value: ml.Text("Electronic check")},
		{Name: "MonthlyCharges", Value: ml.Number(70.35)},
		{Name: "TotalCharges", Value: ml.Number(70.35)},
	}
}

func with(rec ml.Record, name string, value ml.Value) ml.Record {
	out := make(ml.Record, len(rec))
	copy(out, rec)

	for i := range out {
		if out[i].Name == name {
			out[i].Value = value
		}
	}

	return out
}

func loadSample(t *testing.T) (ml.Frame, ml.Dataset) {
	t.Helper()

	rq := require.New(t)

	frame, err := ml.ReadCSVFile(samplePath)
	rq.NoError(err)

	ds, err := ml.Prepare(frame)
	rq.NoError(err)

	return frame, ds
}

// frameRecord rebuilds the raw request record of a CSV row.
func frameRecord(t *testing.T, frame ml.Frame, row []string, totalCharges float64) ml.Record {
	t.Helper()

	numeric := map[string]bool{"SeniorCitizen": true, "tenure": true, "MonthlyCharges": true}

	var rec ml.Record

	for j, name := range frame.Columns {
		switch {
		case name == ml.IDColumn || name == ml.LabelColumn:
			continue
		case name == ml.ChargesColumn:
			rec = append(rec, ml.Field{Name: name, Value: ml.Number(totalCharges)})
		case numeric[name]:
			v, err := strconv.ParseFloat(row[j], 64)
			require.NoError(t, err)

			rec = append(rec, ml.Field{Name: name, Value: ml.Number(v)})
		default:
			rec = append(rec, ml.Field{Name: name, Value: ml.Text(row[j])})
		}
	}

	return rec
}
