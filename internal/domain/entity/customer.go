package entity

// Customer признаки клиента в том виде, в каком их принимает API.
type Customer struct {
	Gender           string  `json:"gender"`
	SeniorCitizen    int     `json:"SeniorCitizen"`
	Partner          string  `json:"Partner"`
	Dependents       string  `json:"Dependents"`
	Tenure           int     `json:"tenure"`
	PhoneService     string  `json:"PhoneService"`
	MultipleLines    string  `json:"MultipleLines"`
	InternetService  string  `json:"InternetService"`
	OnlineSecurity   string  `json:"OnlineSecurity"`
	OnlineBackup     string  `json:"OnlineBackup"`
	DeviceProtection string  `json:"DeviceProtection"`
	TechSupport      string  `json:"TechSupport"`
	StreamingTV      string  `json:"StreamingTV"`
	StreamingMovies  string  `json:"StreamingMovies"`
	Contract         string  `json:"Contract"`
	PaperlessBilling string  `json:"PaperlessBilling"`
	PaymentMethod    string  `json:"PaymentMethod"`
	MonthlyCharges   float64 `json:"MonthlyCharges"`
	TotalCharges     float64 `json:"TotalCharges"`
}

// CustomerFields имена полей клиента в порядке датасета.
func CustomerFields() []string {
	return []string{
		"gender", "SeniorCitizen", "Partner", "Dependents", "tenure", "PhoneService",
		"MultipleLines", "InternetService", "OnlineSecurity", "OnlineBackup",
		"DeviceProtection", "TechSupport", "StreamingTV", "StreamingMovies",
		"Contract", "PaperlessBilling", "PaymentMethod", "MonthlyCharges", "TotalCharges",
	}
}
