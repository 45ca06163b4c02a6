// Данный файл должен быть сгенерирован из openapi спецификации и называться types.gen.go
package rest

// PredictRequest Признаки клиента. Все поля обязательны.
type PredictRequest struct {
	Gender           *string  `json:"gender"           validate:"required"`
	SeniorCitizen    *int     `json:"SeniorCitizen"    validate:"required"`
	Partner          *string  `json:"Partner"          validate:"required"`
	Dependents       *string  `json:"Dependents"       validate:"required"`
	Tenure           *int     `json:"tenure"           validate:"required"`
	PhoneService     *string  `json:"PhoneService"     validate:"required"`
	MultipleLines    *string  `json:"MultipleLines"    validate:"required"`
	InternetService  *string  `json:"InternetService"  validate:"required"`
	OnlineSecurity   *string  `json:"OnlineSecurity"   validate:"required"`
	OnlineBackup     *string  `json:"OnlineBackup"     validate:"required"`
	DeviceProtection *string  `json:"DeviceProtection" validate:"required"`
	TechSupport      *string  `json:"TechSupport"      validate:"required"`
	StreamingTV      *string  `json:"StreamingTV"      validate:"required"`
	StreamingMovies  *string  `json:"StreamingMovies"  validate:"required"`
	Contract         *string  `json:"Contract"         validate:"required"`
	PaperlessBilling *string  `json:"PaperlessBilling" validate:"required"`
	PaymentMethod    *string  `json:"PaymentMethod"    validate:"required"`
	MonthlyCharges   *float64 `json:"MonthlyCharges"   validate:"required"`
	TotalCharges     *float64 `json:"TotalCharges"     validate:"required"`
}

// PredictResponse Результат оценки оттока
type PredictResponse struct {
	// ChurnProbability Вероятность оттока, округлённая до 4 знаков
	ChurnProbability float64 `json:"churn_probability"`

	// Prediction "Churn" или "No Churn"
	Prediction string `json:"prediction"`

	// RiskLevel "High", "Medium" или "Low"
	RiskLevel string `json:"risk_level"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

// LandingNotFound Ответ GET / при отсутствии index.html
type LandingNotFound struct {
	Error string `json:"error"`
	Path  string `json:"path"`
}

// Error Модель ошибок
type Error struct {
	// Code Код ошибки
	Code ErrorCode `json:"code"`

	// Detail Сообщение об ошибке
	Detail string `json:"detail"`

	// SupportID Идентификатор запроса для поддержки
	SupportID string `json:"supportId"`
}

// ErrorCode Код ошибки
type ErrorCode string
