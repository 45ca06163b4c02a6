package logx

const (
	FieldAppName         = "app-name"
	FieldAppVersion      = "app-version"
	FieldCacheHit        = "cache-hit"
	FieldColumns         = "columns"
	FieldDurationMs      = "duration-ms"
	FieldError           = "error"
	FieldHTTPMethod      = "http-method"
	FieldHTTPRequest     = "http-request"
	FieldHTTPResponse    = "http-response"
	FieldIP              = "ip"
	FieldMessageID       = "message-id"
	FieldModelDir        = "model-dir"
	FieldPath            = "path"
	FieldPrediction      = "prediction"
	FieldPredictionID    = "prediction-id"
	FieldProbability     = "probability"
	FieldRequestBody     = "request-body"
	FieldRequestID       = "request-id"
	FieldResponseBody    = "response-body"
	FieldResponseHeaders = "response-headers"
	FieldResponseStatus  = "response-status"
	FieldRiskLevel       = "risk-level"
	FieldRows            = "rows"
	FieldStack           = "stack"
	FieldTaskType        = "task-type"
	FieldTraceID         = "trace-id"
	FieldUnknownValues   = "unknown-values"
	FieldURL             = "url"
)
