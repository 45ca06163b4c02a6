package reply

import (
	"context"
	"errors"
	"net/http"

	"git.appkode.ru/pub/go/failure"
	jsoniter "github.com/json-iterator/go"

	"telco_churn/pkg/contextx"
	"telco_churn/pkg/errcodes"
	"telco_churn/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

type errorResponse struct {
	Code      string `json:"code"`
	Detail    string `json:"detail"`
	SupportID string `json:"supportId"`
}

func (e *errorResponse) WithDefaultCode(code failure.ErrorCode) {
	if e.Code == "" {
		e.Code = code.String()
	}
}

func (e *errorResponse) WithDefaultDetail(detail string) {
	if e.Detail == "" {
		e.Detail = detail
	}
}

// codedError is implemented by domain errors that carry their own code and a
// message safe to show to the caller.
type codedError interface {
	error
	ErrorCode() failure.ErrorCode
	PublicMessage() string
}

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

func JSON(ctx context.Context, w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger(ctx).Error("json.Encode", logx.Error(err))
	}
}

// Error maps err onto a status code and writes the error body. Client errors
// are logged as warnings.
func Error(ctx context.Context, w http.ResponseWriter, err error) {
	response := errorResponse{
		Code:      failure.Code(err).String(),
		Detail:    failure.Description(err),
		SupportID: supportID(ctx),
	}

	var coded codedError
	if errors.As(err, &coded) {
		response.WithDefaultCode(coded.ErrorCode())
		response.WithDefaultDetail(coded.PublicMessage())
	}

	status, code := classify(err)
	response.WithDefaultCode(code)

	if status >= http.StatusInternalServerError {
		logger(ctx).Error("request failed", logx.Error(err))
		response.WithDefaultDetail(err.Error())
	} else {
		logger(ctx).Warn("request rejected", logx.Error(err))
	}

	JSON(ctx, w, status, response)
}

func classify(err error) (int, failure.ErrorCode) {
	switch {
	case failure.IsInvalidArgumentError(err):
		return http.StatusBadRequest, errcodes.ValidationError
	case failure.IsNotFoundError(err):
		return http.StatusNotFound, errcodes.NotFound
	case failure.IsUnprocessableEntityError(err):
		return http.StatusUnprocessableEntity, errcodes.ValidationError
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, errcodes.TimeoutExceeded
	default:
		return http.StatusInternalServerError, errcodes.InternalServerError
	}
}

func supportID(ctx context.Context) string {
	traceID, err := contextx.TraceIDFromContext(ctx)
	if err != nil {
		return "unsupported"
	}

	return traceID.String()
}
