package reply_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"git.appkode.ru/pub/go/failure"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/require"

	"telco_churn/pkg/contextx"
	"telco_churn/pkg/errcodes"
	"telco_churn/pkg/httpx/reply"
	"telco_churn/pkg/rest"
)

type testCodedError struct{}

func (testCodedError) Error() string                { return "model artifacts are not loaded" }
func (testCodedError) ErrorCode() failure.ErrorCode { return errcodes.ModelNotLoaded }
func (testCodedError) PublicMessage() string        { return "model artifacts are not loaded" }

func TestError(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name       string
		err        error
		statusCode int
		code       string
		detail     string
	}{
		{
			name: "Validation",
			err: failure.NewInvalidArgumentError(
				"validation error",
				failure.WithCode(errcodes.ValidationError),
				failure.WithDescription("tenure is required"),
			),
			statusCode: http.StatusBadRequest,
			code:       "ValidationError",
			detail:     "tenure is required",
		},
		{
			name:       "Domain error",
			err:        fmt.Errorf("churnService.Predict: %w", testCodedError{}),
			statusCode: http.StatusInternalServerError,
			code:       "ModelNotLoaded",
			detail:     "model artifacts are not loaded",
		},
		{
			name:       "Deadline",
			err:        fmt.Errorf("model.Predict: %w", context.DeadlineExceeded),
			statusCode: http.StatusGatewayTimeout,
			code:       "TimeoutExceeded",
			detail:     "model.Predict: context deadline exceeded",
		},
		{
			name:       "Plain error",
			err:        errors.New("feature vector has 29 values, model expects 30"),
			statusCode: http.StatusInternalServerError,
			code:       "InternalServerError",
			detail:     "feature vector has 29 values, model expects 30",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			ctx := contextx.WithTraceID(context.Background(), "trace-1")
			rec := httptest.NewRecorder()

			reply.Error(ctx, rec, tc.err)

			rq.Equal(tc.statusCode, rec.Code)

			var body rest.Error

			rq.NoError(jsoniter.Unmarshal(rec.Body.Bytes(), &body))
			rq.Equal(tc.code, string(body.Code))
			rq.Equal(tc.detail, body.Detail)
			rq.Equal("trace-1", body.SupportID)
		})
	}
}
