package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"telco_churn/internal/domain"
	"telco_churn/pkg/errcodes"
)

func TestAppError(t *testing.T) {
	rq := require.New(t)

	cause := errors.New("vector has 3 features, model expects 30")

	testCases := []struct {
		name    string
		err     error
		message string
	}{
		{
			name:    "Without cause",
			err:     domain.NewError(errcodes.ModelNotLoaded, "model artifacts are not loaded"),
			message: "model artifacts are not loaded",
		},
		{
			name:    "With cause",
			err:     domain.WrapError(cause, errcodes.PredictionFailed, "prediction failed"),
			message: "prediction failed: vector has 3 features, model expects 30",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			wrapped := fmt.Errorf("churn.Predict: %w", tc.err)

			rq.True(domain.IsAppError(wrapped))
			rq.Equal(tc.message, tc.err.Error())

			var appErr *domain.AppError
			rq.ErrorAs(wrapped, &appErr)
			rq.Equal(tc.message, appErr.PublicMessage())
			rq.Equal(appErr.Code, appErr.ErrorCode())
		})
	}

	code, ok := domain.GetCode(fmt.Errorf("x: %w", domain.WrapError(cause, errcodes.AlignmentFailed, "alignment failed")))
	rq.True(ok)
	rq.Equal(errcodes.AlignmentFailed, code)
	rq.ErrorIs(domain.WrapError(cause, errcodes.AlignmentFailed, "alignment failed"), cause)

	rq.True(domain.HasCode(fmt.Errorf("x: %w", domain.NewError(errcodes.ModelNotLoaded, "not loaded")), errcodes.ModelNotLoaded))
	rq.False(domain.HasCode(domain.NewError(errcodes.ModelNotLoaded, "not loaded"), errcodes.PredictionFailed))
	rq.ErrorIs(domain.NewError(errcodes.NotFound, "a"), domain.NewError(errcodes.NotFound, "b"))

	_, ok = domain.GetCode(cause)
	rq.False(ok)
	rq.False(domain.IsAppError(cause))
}
