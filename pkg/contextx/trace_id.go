package contextx

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/xid"
)

const maxTraceIDLen = 64

var ErrInvalidTraceID = errors.New("invalid trace id")

type TraceID string

type contextKeyTraceID struct{}

func NewTraceID() TraceID {
	return TraceID(xid.New().String())
}

// ParseTraceID accepts client supplied ids made of letters, digits, '-' and '_'.
func ParseTraceID(s string) (TraceID, error) {
	if s == "" || len(s) > maxTraceIDLen {
		return "", fmt.Errorf("%w: length %d", ErrInvalidTraceID, len(s))
	}

	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return "", fmt.Errorf("%w: unexpected %q", ErrInvalidTraceID, c)
		}
	}

	return TraceID(s), nil
}

func (t TraceID) String() string {
	return string(t)
}

func WithTraceID(ctx context.Context, traceID TraceID) context.Context {
	return context.WithValue(ctx, contextKeyTraceID{}, traceID)
}

func TraceIDFromContext(ctx context.Context) (TraceID, error) {
	traceID, ok := ctx.Value(contextKeyTraceID{}).(TraceID)
	if !ok {
		return "", fmt.Errorf("trace id: %w", ErrNoValue)
	}

	return traceID, nil
}
