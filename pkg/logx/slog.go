package logx

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
)

// Error is rendered in red by the text handler.
var Error = tint.Err //nolint:gochecknoglobals

func Stringer(name string, value fmt.Stringer) slog.Attr {
	return slog.String(name, value.String())
}

// Duration logs d in milliseconds under FieldDurationMs.
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(FieldDurationMs, float64(d.Microseconds())/1000)
}
