package middlewarex

import (
	"bytes"
	"cmp"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/zenazn/goji/web/mutil"

	"telco_churn/pkg/logx"
)

// ResponseLogging wraps the writer with mutil so optional interfaces such as
// http.Flusher survive the tee.
func ResponseLogging(opts LoggingOptions) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			start := time.Now()
			lw := mutil.WrapWriter(w)
			quiet := opts.quiet(r.URL.Path)

			var buf bytes.Buffer

			if !quiet {
				lw.Tee(&buf)
			}

			next.ServeHTTP(lw, r)

			// lw.Status() is 0 when the handler never called WriteHeader.
			status := cmp.Or(lw.Status(), http.StatusOK)
			elapsed := time.Since(start)

			if quiet {
				logger(ctx).Debug(
					logx.FieldHTTPResponse,
					slog.Int(logx.FieldResponseStatus, status),
					logx.Duration(elapsed),
				)

				return
			}

			headers, err := responseHeaders(w)
			if err != nil {
				logger(ctx).Error("responseHeaders", logx.Error(err))
			}

			level := slog.LevelInfo
			if status >= http.StatusInternalServerError {
				level = slog.LevelWarn
			}

			logger(ctx).Log(
				ctx,
				level,
				logx.FieldHTTPResponse,
				slog.Int(logx.FieldResponseStatus, status),
				slog.String(logx.FieldResponseHeaders, opts.mask(headers)),
				slog.String(logx.FieldResponseBody, opts.mask(buf.Bytes())),
				logx.Duration(elapsed),
			)
		})
	}
}

func responseHeaders(w http.ResponseWriter) ([]byte, error) {
	var buf bytes.Buffer

	if err := w.Header().WriteSubset(&buf, nil); err != nil {
		return nil, fmt.Errorf("header.WriteSubset: %w", err)
	}

	return buf.Bytes(), nil
}
