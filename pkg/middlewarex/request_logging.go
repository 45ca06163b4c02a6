package middlewarex

import (
	"log/slog"
	"net/http"
	"net/http/httputil"
	"strings"

	"telco_churn/pkg/logx"
)

// LoggingOptions configures RequestLogging and ResponseLogging.
type LoggingOptions struct {
	Masker logx.Masker
	// MaxLen truncates dumped bodies, 0 disables dumping.
	MaxLen int
	// Quiet path prefixes are logged without bodies at debug level.
	Quiet []string
}

func (o LoggingOptions) quiet(path string) bool {
	for _, prefix := range o.Quiet {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	return false
}

func (o LoggingOptions) mask(dump []byte) string {
	if len(dump) > o.MaxLen {
		dump = dump[:o.MaxLen]
	}

	if o.Masker == nil {
		return string(dump)
	}

	return string(o.Masker.Mask(dump))
}

func RequestLogging(opts LoggingOptions) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if opts.quiet(r.URL.Path) {
				logger(ctx).Debug(logx.FieldHTTPRequest)
				next.ServeHTTP(w, r)

				return
			}

			dumpBody := !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")

			dump, err := httputil.DumpRequest(r, dumpBody)

			logger(ctx).Info(
				logx.FieldHTTPRequest,
				slog.String(logx.FieldRequestBody, opts.mask(dump)),
				logx.Error(err),
			)

			next.ServeHTTP(w, r)
		})
	}
}
