package middlewarex

import (
	"net/http"

	"telco_churn/pkg/contextx"
)

const headerNameTraceID = "X-Trace-Id"

// TraceID keeps a well-formed incoming X-Trace-Id and generates one otherwise.
func TraceID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID, err := contextx.ParseTraceID(r.Header.Get(headerNameTraceID))
		if err != nil {
			traceID = contextx.NewTraceID()
		}

		ctx := contextx.WithTraceID(r.Context(), traceID)

		w.Header().Set(headerNameTraceID, traceID.String())

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
