package middlewarex_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"telco_churn/pkg/contextx"
	"telco_churn/pkg/logx"
	"telco_churn/pkg/middlewarex"
)

func TestTraceID(t *testing.T) {
	rq := require.New(t)

	testCases := []struct {
		name     string
		incoming string
	}{
		{name: "Generated", incoming: ""},
		{name: "Propagated", incoming: "trace-from-client"},
		{name: "Malformed replaced", incoming: "bad trace id"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			var seen contextx.TraceID

			h := middlewarex.TraceID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				traceID, err := contextx.TraceIDFromContext(r.Context())
				rq.NoError(err)

				seen = traceID
			}))

			req := httptest.NewRequest(http.MethodGet, "/health", http.NoBody)
			if tc.incoming != "" {
				req.Header.Set("X-Trace-Id", tc.incoming)
			}

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			rq.NotEmpty(seen)
			rq.Equal(seen.String(), rec.Header().Get("X-Trace-Id"))

			if _, err := contextx.ParseTraceID(tc.incoming); err == nil {
				rq.Equal(tc.incoming, seen.String())
			} else {
				rq.NotEqual(tc.incoming, seen.String())
			}
		})
	}
}

func TestRecovery(t *testing.T) {
	rq := require.New(t)

	var buf bytes.Buffer

	h := middlewarex.Recovery(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	req := httptest.NewRequest(http.MethodPost, "/predict", http.NoBody)
	req = req.WithContext(contextx.WithLogger(req.Context(), slog.New(slog.NewJSONHandler(&buf, nil))))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	rq.Equal(http.StatusInternalServerError, rec.Code)
	rq.Contains(rec.Body.String(), `"code":"InternalServerError"`)
	rq.Contains(rec.Body.String(), "panic: boom")
	rq.Contains(buf.String(), "panic in handler")
	rq.Contains(buf.String(), logx.FieldStack)
}

func TestCORS(t *testing.T) {
	rq := require.New(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	testCases := []struct {
		name        string
		allowed     []string
		method      string
		origin      string
		preflight   bool
		statusCode  int
		allowOrigin string
	}{
		{
			name:        "Wildcard",
			allowed:     []string{"*"},
			method:      http.MethodPost,
			origin:      "http://localhost:3000",
			statusCode:  http.StatusTeapot,
			allowOrigin: "http://localhost:3000",
		},
		{
			name:       "Origin not listed",
			allowed:    []string{"http://example.com"},
			method:     http.MethodPost,
			origin:     "http://localhost:3000",
			statusCode: http.StatusTeapot,
		},
		{
			name:        "Preflight",
			allowed:     []string{"http://example.com"},
			method:      http.MethodOptions,
			origin:      "http://example.com",
			preflight:   true,
			statusCode:  http.StatusNoContent,
			allowOrigin: "http://example.com",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			req := httptest.NewRequest(tc.method, "/predict", http.NoBody)
			req.Header.Set("Origin", tc.origin)

			if tc.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			}

			rec := httptest.NewRecorder()
			middlewarex.CORS(tc.allowed)(next).ServeHTTP(rec, req)

			rq.Equal(tc.statusCode, rec.Code)
			rq.Equal(tc.allowOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestMetrics(t *testing.T) {
	rq := require.New(t)

	registry := prometheus.NewRegistry()

	r := chi.NewRouter()
	r.Use(middlewarex.Metrics(registry, "test"))
	r.Get("/items/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	for _, id := range []string{"1", "2", "3"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/"+id, http.NoBody))
		rq.Equal(http.StatusAccepted, rec.Code)
	}

	count, err := testutil.GatherAndCount(registry, "test_http_request_duration_seconds")
	rq.NoError(err)
	rq.Equal(1, count)

	families, err := registry.Gather()
	rq.NoError(err)
	rq.Len(families, 1)

	metric := families[0].GetMetric()[0]
	rq.EqualValues(3, metric.GetHistogram().GetSampleCount())

	labels := make([]string, 0, len(metric.GetLabel()))
	for _, l := range metric.GetLabel() {
		labels = append(labels, l.GetName()+"="+l.GetValue())
	}

	rq.Equal("method=GET,route=/items/{id},status=202", strings.Join(labels, ","))
}

func TestRequestResponseLogging(t *testing.T) {
	rq := require.New(t)

	opts := middlewarex.LoggingOptions{
		Masker: logx.NewSensitiveDataMasker(),
		MaxLen: 1024,
		Quiet:  []string{"/static/"},
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"churn_probability":0.8124}`))
	})
	h := middlewarex.RequestLogging(opts)(middlewarex.ResponseLogging(opts)(next))

	testCases := []struct {
		name   string
		path   string
		logged bool
	}{
		{name: "Body logged", path: "/predict", logged: true},
		{name: "Quiet path", path: "/static/script.js", logged: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			var buf bytes.Buffer

			log := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

			req := httptest.NewRequest(http.MethodPost, tc.path, strings.NewReader(`{"tenure":1}`))
			req = req.WithContext(contextx.WithLogger(req.Context(), log))

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			rq.Equal(http.StatusOK, rec.Code)
			rq.Equal(`{"churn_probability":0.8124}`, rec.Body.String())

			if tc.logged {
				rq.Contains(buf.String(), logx.FieldHTTPRequest)
				rq.Contains(buf.String(), `tenure`)
				rq.Contains(buf.String(), `churn_probability`)
			} else {
				rq.Empty(buf.String())
			}
		})
	}
}

func TestLogger(t *testing.T) {
	testCases := []struct {
		name    string
		headers map[string]string
		remote  string
		wantIP  string
	}{
		{name: "Remote addr", remote: "10.0.0.7:51234", wantIP: "10.0.0.7"},
		{name: "Real IP", headers: map[string]string{"X-Real-Ip": "192.0.2.1"}, remote: "10.0.0.7:1", wantIP: "192.0.2.1"},
		{
			name:    "Forwarded chain",
			headers: map[string]string{"X-Forwarded-For": "198.51.100.3, 10.0.0.1"},
			remote:  "10.0.0.7:1",
			wantIP:  "198.51.100.3",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rq := require.New(t)

			var buf bytes.Buffer

			h := middlewarex.TraceID(middlewarex.Logger(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				contextx.LoggerFromContextOrDefault(r.Context()).Info("handled")
			})))

			req := httptest.NewRequest(http.MethodGet, "/health?x=1", http.NoBody)
			req.RemoteAddr = tc.remote

			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}

			req = req.WithContext(contextx.WithLogger(req.Context(), slog.New(slog.NewJSONHandler(&buf, nil))))

			h.ServeHTTP(httptest.NewRecorder(), req)

			var line map[string]any
			rq.NoError(jsoniter.Unmarshal(buf.Bytes(), &line))
			rq.Equal(tc.wantIP, line[logx.FieldIP])
			rq.Equal("/health", line[logx.FieldPath])
			rq.Equal(http.MethodGet, line[logx.FieldHTTPMethod])
			rq.NotEmpty(line[logx.FieldTraceID])
		})
	}
}
