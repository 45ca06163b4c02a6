package server

import (
	"net/http"
	"time"

	"git.appkode.ru/pub/go/failure"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"telco_churn/pkg/errcodes"
	"telco_churn/pkg/httpx/reply"
	"telco_churn/pkg/logx"
	"telco_churn/pkg/middlewarex"
)

type RouterOptions struct {
	Registerer       prometheus.Registerer
	MetricsNamespace string
	AllowedOrigins   []string
	RequestTimeout   time.Duration
	Masker           logx.Masker
	LogFieldMaxLen   int
}

func (s Server) NewRouter(opts RouterOptions) http.Handler {
	logging := middlewarex.LoggingOptions{
		Masker: opts.Masker,
		MaxLen: opts.LogFieldMaxLen,
		Quiet:  []string{"/health", "/" + staticDir + "/"},
	}

	r := chi.NewRouter()

	r.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.Recovery,
		middlewarex.CORS(opts.AllowedOrigins),
		middlewarex.Metrics(opts.Registerer, opts.MetricsNamespace),
		middlewarex.RequestLogging(logging),
		middlewarex.ResponseLogging(logging),
	)

	if opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(opts.RequestTimeout))
	}

	s.RegisterRoutes(r)

	return r
}

func (s Server) RegisterRoutes(r chi.Router) {
	r.Get("/", handler(s.getIndex))
	r.Handle("/static/*", s.staticFiles())

	r.Post("/predict", handler(s.postPredict))
	r.Get("/health", handler(s.getHealth))

	r.NotFound(handler(func(_ http.ResponseWriter, r *http.Request) error {
		return failure.NewNotFoundError(
			"route not found",
			failure.WithCode(errcodes.NotFound),
			failure.WithDescription("route "+r.Method+" "+r.URL.Path+" not found"),
		)
	}))
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
