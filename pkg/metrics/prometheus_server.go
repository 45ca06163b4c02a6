// Package metrics serves Prometheus metrics on a dedicated port.
package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"telco_churn/pkg/httpx"
)

type PrometheusServer struct {
	listenAddress string
	gatherer      prometheus.Gatherer
}

// NewPrometheusServer exposes the gatherer on /metrics. A nil gatherer means
// the global default registry.
func NewPrometheusServer(listenAddress string, gatherer prometheus.Gatherer) PrometheusServer {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	return PrometheusServer{
		listenAddress: listenAddress,
		gatherer:      gatherer,
	}
}

func (p PrometheusServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(p.gatherer, promhttp.HandlerOpts{ //nolint:exhaustruct
		EnableOpenMetrics: true,
	}))

	return mux
}

func (p PrometheusServer) Run(ctx context.Context) error {
	if err := httpx.Serve(ctx, "metrics", p.listenAddress, p.Handler()); err != nil {
		return fmt.Errorf("httpx.Serve: %w", err)
	}

	return nil
}
