package modules

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"telco_churn/pkg/metrics"
	"telco_churn/pkg/probe"
)

// ProbeServer answers liveness and readiness on a separate port. Readiness
// fails while any of Checks returns an error.
type ProbeServer struct {
	Name          string
	Version       string
	ListenAddress string
	Checks        []probe.ReadinessCheck
}

func (p ProbeServer) Run(ctx context.Context, g *errgroup.Group) {
	srv := probe.NewServer(p.ListenAddress, probe.Options{Name: p.Name, Version: p.Version}, p.Checks...)

	runOps(ctx, g, "probeServer.Run", srv.Run)
}

// MetricServer exposes Gatherer on /metrics.
type MetricServer struct {
	ListenAddress string
	Gatherer      prometheus.Gatherer
}

func (m MetricServer) Run(ctx context.Context, g *errgroup.Group) {
	srv := metrics.NewPrometheusServer(m.ListenAddress, m.Gatherer)

	runOps(ctx, g, "prometheusServer.Run", srv.Run)
}

func runOps(ctx context.Context, g *errgroup.Group, op string, run func(context.Context) error) {
	g.Go(func() error {
		if err := run(ctx); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		return nil
	})
}
