package modules

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"telco_churn/pkg/logx"
)

// HTTPServer serves httpServer until ctx is cancelled, then drains in-flight
// requests for at most ShutdownTimeout.
type HTTPServer struct {
	Name            string
	ShutdownTimeout time.Duration
}

func (h HTTPServer) Run(
	ctx context.Context,
	g *errgroup.Group,
	httpServer *http.Server,
) {
	log := logger(ctx).With(slog.String("server", h.Name), slog.String("address", httpServer.Addr))

	g.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.ShutdownTimeout)
		defer cancel()

		start := time.Now()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("httpServer.Shutdown", logx.Error(err))

			return fmt.Errorf("httpServer.Shutdown: %w", err)
		}

		log.Info("http server stopped", logx.Duration(time.Since(start)))

		return nil
	})

	g.Go(func() error {
		log.Info("http server started")

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("httpServer.ListenAndServe: %w", err)
		}

		return nil
	})
}
