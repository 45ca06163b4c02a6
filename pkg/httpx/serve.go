package httpx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"telco_churn/pkg/logx"
)

const (
	serveReadHeaderTimeout = 5 * time.Second
	serveShutdownTimeout   = 5 * time.Second
)

// Serve runs an auxiliary HTTP server until ctx is cancelled. Requests
// inherit ctx, so handlers log through the same logger.
func Serve(ctx context.Context, name, listenAddress string, handler http.Handler) error {
	httpServer := &http.Server{ //nolint:exhaustruct
		Addr:              listenAddress,
		Handler:           handler,
		ReadHeaderTimeout: serveReadHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	log := logger(ctx).With(slog.String("server", name), slog.String("address", listenAddress))

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), serveShutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("httpServer.Shutdown", logx.Error(err))
		}
	}()

	log.Info("server started")

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("httpServer.ListenAndServe: %w", err)
	}

	log.Info("server stopped")

	return nil
}
