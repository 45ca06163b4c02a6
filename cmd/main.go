package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"telco_churn/internal/application"
	"telco_churn/internal/config"
	"telco_churn/pkg/contextx"
	"telco_churn/pkg/logx"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config.Load", logx.Error(err))
		os.Exit(1)
	}

	log, closer, err := logx.NewLogger(logx.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	if err != nil {
		slog.Error("logx.NewLogger", logx.Error(err))
		os.Exit(1)
	}

	slog.SetDefault(log)
	ctx = contextx.WithLogger(ctx, log)

	log.Info("application starting", slog.String("name", cfg.App.Name), slog.String("version", cfg.App.Version))

	code := 0
	if err := application.Run(ctx, cfg); err != nil {
		log.Error("application failed", logx.Error(err))
		code = 1
	} else {
		log.Info("application stopped")
	}

	_ = closer.Close()

	os.Exit(code) //nolint:gocritic // cancel is a no-op past this point
}
