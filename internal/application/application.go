package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"telco_churn/internal/config"
	"telco_churn/internal/domain/entity"
	"telco_churn/internal/domain/service/churn"
	"telco_churn/internal/infrastructure/cache"
	"telco_churn/internal/infrastructure/notifier"
	"telco_churn/internal/infrastructure/persistence"
	"telco_churn/internal/infrastructure/queue"
	"telco_churn/internal/ml"
	"telco_churn/internal/server"
	"telco_churn/internal/worker"
	"telco_churn/pkg/application/connectors"
	"telco_churn/pkg/application/modules"
	"telco_churn/pkg/contextx"
	"telco_churn/pkg/httpx"
	"telco_churn/pkg/logx"
	"telco_churn/pkg/probe"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const (
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
	logFieldMaxLen    = 4096
	botRequestTimeout = 15 * time.Second
)

// Run поднимает сервис предсказаний и блокируется до отмены контекста.
func Run(ctx context.Context, cfg config.Config) error {
	g, ctx := errgroup.WithContext(ctx)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	svc := churn.NewService(registry, cfg.Metrics.Namespace)

	model, err := ml.LoadModel(cfg.Model.Dir, entity.CustomerFields())
	if err != nil {
		if cfg.Model.Required {
			return fmt.Errorf("ml.LoadModel: %w", err)
		}

		logger(ctx).Error(
			"model artifacts are not loaded, predictions will fail",
			slog.String(logx.FieldModelDir, cfg.Model.Dir),
			logx.Error(err),
		)
	} else {
		svc.WithModel(model)
		logger(ctx).Info(
			"model loaded",
			slog.String(logx.FieldModelDir, cfg.Model.Dir),
			slog.Int(logx.FieldColumns, model.Schema().Len()),
		)
	}

	checks := []probe.ReadinessCheck{svc.Check}
	stores := []cache.Store{cache.NewMemory(cfg.Cache.TTL, cfg.Cache.CleanupInterval)}

	var redisConnector *connectors.Redis

	if cfg.Redis.Enabled() {
		redisConnector = &connectors.Redis{
			Username:           cfg.Redis.Username,
			Password:           cfg.Redis.Password,
			Address:            cfg.Redis.Address,
			DatabaseNumber:     cfg.Redis.DatabaseNumber,
			PoolSize:           cfg.Redis.PoolSize,
			MinIdleConnections: cfg.Redis.MinIdleConnections,
			MaxIdleConnections: cfg.Redis.MaxIdleConnections,
		}
		if err := redisConnector.Connect(ctx); err != nil {
			return fmt.Errorf("redisConnector.Connect: %w", err)
		}
		defer redisConnector.Close(ctx)

		stores = append(stores, cache.NewRedis(redisConnector.Client(), cfg.Cache.TTL))
		checks = append(checks, redisConnector.Ping)
	}

	svc.WithCache(cache.NewLayered(stores...))

	if cfg.Postgres.Enabled() {
		pg := &connectors.Postgres{
			DSN:             cfg.Postgres.DSN,
			MaxOpenConns:    cfg.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Postgres.MaxIdleConns,
			ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		}
		if err := pg.Connect(ctx); err != nil {
			return fmt.Errorf("pg.Connect: %w", err)
		}
		defer pg.Close(ctx)

		checks = append(checks, pg.Ping)
		repo := persistence.NewPredictionRepository(pg.Client())

		if redisConnector != nil {
			client := asynq.NewClient(redisConnector.AsynqOpt())
			defer client.Close()

			svc.WithRecorder(queue.NewPredictionLog(client))

			modules.AsynqServer{
				Redis:       redisConnector.AsynqOpt(),
				Concurrency: cfg.Redis.WorkerConcurrency,
			}.Run(
				ctx,
				g,
				modules.AsynqQueues{queue.QueuePredictions: 1},
				modules.AsynqHandler{
					Pattern: queue.TypePredictionLog,
					Handle:  worker.NewPredictionLog(repo).Handle,
				},
			)
		} else {
			svc.WithRecorder(repo)
		}
	}

	if cfg.Bot.Enabled() {
		botClient := &http.Client{
			Timeout: botRequestTimeout,
			Transport: httpx.NewLoggingRoundTripper(
				http.DefaultTransport,
				httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
				httpx.WithLogFieldMaxLen(logFieldMaxLen),
			),
		}

		alerts, err := notifier.NewTelegramBot(cfg.Bot.Token, cfg.Bot.ChatID, cfg.Bot.BufferSize, botClient)
		if err != nil {
			return fmt.Errorf("notifier.NewTelegramBot: %w", err)
		}

		svc.WithAlerts(alerts)
		modules.Worker{Name: "high-risk-alerts"}.Run(ctx, g, alerts.Run)
	}

	srv := server.NewServer(
		server.NewChurnServer(svc),
		server.NewWebServer(cfg.Model.WebDir),
	)

	httpServer := &http.Server{
		Addr: cfg.HTTP.ListenAddress,
		Handler: srv.NewRouter(server.RouterOptions{
			Registerer:       registry,
			MetricsNamespace: cfg.Metrics.Namespace,
			AllowedOrigins:   cfg.HTTP.AllowedOrigins,
			RequestTimeout:   cfg.HTTP.RequestTimeout,
			Masker:           logx.NewSensitiveDataMasker(),
			LogFieldMaxLen:   logFieldMaxLen,
		}),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	modules.HTTPServer{Name: "api", ShutdownTimeout: shutdownTimeout}.Run(ctx, g, httpServer)

	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.Probe.ListenAddress,
		Checks:        checks,
	}.Run(ctx, g)

	modules.MetricServer{
		ListenAddress: cfg.Metrics.ListenAddress,
		Gatherer:      registry,
	}.Run(ctx, g)

	if err := g.Wait(); err != nil {
		return fmt.Errorf("errgroup.Wait: %w", err)
	}

	return nil
}
