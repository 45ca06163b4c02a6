package connectors

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"telco_churn/pkg/logx"
)

// Redis serves both the prediction cache and the asynq broker, so the same
// settings are exposed as asynq options.
type Redis struct {
	Username           string
	Password           string
	Address            string
	DatabaseNumber     int
	PoolSize           int
	MinIdleConnections int
	MaxIdleConnections int

	client *redis.Client
}

func (r *Redis) Connect(ctx context.Context) error {
	client := redis.NewClient(&redis.Options{ //nolint:exhaustruct
		Network:      "tcp",
		Addr:         r.Address,
		Username:     r.Username,
		Password:     r.Password,
		DB:           r.DatabaseNumber,
		PoolSize:     r.PoolSize,
		MinIdleConns: r.MinIdleConnections,
		MaxIdleConns: r.MaxIdleConnections,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()

		return fmt.Errorf("redis.Ping: %w", err)
	}

	r.client = client

	logger(ctx).Info(
		"redis connected",
		slog.String("address", r.Address),
		slog.Int("database", r.DatabaseNumber),
	)

	return nil
}

// Client is nil until Connect succeeds.
func (r *Redis) Client() *redis.Client {
	return r.client
}

func (r *Redis) Ping(ctx context.Context) error {
	if r.client == nil {
		return fmt.Errorf("redis: %w", ErrNotConnected)
	}

	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis.Ping: %w", err)
	}

	return nil
}

func (r *Redis) AsynqOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{ //nolint:exhaustruct
		Addr:     r.Address,
		Username: r.Username,
		Password: r.Password,
		DB:       r.DatabaseNumber,
	}
}

func (r *Redis) Close(ctx context.Context) {
	if r.client == nil {
		return
	}

	if err := r.client.Close(); err != nil {
		logger(ctx).Error("redisClient.Close", logx.Error(err))
	}

	logger(ctx).Info(
		"redis disconnected",
		slog.String("address", r.Address),
		slog.Int("database", r.DatabaseNumber),
	)
}
