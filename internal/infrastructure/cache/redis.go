package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"telco_churn/pkg/logx"
)

// Redis общий кэш между репликами сервиса.
type Redis struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedis(client redis.UniversalClient, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

// Get ошибки Redis считаются промахом.
func (r *Redis) Get(ctx context.Context, key string) (float64, bool) {
	raw, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger(ctx).Warn("redis.Get", logx.Error(err))
		}

		return 0, false
	}

	p, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		logger(ctx).Warn("strconv.ParseFloat", logx.Error(err))
		return 0, false
	}

	return p, true
}

func (r *Redis) Set(ctx context.Context, key string, probability float64) {
	raw := strconv.FormatFloat(probability, 'g', -1, 64)

	if err := r.client.Set(ctx, key, raw, r.ttl).Err(); err != nil {
		logger(ctx).Warn("redis.Set", logx.Error(err))
	}
}
