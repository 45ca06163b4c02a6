package cache

import (
	"context"
	"log/slog"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"telco_churn/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Store кэш вероятностей по ключу записи клиента.
type Store interface {
	Get(ctx context.Context, key string) (float64, bool)
	Set(ctx context.Context, key string, probability float64)
}

// Memory кэш в памяти процесса.
type Memory struct {
	items *gocache.Cache
}

func NewMemory(ttl, cleanupInterval time.Duration) *Memory {
	return &Memory{items: gocache.New(ttl, cleanupInterval)}
}

func (m *Memory) Get(_ context.Context, key string) (float64, bool) {
	v, ok := m.items.Get(key)
	if !ok {
		return 0, false
	}

	p, ok := v.(float64)

	return p, ok
}

func (m *Memory) Set(_ context.Context, key string, probability float64) {
	m.items.Set(key, probability, gocache.DefaultExpiration)
}

func (m *Memory) Len() int {
	return m.items.ItemCount()
}

// Layered читает из первого уровня, при промахе из следующих, и заполняет
// пропущенные уровни найденным значением.
type Layered struct {
	levels []Store
}

func NewLayered(levels ...Store) *Layered {
	return &Layered{levels: levels}
}

func (l *Layered) Get(ctx context.Context, key string) (float64, bool) {
	for i, level := range l.levels {
		p, ok := level.Get(ctx, key)
		if !ok {
			continue
		}

		for _, upper := range l.levels[:i] {
			upper.Set(ctx, key, p)
		}

		if i > 0 {
			logger(ctx).Debug("cache promoted", slog.Int("level", i))
		}

		return p, true
	}

	return 0, false
}

func (l *Layered) Set(ctx context.Context, key string, probability float64) {
	for _, level := range l.levels {
		level.Set(ctx, key, probability)
	}
}
