package connectors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // golang postgres driver
	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"

	"telco_churn/pkg/logx"
)

var ErrNotConnected = errors.New("not connected")

// Postgres holds one sqlx pool for the process lifetime.
type Postgres struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration

	db *sqlx.DB
}

func (p *Postgres) Connect(ctx context.Context) error {
	db, err := sqlx.ConnectContext(ctx, "pgx", p.DSN)
	if err != nil {
		return fmt.Errorf("sqlx.ConnectContext: %w", err)
	}

	db.SetMaxOpenConns(p.MaxOpenConns)
	db.SetMaxIdleConns(p.MaxIdleConns)
	db.SetConnMaxLifetime(p.ConnMaxLifetime)

	p.db = db

	logger(ctx).Info("postgres connected", slog.String("database", p.database()))

	return nil
}

// Client is nil until Connect succeeds.
func (p *Postgres) Client() *sqlx.DB {
	return p.db
}

// Ping serves as a readiness check.
func (p *Postgres) Ping(ctx context.Context) error {
	if p.db == nil {
		return fmt.Errorf("postgres: %w", ErrNotConnected)
	}

	if err := p.db.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres.PingContext: %w", err)
	}

	return nil
}

func (p *Postgres) Close(ctx context.Context) {
	if p.db == nil {
		return
	}

	if err := p.db.Close(); err != nil {
		logger(ctx).Error("postgresClient.Close", logx.Error(err))
	}

	logger(ctx).Info("postgres disconnected", slog.String("database", p.database()))
}

// database never exposes credentials from the DSN.
func (p *Postgres) database() string {
	u, err := url.Parse(p.DSN)
	if err != nil {
		return ""
	}

	return lo.Ternary(u.Path != "", u.Path, u.Host)
}
