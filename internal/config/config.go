package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App      App
	Log      Log
	HTTP     HTTP
	Probe    Probe
	Metrics  Metrics
	Model    Model
	Cache    Cache
	Postgres Postgres
	Redis    Redis
	Bot      Bot
}

type App struct {
	Name    string `env:"APP_NAME" envDefault:"telco-churn"`
	Version string `env:"APP_VERSION" envDefault:"dev"`
}

type Log struct {
	Level      string `env:"LOG_LEVEL" envDefault:"info"`
	Format     string `env:"LOG_FORMAT" envDefault:"json"`
	File       string `env:"LOG_FILE"`
	MaxSizeMB  int    `env:"LOG_MAX_SIZE_MB" envDefault:"100"`
	MaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"3"`
}

type HTTP struct {
	ListenAddress  string        `env:"HTTP_LISTEN_ADDRESS" envDefault:":8010"`
	RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" envDefault:"10s"`
	AllowedOrigins []string      `env:"HTTP_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

type Probe struct {
	ListenAddress string `env:"PROBE_LISTEN_ADDRESS" envDefault:":8011"`
}

type Metrics struct {
	ListenAddress string `env:"METRICS_LISTEN_ADDRESS" envDefault:":9090"`
	Namespace     string `env:"METRICS_NAMESPACE" envDefault:"telco_churn"`
}

type Model struct {
	Dir      string `env:"MODELS_DIR" envDefault:"models"`
	WebDir   string `env:"WEB_DIR" envDefault:"web"`
	Required bool   `env:"MODEL_REQUIRED" envDefault:"false"`
}

type Cache struct {
	TTL             time.Duration `env:"CACHE_TTL" envDefault:"10m"`
	CleanupInterval time.Duration `env:"CACHE_CLEANUP_INTERVAL" envDefault:"5m"`
}

type Bot struct {
	Token      string `env:"BOT_TOKEN" json:"-"`
	ChatID     int64  `env:"BOT_CHAT_ID"`
	BufferSize int    `env:"BOT_BUFFER_SIZE" envDefault:"100"`
}

// Enabled сообщает, заданы ли токен и чат для оповещений.
func (b Bot) Enabled() bool {
	return b.Token != "" && b.ChatID != 0
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	config.Bot.Token = correctNewlines(config.Bot.Token)

	return config, nil
}

func correctNewlines(s string) string {
	return strings.NewReplacer(`"`, "", `\n`, "\n").Replace(s)
}
