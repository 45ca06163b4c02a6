package logx

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	FormatJSON = "json"
	FormatText = "text"
)

type Options struct {
	Level  string
	Format string
	// File enables rotation into the given path in addition to stdout.
	File       string
	MaxSizeMB  int
	MaxBackups int
}

func ParseLevel(level string) (slog.Level, error) {
	var l slog.Level

	if err := l.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("level.UnmarshalText: %w", err)
	}

	return l, nil
}

// NewLogger builds the process logger. The returned closer flushes the
// rotated file, if any.
func NewLogger(opts Options) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("ParseLevel: %w", err)
	}

	var (
		w      io.Writer = os.Stdout
		closer io.Closer = nopCloser{}
	)

	if opts.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
		}

		w = io.MultiWriter(os.Stdout, rotator)
		closer = rotator
	}

	handler, err := NewHandler(w, opts.Format, level)
	if err != nil {
		return nil, nil, err
	}

	return slog.New(handler), closer, nil
}

func NewHandler(w io.Writer, format string, level slog.Level) (slog.Handler, error) {
	switch format {
	case FormatJSON, "":
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}), nil
	case FormatText:
		return tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.DateTime,
		}), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
