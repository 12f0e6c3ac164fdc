package config

import (
	"log/slog"
	"os"

	"content-analytics-service/internal/observability"

	"github.com/urfave/cli/v3"
)

// Logger holds logger configuration
type Logger struct {
	Level  string
	Format string
}

// Flags returns CLI flags for Logger configuration
func (l *Logger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level (debug, info, warn, error)",
			Category:    "Logging",
			Value:       "info",
			Sources:     cli.EnvVars("ANALYTICS_LOG_LEVEL"),
			Destination: &l.Level,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "Log format (console, json, auto)",
			Category:    "Logging",
			Value:       "auto",
			Sources:     cli.EnvVars("ANALYTICS_LOG_FORMAT"),
			Destination: &l.Format,
		},
	}
}

// Configure builds the logger writing to stdout.
func (l *Logger) Configure() (*slog.Logger, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	level, _ := observability.ParseLogLevel(l.Level)
	format, _ := observability.ParseLogFormat(l.Format)
	return observability.NewLogger(level, os.Stdout, format), nil
}

// Validate validates the logger configuration
func (l *Logger) Validate() error {
	if _, err := observability.ParseLogLevel(l.Level); err != nil {
		return err
	}
	if _, err := observability.ParseLogFormat(l.Format); err != nil {
		return err
	}
	return nil
}

// LogValue returns structured log value
func (l Logger) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("level", l.Level),
		slog.String("format", l.Format),
	)
}
