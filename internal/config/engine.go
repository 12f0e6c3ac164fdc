package config

import (
	"log/slog"
	"os"

	"content-analytics-service/internal/analytics/core/domain"
	"content-analytics-service/internal/analytics/core/usecase"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Engine holds aggregation engine configuration
type Engine struct {
	MaxWorkers       int
	ArchiveAfterDays int
	DeleteAfterDays  int
	PolicyFile       string
}

// Policy is the optional YAML file overriding the engine flags.
type Policy struct {
	MaxWorkers int                `yaml:"max_workers"`
	Thresholds *domain.Thresholds `yaml:"thresholds"`
}

// Flags returns CLI flags for Engine configuration
func (e *Engine) Flags() []cli.Flag {
	defaults := domain.DefaultThresholds()
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "max-workers",
			Usage:       "Maximum concurrent store reads per query",
			Category:    "Engine",
			Value:       usecase.DefaultMaxWorkers,
			Sources:     cli.EnvVars("ANALYTICS_MAX_WORKERS"),
			Destination: &e.MaxWorkers,
		},
		&cli.IntFlag{
			Name:        "archive-after-days",
			Usage:       "Days unused before cleanup recommends ARCHIVE",
			Category:    "Engine",
			Value:       defaults.ArchiveAfterDays,
			Sources:     cli.EnvVars("ANALYTICS_ARCHIVE_AFTER_DAYS"),
			Destination: &e.ArchiveAfterDays,
		},
		&cli.IntFlag{
			Name:        "delete-after-days",
			Usage:       "Days unused before cleanup recommends DELETE",
			Category:    "Engine",
			Value:       defaults.DeleteAfterDays,
			Sources:     cli.EnvVars("ANALYTICS_DELETE_AFTER_DAYS"),
			Destination: &e.DeleteAfterDays,
		},
		&cli.StringFlag{
			Name:        "policy-file",
			Usage:       "YAML file overriding worker count and cleanup thresholds",
			Category:    "Engine",
			Sources:     cli.EnvVars("ANALYTICS_POLICY_FILE"),
			Destination: &e.PolicyFile,
		},
	}
}

// LoadPolicy applies the policy file, when set, on top of the flag values.
func (e *Engine) LoadPolicy() error {
	if e.PolicyFile == "" {
		return nil
	}

	data, err := os.ReadFile(e.PolicyFile)
	if err != nil {
		return goerr.Wrap(err, "failed to read policy file", goerr.V("path", e.PolicyFile))
	}

	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return goerr.Wrap(err, "failed to parse policy file", goerr.V("path", e.PolicyFile))
	}

	if p.MaxWorkers != 0 {
		e.MaxWorkers = p.MaxWorkers
	}
	if p.Thresholds != nil {
		e.ArchiveAfterDays = p.Thresholds.ArchiveAfterDays
		e.DeleteAfterDays = p.Thresholds.DeleteAfterDays
	}
	return nil
}

func (e *Engine) Thresholds() domain.Thresholds {
	return domain.Thresholds{
		ArchiveAfterDays: e.ArchiveAfterDays,
		DeleteAfterDays:  e.DeleteAfterDays,
	}
}

func (e *Engine) Validate() error {
	if e.MaxWorkers <= 0 {
		return goerr.New("max workers must be positive", goerr.V("max_workers", e.MaxWorkers))
	}
	if err := e.Thresholds().Validate(); err != nil {
		return goerr.Wrap(err, "invalid cleanup thresholds",
			goerr.V("archive_after_days", e.ArchiveAfterDays),
			goerr.V("delete_after_days", e.DeleteAfterDays))
	}
	return nil
}

// Options loads the policy file, validates, and returns the facade options.
func (e *Engine) Options() ([]usecase.Option, error) {
	if err := e.LoadPolicy(); err != nil {
		return nil, err
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return []usecase.Option{
		usecase.WithMaxWorkers(e.MaxWorkers),
		usecase.WithThresholds(e.Thresholds()),
	}, nil
}

func (e Engine) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("max_workers", e.MaxWorkers),
		slog.Int("archive_after_days", e.ArchiveAfterDays),
		slog.Int("delete_after_days", e.DeleteAfterDays),
		slog.String("policy_file", e.PolicyFile),
	)
}
