package usecase

import (
	"context"
	"time"

	"content-analytics-service/internal/analytics/core/domain"
	"content-analytics-service/internal/analytics/core/ports"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("content-analytics-service/analytics")

// Recorder observes every facade operation. observability.Metrics implements it.
type Recorder interface {
	ObserveQuery(entity, operation string, d time.Duration, err error)
}

type nopRecorder struct{}

func (nopRecorder) ObserveQuery(string, string, time.Duration, error) {}

// StatisticsFacade is the single entry point for analytics queries.
// It holds no mutable state and is safe for concurrent use.
type StatisticsFacade struct {
	reader     ports.StatsReaderPort
	pipeline   *Pipeline
	profiles   map[domain.EntityKind]profile
	thresholds domain.Thresholds
	maxWorkers int
	now        func() time.Time
	recorder   Recorder
	tracer     trace.Tracer
}

type Option func(*StatisticsFacade)

// WithMaxWorkers caps the number of concurrent store reads per operation.
func WithMaxWorkers(n int) Option {
	return func(f *StatisticsFacade) {
		if n > 0 {
			f.maxWorkers = n
		}
	}
}

func WithThresholds(t domain.Thresholds) Option {
	return func(f *StatisticsFacade) { f.thresholds = t }
}

// WithClock replaces the wall clock used by point-in-time operations.
func WithClock(now func() time.Time) Option {
	return func(f *StatisticsFacade) { f.now = now }
}

func WithRecorder(r Recorder) Option {
	return func(f *StatisticsFacade) {
		if r != nil {
			f.recorder = r
		}
	}
}

func NewStatisticsFacade(reader ports.StatsReaderPort, opts ...Option) *StatisticsFacade {
	f := &StatisticsFacade{
		reader:     reader,
		profiles:   profiles(),
		thresholds: domain.DefaultThresholds(),
		maxWorkers: DefaultMaxWorkers,
		now:        time.Now,
		recorder:   nopRecorder{},
		tracer:     tracer,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.pipeline = NewPipeline(reader, f.maxWorkers)
	return f
}

// For returns the statistics bound to kind.
func (f *StatisticsFacade) For(kind domain.EntityKind) (*EntityStatistics, error) {
	p, ok := f.profiles[kind]
	if !ok {
		return nil, domain.ErrUnknownEntity
	}
	return &EntityStatistics{facade: f, profile: p}, nil
}

func (f *StatisticsFacade) Tags() *EntityStatistics       { return f.mustFor(domain.EntityTag) }
func (f *StatisticsFacade) Categories() *EntityStatistics { return f.mustFor(domain.EntityCategory) }
func (f *StatisticsFacade) Posts() *EntityStatistics      { return f.mustFor(domain.EntityPost) }
func (f *StatisticsFacade) Users() *EntityStatistics      { return f.mustFor(domain.EntityUser) }
func (f *StatisticsFacade) Subscriptions() *EntityStatistics {
	return f.mustFor(domain.EntitySubscription)
}

func (f *StatisticsFacade) mustFor(kind domain.EntityKind) *EntityStatistics {
	s, err := f.For(kind)
	if err != nil {
		panic(err)
	}
	return s
}

// EntityStatistics runs the facade operations for one entity kind.
type EntityStatistics struct {
	facade  *StatisticsFacade
	profile profile
}

func (s *EntityStatistics) Kind() domain.EntityKind {
	return s.profile.kind
}

// run wraps one operation with a span, query metrics and error context.
func run[T any](ctx context.Context, s *EntityStatistics, op string, q StatsQuery, fn func(ctx context.Context) (T, error)) (T, error) {
	f := s.facade
	entity := string(s.profile.kind)

	ctx, span := f.tracer.Start(ctx, "statistics."+op, trace.WithAttributes(
		attribute.String("entity", entity),
		attribute.String("mode", string(q.Mode)),
	))
	defer span.End()

	started := time.Now()
	out, err := fn(ctx)
	elapsed := time.Since(started)
	f.recorder.ObserveQuery(entity, op, elapsed, err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, op+" failed")

		var zero T
		return zero, goerr.Wrap(err, "statistics query failed",
			goerr.V("operation", op),
			goerr.V("entity", entity),
			goerr.V("mode", string(q.Mode)),
			goerr.V("start", q.Start),
			goerr.V("end", q.End),
		)
	}

	ctxlog.From(ctx).Debug("statistics query done",
		"operation", op,
		"entity", entity,
		"mode", q.Mode,
		"elapsed", elapsed,
	)
	return out, nil
}
