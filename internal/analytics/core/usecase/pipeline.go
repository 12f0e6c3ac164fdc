package usecase

import (
	"context"
	"fmt"
	"time"

	"content-analytics-service/internal/analytics/core/domain"
	"content-analytics-service/internal/analytics/core/ports"

	"golang.org/x/sync/errgroup"
)

const DefaultMaxWorkers = 4

// AggregateRequest describes one bucketed aggregation. From/To bound the store
// reads; when zero they default to the outer edges of Buckets.
type AggregateRequest struct {
	Buckets  []domain.TimeBucket
	Mode     domain.Mode
	From     time.Time
	To       time.Time
	Sources  []domain.MetricSource
	EntityID *int64
}

func (r AggregateRequest) bounds() (time.Time, time.Time) {
	from, to := r.From, r.To
	if from.IsZero() {
		from = r.Buckets[0].Start
	}
	if to.IsZero() {
		to = r.Buckets[len(r.Buckets)-1].End
	}
	return from, to
}

// Pipeline merges per-source bulk reads into one zero-filled row per bucket.
type Pipeline struct {
	reader     ports.StatsReaderPort
	maxWorkers int
}

func NewPipeline(reader ports.StatsReaderPort, maxWorkers int) *Pipeline {
	if maxWorkers <= 0 {
		maxWorkers = DefaultMaxWorkers
	}
	return &Pipeline{reader: reader, maxWorkers: maxWorkers}
}

// Aggregate issues exactly one CountByBucket read per source, at most
// maxWorkers at a time, and returns len(req.Buckets) rows in bucket order.
// Any failed read fails the whole aggregation.
func (p *Pipeline) Aggregate(ctx context.Context, req AggregateRequest) ([]domain.MetricRow, error) {
	if len(req.Buckets) == 0 {
		return []domain.MetricRow{}, nil
	}
	if !req.Mode.Valid() {
		return nil, domain.ErrUnsupportedMode
	}

	seen := make(map[string]struct{}, len(req.Sources))
	for _, src := range req.Sources {
		if err := src.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[src.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate metric name %q", domain.ErrUnsupportedSource, src.Name)
		}
		seen[src.Name] = struct{}{}
	}

	from, to := req.bounds()
	counts := make([]map[int64]int64, len(req.Sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.maxWorkers)

	for i, src := range req.Sources {
		g.Go(func() error {
			rows, err := p.reader.CountByBucket(gctx, ports.EventFilter{
				Source:   src,
				From:     from,
				To:       to,
				EntityID: req.EntityID,
			}, req.Mode)
			if err != nil {
				return err
			}

			byBucket := make(map[int64]int64, len(rows))
			for _, r := range rows {
				byBucket[req.Mode.Truncate(r.BucketStart).Unix()] += r.Count
			}
			counts[i] = byBucket
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]domain.MetricRow, len(req.Buckets))
	for i, b := range req.Buckets {
		metrics := make(map[string]int64, len(req.Sources))
		for j, src := range req.Sources {
			metrics[src.Name] = counts[j][b.Key()]
		}
		out[i] = domain.MetricRow{Bucket: b, Metrics: metrics}
	}

	return out, nil
}
