package fiber

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"content-analytics-service/internal/analytics/core/domain"
	"content-analytics-service/internal/analytics/core/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/m-mizutani/ctxlog"
)

// EntityStatistics is the per-entity query surface the handler serves.
type EntityStatistics interface {
	Overview(ctx context.Context, q usecase.StatsQuery) ([]domain.MetricRow, error)
	UsageTrend(ctx context.Context, q usecase.StatsQuery) ([]domain.TrendPoint, error)
	Trending(ctx context.Context, q usecase.StatsQuery) ([]domain.EntityAnalyticsSnapshot, error)
	Top(ctx context.Context, q usecase.StatsQuery) ([]domain.RankingItem, error)
	Creators(ctx context.Context, q usecase.StatsQuery) ([]domain.RankingItem, error)
	Lifecycle(ctx context.Context, q usecase.StatsQuery) ([]domain.LifecycleItem, error)
	Efficiency(ctx context.Context, q usecase.StatsQuery) ([]domain.EfficiencyItem, error)
	Cleanup(ctx context.Context, q usecase.StatsQuery) ([]domain.RecommendationItem, error)
	StatusDistribution(ctx context.Context) ([]domain.StatusShare, error)
}

// Lookup resolves the statistics of one entity kind.
type Lookup func(kind domain.EntityKind) (EntityStatistics, error)

// FromFacade adapts a StatisticsFacade to a Lookup.
func FromFacade(f *usecase.StatisticsFacade) Lookup {
	return func(kind domain.EntityKind) (EntityStatistics, error) {
		s, err := f.For(kind)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
}

type operation func(ctx context.Context, s EntityStatistics, q usecase.StatsQuery) (any, error)

func op[T any](fn func(s EntityStatistics, ctx context.Context, q usecase.StatsQuery) (T, error)) operation {
	return func(ctx context.Context, s EntityStatistics, q usecase.StatsQuery) (any, error) {
		return fn(s, ctx, q)
	}
}

var operations = map[string]operation{
	"overview":   op(EntityStatistics.Overview),
	"trend":      op(EntityStatistics.UsageTrend),
	"trending":   op(EntityStatistics.Trending),
	"top":        op(EntityStatistics.Top),
	"creators":   op(EntityStatistics.Creators),
	"lifecycle":  op(EntityStatistics.Lifecycle),
	"efficiency": op(EntityStatistics.Efficiency),
	"cleanup":    op(EntityStatistics.Cleanup),
	"status": func(ctx context.Context, s EntityStatistics, _ usecase.StatsQuery) (any, error) {
		return s.StatusDistribution(ctx)
	},
}

type StatsHandler struct {
	lookup Lookup
}

func NewStatsHandler(lookup Lookup) *StatsHandler {
	return &StatsHandler{lookup: lookup}
}

// Register mounts the statistics routes on r.
func (h *StatsHandler) Register(r fiber.Router) {
	r.Get("/stats/:entity/:operation", h.GetStats)
}

// GetStats serves GET /stats/:entity/:operation.
//
// Query parameters: mode (day|week|month|year), start_dt and end_dt
// (2006-01-02 or RFC3339), limit, entity_id and metric.
func (h *StatsHandler) GetStats(c *fiber.Ctx) error {
	entityParam := c.Params("entity")
	opName := c.Params("operation")

	kind, err := domain.ParseEntityKind(entityParam)
	if err != nil {
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: err.Error(),
		})
	}

	run, ok := operations[opName]
	if !ok {
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "unknown operation " + strconv.Quote(opName),
		})
	}

	q, err := parseQuery(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_query",
			Message: err.Error(),
		})
	}

	stats, err := h.lookup(kind)
	if err != nil {
		return h.fail(c, err)
	}

	data, err := run(c.UserContext(), stats, q)
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(http.StatusOK).JSON(StatsResponse{
		Entity:    string(kind),
		Operation: opName,
		Data:      data,
	})
}

func (h *StatsHandler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidRange),
		errors.Is(err, domain.ErrUnsupportedMode),
		errors.Is(err, domain.ErrInvalidLimit),
		errors.Is(err, domain.ErrUnknownMetric),
		errors.Is(err, domain.ErrUnsupportedSource):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_query",
			Message: err.Error(),
		})
	case errors.Is(err, domain.ErrUnknownEntity),
		errors.Is(err, domain.ErrUnsupportedOperation):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: err.Error(),
		})
	default:
		ctxlog.From(c.UserContext()).Error("statistics request failed", "error", err)
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

func parseTime(name, v string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.New("invalid '" + name + "' parameter")
}

func parseQuery(c *fiber.Ctx) (usecase.StatsQuery, error) {
	var q usecase.StatsQuery

	if mode := c.Query("mode", ""); mode != "" {
		m, err := domain.ParseMode(mode)
		if err != nil {
			return q, err
		}
		q.Mode = m
	}

	if v := c.Query("start_dt", ""); v != "" {
		t, err := parseTime("start_dt", v)
		if err != nil {
			return q, err
		}
		q.Start = t
	}
	if v := c.Query("end_dt", ""); v != "" {
		t, err := parseTime("end_dt", v)
		if err != nil {
			return q, err
		}
		q.End = t
	}

	if v := c.Query("limit", ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return q, errors.New("invalid 'limit' parameter")
		}
		q.Limit = n
	}

	if v := c.Query("entity_id", ""); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return q, errors.New("invalid 'entity_id' parameter")
		}
		q.EntityID = &id
	}

	q.Metric = c.Query("metric", "")
	return q, nil
}
