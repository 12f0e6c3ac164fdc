package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"content-analytics-service/internal/analytics/core/domain"
	"content-analytics-service/internal/analytics/core/ports"
)

// StatsRepository answers the read port with parameterized bulk queries.
// Every driver failure is returned as *domain.StoreQueryError.
type StatsRepository struct {
	db      DB
	dialect Dialect
}

func NewStatsRepository(db DB, dialect Dialect) *StatsRepository {
	return &StatsRepository{db: db, dialect: dialect}
}

var _ ports.StatsReaderPort = (*StatsRepository)(nil)

// CountEvents counts one window. Series reads use CountByBucket instead.
func (r *StatsRepository) CountEvents(ctx context.Context, src domain.MetricSource, from, to time.Time, entityID *int64) (int64, error) {
	s, err := streamFor(src)
	if err != nil {
		return 0, err
	}

	args := NewArgs(r.dialect)
	conds := r.window(s, from, to, args)
	if entityID != nil {
		conds = append(conds, fmt.Sprintf("%s = %s", s.keyCol, args.Add(*entityID)))
	}

	query := fmt.Sprintf(`
SELECT
    COUNT(*) AS total_count
FROM %s
WHERE %s`, s.table, where(conds))

	var total int64
	err = r.query(ctx, "count_events", src.String(), query, args.Values(), func(rows RowScanner) error {
		return rows.Scan(&total)
	})
	return total, err
}

func (r *StatsRepository) CountByBucket(ctx context.Context, f ports.EventFilter, mode domain.Mode) ([]domain.BucketCount, error) {
	if !mode.Valid() {
		return nil, domain.ErrUnsupportedMode
	}
	s, err := streamFor(f.Source)
	if err != nil {
		return nil, err
	}

	args := NewArgs(r.dialect)
	conds := r.window(s, f.From, f.To, args)
	if f.EntityID != nil {
		conds = append(conds, fmt.Sprintf("%s = %s", s.keyCol, args.Add(*f.EntityID)))
	}

	query := fmt.Sprintf(`
SELECT
    %s AS bucket,
    COUNT(*) AS total_count
FROM %s
WHERE %s
GROUP BY 1
ORDER BY 1`, r.dialect.Bucket(mode, s.timeCol), s.table, where(conds))

	var out []domain.BucketCount
	err = r.query(ctx, "count_by_bucket", f.Source.String(), query, args.Values(), func(rows RowScanner) error {
		var raw any
		var count int64
		if err := rows.Scan(&raw, &count); err != nil {
			return err
		}
		ts, err := toTime(raw)
		if err != nil {
			return err
		}
		out = append(out, domain.BucketCount{BucketStart: mode.Truncate(ts), Count: count})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *StatsRepository) CountByEntity(ctx context.Context, f ports.EntityCountFilter) (map[int64]int64, error) {
	s, col, args, conds, err := r.grouped(f)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
SELECT
    %s AS group_key,
    COUNT(*) AS total_count
FROM %s
WHERE %s
GROUP BY 1`, col, s.table, where(conds))

	out := make(map[int64]int64)
	err = r.query(ctx, "count_by_entity", f.Source.String(), query, args.Values(), func(rows RowScanner) error {
		var id, count int64
		if err := rows.Scan(&id, &count); err != nil {
			return err
		}
		out[id] = count
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *StatsRepository) LastActivity(ctx context.Context, f ports.EntityCountFilter) (map[int64]time.Time, error) {
	s, col, args, conds, err := r.grouped(f)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
SELECT
    %s AS group_key,
    MAX(%s) AS last_activity
FROM %s
WHERE %s
GROUP BY 1`, col, s.timeCol, s.table, where(conds))

	out := make(map[int64]time.Time)
	err = r.query(ctx, "last_activity", f.Source.String(), query, args.Values(), func(rows RowScanner) error {
		var id int64
		var raw any
		if err := rows.Scan(&id, &raw); err != nil {
			return err
		}
		if raw == nil {
			return nil
		}
		ts, err := toTime(raw)
		if err != nil {
			return err
		}
		out[id] = ts
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *StatsRepository) ListEntities(ctx context.Context, kind domain.EntityKind, ids []int64) ([]domain.EntityRecord, error) {
	t, ok := entityTables[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s has no entity table", domain.ErrUnknownEntity, kind)
	}
	if ids != nil && len(ids) == 0 {
		return []domain.EntityRecord{}, nil
	}

	creator := "NULL"
	if t.creatorCol != "" {
		creator = t.creatorCol
	}

	args := NewArgs(r.dialect)
	var conds []string
	if ids != nil {
		conds = append(conds, r.dialect.InIDs("id", ids, args))
	}

	query := fmt.Sprintf(`
SELECT
    id,
    %s AS name,
    is_active,
    is_deleted,
    create_date,
    %s AS creator_id
FROM %s
WHERE %s
ORDER BY id`, t.nameCol, creator, t.table, where(conds))

	var out []domain.EntityRecord
	err := r.query(ctx, "list_entities", string(kind), query, args.Values(), func(rows RowScanner) error {
		var rec domain.EntityRecord
		var created any
		var creatorID sql.NullInt64
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.IsActive, &rec.IsDeleted, &created, &creatorID); err != nil {
			return err
		}
		ts, err := toTime(created)
		if err != nil {
			return err
		}
		rec.CreateDate = ts
		if creatorID.Valid {
			id := creatorID.Int64
			rec.CreatorID = &id
		}
		out = append(out, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *StatsRepository) grouped(f ports.EntityCountFilter) (stream, string, *Args, []string, error) {
	s, err := streamFor(f.Source)
	if err != nil {
		return stream{}, "", nil, nil, err
	}
	col, err := s.groupCol(f.GroupBy)
	if err != nil {
		return stream{}, "", nil, nil, err
	}

	args := NewArgs(r.dialect)
	conds := r.window(s, f.From, f.To, args)
	conds = append(conds, col+" IS NOT NULL")
	if f.IDs != nil {
		conds = append(conds, r.dialect.InIDs(col, f.IDs, args))
	}
	return s, col, args, conds, nil
}

// window builds the stream predicate plus the optional [from, to) bounds.
func (r *StatsRepository) window(s stream, from, to time.Time, args *Args) []string {
	var conds []string
	if s.predicate != "" {
		conds = append(conds, s.predicate)
	}
	if !from.IsZero() {
		conds = append(conds, fmt.Sprintf("%s >= %s", s.timeCol, args.Add(r.dialect.TimeArg(from.UTC()))))
	}
	if !to.IsZero() {
		conds = append(conds, fmt.Sprintf("%s < %s", s.timeCol, args.Add(r.dialect.TimeArg(to.UTC()))))
	}
	return conds
}

func where(conds []string) string {
	if len(conds) == 0 {
		return "1 = 1"
	}
	return strings.Join(conds, " AND ")
}

func (r *StatsRepository) query(ctx context.Context, op, source, query string, args []any, scan func(RowScanner) error) error {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return &domain.StoreQueryError{Op: op, Source: source, Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return &domain.StoreQueryError{Op: op, Source: source, Err: err}
		}
	}

	if err := rows.Err(); err != nil {
		return &domain.StoreQueryError{Op: op, Source: source, Err: err}
	}
	return nil
}
