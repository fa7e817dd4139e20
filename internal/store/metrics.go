package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/blackwell-systems/daypattern/internal/suggest"
)

const metricsTable = "daily_metrics"

var metricColumns = []string{
	"date", "sleep_hours", "work_hours", "social_time",
	"screen_time", "emotional_energy", "updated_at",
}

// upsertSuffix replaces every value of an existing day; a day is logged once.
const upsertSuffix = `ON CONFLICT(date) DO UPDATE SET
	sleep_hours = excluded.sleep_hours,
	work_hours = excluded.work_hours,
	social_time = excluded.social_time,
	screen_time = excluded.screen_time,
	emotional_energy = excluded.emotional_energy,
	updated_at = excluded.updated_at`

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// UpsertMetric validates m and stores it, replacing any row for the same day.
func (db *DB) UpsertMetric(ctx context.Context, m suggest.DailyMetric) error {
	return db.upsert(ctx, db.conn, m, time.Now())
}

// UpsertMetrics stores a batch in one transaction. Nothing is written unless
// every metric is valid.
func (db *DB) UpsertMetrics(ctx context.Context, metrics []suggest.DailyMetric) error {
	for _, m := range metrics {
		if err := suggest.ValidateMetric(m); err != nil {
			return fmt.Errorf("%s: %w", m.Day(), err)
		}
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	for _, m := range metrics {
		if err := db.upsert(ctx, tx, m, now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (db *DB) upsert(ctx context.Context, ex execer, m suggest.DailyMetric, now time.Time) error {
	if err := suggest.ValidateMetric(m); err != nil {
		return err
	}

	query, args, err := db.sb.Insert(metricsTable).
		Columns(metricColumns...).
		Values(
			m.Day(), m.SleepHours, m.WorkHours, m.SocialTime,
			m.ScreenTime, m.EmotionalEnergy, now.UTC().Format(time.RFC3339),
		).
		Suffix(upsertSuffix).
		ToSql()
	if err != nil {
		return fmt.Errorf("building upsert: %w", err)
	}

	if _, err := ex.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upserting metric for %s: %w", m.Day(), err)
	}
	return nil
}

// GetMetric returns the record for the given day, or nil if none exists.
func (db *DB) GetMetric(ctx context.Context, day time.Time) (*Record, error) {
	records, err := db.queryMetrics(ctx, sq.Eq{"date": day.Format(suggest.DateLayout)})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

// ListMetrics returns records with from <= date <= to, oldest first.
func (db *DB) ListMetrics(ctx context.Context, from, to time.Time) ([]Record, error) {
	return db.queryMetrics(ctx, sq.And{
		sq.GtOrEq{"date": from.Format(suggest.DateLayout)},
		sq.LtOrEq{"date": to.Format(suggest.DateLayout)},
	})
}

// RecentMetrics returns the records of the days calendar days ending on now,
// oldest first. Days without a record are simply absent.
func (db *DB) RecentMetrics(ctx context.Context, days int, now time.Time) ([]Record, error) {
	if days < 1 {
		return nil, fmt.Errorf("days must be at least 1, got %d", days)
	}
	end := truncateDay(now)
	return db.ListMetrics(ctx, end.AddDate(0, 0, -(days-1)), end)
}

// DeleteMetric removes the record for a day and reports whether one existed.
func (db *DB) DeleteMetric(ctx context.Context, day time.Time) (bool, error) {
	query, args, err := db.sb.Delete(metricsTable).
		Where(sq.Eq{"date": day.Format(suggest.DateLayout)}).
		ToSql()
	if err != nil {
		return false, err
	}
	res, err := db.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// CountMetrics returns the number of stored days.
func (db *DB) CountMetrics(ctx context.Context) (int, error) {
	query, args, err := db.sb.Select("COUNT(*)").From(metricsTable).ToSql()
	if err != nil {
		return 0, err
	}
	var n int
	if err := db.conn.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (db *DB) queryMetrics(ctx context.Context, where sq.Sqlizer) ([]Record, error) {
	query, args, err := db.sb.Select(metricColumns...).
		From(metricsTable).
		Where(where).
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building metrics query: %w", err)
	}

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func scanRecord(rows *sql.Rows) (Record, error) {
	var (
		r         Record
		date      string
		updatedAt string
	)
	if err := rows.Scan(
		&date, &r.SleepHours, &r.WorkHours, &r.SocialTime,
		&r.ScreenTime, &r.EmotionalEnergy, &updatedAt,
	); err != nil {
		return Record{}, err
	}

	d, err := time.Parse(suggest.DateLayout, date)
	if err != nil {
		return Record{}, fmt.Errorf("parsing stored date %q: %w", date, err)
	}
	r.Date = d
	r.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return r, nil
}
