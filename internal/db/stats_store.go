package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/recruit-stats/internal/stats"
)

var _ stats.Store = (*DB)(nil)

// Count returns the number of rows matching f.
func (db *DB) Count(ctx context.Context, f stats.Filter) (int64, error) {
	q, err := buildCount(f)
	if err != nil {
		return 0, err
	}
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	var n int64
	if err := db.pool.QueryRow(ctx, q.SQL, q.Args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", f.Entity, err)
	}
	return n, nil
}

// CountByDay groups matching rows by calendar day in the configured zone.
func (db *DB) CountByDay(ctx context.Context, f stats.Filter) ([]stats.DayCount, error) {
	q, err := buildCountByDay(f, db.timeZone)
	if err != nil {
		return nil, err
	}
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	rows, err := db.pool.Query(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to count %s by day: %w", f.Entity, err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (stats.DayCount, error) {
		var dc stats.DayCount
		err := row.Scan(&dc.Day, &dc.Count)
		return dc, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s day counts: %w", f.Entity, err)
	}
	return out, nil
}

// CountByField groups matching rows by a categorical column.
func (db *DB) CountByField(ctx context.Context, f stats.Filter, field stats.GroupField) ([]stats.GroupCount, error) {
	q, err := buildCountByField(f, field)
	if err != nil {
		return nil, err
	}
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	rows, err := db.pool.Query(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to count %s by %s: %w", f.Entity, field, err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (stats.GroupCount, error) {
		var gc stats.GroupCount
		err := row.Scan(&gc.Value, &gc.Count)
		return gc, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s counts by %s: %w", f.Entity, field, err)
	}
	return out, nil
}

// CountByMonth groups matching rows by (year, month) in the configured zone.
func (db *DB) CountByMonth(ctx context.Context, f stats.Filter) ([]stats.MonthCount, error) {
	q, err := buildCountByMonth(f, db.timeZone)
	if err != nil {
		return nil, err
	}
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	rows, err := db.pool.Query(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to count %s by month: %w", f.Entity, err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (stats.MonthCount, error) {
		var mc stats.MonthCount
		err := row.Scan(&mc.Year, &mc.Month, &mc.Count)
		return mc, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s month counts: %w", f.Entity, err)
	}
	return out, nil
}

// CountUsersByRole counts user accounts with the given role.
func (db *DB) CountUsersByRole(ctx context.Context, role string) (int64, error) {
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	var n int64
	err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = $1`, role).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count users with role %s: %w", role, err)
	}
	return n, nil
}

// UpcomingInterviews lists pending interviews scheduled at or after from.
func (db *DB) UpcomingInterviews(ctx context.Context, scope stats.Scope, from time.Time, limit int) ([]stats.InterviewSummary, error) {
	q := buildUpcomingInterviews(scope, from, limit)
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	rows, err := db.pool.Query(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming interviews: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (stats.InterviewSummary, error) {
		var iv stats.InterviewSummary
		err := row.Scan(&iv.ID, &iv.CandidateFirstName, &iv.CandidateLastName, &iv.JobTitle,
			&iv.ScheduledAt, &iv.Kind, &iv.Location, &iv.Status)
		return iv, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan upcoming interviews: %w", err)
	}
	return out, nil
}

// OffersWithCandidateCount lists offers in scope with their candidate count.
func (db *DB) OffersWithCandidateCount(ctx context.Context, scope stats.Scope) ([]stats.OfferSummary, error) {
	q := buildOffersWithCandidateCount(scope)
	ctx, cancel := db.withTimeout(ctx)
	defer cancel()

	rows, err := db.pool.Query(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (stats.OfferSummary, error) {
		var o stats.OfferSummary
		err := row.Scan(&o.ID, &o.JobTitle, &o.CandidateCount, &o.ExpiresAt)
		return o, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan offers: %w", err)
	}
	return out, nil
}
