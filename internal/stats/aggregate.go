package stats

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// Aggregator computes categorical group-by counts.
type Aggregator struct {
	store Store
	opts  Options
}

// NewAggregator returns an Aggregator reading from store.
func NewAggregator(store Store, opts Options) *Aggregator {
	return &Aggregator{store: store, opts: opts.withDefaults()}
}

// By counts the rows of entity within scope per distinct value of field.
// Values absent from the data are not emitted. Points are sorted by label.
func (a *Aggregator) By(ctx context.Context, entity Entity, field GroupField, scope Scope) ([]Point, error) {
	if err := CheckGrouping(entity, field); err != nil {
		return nil, &ValidationError{Err: err}
	}
	rows, err := a.store.CountByField(ctx, Filter{Entity: entity, Scope: scope}, field)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		if row.Count <= 0 {
			continue
		}
		counts[row.Value] += row.Count
	}

	out := make([]Point, 0, len(counts))
	for label, n := range counts {
		out = append(out, Point{Label: label, Value: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out, nil
}

// Monthly counts the rows of entity within scope created during the current
// calendar year, one point per (year, month) with activity, in calendar order.
// A month number outside [1, 12] fails the whole call.
func (a *Aggregator) Monthly(ctx context.Context, entity Entity, scope Scope) ([]Point, error) {
	if !entity.Valid() {
		return nil, &ValidationError{Err: ErrUnknownEntity}
	}
	now := a.opts.now()
	loc := a.opts.Location
	start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc)
	end := start.AddDate(1, 0, 0).Add(-time.Nanosecond)

	rows, err := a.store.CountByMonth(ctx, Filter{
		Entity:    entity,
		Scope:     scope,
		DateField: CreatedAt,
		Range:     Range{From: start, To: end},
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Year != rows[j].Year {
			return rows[i].Year < rows[j].Year
		}
		return rows[i].Month < rows[j].Month
	})

	out := make([]Point, 0, len(rows))
	for _, row := range rows {
		label, err := MonthLabel(row.Month)
		if err != nil {
			return nil, fmt.Errorf("monthly %s: %w", entity, err)
		}
		if row.Count <= 0 {
			continue
		}
		out = append(out, Point{Label: label, Value: row.Count})
	}
	return out, nil
}
