package stats

import (
	"context"
	"sort"
)

// Bucketer computes day-bucketed activity counts.
type Bucketer struct {
	store Store
	opts  Options
}

// NewBucketer returns a Bucketer reading from store.
func NewBucketer(store Store, opts Options) *Bucketer {
	return &Bucketer{store: store, opts: opts.withDefaults()}
}

// Trend returns one point per day with activity in the trailing window
// [now - Days, now], oldest first, labelled with the weekday abbreviation.
// Days without activity are omitted.
func (b *Bucketer) Trend(ctx context.Context, q TrendQuery) ([]Point, error) {
	days, _, err := b.TrendDays(ctx, q)
	if err != nil {
		return nil, err
	}
	return points(days), nil
}

// TrendDays is Trend keeping the calendar day of every point, together with
// the window that was queried. Callers that need a dense axis pass the result
// to Densify.
func (b *Bucketer) TrendDays(ctx context.Context, q TrendQuery) ([]DayPoint, Range, error) {
	if err := q.normalize(); err != nil {
		return nil, Range{}, err
	}
	now := b.opts.now()
	window := Range{From: now.AddDate(0, 0, -q.Days), To: now}

	days, err := b.bucket(ctx, Filter{
		Entity:    q.Entity,
		Scope:     q.Scope,
		DateField: q.DateField,
		Range:     window,
	})
	if err != nil {
		return nil, Range{}, err
	}
	return days, window, nil
}

// Week returns per-day counts over the current calendar week, Monday first.
func (b *Bucketer) Week(ctx context.Context, entity Entity, scope Scope, field DateField) ([]Point, error) {
	if !entity.Valid() {
		return nil, &ValidationError{Err: ErrUnknownEntity}
	}
	if err := CheckDateField(entity, field); err != nil {
		return nil, &ValidationError{Err: err}
	}
	days, err := b.bucket(ctx, Filter{
		Entity:    entity,
		Scope:     scope,
		DateField: field,
		Range:     weekBounds(b.opts.now(), b.opts.Location),
	})
	if err != nil {
		return nil, err
	}
	return points(days), nil
}

// bucket queries per-day counts for f and normalises them: rows are merged
// per calendar day, clamped to f.Range, stripped of empty days and sorted
// ascending.
func (b *Bucketer) bucket(ctx context.Context, f Filter) ([]DayPoint, error) {
	rows, err := b.store.CountByDay(ctx, f)
	if err != nil {
		return nil, err
	}

	loc := b.opts.Location
	first := midnight(f.Range.From, loc)
	last := midnight(f.Range.To, loc)

	merged := make(map[int64]*DayPoint, len(rows))
	for _, row := range rows {
		if row.Count <= 0 {
			continue
		}
		day := calendarDay(row.Day, loc)
		if day.Before(first) || day.After(last) {
			continue
		}
		key := day.Unix()
		if p, ok := merged[key]; ok {
			p.Value += row.Count
			continue
		}
		merged[key] = &DayPoint{
			Day:   day,
			Date:  day.Format("2006-01-02"),
			Point: Point{Label: WeekdayLabel(day.Weekday()), Value: row.Count},
		}
	}

	out := make([]DayPoint, 0, len(merged))
	for _, p := range merged {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out, nil
}

func points(days []DayPoint) []Point {
	out := make([]Point, len(days))
	for i, d := range days {
		out[i] = d.Point
	}
	return out
}

// Densify fills the days of r missing from days with zero-valued points.
// days must be sorted ascending, as returned by TrendDays.
func Densify(days []DayPoint, r Range) []DayPoint {
	if r.From.IsZero() || r.To.IsZero() {
		return days
	}
	loc := r.From.Location()
	byDay := make(map[string]DayPoint, len(days))
	for _, d := range days {
		byDay[d.Date] = d
	}

	var out []DayPoint
	for day := midnight(r.From, loc); !day.After(r.To); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		if p, ok := byDay[key]; ok {
			out = append(out, p)
			continue
		}
		out = append(out, DayPoint{
			Day:   day,
			Date:  key,
			Point: Point{Label: WeekdayLabel(day.Weekday())},
		})
	}
	return out
}
