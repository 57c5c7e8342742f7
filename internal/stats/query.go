package stats

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Default window and list sizes used by the dashboards.
const (
	DefaultTrendDays     = 7
	MaxTrendDays         = 366
	DefaultUpcomingLimit = 3
	MaxUpcomingLimit     = 50
)

var validate = validator.New()

// ValidationError reports a query rejected before reaching the store.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return "invalid query: " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func validateStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}

// Point is one labelled value of a chart series.
type Point struct {
	Label string `json:"name"`
	Value int64  `json:"value"`
}

// DayPoint is a Point that remembers the calendar day it counts.
type DayPoint struct {
	Day  time.Time `json:"-"`
	Date string    `json:"date"`
	Point
}

// TrendQuery parameterises a day-bucketed trend.
type TrendQuery struct {
	Entity    Entity `validate:"required"`
	Scope     Scope
	Days      int `validate:"min=1,max=366"`
	DateField DateField
}

func (q *TrendQuery) normalize() error {
	if q.Days == 0 {
		q.Days = DefaultTrendDays
	}
	if err := validateStruct(q); err != nil {
		return err
	}
	if !q.Entity.Valid() {
		return &ValidationError{Err: ErrUnknownEntity}
	}
	if err := CheckDateField(q.Entity, q.DateField); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}

// UpcomingQuery parameterises the upcoming interviews list.
type UpcomingQuery struct {
	Scope Scope
	Limit int `validate:"min=1,max=50"`
}

func (q *UpcomingQuery) normalize() error {
	if q.Limit == 0 {
		q.Limit = DefaultUpcomingLimit
	}
	return validateStruct(q)
}

// Options configures the components of this package. Zero values fall back to
// UTC, time.Now and a fan-out of four concurrent sub-queries.
type Options struct {
	Location    *time.Location
	Now         func() time.Time
	Concurrency int
}

func (o Options) withDefaults() Options {
	if o.Location == nil {
		o.Location = time.UTC
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Concurrency <= 0 {
		o.Concurrency = 4
	}
	return o
}

func (o Options) now() time.Time {
	return o.Now().In(o.Location)
}

// midnight returns the start of t's calendar day in loc.
func midnight(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// calendarDay reinterprets the calendar date carried by t in loc, ignoring
// t's own zone. Drivers commonly return DATE columns as UTC midnight.
func calendarDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// weekBounds returns Monday 00:00 through Sunday 23:59:59.999999999 of the
// calendar week containing now.
func weekBounds(now time.Time, loc *time.Location) Range {
	start := midnight(now, loc)
	offset := (int(start.Weekday()) + 6) % 7
	start = start.AddDate(0, 0, -offset)
	return Range{From: start, To: start.AddDate(0, 0, 7).Add(-time.Nanosecond)}
}
