package stats

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// AdminSummary is the administrator dashboard header.
type AdminSummary struct {
	TotalCandidates int64   `json:"totalCandidats"`
	TotalOffers     int64   `json:"totalOffres"`
	TotalInterviews int64   `json:"totalEntretiens"`
	TotalRecruiters int64   `json:"totalRecruteurs"`
	CandidatesTrend []Point `json:"candidatsTendance"`
	OffersTrend     []Point `json:"offresTendance"`
	InterviewsTrend []Point `json:"entretiensTendance"`
}

// RecruiterSummary is the recruiter dashboard header.
type RecruiterSummary struct {
	TotalCandidates   int64   `json:"totalMesCandidats"`
	TotalOffers       int64   `json:"totalMesOffres"`
	TotalInterviews   int64   `json:"totalMesEntretiens"`
	PendingInterviews int64   `json:"entretiensPending"`
	CandidatesTrend   []Point `json:"candidatsTendance"`
	InterviewsTrend   []Point `json:"entretiensTendance"`
}

// Dashboard composes counts and trends into role-specific payloads.
//
// Each composed call is all-or-nothing: sub-queries share a derived context,
// the first failure cancels the rest and no partial payload is returned.
type Dashboard struct {
	store      Store
	opts       Options
	bucketer   *Bucketer
	aggregator *Aggregator
}

// NewDashboard returns a Dashboard reading from store.
func NewDashboard(store Store, opts Options) *Dashboard {
	opts = opts.withDefaults()
	return &Dashboard{
		store:      store,
		opts:       opts,
		bucketer:   NewBucketer(store, opts),
		aggregator: NewAggregator(store, opts),
	}
}

// Bucketer returns the trend component sharing this dashboard's options.
func (d *Dashboard) Bucketer() *Bucketer { return d.bucketer }

// Aggregator returns the group-by component sharing this dashboard's options.
func (d *Dashboard) Aggregator() *Aggregator { return d.aggregator }

func (d *Dashboard) group(ctx context.Context) (*errgroup.Group, context.Context) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.opts.Concurrency)
	return g, gctx
}

func (d *Dashboard) count(ctx context.Context, dst *int64, f Filter) func() error {
	return func() error {
		n, err := d.store.Count(ctx, f)
		if err != nil {
			return err
		}
		*dst = n
		return nil
	}
}

func (d *Dashboard) trend(ctx context.Context, dst *[]Point, entity Entity, scope Scope) func() error {
	return func() error {
		pts, err := d.bucketer.Trend(ctx, TrendQuery{Entity: entity, Scope: scope, Days: DefaultTrendDays})
		if err != nil {
			return err
		}
		*dst = pts
		return nil
	}
}

// AdminSummary returns global totals and the 7-day trends of candidates,
// offers and interviews.
func (d *Dashboard) AdminSummary(ctx context.Context) (*AdminSummary, error) {
	var s AdminSummary
	g, gctx := d.group(ctx)
	all := Global()

	g.Go(d.count(gctx, &s.TotalCandidates, Filter{Entity: Candidates, Scope: all}))
	g.Go(d.count(gctx, &s.TotalOffers, Filter{Entity: Offers, Scope: all}))
	g.Go(d.count(gctx, &s.TotalInterviews, Filter{Entity: Interviews, Scope: all}))
	g.Go(func() error {
		n, err := d.store.CountUsersByRole(gctx, RoleRecruiter)
		if err != nil {
			return err
		}
		s.TotalRecruiters = n
		return nil
	})
	g.Go(d.trend(gctx, &s.CandidatesTrend, Candidates, all))
	g.Go(d.trend(gctx, &s.OffersTrend, Offers, all))
	g.Go(d.trend(gctx, &s.InterviewsTrend, Interviews, all))

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &s, nil
}

// RecruiterSummary returns the totals and 7-day trends of the recruiter
// owning ownerID's offers.
func (d *Dashboard) RecruiterSummary(ctx context.Context, ownerID uuid.UUID) (*RecruiterSummary, error) {
	scope, err := ownerScope(ownerID)
	if err != nil {
		return nil, err
	}

	var s RecruiterSummary
	g, gctx := d.group(ctx)

	g.Go(d.count(gctx, &s.TotalCandidates, Filter{Entity: Candidates, Scope: scope}))
	g.Go(d.count(gctx, &s.TotalOffers, Filter{Entity: Offers, Scope: scope}))
	g.Go(d.count(gctx, &s.TotalInterviews, Filter{Entity: Interviews, Scope: scope}))
	g.Go(d.count(gctx, &s.PendingInterviews, Filter{Entity: Interviews, Scope: scope, Status: StatusPending}))
	g.Go(d.trend(gctx, &s.CandidatesTrend, Candidates, scope))
	g.Go(d.trend(gctx, &s.InterviewsTrend, Interviews, scope))

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &s, nil
}

// UpcomingInterviews lists the recruiter's next pending interviews, earliest
// first. A zero limit means DefaultUpcomingLimit.
func (d *Dashboard) UpcomingInterviews(ctx context.Context, ownerID uuid.UUID, limit int) ([]InterviewSummary, error) {
	scope, err := ownerScope(ownerID)
	if err != nil {
		return nil, err
	}
	q := UpcomingQuery{Scope: scope, Limit: limit}
	if err := q.normalize(); err != nil {
		return nil, err
	}

	now := d.opts.now()
	rows, err := d.store.UpcomingInterviews(ctx, q.Scope, now, q.Limit)
	if err != nil {
		return nil, err
	}

	out := make([]InterviewSummary, 0, len(rows))
	for _, row := range rows {
		if row.Status != StatusPending || row.ScheduledAt.Before(now) {
			continue
		}
		out = append(out, row)
	}
	sortInterviews(out)
	if len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

// MyOffers lists the recruiter's offers with their candidate counts.
func (d *Dashboard) MyOffers(ctx context.Context, ownerID uuid.UUID) ([]OfferSummary, error) {
	scope, err := ownerScope(ownerID)
	if err != nil {
		return nil, err
	}
	offers, err := d.store.OffersWithCandidateCount(ctx, scope)
	if err != nil {
		return nil, err
	}
	if offers == nil {
		offers = []OfferSummary{}
	}
	return offers, nil
}

// WeeklyInterviewCalendar counts the recruiter's interviews per scheduled day
// of the current calendar week.
func (d *Dashboard) WeeklyInterviewCalendar(ctx context.Context, ownerID uuid.UUID) ([]Point, error) {
	scope, err := ownerScope(ownerID)
	if err != nil {
		return nil, err
	}
	return d.bucketer.Week(ctx, Interviews, scope, ScheduledAt)
}

// Breakdown counts entity rows per value of field within scope.
func (d *Dashboard) Breakdown(ctx context.Context, entity Entity, field GroupField, scope Scope) ([]Point, error) {
	return d.aggregator.By(ctx, entity, field, scope)
}

// MonthlyCandidates counts candidates per month of the current year.
func (d *Dashboard) MonthlyCandidates(ctx context.Context, scope Scope) ([]Point, error) {
	return d.aggregator.Monthly(ctx, Candidates, scope)
}

func sortInterviews(rows []InterviewSummary) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].ScheduledAt.Before(rows[j].ScheduledAt)
	})
}

// ownerScope refuses the nil owner, which would silently widen a recruiter
// query to the global scope.
func ownerScope(ownerID uuid.UUID) (Scope, error) {
	if ownerID == uuid.Nil {
		return Scope{}, &ValidationError{Err: ErrMissingOwner}
	}
	return ForOwner(ownerID), nil
}
