package stats

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memStore is an in-memory Store used to check the core against the same
// ownership rules the SQL store applies.
type memStore struct {
	mu         sync.Mutex
	loc        *time.Location
	users      []memUser
	offers     []memOffer
	candidates []memCandidate
	interviews []memInterview

	failOn string
	err    error
	calls  map[string]int
}

type memUser struct {
	id   uuid.UUID
	role string
}

type memOffer struct {
	id         uuid.UUID
	owner      uuid.UUID
	department string
	title      string
	expiresAt  *time.Time
	createdAt  time.Time
}

type memCandidate struct {
	id        uuid.UUID
	offer     uuid.UUID
	firstName string
	lastName  string
	education string
	createdAt time.Time
}

type memInterview struct {
	id          uuid.UUID
	candidate   uuid.UUID
	offer       uuid.UUID
	status      string
	scheduledAt time.Time
	kind        string
	location    string
	createdAt   time.Time
}

// row is the projection of any entity the filters operate on.
type row struct {
	owner     uuid.UUID
	createdAt time.Time
	scheduled time.Time
	status    string
	groups    map[GroupField]string
}

func newMemStore() *memStore {
	return &memStore{loc: time.UTC, calls: map[string]int{}}
}

func (m *memStore) addOffer(owner uuid.UUID, department, title string, createdAt time.Time) uuid.UUID {
	id := uuid.New()
	m.offers = append(m.offers, memOffer{id: id, owner: owner, department: department, title: title, createdAt: createdAt})
	return id
}

func (m *memStore) addCandidate(offer uuid.UUID, education string, createdAt time.Time) uuid.UUID {
	id := uuid.New()
	m.candidates = append(m.candidates, memCandidate{id: id, offer: offer, firstName: "Ada", lastName: "L", education: education, createdAt: createdAt})
	return id
}

func (m *memStore) addInterview(candidate, offer uuid.UUID, status string, scheduledAt, createdAt time.Time) uuid.UUID {
	id := uuid.New()
	m.interviews = append(m.interviews, memInterview{
		id: id, candidate: candidate, offer: offer, status: status,
		scheduledAt: scheduledAt, kind: "visio", location: "https://meet.example/x", createdAt: createdAt,
	})
	return id
}

func (m *memStore) offer(id uuid.UUID) memOffer {
	for _, o := range m.offers {
		if o.id == id {
			return o
		}
	}
	return memOffer{}
}

func (m *memStore) enter(method string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[method]++
	if m.failOn == method || m.failOn == "*" {
		return m.err
	}
	return nil
}

func (m *memStore) rows(f Filter) []row {
	var out []row
	switch f.Entity {
	case Candidates:
		for _, c := range m.candidates {
			o := m.offer(c.offer)
			out = append(out, row{owner: o.owner, createdAt: c.createdAt, groups: map[GroupField]string{
				Department: o.department, EducationLevel: c.education, JobTitle: o.title,
			}})
		}
	case Offers:
		for _, o := range m.offers {
			out = append(out, row{owner: o.owner, createdAt: o.createdAt, groups: map[GroupField]string{
				Department: o.department, JobTitle: o.title,
			}})
		}
	case Interviews:
		for _, i := range m.interviews {
			o := m.offer(i.offer)
			out = append(out, row{owner: o.owner, createdAt: i.createdAt, scheduled: i.scheduledAt, status: i.status, groups: map[GroupField]string{
				Department: o.department, Status: i.status, JobTitle: o.title,
			}})
		}
	}

	var kept []row
	for _, r := range out {
		if !f.Scope.IsGlobal() && r.owner != f.Scope.OwnerID {
			continue
		}
		if f.Status != "" && r.status != f.Status {
			continue
		}
		ts := r.createdAt
		if f.DateField == ScheduledAt {
			ts = r.scheduled
		}
		if !f.Range.From.IsZero() && ts.Before(f.Range.From) {
			continue
		}
		if !f.Range.To.IsZero() && ts.After(f.Range.To) {
			continue
		}
		r.createdAt = ts
		kept = append(kept, r)
	}
	return kept
}

func (m *memStore) Count(_ context.Context, f Filter) (int64, error) {
	if err := m.enter("Count"); err != nil {
		return 0, err
	}
	return int64(len(m.rows(f))), nil
}

func (m *memStore) CountByDay(_ context.Context, f Filter) ([]DayCount, error) {
	if err := m.enter("CountByDay"); err != nil {
		return nil, err
	}
	counts := map[time.Time]int64{}
	for _, r := range m.rows(f) {
		y, mo, d := r.createdAt.In(m.loc).Date()
		counts[time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)]++
	}
	var out []DayCount
	for day, n := range counts {
		out = append(out, DayCount{Day: day, Count: n})
	}
	// Deliberately descending: the core must not rely on store ordering.
	sort.Slice(out, func(i, j int) bool { return out[i].Day.After(out[j].Day) })
	return out, nil
}

func (m *memStore) CountByField(_ context.Context, f Filter, field GroupField) ([]GroupCount, error) {
	if err := m.enter("CountByField"); err != nil {
		return nil, err
	}
	counts := map[string]int64{}
	for _, r := range m.rows(f) {
		counts[r.groups[field]]++
	}
	var out []GroupCount
	for v, n := range counts {
		out = append(out, GroupCount{Value: v, Count: n})
	}
	return out, nil
}

func (m *memStore) CountByMonth(_ context.Context, f Filter) ([]MonthCount, error) {
	if err := m.enter("CountByMonth"); err != nil {
		return nil, err
	}
	type key struct{ y, m int }
	counts := map[key]int64{}
	for _, r := range m.rows(f) {
		t := r.createdAt.In(m.loc)
		counts[key{t.Year(), int(t.Month())}]++
	}
	var out []MonthCount
	for k, n := range counts {
		out = append(out, MonthCount{Year: k.y, Month: k.m, Count: n})
	}
	return out, nil
}

func (m *memStore) CountUsersByRole(_ context.Context, role string) (int64, error) {
	if err := m.enter("CountUsersByRole"); err != nil {
		return 0, err
	}
	var n int64
	for _, u := range m.users {
		if u.role == role {
			n++
		}
	}
	return n, nil
}

func (m *memStore) UpcomingInterviews(_ context.Context, scope Scope, from time.Time, limit int) ([]InterviewSummary, error) {
	if err := m.enter("UpcomingInterviews"); err != nil {
		return nil, err
	}
	var out []InterviewSummary
	for _, i := range m.interviews {
		o := m.offer(i.offer)
		if !scope.IsGlobal() && o.owner != scope.OwnerID {
			continue
		}
		if i.status != StatusPending || i.scheduledAt.Before(from) {
			continue
		}
		out = append(out, InterviewSummary{
			ID: i.id, CandidateFirstName: "Ada", CandidateLastName: "L", JobTitle: o.title,
			ScheduledAt: i.scheduledAt, Kind: i.kind, Location: i.location, Status: i.status,
		})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ScheduledAt.Before(out[b].ScheduledAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) OffersWithCandidateCount(_ context.Context, scope Scope) ([]OfferSummary, error) {
	if err := m.enter("OffersWithCandidateCount"); err != nil {
		return nil, err
	}
	var out []OfferSummary
	for _, o := range m.offers {
		if !scope.IsGlobal() && o.owner != scope.OwnerID {
			continue
		}
		var n int64
		for _, c := range m.candidates {
			if c.offer == o.id {
				n++
			}
		}
		out = append(out, OfferSummary{ID: o.id, JobTitle: o.title, CandidateCount: n, ExpiresAt: o.expiresAt})
	}
	return out, nil
}

var errStoreDown = errors.New("connection refused")
