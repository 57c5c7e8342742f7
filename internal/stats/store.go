package stats

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Scope restricts a query to one recruiter's data. The zero value is the
// global (administrator) scope.
//
// Ownership is always the offer's owner_id: offers match directly, candidates
// and interviews match through the offer they belong to.
type Scope struct {
	OwnerID uuid.UUID
}

// Global returns the unrestricted scope.
func Global() Scope { return Scope{} }

// ForOwner returns the scope of the recruiter owning the offers.
func ForOwner(ownerID uuid.UUID) Scope { return Scope{OwnerID: ownerID} }

// IsGlobal reports whether the scope is unrestricted.
func (s Scope) IsGlobal() bool { return s.OwnerID == uuid.Nil }

// Interview statuses referenced by the dashboards.
const (
	StatusPending = "pending"
)

// User roles.
const (
	RoleAdmin     = "admin"
	RoleRecruiter = "recruteur"
)

// Range is an inclusive time interval. A zero bound is unbounded.
type Range struct {
	From time.Time
	To   time.Time
}

// Filter selects the rows of one entity.
type Filter struct {
	Entity    Entity
	Scope     Scope
	Status    string    // interviews only; empty means any
	DateField DateField // column Range and day/month grouping apply to
	Range     Range
}

// DayCount is a per-calendar-day row count. Day is midnight in the store's
// reporting location.
type DayCount struct {
	Day   time.Time
	Count int64
}

// GroupCount is a per-value row count.
type GroupCount struct {
	Value string
	Count int64
}

// MonthCount is a per-(year, month) row count.
type MonthCount struct {
	Year  int
	Month int
	Count int64
}

// InterviewSummary is one row of the upcoming interviews list.
type InterviewSummary struct {
	ID                 uuid.UUID `json:"id"`
	CandidateFirstName string    `json:"candidat_prenom"`
	CandidateLastName  string    `json:"candidat_nom"`
	JobTitle           string    `json:"poste"`
	ScheduledAt        time.Time `json:"date_heure"`
	Kind               string    `json:"type"`
	Location           string    `json:"lien_ou_adresse"`
	Status             string    `json:"status"`
}

// OfferSummary is one offer with the number of candidates attached to it.
type OfferSummary struct {
	ID             uuid.UUID  `json:"id"`
	JobTitle       string     `json:"poste"`
	CandidateCount int64      `json:"nbrCandidat"`
	ExpiresAt      *time.Time `json:"expiration"`
}

// Store is the query capability the dashboards need from the record store.
// Implementations must honour Filter.Scope on every call: a non-global scope
// never returns rows from offers owned by someone else.
type Store interface {
	// Count returns the number of rows matching f.
	Count(ctx context.Context, f Filter) (int64, error)
	// CountByDay groups matching rows by the calendar day of f.DateField.
	CountByDay(ctx context.Context, f Filter) ([]DayCount, error)
	// CountByField groups matching rows by a categorical field.
	CountByField(ctx context.Context, f Filter, field GroupField) ([]GroupCount, error)
	// CountByMonth groups matching rows by (year, month) of f.DateField.
	CountByMonth(ctx context.Context, f Filter) ([]MonthCount, error)
	// CountUsersByRole counts user accounts with the given role.
	CountUsersByRole(ctx context.Context, role string) (int64, error)
	// UpcomingInterviews lists pending interviews scheduled at or after from,
	// earliest first, at most limit rows.
	UpcomingInterviews(ctx context.Context, scope Scope, from time.Time, limit int) ([]InterviewSummary, error)
	// OffersWithCandidateCount lists offers in scope with their candidate count.
	OffersWithCandidateCount(ctx context.Context, scope Scope) ([]OfferSummary, error)
}
