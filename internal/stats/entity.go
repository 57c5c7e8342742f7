package stats

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownEntity is returned when a record stream name cannot be resolved.
	ErrUnknownEntity = errors.New("unknown entity")
	// ErrUnsupportedGrouping is returned for an (entity, field) pair with no query path.
	ErrUnsupportedGrouping = errors.New("unsupported grouping")
	// ErrUnsupportedDateField is returned when an entity has no such timestamp column.
	ErrUnsupportedDateField = errors.New("unsupported date field")
	// ErrMissingOwner is returned when a recruiter operation has no owner id.
	ErrMissingOwner = errors.New("missing scope owner")
)

// Entity identifies one of the record streams the dashboards report on.
type Entity int

const (
	Candidates Entity = iota + 1
	Offers
	Interviews
)

func (e Entity) String() string {
	switch e {
	case Candidates:
		return "candidates"
	case Offers:
		return "offers"
	case Interviews:
		return "interviews"
	default:
		return fmt.Sprintf("entity(%d)", int(e))
	}
}

// Valid reports whether e is one of the declared entities.
func (e Entity) Valid() bool {
	return e >= Candidates && e <= Interviews
}

// ParseEntity resolves a path segment to an Entity. Both the English names and
// the French table names used by the dashboard front end are accepted.
func ParseEntity(name string) (Entity, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "candidates", "candidats":
		return Candidates, nil
	case "offers", "offres":
		return Offers, nil
	case "interviews", "entretiens":
		return Interviews, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownEntity, name)
	}
}

// GroupField is a categorical attribute that counts can be grouped by.
type GroupField int

const (
	Department GroupField = iota + 1
	EducationLevel
	Status
	JobTitle
)

func (f GroupField) String() string {
	switch f {
	case Department:
		return "department"
	case EducationLevel:
		return "education_level"
	case Status:
		return "status"
	case JobTitle:
		return "job_title"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// groupings lists the (entity, field) pairs that have a query path. Department
// and job title live on the offer, so candidates and interviews reach them
// through their offer.
var groupings = map[Entity]map[GroupField]bool{
	Candidates: {Department: true, EducationLevel: true, JobTitle: true},
	Offers:     {Department: true, JobTitle: true},
	Interviews: {Department: true, Status: true, JobTitle: true},
}

// CheckGrouping returns ErrUnsupportedGrouping unless field can group entity.
func CheckGrouping(entity Entity, field GroupField) error {
	if !entity.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownEntity, entity)
	}
	if !groupings[entity][field] {
		return fmt.Errorf("%w: %s by %s", ErrUnsupportedGrouping, entity, field)
	}
	return nil
}

// DateField names the timestamp column a window or bucket applies to.
type DateField int

const (
	CreatedAt DateField = iota
	ScheduledAt
)

func (f DateField) String() string {
	if f == ScheduledAt {
		return "scheduled_at"
	}
	return "created_at"
}

// CheckDateField returns ErrUnsupportedDateField when entity has no such column.
func CheckDateField(entity Entity, field DateField) error {
	if field == ScheduledAt && entity != Interviews {
		return fmt.Errorf("%w: %s.%s", ErrUnsupportedDateField, entity, field)
	}
	return nil
}
