package db

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/recruit-stats/internal/stats"
)

// sqlQuery is a statement with its positional arguments.
type sqlQuery struct {
	SQL  string
	Args []any
}

// argList accumulates positional arguments and hands out their placeholders.
type argList struct {
	args []any
}

func (a *argList) add(v any) string {
	a.args = append(a.args, v)
	return "$" + strconv.Itoa(len(a.args))
}

// source describes how an entity is read: its FROM clause and the alias of
// the entity's own table. Every source exposes the owning offer as "o".
type source struct {
	from  string
	alias string
}

var sources = map[stats.Entity]source{
	stats.Candidates: {from: "candidates c JOIN offers o ON o.id = c.offer_id", alias: "c"},
	stats.Offers:     {from: "offers o", alias: "o"},
	stats.Interviews: {from: "interviews i JOIN offers o ON o.id = i.offer_id", alias: "i"},
}

var groupColumns = map[stats.GroupField]string{
	stats.Department:     "o.department",
	stats.EducationLevel: "c.education_level",
	stats.Status:         "i.status",
	stats.JobTitle:       "o.title",
}

func sourceFor(e stats.Entity) (source, error) {
	src, ok := sources[e]
	if !ok {
		return source{}, fmt.Errorf("%w: %s", stats.ErrUnknownEntity, e)
	}
	return src, nil
}

func dateColumn(src source, f stats.Filter) (string, error) {
	if err := stats.CheckDateField(f.Entity, f.DateField); err != nil {
		return "", err
	}
	return src.alias + "." + f.DateField.String(), nil
}

// where renders the filter's predicates. The owner predicate is emitted for
// every non-global scope; it is what keeps one recruiter's figures out of
// another's.
func where(src source, f stats.Filter, args *argList) (string, error) {
	var conds []string

	if !f.Scope.IsGlobal() {
		conds = append(conds, "o.owner_id = "+args.add(f.Scope.OwnerID))
	}
	if f.Status != "" {
		if f.Entity != stats.Interviews {
			return "", fmt.Errorf("status filter is not supported on %s", f.Entity)
		}
		conds = append(conds, "i.status = "+args.add(f.Status))
	}
	if !f.Range.From.IsZero() || !f.Range.To.IsZero() {
		col, err := dateColumn(src, f)
		if err != nil {
			return "", err
		}
		if !f.Range.From.IsZero() {
			conds = append(conds, col+" >= "+args.add(f.Range.From))
		}
		if !f.Range.To.IsZero() {
			conds = append(conds, col+" <= "+args.add(f.Range.To))
		}
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), nil
}

func buildCount(f stats.Filter) (sqlQuery, error) {
	src, err := sourceFor(f.Entity)
	if err != nil {
		return sqlQuery{}, err
	}
	var args argList
	w, err := where(src, f, &args)
	if err != nil {
		return sqlQuery{}, err
	}
	return sqlQuery{SQL: "SELECT COUNT(*) FROM " + src.from + w, Args: args.args}, nil
}

func buildCountByDay(f stats.Filter, timeZone string) (sqlQuery, error) {
	src, err := sourceFor(f.Entity)
	if err != nil {
		return sqlQuery{}, err
	}
	col, err := dateColumn(src, f)
	if err != nil {
		return sqlQuery{}, err
	}
	var args argList
	tz := args.add(timeZone)
	w, err := where(src, f, &args)
	if err != nil {
		return sqlQuery{}, err
	}
	sql := fmt.Sprintf(
		"SELECT (%s AT TIME ZONE %s)::date AS day, COUNT(*) FROM %s%s GROUP BY day ORDER BY day ASC",
		col, tz, src.from, w,
	)
	return sqlQuery{SQL: sql, Args: args.args}, nil
}

func buildCountByField(f stats.Filter, field stats.GroupField) (sqlQuery, error) {
	if err := stats.CheckGrouping(f.Entity, field); err != nil {
		return sqlQuery{}, err
	}
	src, err := sourceFor(f.Entity)
	if err != nil {
		return sqlQuery{}, err
	}
	col := groupColumns[field]
	var args argList
	w, err := where(src, f, &args)
	if err != nil {
		return sqlQuery{}, err
	}
	sql := fmt.Sprintf(
		"SELECT COALESCE(%s, '') AS label, COUNT(*) FROM %s%s GROUP BY label ORDER BY label ASC",
		col, src.from, w,
	)
	return sqlQuery{SQL: sql, Args: args.args}, nil
}

func buildCountByMonth(f stats.Filter, timeZone string) (sqlQuery, error) {
	src, err := sourceFor(f.Entity)
	if err != nil {
		return sqlQuery{}, err
	}
	col, err := dateColumn(src, f)
	if err != nil {
		return sqlQuery{}, err
	}
	var args argList
	tz := args.add(timeZone)
	w, err := where(src, f, &args)
	if err != nil {
		return sqlQuery{}, err
	}
	local := fmt.Sprintf("(%s AT TIME ZONE %s)", col, tz)
	sql := fmt.Sprintf(
		"SELECT EXTRACT(YEAR FROM %[1]s)::int AS year, EXTRACT(MONTH FROM %[1]s)::int AS month, COUNT(*) "+
			"FROM %[2]s%[3]s GROUP BY year, month ORDER BY year ASC, month ASC",
		local, src.from, w,
	)
	return sqlQuery{SQL: sql, Args: args.args}, nil
}

func buildUpcomingInterviews(scope stats.Scope, from time.Time, limit int) sqlQuery {
	var args argList
	conds := []string{
		"i.status = " + args.add(stats.StatusPending),
		"i.scheduled_at >= " + args.add(from),
	}
	if !scope.IsGlobal() {
		conds = append(conds, "o.owner_id = "+args.add(scope.OwnerID))
	}
	sql := `SELECT i.id, c.first_name, c.last_name, o.title, i.scheduled_at,
		COALESCE(i.kind, ''), COALESCE(i.location, ''), i.status
		FROM interviews i
		JOIN candidates c ON c.id = i.candidate_id
		JOIN offers o ON o.id = i.offer_id
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY i.scheduled_at ASC, i.id ASC
		LIMIT ` + args.add(limit)
	return sqlQuery{SQL: sql, Args: args.args}
}

func buildOffersWithCandidateCount(scope stats.Scope) sqlQuery {
	var args argList
	sql := `SELECT o.id, o.title,
		(SELECT COUNT(*) FROM candidates c WHERE c.offer_id = o.id) AS candidate_count,
		o.expires_at
		FROM offers o`
	if !scope.IsGlobal() {
		sql += " WHERE o.owner_id = " + args.add(scope.OwnerID)
	}
	sql += " ORDER BY o.created_at DESC, o.id ASC"
	return sqlQuery{SQL: sql, Args: args.args}
}
