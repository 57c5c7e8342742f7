// Package stats turns recruitment records into dashboard-ready counts and trends.
//
// The package owns no storage. Every figure is computed through the Store port,
// which is implemented against PostgreSQL in internal/db and by in-memory fakes
// in tests.
package stats

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidMonth is returned when a grouping key is not a month number in [1, 12].
var ErrInvalidMonth = errors.New("month out of range")

// weekdayLabels is indexed by time.Weekday (Sunday = 0).
var weekdayLabels = [7]string{"Dim", "Lun", "Mar", "Mer", "Jeu", "Ven", "Sam"}

// monthLabels is indexed by month number minus one.
var monthLabels = [12]string{
	"Jan", "Fév", "Mar", "Avr", "Mai", "Juin",
	"Juil", "Août", "Sep", "Oct", "Nov", "Déc",
}

// WeekdayLabel returns the short French label for a day of the week.
// Out-of-range values are reduced modulo 7 so the mapping is total.
func WeekdayLabel(d time.Weekday) string {
	i := int(d) % 7
	if i < 0 {
		i += 7
	}
	return weekdayLabels[i]
}

// MonthLabel returns the short French label for a month number in [1, 12].
func MonthLabel(month int) (string, error) {
	if month < 1 || month > 12 {
		return "", fmt.Errorf("%w: %d", ErrInvalidMonth, month)
	}
	return monthLabels[month-1], nil
}
