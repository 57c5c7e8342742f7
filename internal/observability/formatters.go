// Package observability provides logging setup and human-readable dashboard
// output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/recruit-stats/internal/stats"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// barWidth is the width of the longest bar in a sparkline
	barWidth = 30
)

// Printer renders dashboard payloads as text boxes.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len([]rune(line)) > boxWidth-4 {
			line = string([]rune(line)[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintAdminSummary outputs the administrator totals and trends.
func (p *Printer) PrintAdminSummary(s *stats.AdminSummary) {
	if s == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Candidates:  %d\n", s.TotalCandidates))
	sb.WriteString(fmt.Sprintf("Offers:      %d\n", s.TotalOffers))
	sb.WriteString(fmt.Sprintf("Interviews:  %d\n", s.TotalInterviews))
	sb.WriteString(fmt.Sprintf("Recruiters:  %d\n", s.TotalRecruiters))
	writeTrend(&sb, "Candidates trend", s.CandidatesTrend)
	writeTrend(&sb, "Offers trend", s.OffersTrend)
	writeTrend(&sb, "Interviews trend", s.InterviewsTrend)

	p.printBox("ADMIN DASHBOARD", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecruiterSummary outputs one recruiter's totals and trends.
func (p *Printer) PrintRecruiterSummary(s *stats.RecruiterSummary) {
	if s == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("My candidates:       %d\n", s.TotalCandidates))
	sb.WriteString(fmt.Sprintf("My offers:           %d\n", s.TotalOffers))
	sb.WriteString(fmt.Sprintf("My interviews:       %d\n", s.TotalInterviews))
	sb.WriteString(fmt.Sprintf("Pending interviews:  %d\n", s.PendingInterviews))
	writeTrend(&sb, "Candidates trend", s.CandidatesTrend)
	writeTrend(&sb, "Interviews trend", s.InterviewsTrend)

	p.printBox("RECRUITER DASHBOARD", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSeries outputs a labelled series as horizontal bars.
func (p *Printer) PrintSeries(title string, points []stats.Point) {
	if len(points) == 0 {
		p.printBox(title, "(no data)")
		return
	}
	var sb strings.Builder
	writeBars(&sb, points)
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintUpcomingInterviews outputs the next pending interviews.
func (p *Printer) PrintUpcomingInterviews(rows []stats.InterviewSummary) {
	if len(rows) == 0 {
		p.printBox("UPCOMING INTERVIEWS", "(none)")
		return
	}

	var sb strings.Builder
	count := min(len(rows), maxItemsToShow)
	for i := 0; i < count; i++ {
		iv := rows[i]
		sb.WriteString(fmt.Sprintf("%s  %s %s\n", iv.ScheduledAt.Format("02/01 15:04"), iv.CandidateFirstName, iv.CandidateLastName))
		sb.WriteString(fmt.Sprintf("  %s (%s)\n", iv.JobTitle, iv.Kind))
	}
	if len(rows) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(rows)-maxItemsToShow))
	}
	p.printBox("UPCOMING INTERVIEWS", strings.TrimSuffix(sb.String(), "\n"))
}

func writeTrend(sb *strings.Builder, title string, points []stats.Point) {
	sb.WriteString("\n")
	sb.WriteString(title + ":\n")
	if len(points) == 0 {
		sb.WriteString("  (no activity)\n")
		return
	}
	writeBars(sb, points)
}

func writeBars(sb *strings.Builder, points []stats.Point) {
	var peak int64
	for _, pt := range points {
		peak = max(peak, pt.Value)
	}
	for _, pt := range points {
		n := 0
		if peak > 0 {
			n = int(pt.Value * barWidth / peak)
		}
		label := pt.Label
		if len([]rune(label)) > 12 {
			label = string([]rune(label)[:11]) + "…"
		}
		sb.WriteString(fmt.Sprintf("  %-12s %s %d\n", label, strings.Repeat("█", n), pt.Value))
	}
}
