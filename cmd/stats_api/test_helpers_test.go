package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/recruit-stats/internal/stats"
)

// getBinaryPath returns the path to the stats_api binary for testing
func getBinaryPath(t *testing.T) string {
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", "stats_api")
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'go build -o bin/stats_api ./cmd/stats_api'", binaryPath)
	}
	return binaryPath
}

// execute runs the root command in process and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		tokenUser, tokenRole = "", stats.RoleRecruiter
		summaryRecruiter, summaryJSON, summaryValidate = "", false, false
		configPath, servePort = "", ""
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// cannedStore answers every query with the same small data set.
type cannedStore struct {
	day time.Time
	err error
}

func (c cannedStore) Count(_ context.Context, f stats.Filter) (int64, error) {
	if f.Status == stats.StatusPending {
		return 1, c.err
	}
	return 4, c.err
}

func (c cannedStore) CountByDay(_ context.Context, _ stats.Filter) ([]stats.DayCount, error) {
	return []stats.DayCount{{Day: c.day, Count: 2}}, c.err
}

func (c cannedStore) CountByField(_ context.Context, _ stats.Filter, _ stats.GroupField) ([]stats.GroupCount, error) {
	return []stats.GroupCount{{Value: "IT", Count: 3}, {Value: "RH", Count: 1}}, c.err
}

func (c cannedStore) CountByMonth(_ context.Context, _ stats.Filter) ([]stats.MonthCount, error) {
	return nil, c.err
}

func (c cannedStore) CountUsersByRole(_ context.Context, _ string) (int64, error) {
	return 2, c.err
}

func (c cannedStore) UpcomingInterviews(_ context.Context, _ stats.Scope, from time.Time, _ int) ([]stats.InterviewSummary, error) {
	return []stats.InterviewSummary{{
		ID:                 uuid.New(),
		CandidateFirstName: "Amina",
		CandidateLastName:  "Benali",
		JobTitle:           "Backend",
		ScheduledAt:        from.Add(2 * time.Hour),
		Kind:               "visio",
		Location:           "https://meet.example.com/x",
		Status:             stats.StatusPending,
	}}, c.err
}

func (c cannedStore) OffersWithCandidateCount(_ context.Context, _ stats.Scope) ([]stats.OfferSummary, error) {
	return nil, c.err
}
