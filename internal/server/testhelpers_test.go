package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/recruit-stats/internal/config"
	"github.com/jonathan/recruit-stats/internal/server/ratelimit"
	"github.com/jonathan/recruit-stats/internal/stats"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

// fixedNow is a Wednesday.
var fixedNow = time.Date(2026, 10, 21, 15, 0, 0, 0, time.UTC)

// fakeStore returns canned rows and records the scope of every call.
type fakeStore struct {
	mu      sync.Mutex
	scopes  []stats.Scope
	err     error
	pingErr error

	counts   map[stats.Entity]int64
	pending  int64
	users    int64
	days     []stats.DayCount
	groups   []stats.GroupCount
	months   []stats.MonthCount
	upcoming []stats.InterviewSummary
	offers   []stats.OfferSummary
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		counts: map[stats.Entity]int64{stats.Candidates: 12, stats.Offers: 3, stats.Interviews: 5},
		users:  2,
	}
}

func (f *fakeStore) record(scope stats.Scope) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scopes = append(f.scopes, scope)
	return f.err
}

func (f *fakeStore) recorded() []stats.Scope {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]stats.Scope(nil), f.scopes...)
}

func (f *fakeStore) Count(_ context.Context, flt stats.Filter) (int64, error) {
	if err := f.record(flt.Scope); err != nil {
		return 0, err
	}
	if flt.Status == stats.StatusPending {
		return f.pending, nil
	}
	return f.counts[flt.Entity], nil
}

func (f *fakeStore) CountByDay(_ context.Context, flt stats.Filter) ([]stats.DayCount, error) {
	if err := f.record(flt.Scope); err != nil {
		return nil, err
	}
	return f.days, nil
}

func (f *fakeStore) CountByField(_ context.Context, flt stats.Filter, _ stats.GroupField) ([]stats.GroupCount, error) {
	if err := f.record(flt.Scope); err != nil {
		return nil, err
	}
	return f.groups, nil
}

func (f *fakeStore) CountByMonth(_ context.Context, flt stats.Filter) ([]stats.MonthCount, error) {
	if err := f.record(flt.Scope); err != nil {
		return nil, err
	}
	return f.months, nil
}

func (f *fakeStore) CountUsersByRole(_ context.Context, _ string) (int64, error) {
	if err := f.record(stats.Global()); err != nil {
		return 0, err
	}
	return f.users, nil
}

func (f *fakeStore) UpcomingInterviews(_ context.Context, scope stats.Scope, _ time.Time, _ int) ([]stats.InterviewSummary, error) {
	if err := f.record(scope); err != nil {
		return nil, err
	}
	return f.upcoming, nil
}

func (f *fakeStore) OffersWithCandidateCount(_ context.Context, scope stats.Scope) ([]stats.OfferSummary, error) {
	if err := f.record(scope); err != nil {
		return nil, err
	}
	return f.offers, nil
}

func (f *fakeStore) Ping(_ context.Context) error {
	return f.pingErr
}

func newTestJWTService() *JWTService {
	return NewJWTService(&config.JWTConfig{
		Secret:          "test-secret-key-for-jwt-signing-minimum-32-bytes",
		ExpirationHours: 24,
		Issuer:          config.DefaultJWTIssuer,
	})
}

// testServer wires a Server around a fakeStore with a fixed clock.
type testServer struct {
	*Server
	store *fakeStore
	logs  *test.Hook
}

func newTestServer(t *testing.T, limiter ratelimit.Checker) *testServer {
	t.Helper()
	store := newFakeStore()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	s := New(Config{
		Port:    "0",
		Options: stats.Options{Now: func() time.Time { return fixedNow }, Concurrency: 2},
	}, store, newTestJWTService(), limiter, logger)
	t.Cleanup(s.rateLimiter.Stop)

	return &testServer{Server: s, store: store, logs: hook}
}

func (ts *testServer) token(t *testing.T, userID uuid.UUID, role string) string {
	t.Helper()
	tok, err := ts.jwtService.GenerateToken(userID, role)
	require.NoError(t, err)
	return tok
}

// get performs an authenticated GET through the full middleware chain. An
// empty token sends no Authorization header.
func (ts *testServer) get(t *testing.T, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = "192.0.2.1:1234"
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.Handler().ServeHTTP(w, req)
	return w
}
