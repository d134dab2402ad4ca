package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

// ===========================
// Test fixtures

type staticTokens struct {
	token      string
	noToken    bool
	refreshTo  string
	refreshErr error
	refreshes  int32
}

func (s *staticTokens) AccessToken(ctx context.Context) (string, error) {
	if s.noToken {
		return "", ErrNoToken
	}
	return s.token, nil
}

func (s *staticTokens) Refresh(ctx context.Context) (string, error) {
	atomic.AddInt32(&s.refreshes, 1)
	if s.refreshErr != nil {
		return "", s.refreshErr
	}
	s.token = s.refreshTo
	return s.refreshTo, nil
}

func writeJSON(t *testing.T, w http.ResponseWriter, code int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			t.Errorf("encoding response: %v", err)
		}
	}
}

func mkEvent(id uint, title string, start time.Time, count int) Event {
	return Event{
		ID:                id,
		GymID:             DefaultGymID,
		Title:             title,
		StartTime:         APITime{start},
		EndTime:           APITime{start.Add(time.Hour)},
		Status:            "scheduled",
		ParticipantsCount: count,
	}
}

func newClient(t *testing.T, srv *httptest.Server, tokens TokenSource) *Client {
	t.Helper()
	return New(srv.URL, tokens, WithRefreshDelay(time.Millisecond))
}

// ===========================
// List fetching

func TestFetchEventsSortsByStartTimeAscending(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/events/":
			if got := r.Header.Get("X-Gym-ID"); got != "4" {
				t.Errorf("X-Gym-ID = %q, want 4", got)
			}
			writeJSON(t, w, 200, listResponse{
				Events: []Event{
					mkEvent(3, "late", base.Add(2*time.Hour), 0),
					mkEvent(1, "early", base, 0),
					mkEvent(2, "middle", base.Add(time.Hour), 0),
				},
				Total: 3,
			})
		case "/events/participation/me":
			writeJSON(t, w, 200, []Participation{})
		default:
			w.WriteHeader(404)
		}
	}))
	defer srv.Close()

	c := newClient(t, srv, &staticTokens{token: "tok"})
	if err := c.FetchEvents(context.Background(), ListFilters{}); err != nil {
		t.Fatalf("FetchEvents: %v", err)
	}

	events := c.Events()
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	for i, want := range []uint{1, 2, 3} {
		if events[i].ID != want {
			t.Errorf("events[%d].ID = %d, want %d", i, events[i].ID, want)
		}
	}
	if c.Total() != 3 {
		t.Errorf("Total() = %d, want 3", c.Total())
	}
}

func TestFetchEventsDiscardsStaleResponse(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	release := make(chan struct{})
	var listCalls int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/events/":
			if atomic.AddInt32(&listCalls, 1) == 1 {
				<-release
				writeJSON(t, w, 200, listResponse{Events: []Event{mkEvent(1, "stale", base, 0)}, Total: 1})
				return
			}
			writeJSON(t, w, 200, listResponse{Events: []Event{mkEvent(2, "fresh", base, 0)}, Total: 1})
		case "/events/participation/me":
			writeJSON(t, w, 200, []Participation{})
		default:
			w.WriteHeader(404)
		}
	}))
	defer srv.Close()

	c := newClient(t, srv, &staticTokens{token: "tok"})

	firstDone := make(chan error, 1)
	go func() { firstDone <- c.FetchEvents(context.Background(), ListFilters{}) }()

	// Wait until the first list request is parked on the server.
	deadline := time.After(2 * time.Second)
	for atomic.LoadInt32(&listCalls) == 0 {
		select {
		case <-deadline:
			t.Fatal("first list request never arrived")
		case <-time.After(5 * time.Millisecond):
		}
	}

	if err := c.FetchEvents(context.Background(), ListFilters{}); err != nil {
		t.Fatalf("second FetchEvents: %v", err)
	}

	close(release)
	if err := <-firstDone; err != nil {
		t.Fatalf("first FetchEvents: %v", err)
	}

	events := c.Events()
	if len(events) != 1 || events[0].ID != 2 {
		t.Fatalf("stale response overwrote fresh data: %+v", events)
	}
}

func TestFetchEventsKeepsStaleDataOnFailure(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	var fail atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(500)
			return
		}
		switch r.URL.Path {
		case "/events/":
			writeJSON(t, w, 200, listResponse{Events: []Event{mkEvent(1, "kept", base, 0)}, Total: 1})
		case "/events/participation/me":
			writeJSON(t, w, 200, []Participation{})
		}
	}))
	defer srv.Close()

	c := newClient(t, srv, &staticTokens{token: "tok"})
	if err := c.FetchEvents(context.Background(), ListFilters{}); err != nil {
		t.Fatalf("FetchEvents: %v", err)
	}

	fail.Store(true)
	if err := c.FetchEvents(context.Background(), ListFilters{}); err == nil {
		t.Fatal("expected error from failing fetch")
	}

	if events := c.Events(); len(events) != 1 || events[0].ID != 1 {
		t.Fatalf("previously loaded data lost: %+v", events)
	}
	if c.ListError() == "" {
		t.Error("ListError should be set after a failed fetch")
	}
}

func TestFetchEventsCancellationNotSurfacedAsError(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	arrived := make(chan struct{}, 2)
	release := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		arrived <- struct{}{}
		select {
		case <-release:
		case <-r.Context().Done():
			// Client gave up; nothing left to write.
			return
		}
		switch r.URL.Path {
		case "/events/":
			writeJSON(t, w, 200, listResponse{Events: []Event{mkEvent(1, "a", base, 0)}, Total: 1})
		case "/events/participation/me":
			writeJSON(t, w, 200, []Participation{})
		}
	}))
	defer srv.Close()
	defer close(release)

	c := newClient(t, srv, &staticTokens{token: "tok"})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- c.FetchEvents(ctx, ListFilters{}) }()

	// Cancel once both requests are parked on the server.
	for i := 0; i < 2; i++ {
		select {
		case <-arrived:
		case <-time.After(2 * time.Second):
			t.Fatal("requests never arrived")
		}
	}
	cancel()

	err := <-done
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("FetchEvents error = %v, want context.Canceled", err)
	}
	if got := c.ListError(); got != "" {
		t.Errorf("ListError = %q, want empty after cancellation", got)
	}
	if got := c.ParticipationError(); got != "" {
		t.Errorf("ParticipationError = %q, want empty after cancellation", got)
	}
}

// ===========================
// Registration lookup

func TestIsUserRegistered(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/events/":
			writeJSON(t, w, 200, listResponse{Events: []Event{mkEvent(1, "a", base, 1), mkEvent(2, "b", base, 0)}, Total: 2})
		case "/events/participation/me":
			writeJSON(t, w, 200, []Participation{
				// Event 1: registered then cancelled, latest row wins.
				{ID: 10, EventID: 1, Status: ParticipationRegistered, RegisteredAt: APITime{base}},
				{ID: 11, EventID: 1, Status: "CANCELLED", RegisteredAt: APITime{base.Add(time.Minute)}},
				{ID: 12, EventID: 2, Status: ParticipationRegistered, RegisteredAt: APITime{base}},
			})
		}
	}))
	defer srv.Close()

	c := newClient(t, srv, &staticTokens{token: "tok"})

	if c.IsUserRegistered(2) {
		t.Error("registered before any fetch, want false")
	}

	if err := c.FetchEvents(context.Background(), ListFilters{}); err != nil {
		t.Fatalf("FetchEvents: %v", err)
	}

	if c.IsUserRegistered(1) {
		t.Error("event 1: latest row is CANCELLED, want false")
	}
	if !c.IsUserRegistered(2) {
		t.Error("event 2: want true")
	}
	if c.IsUserRegistered(99) {
		t.Error("unknown event, want false")
	}
}

// ===========================
// Join and cancel

func TestJoinEventUpdatesStateAfterSuccess(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/events/" && r.Method == "GET":
			writeJSON(t, w, 200, listResponse{Events: []Event{mkEvent(1, "a", base, 5)}, Total: 1})
		case r.URL.Path == "/events/participation/me":
			writeJSON(t, w, 200, []Participation{})
		case r.URL.Path == "/events/1" && r.Method == "GET":
			writeJSON(t, w, 200, mkEvent(1, "a", base, 5))
		case r.URL.Path == "/events/participation" && r.Method == "POST":
			var req map[string]uint
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("decoding join body: %v", err)
			}
			writeJSON(t, w, 201, Participation{ID: 77, EventID: req["event_id"], Status: ParticipationRegistered, RegisteredAt: APITime{base}})
		default:
			w.WriteHeader(404)
		}
	}))
	defer srv.Close()

	c := newClient(t, srv, &staticTokens{token: "tok"})
	ctx := context.Background()
	if err := c.FetchEvents(ctx, ListFilters{}); err != nil {
		t.Fatalf("FetchEvents: %v", err)
	}
	if _, err := c.FetchEventDetail(ctx, 1); err != nil {
		t.Fatalf("FetchEventDetail: %v", err)
	}

	if err := c.JoinEvent(ctx, 1); err != nil {
		t.Fatalf("JoinEvent: %v", err)
	}

	if !c.IsUserRegistered(1) {
		t.Error("registered flag not set after join")
	}
	if got := c.Events()[0].ParticipantsCount; got != 6 {
		t.Errorf("list count = %d, want 6", got)
	}
	if got := c.Detail().ParticipantsCount; got != 6 {
		t.Errorf("detail count = %d, want 6", got)
	}
}

func TestJoinEventFailureLeavesStateUntouched(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/events/":
			writeJSON(t, w, 200, listResponse{Events: []Event{mkEvent(1, "full", base, 10)}, Total: 1})
		case r.URL.Path == "/events/participation/me":
			writeJSON(t, w, 200, []Participation{})
		case r.URL.Path == "/events/participation" && r.Method == "POST":
			writeJSON(t, w, 422, map[string]string{"error": "event is full"})
		}
	}))
	defer srv.Close()

	c := newClient(t, srv, &staticTokens{token: "tok"})
	ctx := context.Background()
	if err := c.FetchEvents(ctx, ListFilters{}); err != nil {
		t.Fatalf("FetchEvents: %v", err)
	}

	err := c.JoinEvent(ctx, 1)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("JoinEvent error = %v, want ErrValidation", err)
	}
	if c.IsUserRegistered(1) {
		t.Error("registered flag set despite failed join")
	}
	if got := c.Events()[0].ParticipantsCount; got != 10 {
		t.Errorf("count changed on failure: %d", got)
	}
	if c.ActionError() == "" {
		t.Error("ActionError should be set")
	}
}

func TestCancelEventFloorsCountAtZero(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/events/":
			// Count already zero even though the user holds a registration,
			// a consistency glitch the client must tolerate.
			writeJSON(t, w, 200, listResponse{Events: []Event{mkEvent(1, "a", base, 0)}, Total: 1})
		case r.URL.Path == "/events/participation/me":
			writeJSON(t, w, 200, []Participation{{ID: 50, EventID: 1, Status: ParticipationRegistered, RegisteredAt: APITime{base}}})
		case r.URL.Path == "/events/participation/50" && r.Method == "DELETE":
			w.WriteHeader(204)
		default:
			w.WriteHeader(404)
		}
	}))
	defer srv.Close()

	c := newClient(t, srv, &staticTokens{token: "tok"})
	ctx := context.Background()
	if err := c.FetchEvents(ctx, ListFilters{}); err != nil {
		t.Fatalf("FetchEvents: %v", err)
	}

	if err := c.CancelEvent(ctx, 1); err != nil {
		t.Fatalf("CancelEvent: %v", err)
	}

	if c.IsUserRegistered(1) {
		t.Error("still registered after cancel")
	}
	if got := c.Events()[0].ParticipantsCount; got != 0 {
		t.Errorf("count = %d, want 0 (never negative)", got)
	}
	if len(c.Participations()) != 0 {
		t.Errorf("participation row not removed: %+v", c.Participations())
	}
}

func TestCancelEventWithoutRegistration(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
	}))
	defer srv.Close()

	c := newClient(t, srv, &staticTokens{token: "tok"})
	if err := c.CancelEvent(context.Background(), 9); err == nil {
		t.Fatal("expected error cancelling an event the user never joined")
	}
}

// ===========================
// Auth retry

func TestUnauthorizedTriggersSingleRefreshRetry(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	var detailCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&detailCalls, 1)
		if r.Header.Get("Authorization") != "Bearer fresh" {
			w.WriteHeader(401)
			return
		}
		writeJSON(t, w, 200, mkEvent(1, "a", base, 0))
	}))
	defer srv.Close()

	tokens := &staticTokens{token: "expired", refreshTo: "fresh"}
	c := newClient(t, srv, tokens)

	if _, err := c.FetchEventDetail(context.Background(), 1); err != nil {
		t.Fatalf("FetchEventDetail: %v", err)
	}
	if got := atomic.LoadInt32(&detailCalls); got != 2 {
		t.Errorf("requests = %d, want 2 (original + one retry)", got)
	}
	if got := atomic.LoadInt32(&tokens.refreshes); got != 1 {
		t.Errorf("refreshes = %d, want 1", got)
	}
}

func TestUnauthorizedAfterRetrySurfacesAuthError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(401)
	}))
	defer srv.Close()

	c := newClient(t, srv, &staticTokens{token: "bad", refreshTo: "still-bad"})
	_, err := c.FetchEventDetail(context.Background(), 1)
	if !errors.Is(err, ErrAuth) {
		t.Fatalf("error = %v, want ErrAuth", err)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("requests = %d, want exactly 2", got)
	}
}

func TestRefreshFailureSurfacesAuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(401)
	}))
	defer srv.Close()

	c := newClient(t, srv, &staticTokens{token: "bad", refreshErr: errors.New("refresh token revoked")})
	_, err := c.FetchEventDetail(context.Background(), 1)
	if !errors.Is(err, ErrAuth) {
		t.Fatalf("error = %v, want ErrAuth", err)
	}
}

// ===========================
// Error taxonomy

func TestStatusTaxonomy(t *testing.T) {
	cases := []struct {
		code int
		want error
	}{
		{403, ErrPermission},
		{404, ErrNotFound},
		{422, ErrValidation},
	}
	for _, tc := range cases {
		code := tc.code
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		}))
		c := newClient(t, srv, &staticTokens{token: "tok"})
		_, err := c.FetchEventDetail(context.Background(), 1)
		if !errors.Is(err, tc.want) {
			t.Errorf("status %d: error = %v, want %v", tc.code, err, tc.want)
		}
		srv.Close()
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
	}))
	defer srv.Close()
	c := newClient(t, srv, &staticTokens{token: "tok"})
	_, err := c.FetchEventDetail(context.Background(), 1)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 500 {
		t.Errorf("status 500: error = %v, want *APIError{500}", err)
	}
}

// ===========================
// Placeholder mode

func TestFetchEventsWithoutTokenServesPlaceholders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s %s while logged out", r.Method, r.URL.Path)
	}))
	defer srv.Close()

	c := newClient(t, srv, &staticTokens{noToken: true})
	if err := c.FetchEvents(context.Background(), ListFilters{}); err != nil {
		t.Fatalf("FetchEvents without token: %v", err)
	}

	events := c.Events()
	if len(events) != 3 {
		t.Fatalf("got %d placeholder events, want 3", len(events))
	}
	for i, e := range events {
		if e.ID != 0 {
			t.Errorf("placeholder %d has non-zero ID %d", i, e.ID)
		}
		if e.Title == "" {
			t.Errorf("placeholder %d has empty title", i)
		}
	}
	if c.ListError() != "" {
		t.Errorf("ListError = %q, want empty", c.ListError())
	}
}

// ===========================
// Profile cache

func TestFetchUserProfileCachedPerSession(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeJSON(t, w, 200, UserProfile{UserID: 7, FullName: "Asha Verma", RoleName: "member"})
	}))
	defer srv.Close()

	c := newClient(t, srv, &staticTokens{token: "tok"})
	ctx := context.Background()

	first, err := c.FetchUserProfile(ctx, 7)
	if err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	second, err := c.FetchUserProfile(ctx, 7)
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("network calls = %d, want 1", got)
	}
	if first != second {
		t.Error("second call should return the cached pointer")
	}
	if first.FullName != "Asha Verma" {
		t.Errorf("FullName = %q", first.FullName)
	}
}

func TestFetchUserProfileRetriesAfterFailure(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(500)
			return
		}
		writeJSON(t, w, 200, UserProfile{UserID: 7, FullName: "Asha Verma", RoleName: "member"})
	}))
	defer srv.Close()

	c := newClient(t, srv, &staticTokens{token: "tok"})
	ctx := context.Background()

	if _, err := c.FetchUserProfile(ctx, 7); err == nil {
		t.Fatal("expected error from failing fetch")
	}

	// Failures are not cached; the retry goes back to the network.
	p, err := c.FetchUserProfile(ctx, 7)
	if err != nil {
		t.Fatalf("retry fetch: %v", err)
	}
	if p.FullName != "Asha Verma" {
		t.Errorf("FullName = %q", p.FullName)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("network calls = %d, want 2 (failure + retry)", got)
	}

	// The successful result is cached from then on.
	if _, err := c.FetchUserProfile(ctx, 7); err != nil {
		t.Fatalf("cached fetch: %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("network calls = %d after cache hit, want 2", got)
	}
}

func TestFetchUserProfileDistinctIDsInParallel(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		var id uint
		if _, err := fmt.Sscanf(r.URL.Path, "/users/profile/%d", &id); err != nil {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		writeJSON(t, w, 200, UserProfile{UserID: id, FullName: fmt.Sprintf("user-%d", id)})
	}))
	defer srv.Close()

	c := newClient(t, srv, &staticTokens{token: "tok"})
	ctx := context.Background()

	done := make(chan error, 4)
	for _, id := range []uint{1, 2, 3, 2} {
		go func(id uint) {
			_, err := c.FetchUserProfile(ctx, id)
			done <- err
		}(id)
	}
	for i := 0; i < 4; i++ {
		if err := <-done; err != nil {
			t.Fatalf("parallel fetch: %v", err)
		}
	}

	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("network calls = %d, want 3 (one per distinct ID)", got)
	}
	for _, id := range []uint{1, 2, 3} {
		p, err := c.FetchUserProfile(ctx, id)
		if err != nil {
			t.Fatalf("cached fetch %d: %v", id, err)
		}
		if p.UserID != id {
			t.Errorf("profile %d has UserID %d", id, p.UserID)
		}
	}
}

// ===========================
// Force refresh

func TestForceRefreshClearsAndRefetches(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	var listCalls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/events/":
			n := atomic.AddInt32(&listCalls, 1)
			writeJSON(t, w, 200, listResponse{Events: []Event{mkEvent(uint(n), fmt.Sprintf("round-%d", n), base, 0)}, Total: 1})
		case "/events/participation/me":
			writeJSON(t, w, 200, []Participation{})
		}
	}))
	defer srv.Close()

	c := newClient(t, srv, &staticTokens{token: "tok"})
	ctx := context.Background()
	if err := c.FetchEvents(ctx, ListFilters{}); err != nil {
		t.Fatalf("FetchEvents: %v", err)
	}
	if err := c.ForceRefresh(ctx, ListFilters{}); err != nil {
		t.Fatalf("ForceRefresh: %v", err)
	}

	events := c.Events()
	if len(events) != 1 || events[0].Title != "round-2" {
		t.Fatalf("after refresh: %+v", events)
	}
}

// ===========================
// Filter encoding

func TestListFiltersQueryEncoding(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		filters ListFilters
		want    string
	}{
		{"empty", ListFilters{}, ""},
		{"status", ListFilters{Status: "scheduled"}, "status=scheduled"},
		{"dates", ListFilters{StartDate: &start, EndDate: &end},
			"end_date=2026-03-31T00%3A00%3A00Z&start_date=2026-03-01T00%3A00%3A00Z"},
		{"contains", ListFilters{TitleContains: "yoga", LocationContains: "Studio A"},
			"location_contains=Studio+A&title_contains=yoga"},
		{"creator", ListFilters{CreatedBy: 12}, "created_by=12"},
		{"availability", ListFilters{OnlyAvailable: true}, "only_available=true"},
		{"pagination", ListFilters{Skip: 20, Limit: 10}, "limit=10&skip=20"},
		{"zero pagination omitted", ListFilters{Skip: 0, Limit: 0}, ""},
	}

	for _, tc := range cases {
		if got := tc.filters.query().Encode(); got != tc.want {
			t.Errorf("%s: query = %q, want %q", tc.name, got, tc.want)
		}
	}
}

// ===========================
// Timestamp wire format

func TestAPITimeDecoding(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{`"2026-03-01T10:15:30.123456Z"`, time.Date(2026, 3, 1, 10, 15, 30, 123456000, time.UTC)},
		{`"2026-03-01T10:15:30Z"`, time.Date(2026, 3, 1, 10, 15, 30, 0, time.UTC)},
		{`"2026-03-01T15:45:30+05:30"`, time.Date(2026, 3, 1, 10, 15, 30, 0, time.UTC)},
		{`"2026-03-01T10:15:30"`, time.Date(2026, 3, 1, 10, 15, 30, 0, time.UTC)},
	}
	for _, tc := range cases {
		var got APITime
		if err := json.Unmarshal([]byte(tc.in), &got); err != nil {
			t.Errorf("decode %s: %v", tc.in, err)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("decode %s = %v, want %v", tc.in, got.Time, tc.want)
		}
		if got.Location() != time.UTC {
			t.Errorf("decode %s not normalized to UTC", tc.in)
		}
	}

	var bad APITime
	if err := json.Unmarshal([]byte(`"03/01/2026"`), &bad); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestAPITimeEncodingUsesFractionalSeconds(t *testing.T) {
	at := APITime{time.Date(2026, 3, 1, 15, 45, 30, 0, time.FixedZone("IST", 5*3600+1800))}
	out, err := json.Marshal(at)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got := string(out); got != `"2026-03-01T10:15:30.000Z"` {
		t.Errorf("encoded = %s, want UTC fractional form", got)
	}
}
