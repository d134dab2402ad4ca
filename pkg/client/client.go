package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DefaultGymID is the fixed tenant selector sent on every request.
const DefaultGymID = 4

// TokenSource is the non-owning auth capability handed in at construction.
// AccessToken returns the currently cached token; it returns ErrNoToken
// when the user has no credentials at all. Refresh performs one renewal
// and returns the new token.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
	Refresh(ctx context.Context) (string, error)
}

// Client keeps a local view of events and the current user's registrations
// consistent with the backend. All shared state is guarded by a single
// mutex; network results take the lock before mutating, which stands in
// for the marshal-back-to-one-context discipline of a UI app.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	gymID   uint

	mu             sync.Mutex
	events         []Event
	total          int64
	detail         *Event
	participations []Participation
	registered     map[uint]bool
	profiles       map[uint]*UserProfile

	// Monotonic guard for overlapping list fetches: a response is applied
	// only if no later-started fetch has already landed.
	fetchSeq    uint64
	appliedSeq  uint64
	listCancel  context.CancelFunc
	refreshWait time.Duration

	listErr   string
	detailErr string
	partErr   string
	actionErr string

	// Per-profile-ID in-flight guards so distinct IDs fetch in parallel
	// while the same ID is fetched at most once per session.
	profileFlight map[uint]chan struct{}
}

// Option tweaks client construction.
type Option func(*Client)

// WithHTTPClient swaps the transport, mainly for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithGymID overrides the tenant header value.
func WithGymID(id uint) Option {
	return func(c *Client) { c.gymID = id }
}

// WithRefreshDelay sets the settle delay used by ForceRefresh.
func WithRefreshDelay(d time.Duration) Option {
	return func(c *Client) { c.refreshWait = d }
}

func New(baseURL string, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		http:          &http.Client{Timeout: 30 * time.Second},
		tokens:        tokens,
		gymID:         DefaultGymID,
		registered:    make(map[uint]bool),
		profiles:      make(map[uint]*UserProfile),
		profileFlight: make(map[uint]chan struct{}),
		refreshWait:   150 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do issues one authenticated request. On a 401 it asks the token source
// for exactly one renewal and retries once; a second 401 surfaces ErrAuth.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return err
	}

	status, respBody, err := c.send(ctx, method, path, body, token)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized {
		token, err = c.tokens.Refresh(ctx)
		if err != nil {
			return fmt.Errorf("%w: token refresh failed: %v", ErrAuth, err)
		}
		status, respBody, err = c.send(ctx, method, path, body, token)
		if err != nil {
			return err
		}
	}

	if err := statusToError(status, string(respBody)); err != nil {
		return err
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decoding %s %s: %w", method, path, err)
		}
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, body any, token string) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("building request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Gym-ID", strconv.FormatUint(uint64(c.gymID), 10))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("reading response: %w", err)
	}

	return resp.StatusCode, respBody, nil
}

// isCancellation reports whether err stems from context cancellation.
// Cancelled work is discarded silently, never surfaced as a user error.
func isCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
