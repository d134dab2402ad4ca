package client

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// FetchEvents refreshes the event list and, independently, the current
// user's participation list, then rebuilds the registration map. Overlapping
// calls are not queued: each fetch gets a sequence stamp and a response is
// discarded if a later-started fetch already applied, so a slow stale
// response can never regress the view.
//
// With no credentials at all the list degrades to a fixed placeholder set
// instead of failing, so callers always have something to show.
func (c *Client) FetchEvents(ctx context.Context, filters ListFilters) error {
	if _, err := c.tokens.AccessToken(ctx); err == ErrNoToken {
		c.mu.Lock()
		c.events = placeholderEvents()
		c.total = int64(len(c.events))
		c.listErr = ""
		c.mu.Unlock()
		return nil
	}

	c.mu.Lock()
	c.fetchSeq++
	seq := c.fetchSeq
	fetchCtx, cancel := context.WithCancel(ctx)
	c.listCancel = cancel
	c.mu.Unlock()
	defer cancel()

	path := "/events/"
	if q := filters.query().Encode(); q != "" {
		path += "?" + q
	}

	var (
		wg       sync.WaitGroup
		list     listResponse
		parts    []Participation
		listErr  error
		partsErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		listErr = c.do(fetchCtx, "GET", path, nil, &list)
	}()
	go func() {
		defer wg.Done()
		partsErr = c.do(fetchCtx, "GET", "/events/participation/me", nil, &parts)
	}()
	wg.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()

	if listErr == nil && partsErr == nil && seq > c.appliedSeq {
		c.appliedSeq = seq
		sort.Slice(list.Events, func(i, j int) bool {
			return list.Events[i].StartTime.Before(list.Events[j].StartTime.Time)
		})
		c.events = list.Events
		c.total = list.Total
		c.participations = parts
		c.registered = rebuildRegistered(parts)
		c.listErr = ""
		c.partErr = ""
		return nil
	}

	// Failures keep previously loaded data; stale-but-present beats blank.
	if listErr != nil && !isCancellation(listErr) {
		c.listErr = listErr.Error()
	}
	if partsErr != nil && !isCancellation(partsErr) {
		c.partErr = partsErr.Error()
	}

	if listErr != nil {
		return listErr
	}
	return partsErr
}

// rebuildRegistered derives event→registered from the participation rows,
// honoring only each event's most recent row.
func rebuildRegistered(parts []Participation) map[uint]bool {
	latest := make(map[uint]Participation, len(parts))
	for _, p := range parts {
		cur, ok := latest[p.EventID]
		if !ok || p.RegisteredAt.After(cur.RegisteredAt.Time) {
			latest[p.EventID] = p
		}
	}

	m := make(map[uint]bool, len(latest))
	for id, p := range latest {
		if p.Status == ParticipationRegistered {
			m[id] = true
		}
	}
	return m
}

// FetchEventParticipants lists every participation row for one event,
// e.g. for a trainer's attendance view. The result is returned, not
// cached; only the current user's own rows feed the registration map.
func (c *Client) FetchEventParticipants(ctx context.Context, eventID uint) ([]Participation, error) {
	var parts []Participation
	if err := c.do(ctx, "GET", fmt.Sprintf("/events/participation/event/%d", eventID), nil, &parts); err != nil {
		return nil, err
	}
	return parts, nil
}

// FetchEventDetail loads one event into the detail slot.
func (c *Client) FetchEventDetail(ctx context.Context, eventID uint) (*Event, error) {
	var e Event
	err := c.do(ctx, "GET", fmt.Sprintf("/events/%d", eventID), nil, &e)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		if !isCancellation(err) {
			c.detailErr = err.Error()
		}
		return nil, err
	}

	c.detail = &e
	c.detailErr = ""
	copied := e
	return &copied, nil
}

// JoinEvent registers the current user. State is mutated only after the
// backend confirms with the created row, so a failure needs no rollback.
func (c *Client) JoinEvent(ctx context.Context, eventID uint) error {
	var p Participation
	err := c.do(ctx, "POST", "/events/participation", map[string]uint{"event_id": eventID}, &p)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		if !isCancellation(err) {
			c.actionErr = err.Error()
		}
		return err
	}

	c.participations = append(c.participations, p)
	c.registered[eventID] = true
	for i := range c.events {
		if c.events[i].ID == eventID {
			c.events[i].ParticipantsCount++
		}
	}
	if c.detail != nil && c.detail.ID == eventID {
		c.detail.ParticipantsCount++
	}
	c.actionErr = ""
	return nil
}

// CancelEvent withdraws the current user's registration. The participant
// count floors at zero.
func (c *Client) CancelEvent(ctx context.Context, eventID uint) error {
	c.mu.Lock()
	var participationID uint
	found := false
	for _, p := range c.participations {
		if p.EventID == eventID && p.Status == ParticipationRegistered {
			participationID = p.ID
			found = true
		}
	}
	c.mu.Unlock()

	if !found {
		err := fmt.Errorf("not registered for event %d", eventID)
		c.mu.Lock()
		c.actionErr = err.Error()
		c.mu.Unlock()
		return err
	}

	err := c.do(ctx, "DELETE", fmt.Sprintf("/events/participation/%d", participationID), nil, nil)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		if !isCancellation(err) {
			c.actionErr = err.Error()
		}
		return err
	}

	c.registered[eventID] = false
	kept := c.participations[:0]
	for _, p := range c.participations {
		if p.ID != participationID {
			kept = append(kept, p)
		}
	}
	c.participations = kept

	for i := range c.events {
		if c.events[i].ID == eventID && c.events[i].ParticipantsCount > 0 {
			c.events[i].ParticipantsCount--
		}
	}
	if c.detail != nil && c.detail.ID == eventID && c.detail.ParticipantsCount > 0 {
		c.detail.ParticipantsCount--
	}
	c.actionErr = ""
	return nil
}

// IsUserRegistered is a pure lookup; unknown events are not registered and
// no fetch is triggered.
func (c *Client) IsUserRegistered(eventID uint) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.registered[eventID]
}

// FetchUserProfile resolves a member's public profile, fetching each ID at
// most once per session. Distinct IDs fetch in parallel; concurrent calls
// for the same ID share one flight.
func (c *Client) FetchUserProfile(ctx context.Context, userID uint) (*UserProfile, error) {
	for {
		c.mu.Lock()
		if p, ok := c.profiles[userID]; ok {
			c.mu.Unlock()
			return p, nil
		}
		flight, inFlight := c.profileFlight[userID]
		if !inFlight {
			flight = make(chan struct{})
			c.profileFlight[userID] = flight
			c.mu.Unlock()
			break
		}
		c.mu.Unlock()

		select {
		case <-flight:
			// Loop to re-check the cache; the flight may have failed.
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	var p UserProfile
	err := c.do(ctx, "GET", fmt.Sprintf("/users/profile/%d", userID), nil, &p)

	c.mu.Lock()
	if err == nil {
		c.profiles[userID] = &p
	}
	flight := c.profileFlight[userID]
	delete(c.profileFlight, userID)
	c.mu.Unlock()
	close(flight)

	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ForceRefresh cancels any in-flight list fetch, waits a short settle
// delay for the cancellation to propagate, clears the list, and refetches.
// Best effort: transport work already in flight may still complete and is
// discarded by the sequence guard.
func (c *Client) ForceRefresh(ctx context.Context, filters ListFilters) error {
	c.mu.Lock()
	if c.listCancel != nil {
		c.listCancel()
		c.listCancel = nil
	}
	c.mu.Unlock()

	select {
	case <-time.After(c.refreshWait):
	case <-ctx.Done():
		return ctx.Err()
	}

	c.mu.Lock()
	c.events = nil
	c.total = 0
	c.mu.Unlock()

	return c.FetchEvents(ctx, filters)
}

// ===========================
// Accessors

// Events returns a copy of the cached list.
func (c *Client) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}

// Total returns the server-reported total for the last applied list fetch.
func (c *Client) Total() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// Detail returns a copy of the currently loaded detail event, if any.
func (c *Client) Detail() *Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.detail == nil {
		return nil
	}
	copied := *c.detail
	return &copied
}

// Participations returns a copy of the cached participation rows.
func (c *Client) Participations() []Participation {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Participation, len(c.participations))
	copy(out, c.participations)
	return out
}

// Per-operation error messages. Empty means the last run of that
// operation succeeded (or was cancelled).
func (c *Client) ListError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listErr
}

func (c *Client) DetailError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.detailErr
}

func (c *Client) ParticipationError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.partErr
}

func (c *Client) ActionError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.actionErr
}
