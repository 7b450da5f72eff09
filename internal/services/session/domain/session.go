// Package domain holds swipe-session state for candidate browsing
package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	petsdom "pawmatch/internal/services/pets/domain"
)

// State is the pager lifecycle state of a session
type State uint8

const (
	// StateIdle means no fetch has happened in the current epoch yet
	StateIdle State = iota
	// StateLoading means a fetch for the current epoch is in flight
	StateLoading
	// StateReady means the buffer holds an undecided candidate at the cursor
	StateReady
	// StateExhausted means the buffer is spent and the upstream has no more pages
	StateExhausted
	// StateError means the last fetch failed; a retry re-targets the same page
	StateError
)

// String returns the wire name of the state
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateExhausted:
		return "exhausted"
	case StateError:
		return "error"
	default:
		return "idle"
	}
}

// MarshalJSON encodes the state as its wire name
func (s State) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

// Decision is the caller's verdict on the current candidate
type Decision string

const (
	// DecisionAccept favorites the candidate and advances the cursor
	DecisionAccept Decision = "accept"
	// DecisionReject advances the cursor without recording a favorite
	DecisionReject Decision = "reject"
)

// Valid reports whether d is a known decision
func (d Decision) Valid() bool { return d == DecisionAccept || d == DecisionReject }

// TotalPagesUnknown marks an epoch that has not seen a pagination block yet
const TotalPagesUnknown = -1

// Session is one swipe session. Loaded is append-only within an epoch;
// Cursor only moves forward and only via a decision. A filter change or
// restart bumps Epoch and resets everything except the ledger
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time
	TouchedAt time.Time

	Filter petsdom.FilterSpec
	Epoch  uint64

	State      State
	Loaded     []petsdom.Candidate
	Cursor     int
	RemotePage int
	TotalPages int
	LastError  string

	Ledger Ledger
}

// NewSession creates an idle session for the given filter
func NewSession(filter petsdom.FilterSpec, now time.Time) *Session {
	return &Session{
		ID:         uuid.New(),
		CreatedAt:  now,
		TouchedAt:  now,
		Filter:     filter,
		RemotePage: 1,
		TotalPages: TotalPagesUnknown,
	}
}

// Reset starts a new epoch: buffer, cursor and paging go back to their
// initial values while favorites persist
func (s *Session) Reset(filter petsdom.FilterSpec) {
	s.Filter = filter
	s.Epoch++
	s.State = StateIdle
	s.Loaded = nil
	s.Cursor = 0
	s.RemotePage = 1
	s.TotalPages = TotalPagesUnknown
	s.LastError = ""
}

// MorePages reports whether the upstream may still have pages for this epoch
func (s *Session) MorePages() bool {
	return s.TotalPages == TotalPagesUnknown || s.RemotePage <= s.TotalPages
}

// Current returns the undecided candidate at the cursor, if any
func (s *Session) Current() (petsdom.Candidate, bool) {
	if s.Cursor < len(s.Loaded) {
		return s.Loaded[s.Cursor], true
	}
	return petsdom.Candidate{}, false
}

// Snapshot is the read model served to the presentation layer
type Snapshot struct {
	ID         uuid.UUID          `json:"id"`
	State      State              `json:"state"`
	Epoch      uint64             `json:"epoch"`
	Cursor     int                `json:"cursor"`
	Loaded     int                `json:"loaded"`
	RemotePage int                `json:"remote_page"`
	TotalPages int                `json:"total_pages"`
	Favorites  int                `json:"favorites"`
	Filter     petsdom.FilterSpec `json:"filter"`
	Error      string             `json:"error,omitempty"`
}

// Snap builds a Snapshot from the session
func (s *Session) Snap() Snapshot {
	return Snapshot{
		ID:         s.ID,
		State:      s.State,
		Epoch:      s.Epoch,
		Cursor:     s.Cursor,
		Loaded:     len(s.Loaded),
		RemotePage: s.RemotePage,
		TotalPages: s.TotalPages,
		Favorites:  s.Ledger.Len(),
		Filter:     s.Filter,
		Error:      s.LastError,
	}
}

// NextResult is the outcome of asking for the next candidate
type NextResult struct {
	State     State              `json:"state"`
	Candidate *petsdom.Candidate `json:"candidate,omitempty"`
	Error     string             `json:"error,omitempty"`
}
