// Package session holds the volatile per-user dialogue state. One Session
// exists per chat id; all mutations for a user happen under the session's
// own lock so concurrent gateway deliveries cannot interleave.
package session

import (
	"sync"

	"github.com/shadamnittt/FeelGo/internal/overpass"
)

// Stage is a named point in the dialogue state machine.
type Stage string

const (
	StageAwaitingName     Stage = "awaiting_name"
	StageAwaitingMood     Stage = "awaiting_mood"
	StageAwaitingBudget   Stage = "awaiting_budget"
	StageAwaitingScope    Stage = "awaiting_scope"
	StageAwaitingCategory Stage = "awaiting_category"
	StageAwaitingLocation Stage = "awaiting_location"
	StageResultsShown     Stage = "results_shown"
	StageIdle             Stage = "idle"
)

// Scope says whether a search is anchored to the user's shared location or
// to the configured city center.
type Scope string

const (
	ScopeNearby   Scope = "nearby"
	ScopeCityWide Scope = "citywide"
)

type Session struct {
	mu sync.Mutex

	ChatID     int64
	Stage      Stage
	Name       string
	Mood       string
	Budget     string
	Scope      Scope
	CategoryID string
	Location   *overpass.LatLon

	// LastResults is overwritten by each successful search, never by a
	// failed one.
	LastResults []overpass.Place
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// ResetPreferences clears everything a new search collects, keeping the name
// learned at onboarding.
func (s *Session) ResetPreferences() {
	s.Mood = ""
	s.Budget = ""
	s.Scope = ""
	s.CategoryID = ""
	s.Location = nil
	s.LastResults = nil
}
