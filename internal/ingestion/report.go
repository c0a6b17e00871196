package ingestion

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/hockey-db/hockey-db/internal/core/storage"
	"github.com/hockey-db/hockey-db/internal/normalize"
	"github.com/hockey-db/hockey-db/internal/source/nhl"
)

// Phase is the orchestrator state. A run moves strictly forward through
// Idle, DeterminingWindow, EnumeratingGames, IngestingGames and Done.
type Phase string

const (
	PhaseIdle              Phase = "idle"
	PhaseDeterminingWindow Phase = "determining_window"
	PhaseEnumeratingGames  Phase = "enumerating_games"
	PhaseIngestingGames    Phase = "ingesting_games"
	PhaseDone              Phase = "done"
)

// FailureKind classifies why a single game was not ingested.
type FailureKind string

const (
	KindSourceUnavailable FailureKind = "source_unavailable"
	KindMalformedRecord   FailureKind = "malformed_record"
	KindPersistence       FailureKind = "persistence"
	KindCancelled         FailureKind = "cancelled"
	KindUnknown           FailureKind = "unknown"
)

func classify(err error) FailureKind {
	switch {
	case errors.Is(err, normalize.ErrMalformedRecord), errors.Is(err, nhl.ErrMalformedResponse):
		return KindMalformedRecord
	case errors.Is(err, storage.ErrPersistence):
		return KindPersistence
	case errors.Is(err, nhl.ErrSourceUnavailable):
		return KindSourceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCancelled
	default:
		return KindUnknown
	}
}

// GameFailure records one game the run attempted and could not store.
type GameFailure struct {
	GameID int64       `json:"game_id"`
	Kind   FailureKind `json:"kind"`
	Error  string      `json:"error"`
}

// RunReport is the outcome of one ingestion cycle.
//
// Every candidate ends up in exactly one of Inserted, Skipped or Failed. A game
// counts as inserted when its transaction created at least one row; a game that
// was already fully stored, or that the source no longer has, is skipped.
type RunReport struct {
	RunID       string    `json:"run_id"`
	Phase       Phase     `json:"phase"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`
	Bootstrap   bool      `json:"bootstrap"` // no checkpoint, window came from the lookback

	Candidates int `json:"candidates"`
	Inserted   int `json:"inserted"`
	Skipped    int `json:"skipped"`
	NotFound   int `json:"not_found"` // subset of Skipped
	Failed     int `json:"failed"`

	EventsInserted  int `json:"events_inserted"`
	EventsSkipped   int `json:"events_skipped"`
	PlayersInserted int `json:"players_inserted"`

	Failures []GameFailure `json:"failures"`

	mu sync.Mutex
}

func newRunReport(runID string, startedAt time.Time) *RunReport {
	return &RunReport{
		RunID:     runID,
		Phase:     PhaseIdle,
		StartedAt: startedAt,
		Failures:  []GameFailure{},
	}
}

func (r *RunReport) recordWrite(res storage.WriteResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if res.GameInserted || res.EventsInserted > 0 {
		r.Inserted++
	} else {
		r.Skipped++
	}
	r.EventsInserted += res.EventsInserted
	r.EventsSkipped += res.EventsSkipped
	r.PlayersInserted += res.PlayersInserted
}

func (r *RunReport) recordNotFound() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Skipped++
	r.NotFound++
}

func (r *RunReport) recordFailure(gameID int64, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Failed++
	r.Failures = append(r.Failures, GameFailure{
		GameID: gameID,
		Kind:   classify(err),
		Error:  err.Error(),
	})
}

// finish sorts failures so reports are stable regardless of worker scheduling.
func (r *RunReport) finish(at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sort.Slice(r.Failures, func(i, j int) bool { return r.Failures[i].GameID < r.Failures[j].GameID })
	r.FinishedAt = at
}
