package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hockey-db/hockey-db/internal/core/hockey"
)

// ErrPersistence marks a store failure while writing a game.
var ErrPersistence = errors.New("persistence error")

// PersistenceError carries the game whose transaction was rolled back.
// Code is the PostgreSQL SQLSTATE when the driver reported one.
type PersistenceError struct {
	GameID int64
	Op     string
	Code   string
	Err    error
}

func (e *PersistenceError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("persist game %d: %s (sqlstate %s): %v", e.GameID, e.Op, e.Code, e.Err)
	}
	return fmt.Sprintf("persist game %d: %s: %v", e.GameID, e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistence, e.Err}
}

// WriteResult counts the rows a single UpsertGame call created.
type WriteResult struct {
	GameInserted    bool
	EventsInserted  int
	EventsSkipped   int
	PlayersInserted int
}

// GameWriter persists a normalized game and everything it references.
type GameWriter interface {
	// UpsertGame writes the game in one transaction. Rows that already exist are
	// left unchanged. Failures return a *PersistenceError and nothing is committed.
	UpsertGame(ctx context.Context, game *hockey.NormalizedGame) (WriteResult, error)
}

// CheckpointReader reports how far ingestion has progressed.
type CheckpointReader interface {
	// MostRecentEventTime returns the latest stored game start time.
	// ok is false when nothing has been ingested yet.
	MostRecentEventTime(ctx context.Context) (t time.Time, ok bool, err error)
}

// PlayerEventQuery scopes a player event lookup. Start and End are inclusive.
type PlayerEventQuery struct {
	PlayerID   int64
	EventType  string
	PlayerType string
	Start      time.Time
	End        time.Time
}

// PlayerEventReader serves read queries over ingested events.
type PlayerEventReader interface {
	PlayerEvents(ctx context.Context, q PlayerEventQuery) ([]hockey.PlayerEvent, error)
}
