package hockey

import "time"

// Game is a completed game keyed by the id the source assigns to it.
// Team ids are source ids; teams are not stored as their own relation.
type Game struct {
	ID         int64
	HomeTeamID int64
	AwayTeamID int64
	Arena      string    // resolved to arena.id at write time
	Type       string    // opaque source code, e.g. "R", "P"
	Season     string    // opaque 8 digit code, e.g. "20212022"
	DateTime   time.Time // scheduled start
}

// Period is shared across games: every game's "1 REGULAR" is the same row.
type Period struct {
	Number int
	Type   string // e.g. "REGULAR", "OVERTIME", "SHOOTOUT"
}

// Event is one play within a game. (GameID, Index) is its natural key.
type Event struct {
	Index      int
	Type       string // source event type id, e.g. "GOAL", "SHOT"
	X          *int   // nil when the play has no rink location
	Y          *int
	Period     Period
	PeriodTime time.Duration // elapsed time within the period
	DateTime   time.Time

	Players []InvolvedPlayer
}

// InvolvedPlayer links a player to an event in exactly one role.
type InvolvedPlayer struct {
	PlayerID int64
	Type     string // role, e.g. "Scorer", "Shooter", "Goalie"
}

// NormalizedGame is everything one game contributes to the store.
// It is the unit of a single write transaction.
type NormalizedGame struct {
	Game   Game
	Events []Event
}

// PlayerCount returns the number of involved-player rows across all events.
func (g *NormalizedGame) PlayerCount() int {
	n := 0
	for _, e := range g.Events {
		n += len(e.Players)
	}
	return n
}

// PlayerEvent is the read-side projection of an event as seen from one involved player.
type PlayerEvent struct {
	GameID       int64
	Index        int
	Type         string
	X            *int
	Y            *int
	PeriodNumber int
	PeriodType   string
	PeriodTime   string // HH:MM:SS as stored
	DateTime     time.Time
}
