package v1

import (
	"fmt"
	"time"

	"github.com/hockey-db/hockey-db/internal/core/hockey"
)

// PlayerEventsRequest selects the events a player was involved in.
// EventType and PlayerType are optional; empty matches any.
// It is bound from both path and query, so required fields are checked by
// Validate rather than binding tags.
type PlayerEventsRequest struct {
	PlayerID   int64     `uri:"player_id"`
	EventType  string    `form:"event_type"`
	PlayerType string    `form:"player_type"`
	Start      time.Time `form:"start" time_format:"2006-01-02T15:04:05Z07:00"`
	End        time.Time `form:"end" time_format:"2006-01-02T15:04:05Z07:00"`
}

// Validate checks the request and normalizes its range to UTC.
func (r *PlayerEventsRequest) Validate() error {
	if r.PlayerID <= 0 {
		return fmt.Errorf("player_id must be positive")
	}

	if r.Start.IsZero() {
		return fmt.Errorf("start is required")
	}

	if r.End.IsZero() {
		return fmt.Errorf("end is required")
	}

	r.Start = r.Start.UTC()
	r.End = r.End.UTC()

	if r.End.Before(r.Start) {
		return fmt.Errorf("end must not be before start")
	}

	return nil
}

// Location is a rink coordinate. Absent from the response when the play had none.
type Location struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// PlayerEvent is one event in a player's history.
type PlayerEvent struct {
	GameID       int64     `json:"game_id"`
	Index        int       `json:"index"`
	Type         string    `json:"type"`
	Location     *Location `json:"location,omitempty"`
	PeriodNumber int       `json:"period_number"`
	PeriodType   string    `json:"period_type"`
	PeriodTime   string    `json:"period_time"`
	DateTime     time.Time `json:"datetime"`
}

// PlayerEventsResponse is the body of GET /v1/players/:player_id/events.
type PlayerEventsResponse struct {
	PlayerID   int64         `json:"player_id"`
	EventType  string        `json:"event_type,omitempty"`
	PlayerType string        `json:"player_type,omitempty"`
	Start      time.Time     `json:"start"`
	End        time.Time     `json:"end"`
	Events     []PlayerEvent `json:"events"`
}

// NewPlayerEvent converts a stored event. A location is only reported when
// both coordinates are present.
func NewPlayerEvent(e hockey.PlayerEvent) PlayerEvent {
	out := PlayerEvent{
		GameID:       e.GameID,
		Index:        e.Index,
		Type:         e.Type,
		PeriodNumber: e.PeriodNumber,
		PeriodType:   e.PeriodType,
		PeriodTime:   e.PeriodTime,
		DateTime:     e.DateTime.UTC(),
	}
	if e.X != nil && e.Y != nil {
		out.Location = &Location{X: *e.X, Y: *e.Y}
	}
	return out
}
