package projection

import (
	"context"
	"errors"
	"fmt"

	v1 "github.com/hockey-db/hockey-db/internal/api/v1"
	"github.com/hockey-db/hockey-db/internal/core/storage"
)

// ErrInvalidQuery marks request validation errors that should return HTTP 400.
var ErrInvalidQuery = errors.New("invalid player event query")

// Service implements the read side over stored events.
type Service struct {
	events storage.PlayerEventReader
}

// NewService creates a new projection service.
func NewService(events storage.PlayerEventReader) *Service {
	if events == nil {
		panic("projection: player event reader must not be nil")
	}
	return &Service{events: events}
}

// PlayerEvents returns the events a player was involved in within the
// inclusive [Start, End] range, optionally narrowed by event type and role.
func (s *Service) PlayerEvents(ctx context.Context, req v1.PlayerEventsRequest) (*v1.PlayerEventsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}

	stored, err := s.events.PlayerEvents(ctx, storage.PlayerEventQuery{
		PlayerID:   req.PlayerID,
		EventType:  req.EventType,
		PlayerType: req.PlayerType,
		Start:      req.Start,
		End:        req.End,
	})
	if err != nil {
		return nil, fmt.Errorf("query player events: %w", err)
	}

	events := make([]v1.PlayerEvent, 0, len(stored))
	for _, e := range stored {
		events = append(events, v1.NewPlayerEvent(e))
	}

	return &v1.PlayerEventsResponse{
		PlayerID:   req.PlayerID,
		EventType:  req.EventType,
		PlayerType: req.PlayerType,
		Start:      req.Start,
		End:        req.End,
		Events:     events,
	}, nil
}
