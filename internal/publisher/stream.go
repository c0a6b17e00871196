// Package publisher announces ingested games on a Redis stream.
package publisher

import (
	"context"
	"fmt"

	"github.com/hockey-db/hockey-db/internal/core/storage"
	"github.com/redis/go-redis/v9"
)

// maxStreamLen caps the stream; consumers are expected to keep up well within it.
const maxStreamLen = 10000

type streamAdder interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// StreamPublisher publishes one entry per ingested game.
type StreamPublisher struct {
	client streamAdder
	stream string
}

// NewStreamPublisher creates a new stream publisher
func NewStreamPublisher(client *redis.Client, stream string) *StreamPublisher {
	return &StreamPublisher{
		client: client,
		stream: stream,
	}
}

// Connect parses a redis:// URL and pings the server.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return client, nil
}

// GameIngested appends the game's write counts to the stream.
func (p *StreamPublisher) GameIngested(ctx context.Context, gameID int64, res storage.WriteResult) error {
	err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: maxStreamLen,
		Approx: true,
		Values: map[string]interface{}{
			"game_id":          gameID,
			"game_inserted":    res.GameInserted,
			"events_inserted":  res.EventsInserted,
			"players_inserted": res.PlayersInserted,
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("publishing game %d to %s: %w", gameID, p.stream, err)
	}
	return nil
}
