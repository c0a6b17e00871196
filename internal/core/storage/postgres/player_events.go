package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hockey-db/hockey-db/internal/core/hockey"
	"github.com/hockey-db/hockey-db/internal/core/storage"
)

// PlayerEvents returns the events a player was involved in, oldest first.
func (a *Adapter) PlayerEvents(ctx context.Context, q storage.PlayerEventQuery) ([]hockey.PlayerEvent, error) {
	rows, err := a.db.QueryContext(ctx, queryPlayerEvents,
		q.PlayerID,
		q.EventType,
		q.PlayerType,
		q.Start.UTC(),
		q.End.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query player events: %w", err)
	}
	defer rows.Close()

	events := make([]hockey.PlayerEvent, 0)
	for rows.Next() {
		evt, err := scanPlayerEventRow(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, evt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating player events: %w", err)
	}

	return events, nil
}

func scanPlayerEventRow(row scanner) (hockey.PlayerEvent, error) {
	var evt hockey.PlayerEvent
	var x, y sql.NullInt64

	err := row.Scan(
		&evt.GameID,
		&evt.Index,
		&evt.Type,
		&x,
		&y,
		&evt.PeriodNumber,
		&evt.PeriodType,
		&evt.PeriodTime,
		&evt.DateTime,
	)
	if err != nil {
		return hockey.PlayerEvent{}, fmt.Errorf("failed to scan player event row: %w", err)
	}

	evt.X = intFromNull(x)
	evt.Y = intFromNull(y)
	evt.DateTime = evt.DateTime.UTC()
	return evt, nil
}
