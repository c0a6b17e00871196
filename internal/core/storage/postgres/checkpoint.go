package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// MostRecentEventTime returns the start time of the latest stored game.
// A missing game table or an empty one both report ok == false.
func (a *Adapter) MostRecentEventTime(ctx context.Context) (time.Time, bool, error) {
	var exists bool
	if err := a.db.QueryRowContext(ctx, queryGameTableExists).Scan(&exists); err != nil {
		return time.Time{}, false, fmt.Errorf("checkpoint: check game table: %w", err)
	}
	if !exists {
		return time.Time{}, false, nil
	}

	var latest sql.NullTime
	if err := a.db.QueryRowContext(ctx, queryMostRecentGameTime).Scan(&latest); err != nil {
		return time.Time{}, false, fmt.Errorf("checkpoint: read latest game time: %w", err)
	}
	if !latest.Valid {
		return time.Time{}, false, nil
	}
	return latest.Time.UTC(), true, nil
}
