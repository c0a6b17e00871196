package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hockey-db/hockey-db/internal/core/hockey"
	"github.com/hockey-db/hockey-db/internal/core/storage"
)

// UpsertGame writes a game, its arena, periods, events and involved players in one
// transaction. Rows whose natural key already exists are left untouched. Players are
// only written for events this call created.
//
// Any failure rolls the whole game back and returns a *storage.PersistenceError.
func (a *Adapter) UpsertGame(ctx context.Context, g *hockey.NormalizedGame) (storage.WriteResult, error) {
	var res storage.WriteResult
	if g == nil {
		return res, fmt.Errorf("upsert game: nil game")
	}
	gameID := g.Game.ID

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return res, persistenceError(gameID, "begin tx", err)
	}
	defer tx.Rollback() //nolint:errcheck

	arenaID, err := resolveID(ctx, tx, queryResolveArena, querySelectArena, g.Game.Arena)
	if err != nil {
		return res, persistenceError(gameID, "resolve arena", err)
	}

	result, err := tx.ExecContext(ctx, queryInsertGame,
		gameID,
		g.Game.HomeTeamID,
		g.Game.AwayTeamID,
		arenaID,
		g.Game.Type,
		g.Game.Season,
		g.Game.DateTime.UTC(),
	)
	if err != nil {
		return res, persistenceError(gameID, "insert game", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return res, persistenceError(gameID, "check game insert", err)
	}
	res.GameInserted = rowsAffected > 0

	if len(g.Events) > 0 {
		if err := writeEvents(ctx, tx, gameID, g.Events, &res); err != nil {
			return res, err
		}
	}

	if err := tx.Commit(); err != nil {
		return storage.WriteResult{}, persistenceError(gameID, "commit", err)
	}

	slog.Debug("[Postgres] Game written",
		"game_id", gameID,
		"game_inserted", res.GameInserted,
		"events_inserted", res.EventsInserted,
		"events_skipped", res.EventsSkipped,
		"players_inserted", res.PlayersInserted)
	return res, nil
}

func writeEvents(ctx context.Context, tx *sql.Tx, gameID int64, events []hockey.Event, res *storage.WriteResult) error {
	eventStmt, err := tx.PrepareContext(ctx, queryInsertEvent)
	if err != nil {
		return persistenceError(gameID, "prepare event insert", err)
	}
	defer eventStmt.Close()

	playerStmt, err := tx.PrepareContext(ctx, queryInsertInvolvedPlayer)
	if err != nil {
		return persistenceError(gameID, "prepare involved player insert", err)
	}
	defer playerStmt.Close()

	// Periods are shared across games, so most games resolve the same handful.
	periodIDs := make(map[hockey.Period]int64)

	for _, evt := range events {
		periodID, ok := periodIDs[evt.Period]
		if !ok {
			periodID, err = resolveID(ctx, tx, queryResolvePeriod, querySelectPeriod, evt.Period.Number, evt.Period.Type)
			if err != nil {
				return persistenceError(gameID, fmt.Sprintf("resolve period %d %s", evt.Period.Number, evt.Period.Type), err)
			}
			periodIDs[evt.Period] = periodID
		}

		var eventID int64
		err = eventStmt.QueryRowContext(ctx,
			evt.Index,
			gameID,
			evt.Type,
			nullInt(evt.X),
			nullInt(evt.Y),
			periodID,
			hockey.FormatPeriodTime(evt.PeriodTime),
			evt.DateTime.UTC(),
		).Scan(&eventID)
		if errors.Is(err, sql.ErrNoRows) {
			// Already stored, together with its players.
			res.EventsSkipped++
			continue
		}
		if err != nil {
			return persistenceError(gameID, fmt.Sprintf("insert event %d", evt.Index), err)
		}
		res.EventsInserted++

		for _, p := range evt.Players {
			result, err := playerStmt.ExecContext(ctx, eventID, p.PlayerID, p.Type)
			if err != nil {
				return persistenceError(gameID, fmt.Sprintf("insert player %d for event %d", p.PlayerID, evt.Index), err)
			}
			n, err := result.RowsAffected()
			if err != nil {
				return persistenceError(gameID, "check player insert", err)
			}
			res.PlayersInserted += int(n)
		}
	}

	return nil
}
