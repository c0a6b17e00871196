package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hockey-db/hockey-db/internal/core/storage"
	"github.com/lib/pq"
)

// persistenceError wraps err for the game being written, keeping the SQLSTATE if any.
func persistenceError(gameID int64, op string, err error) error {
	pe := &storage.PersistenceError{GameID: gameID, Op: op, Err: err}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		pe.Code = string(pqErr.Code)
	}
	return pe
}

// resolveID runs an insert-or-select statement and falls back to a plain select
// when a concurrent commit left both sides of the union empty.
func resolveID(ctx context.Context, tx *sql.Tx, resolveQuery, selectQuery string, args ...any) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx, resolveQuery, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		err = tx.QueryRowContext(ctx, selectQuery, args...).Scan(&id)
	}
	return id, err
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func intFromNull(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

type scanner interface {
	Scan(dest ...interface{}) error
}
