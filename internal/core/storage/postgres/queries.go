package postgres

// SQL for the hockey store. Every write is insert-if-absent; nothing is updated.

const (
	// queryResolveArena returns the arena id for a name, creating the row if needed.
	// When the name already exists the INSERT returns nothing and the SELECT side
	// supplies the id. If another transaction commits the same name after this
	// statement's snapshot, both sides are empty and querySelectArena is used.
	queryResolveArena = `
		WITH ins AS (
			INSERT INTO arena (name)
			VALUES ($1)
			ON CONFLICT (name) DO NOTHING
			RETURNING id
		)
		SELECT id FROM ins
		UNION ALL
		SELECT id FROM arena WHERE name = $1
		LIMIT 1
	`

	querySelectArena = `
		SELECT id FROM arena WHERE name = $1
	`

	// queryResolvePeriod follows the same pattern as queryResolveArena.
	queryResolvePeriod = `
		WITH ins AS (
			INSERT INTO period (number, type)
			VALUES ($1, $2)
			ON CONFLICT (number, type) DO NOTHING
			RETURNING id
		)
		SELECT id FROM ins
		UNION ALL
		SELECT id FROM period WHERE number = $1 AND type = $2
		LIMIT 1
	`

	querySelectPeriod = `
		SELECT id FROM period WHERE number = $1 AND type = $2
	`

	// queryInsertGame affects zero rows when the game is already stored.
	queryInsertGame = `
		INSERT INTO game (
			id, home_team_id, away_team_id, arena_id, type, season, datetime
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING
	`

	// queryInsertEvent returns no row (sql.ErrNoRows) for an existing (game_id, index).
	queryInsertEvent = `
		INSERT INTO event (
			index, game_id, type, x, y, period_id, period_time, datetime
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (game_id, index) DO NOTHING
		RETURNING id
	`

	queryInsertInvolvedPlayer = `
		INSERT INTO involved_player (event_id, player_id, type)
		VALUES ($1, $2, $3)
		ON CONFLICT (event_id, player_id) DO NOTHING
	`

	// queryGameTableExists never errors on a fresh database.
	queryGameTableExists = `
		SELECT to_regclass('public.game') IS NOT NULL
	`

	queryMostRecentGameTime = `
		SELECT MAX(datetime) FROM game
	`

	// queryPlayerEvents lists the events a player took part in. An empty event
	// type or player type matches any value. The datetime range is inclusive.
	queryPlayerEvents = `
		SELECT
			e.game_id, e.index, e.type, e.x, e.y,
			p.number, p.type, e.period_time::text, e.datetime
		FROM involved_player ip
		JOIN event e ON e.id = ip.event_id
		JOIN game g ON g.id = e.game_id
		JOIN period p ON p.id = e.period_id
		WHERE ip.player_id = $1
		  AND ($2 = '' OR e.type = $2)
		  AND ($3 = '' OR ip.type = $3)
		  AND e.datetime BETWEEN $4 AND $5
		ORDER BY e.datetime ASC, e.game_id ASC, e.index ASC
	`
)
