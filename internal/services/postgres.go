package services

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const searchesSchema = `
	CREATE TABLE IF NOT EXISTS searches (
		id         UUID PRIMARY KEY,
		position   TEXT NOT NULL,
		moves      TEXT[] NOT NULL,
		depth      INTEGER NOT NULL,
		preset     TEXT NOT NULL,
		move_row   INTEGER NOT NULL,
		move_col   INTEGER NOT NULL,
		score      DOUBLE PRECISION NOT NULL,
		nodes      BIGINT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)
`

// InitPostgres connects to Postgres and creates the searches table if needed.
func InitPostgres(url string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}

	// Test the connection
	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("error pinging database: %w", err)
	}

	if _, err = db.Exec(searchesSchema); err != nil {
		return nil, fmt.Errorf("error creating searches table: %w", err)
	}

	return db, nil
}
