package cache

import (
	"database/sql"
	"errors"
	"fmt"
)

// InitSchema creates the route-cache table. Works for both SQLite and
// Postgres backends.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	createRouteCacheQuery := `
	CREATE TABLE IF NOT EXISTS route_cache (
        route_key TEXT PRIMARY KEY,
        total_meters REAL NOT NULL,
        legs_json TEXT NOT NULL
    );
	`

	if _, err := db.Exec(createRouteCacheQuery); err != nil {
		return fmt.Errorf("init schema: create route_cache: %w", err)
	}

	return nil
}

// ClearSchema drops cached route distances, used by the cache tool.
func ClearSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("clear schema: DB is nil")
	}

	if _, err := db.Exec(`DELETE FROM route_cache;`); err != nil {
		return fmt.Errorf("clear schema: %w", err)
	}

	return nil
}
