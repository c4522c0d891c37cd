package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"loop-route-service/internal/ports"
)

// SQLite backed cache for oracle route distances. Keys are expected to
// be consistent (the provider builds them from rounded coordinates).
type SqliteRouteCache struct {
	DB *sql.DB
}

func NewSqliteRouteCache(db *sql.DB) *SqliteRouteCache {
	return &SqliteRouteCache{DB: db}
}

func (s *SqliteRouteCache) Get(ctx context.Context, key string) (ports.RouteLegs, bool, error) {
	if s.DB == nil {
		return ports.RouteLegs{}, false, errors.New("route cache: db is nil")
	}
	if key == "" {
		return ports.RouteLegs{}, false, errors.New("get route cache: key must not be empty")
	}

	var legsJSON string
	err := s.DB.QueryRowContext(ctx,
		`SELECT legs_json FROM route_cache WHERE route_key = ?;`, key,
	).Scan(&legsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.RouteLegs{}, false, nil
	}
	if err != nil {
		return ports.RouteLegs{}, false, fmt.Errorf("get route cache: query: %w", err)
	}

	var legs []float64
	if err := json.Unmarshal([]byte(legsJSON), &legs); err != nil {
		return ports.RouteLegs{}, false, fmt.Errorf("get route cache: decode legs: %w", err)
	}

	return ports.RouteLegs{LegMeters: legs}, true, nil
}

func (s *SqliteRouteCache) Put(ctx context.Context, key string, legs ports.RouteLegs) error {
	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}
	if key == "" {
		return errors.New("insert route cache: key must not be empty")
	}

	legsJSON, err := json.Marshal(legs.LegMeters)
	if err != nil {
		return fmt.Errorf("insert route cache: encode legs: %w", err)
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT OR REPLACE INTO route_cache (route_key, total_meters, legs_json)
    VALUES (?, ?, ?);
	`, key, legs.TotalMeters(), string(legsJSON))
	if err != nil {
		return fmt.Errorf("insert route cache: %w", err)
	}

	return nil
}
