package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"loop-route-service/internal/platform/obs"
	"loop-route-service/internal/ports"
)

// SQLRouteCache is the Postgres-backed variant of the route cache.
type SQLRouteCache struct {
	DB *sql.DB
}

func NewSQLRouteCache(db *sql.DB) *SQLRouteCache {
	return &SQLRouteCache{DB: db}
}

func (s *SQLRouteCache) Get(ctx context.Context, key string) (_ ports.RouteLegs, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

	if s.DB == nil {
		return ports.RouteLegs{}, false, errors.New("route cache: db is nil")
	}
	if key == "" {
		return ports.RouteLegs{}, false, errors.New("get route cache: key must not be empty")
	}

	var legsJSON string
	err = s.DB.QueryRowContext(ctx,
		`SELECT legs_json FROM route_cache WHERE route_key = $1;`, key,
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

func (s *SQLRouteCache) Put(ctx context.Context, key string, legs ports.RouteLegs) error {
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
	INSERT INTO route_cache (route_key, total_meters, legs_json)
    VALUES ($1, $2, $3)
	ON CONFLICT (route_key) DO UPDATE
	SET total_meters = EXCLUDED.total_meters,
		legs_json = EXCLUDED.legs_json;
	`, key, legs.TotalMeters(), string(legsJSON))
	if err != nil {
		return fmt.Errorf("insert route cache: %w", err)
	}

	return nil
}
