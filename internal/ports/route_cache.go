package ports

import "context"

// Port: a boundary for caching oracle route distances keyed by an
// ordered-coordinates signature. Misses are not errors.
type RouteCache interface {
	Get(ctx context.Context, key string) (RouteLegs, bool, error)
	Put(ctx context.Context, key string, legs RouteLegs) error
}
