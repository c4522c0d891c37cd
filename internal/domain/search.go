package domain

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultMaxOracleCalls bounds road-distance oracle usage per search.
const DefaultMaxOracleCalls = 50

// SearchConfig carries the hard constraints and tunables of one route
// search. It is validated once at search start and never mutated after.
type SearchConfig struct {
	// Keyword drives the nearby point-of-interest lookup.
	Keyword string

	// BrandNames are the accepted display-name spellings; matching is a
	// case-insensitive substring test. When empty, the keyword itself
	// and the keyword with spaces removed are accepted.
	BrandNames []string

	RadiusMeters float64

	MinDistanceMeters float64
	MaxDistanceMeters float64

	MinStops int
	MaxStops int

	// MaxOracleCalls caps authoritative distance lookups per search.
	MaxOracleCalls int

	Tuning Tuning
}

// ApplyDefaults fills optional fields.
func (c *SearchConfig) ApplyDefaults() {
	if c.MaxOracleCalls <= 0 {
		c.MaxOracleCalls = DefaultMaxOracleCalls
	}
	if len(c.BrandNames) == 0 && c.Keyword != "" {
		c.BrandNames = []string{
			c.Keyword,
			strings.ReplaceAll(c.Keyword, " ", ""),
		}
	}
	c.Tuning = c.Tuning.WithDefaults()
}

// Validate checks the hard constraints once at search start.
func (c SearchConfig) Validate() error {
	if strings.TrimSpace(c.Keyword) == "" {
		return errors.New("search config: keyword must be non-empty")
	}
	if c.RadiusMeters <= 0 {
		return errors.New("search config: radius must be positive")
	}
	if c.MinDistanceMeters <= 0 || c.MaxDistanceMeters <= 0 {
		return errors.New("search config: distance bounds must be positive")
	}
	if c.MinDistanceMeters > c.MaxDistanceMeters {
		return fmt.Errorf(
			"search config: min distance %.0f exceeds max distance %.0f",
			c.MinDistanceMeters, c.MaxDistanceMeters,
		)
	}
	if c.MinStops <= 0 || c.MaxStops <= 0 {
		return errors.New("search config: stop counts must be positive")
	}
	if c.MinStops > c.MaxStops {
		return fmt.Errorf(
			"search config: min stops %d exceeds max stops %d",
			c.MinStops, c.MaxStops,
		)
	}
	return nil
}

// TargetMeters is the midpoint of the acceptable distance band; the
// scorer and generator aim for it.
func (c SearchConfig) TargetMeters() float64 {
	return (c.MinDistanceMeters + c.MaxDistanceMeters) / 2
}
