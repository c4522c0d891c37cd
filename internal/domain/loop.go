package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// An ordered, start-duplicated sequence of stops forming a closed route.
// The first and last elements are the same start stop; all interior stop
// IDs are distinct.
type Loop []Stop

// NewLoop validates the closed-loop invariants and returns the loop.
func NewLoop(stops []Stop) (Loop, error) {
	if len(stops) < 2 {
		return nil, errors.New("new loop: need at least start and return stop")
	}

	if stops[0].ID != stops[len(stops)-1].ID {
		return nil, fmt.Errorf(
			"new loop: first stop %q and last stop %q must match",
			stops[0].ID, stops[len(stops)-1].ID,
		)
	}

	seen := make(map[string]struct{}, len(stops)-1)
	for _, s := range stops[:len(stops)-1] {
		if _, ok := seen[s.ID]; ok {
			return nil, fmt.Errorf("new loop: stop %q appears twice", s.ID)
		}
		seen[s.ID] = struct{}{}
	}

	return Loop(stops), nil
}

// StopCount returns the number of interior stops, excluding the
// duplicated start/end.
func (l Loop) StopCount() int {
	if len(l) < 2 {
		return 0
	}
	return len(l) - 2
}

// Interior returns the stops between the start and the return leg.
func (l Loop) Interior() []Stop {
	if len(l) < 2 {
		return nil
	}
	return l[1 : len(l)-1]
}

// Open returns the loop with the trailing start duplicate stripped,
// suitable for presenting as an ordered stop list.
func (l Loop) Open() []Stop {
	if len(l) < 2 {
		return l
	}
	return l[:len(l)-1]
}

// Signature returns an order-insensitive identity for the interior stop
// set, used to discard structurally duplicate construction attempts.
func (l Loop) Signature() string {
	ids := make([]string, 0, l.StopCount())
	for _, s := range l.Interior() {
		ids = append(ids, s.ID)
	}
	sort.Strings(ids)
	return strings.Join(ids, "|")
}

// Coords returns the ordered coordinates of every stop in the loop,
// including the duplicated start at the end.
func (l Loop) Coords() []Coordinates {
	out := make([]Coordinates, len(l))
	for i, s := range l {
		out[i] = s.Location
	}
	return out
}
