package domain

// Represents a point of interest eligible to be part of a route.
// The ID is the external provider's stable identifier and is unique
// within a search session; stops are never mutated after creation.
type Stop struct {
	ID       string
	Name     string
	Address  string
	Location Coordinates
}
