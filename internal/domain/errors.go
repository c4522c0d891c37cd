package domain

import "fmt"

// ErrorKind classifies why a search failed.
type ErrorKind string

const (
	// ErrInvalidConfig: the search configuration failed validation.
	ErrInvalidConfig ErrorKind = "invalid_config"

	// ErrLookupFailed: the nearby point-of-interest lookup failed; the
	// underlying transport error is carried in the message unchanged.
	ErrLookupFailed ErrorKind = "lookup_failed"

	// ErrInsufficientCandidates: fewer stops were found near the start
	// than the minimum stop count requires.
	ErrInsufficientCandidates ErrorKind = "insufficient_candidates"

	// ErrNoCandidatesGenerated: generation produced zero loops for
	// every attempted stop count.
	ErrNoCandidatesGenerated ErrorKind = "no_candidates_generated"

	// ErrOracleUnavailable: the road-distance oracle failed for every
	// verification attempt and no fallback existed.
	ErrOracleUnavailable ErrorKind = "oracle_unavailable"

	// ErrNoFeasibleRoute: generation succeeded but no candidate could
	// be returned. Should not occur in practice since a fallback
	// always exists once generation succeeds.
	ErrNoFeasibleRoute ErrorKind = "no_feasible_route"
)

// SearchError is the typed failure carried by a failed SearchResult.
type SearchError struct {
	Kind    ErrorKind
	Message string
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func NewSearchError(kind ErrorKind, format string, args ...any) *SearchError {
	return &SearchError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
