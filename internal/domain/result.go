package domain

// SearchResult is the single outcome of a route search.
//
// On success Stops holds the winning loop as an open ordered list (the
// start stop first, trailing start duplicate stripped). Verified is
// false when the distance is the straight-line estimate of the best
// generated candidate rather than an oracle-confirmed road distance.
type SearchResult struct {
	OK             bool
	Stops          []Stop
	DistanceMeters float64
	Verified       bool
	Err            *SearchError
}

// Failed builds a failure result from a typed search error.
func Failed(err *SearchError) SearchResult {
	return SearchResult{OK: false, Err: err}
}
