package services

import "loop-route-service/internal/domain"

// ProgressFunc receives fire-and-forget search progress observations.
// A nil func is valid and means the caller does not observe progress.
type ProgressFunc func(domain.SearchProgress)

// Emit invokes the callback when one is set.
func (f ProgressFunc) Emit(p domain.SearchProgress) {
	if f != nil {
		f(p)
	}
}
