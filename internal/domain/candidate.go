package domain

// A generated loop together with its straight-line distance estimate and
// fitness score. Candidates are ephemeral: they live only inside one
// search invocation and are discarded once a result is selected.
//
// Scores follow deviation/penalty semantics: lower is better. Every
// component that ranks candidates shares this convention.
type RouteCandidate struct {
	Loop            Loop
	EstimatedMeters float64
	Score           float64
}
