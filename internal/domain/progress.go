package domain

// Stage identifies where a search currently is in its forward-only
// state machine.
type Stage string

const (
	StageGatheringCandidates Stage = "gathering-candidates"
	StageGeneratingRoutes    Stage = "generating-routes"
	StageVerifyingRoutes     Stage = "verifying-routes"
	StageComplete            Stage = "complete"
	StageFailed              Stage = "failed"
)

// SearchProgress is a transient observation emitted at state transitions
// and meaningful sub-steps. Notifications never influence control flow
// and are not persisted.
type SearchProgress struct {
	Stage   Stage
	Message string

	CandidatesFound     int
	CandidatesEvaluated int
	OracleCallsUsed     int
}
