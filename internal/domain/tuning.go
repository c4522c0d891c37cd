package domain

// Tuning collects the empirically chosen constants of the route search.
// The defaults mirror the values the search was originally tuned with;
// none of them is known to be optimal, so all are plain fields that
// callers (and tests) can override per search.
type Tuning struct {
	// Attempts is the randomized construction budget per stop count.
	Attempts int

	// RoadFactor inflates straight-line estimates toward expected
	// road distance when pruning over-long attempts.
	RoadFactor float64

	// LegConservatism shrinks the target leg length used during
	// construction, leaving headroom for road inflation.
	LegConservatism float64

	// OverTolerance is the accepted estimate overshoot, as a fraction
	// of the target distance, before an attempt is rejected.
	OverTolerance float64

	// StepProximityWeight balances raw proximity against target-leg
	// closeness when scoring the next stop during construction.
	StepProximityWeight float64

	// GreedyBias is the probability of taking the best-scored next
	// stop; otherwise one of the ExplorationWindow best is sampled.
	GreedyBias float64

	// ExplorationWindow is how many of the best-scored next stops are
	// eligible when the greedy choice is skipped.
	ExplorationWindow int

	// ClosureWeight and SpacingWeight scale the loop-closure and
	// leg-spacing terms of the route score.
	ClosureWeight float64
	SpacingWeight float64

	// DeviationBand is the distance deviation fraction inside which a
	// loop is considered on target.
	DeviationBand float64

	// TopVerify caps how many ranked candidates are submitted to the
	// road-distance oracle.
	TopVerify int
}

// DefaultTuning returns the stock search constants.
func DefaultTuning() Tuning {
	return Tuning{
		Attempts:            200,
		RoadFactor:          1.18,
		LegConservatism:     0.9,
		OverTolerance:       0.10,
		StepProximityWeight: 0.7,
		GreedyBias:          0.7,
		ExplorationWindow:   3,
		ClosureWeight:       0.5,
		SpacingWeight:       0.25,
		DeviationBand:       0.10,
		TopVerify:           5,
	}
}

// WithDefaults fills zero-valued fields from DefaultTuning.
func (t Tuning) WithDefaults() Tuning {
	d := DefaultTuning()
	if t.Attempts <= 0 {
		t.Attempts = d.Attempts
	}
	if t.RoadFactor <= 0 {
		t.RoadFactor = d.RoadFactor
	}
	if t.LegConservatism <= 0 {
		t.LegConservatism = d.LegConservatism
	}
	if t.OverTolerance <= 0 {
		t.OverTolerance = d.OverTolerance
	}
	if t.StepProximityWeight <= 0 {
		t.StepProximityWeight = d.StepProximityWeight
	}
	if t.GreedyBias <= 0 {
		t.GreedyBias = d.GreedyBias
	}
	if t.ExplorationWindow <= 0 {
		t.ExplorationWindow = d.ExplorationWindow
	}
	if t.ClosureWeight <= 0 {
		t.ClosureWeight = d.ClosureWeight
	}
	if t.SpacingWeight <= 0 {
		t.SpacingWeight = d.SpacingWeight
	}
	if t.DeviationBand <= 0 {
		t.DeviationBand = d.DeviationBand
	}
	if t.TopVerify <= 0 {
		t.TopVerify = d.TopVerify
	}
	return t
}
