package services

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"loop-route-service/internal/domain"
	"loop-route-service/internal/geo"
)

// RouteGenerator produces structurally distinct closed loops of a given
// stop count from a candidate pool. Implementations are heuristics: an
// empty result is a valid outcome, not an error, and callers handle it
// by skipping that stop count.
type RouteGenerator interface {
	Generate(start domain.Stop, pool []domain.Stop, targetMeters float64, stopCount int) []domain.RouteCandidate
}

// GreedyLoopGenerator builds loops by randomized greedy construction:
// each attempt shuffles the pool, then grows the loop one stop at a
// time, weighing raw proximity against closeness of the resulting leg
// to the target average leg length. Attempts whose estimate is already
// over target after road inflation, or whose interior stop set repeats
// a previous attempt, are discarded.
type GreedyLoopGenerator struct {
	tuning domain.Tuning
	scorer *Scorer
	rng    *rand.Rand
}

// NewGreedyLoopGenerator builds a generator. rng may be nil for
// production use; tests inject a seeded source for reproducible output.
func NewGreedyLoopGenerator(t domain.Tuning, scorer *Scorer, rng *rand.Rand) *GreedyLoopGenerator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if scorer == nil {
		scorer = NewScorer(t)
	}
	return &GreedyLoopGenerator{tuning: t.WithDefaults(), scorer: scorer, rng: rng}
}

func (g *GreedyLoopGenerator) Generate(
	start domain.Stop,
	pool []domain.Stop,
	targetMeters float64,
	stopCount int,
) []domain.RouteCandidate {
	if stopCount < 1 || targetMeters <= 0 {
		return nil
	}

	candidates := make([]domain.Stop, 0, len(pool))
	for _, s := range pool {
		if s.ID != start.ID {
			candidates = append(candidates, s)
		}
	}
	if len(candidates) < stopCount {
		return nil
	}

	// Aim slightly short of the naive average leg: verified road
	// distances run longer than straight-line estimates.
	targetLeg := targetMeters / float64(stopCount+1) * g.tuning.LegConservatism
	maxEstimate := targetMeters * (1 + g.tuning.OverTolerance)

	seen := make(map[string]struct{})
	var out []domain.RouteCandidate

	shuffled := make([]domain.Stop, len(candidates))
	for attempt := 0; attempt < g.tuning.Attempts; attempt++ {
		copy(shuffled, candidates)
		g.rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		loop, ok := g.buildLoop(start, shuffled, targetLeg, stopCount)
		if !ok {
			continue
		}

		estimated := geo.PathMeters(loop.Coords())
		if estimated*g.tuning.RoadFactor > maxEstimate {
			continue
		}

		sig := loop.Signature()
		if _, dup := seen[sig]; dup {
			continue
		}
		seen[sig] = struct{}{}

		out = append(out, domain.RouteCandidate{
			Loop:            loop,
			EstimatedMeters: estimated,
			Score:           g.scorer.Score(loop, targetMeters),
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score < out[j].Score })
	return out
}

type stepChoice struct {
	stop domain.Stop
	cost float64
}

// buildLoop grows one loop from the start stop. At each step every
// unvisited candidate is scored and the best is taken with probability
// GreedyBias; otherwise one of the ExplorationWindow best is sampled to
// keep attempts diverse.
func (g *GreedyLoopGenerator) buildLoop(
	start domain.Stop,
	pool []domain.Stop,
	targetLeg float64,
	stopCount int,
) (domain.Loop, bool) {
	used := make(map[string]struct{}, stopCount)
	stops := make([]domain.Stop, 0, stopCount+2)
	stops = append(stops, start)
	current := start

	w := g.tuning.StepProximityWeight
	for len(stops) < stopCount+1 {
		choices := make([]stepChoice, 0, len(pool))
		for _, c := range pool {
			if _, taken := used[c.ID]; taken {
				continue
			}
			leg := geo.Haversine(current.Location, c.Location)
			cost := w*leg + (1-w)*math.Abs(leg-targetLeg)
			choices = append(choices, stepChoice{stop: c, cost: cost})
		}
		if len(choices) == 0 {
			return nil, false
		}

		sort.SliceStable(choices, func(i, j int) bool { return choices[i].cost < choices[j].cost })

		pick := 0
		if g.rng.Float64() >= g.tuning.GreedyBias {
			window := g.tuning.ExplorationWindow
			if window > len(choices) {
				window = len(choices)
			}
			pick = g.rng.Intn(window)
		}

		chosen := choices[pick].stop
		used[chosen.ID] = struct{}{}
		stops = append(stops, chosen)
		current = chosen
	}

	stops = append(stops, start)
	loop, err := domain.NewLoop(stops)
	if err != nil {
		return nil, false
	}
	return loop, true
}
