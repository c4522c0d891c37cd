package services

import (
	"math"

	"loop-route-service/internal/domain"
	"loop-route-service/internal/geo"
)

// WorstScore is the sentinel returned for degenerate loops; every real
// score is strictly smaller.
const WorstScore = math.MaxFloat64

// Scorer computes the scalar fitness of a closed loop. Lower is better.
//
// The score combines three terms:
//   - distance fitness: normalized deviation of the estimated distance
//     from the target, penalized harder outside the deviation band;
//   - loop closure: the final return leg relative to the mean leg, so
//     loops whose last real stop sits far from the start score worse;
//   - leg spacing: coefficient of variation of the leg lengths,
//     rewarding evenly spaced stops over clusters with one long leg.
type Scorer struct {
	tuning domain.Tuning
}

func NewScorer(t domain.Tuning) *Scorer {
	return &Scorer{tuning: t.WithDefaults()}
}

// Score is a pure function of the loop and target distance; it has no
// failure modes. Loops with fewer than two elements score WorstScore.
func (s *Scorer) Score(loop domain.Loop, targetMeters float64) float64 {
	legs := geo.LegMeters(loop.Coords())
	if len(legs) == 0 || targetMeters <= 0 {
		return WorstScore
	}

	estimated := 0.0
	for _, leg := range legs {
		estimated += leg
	}
	if estimated <= 0 {
		return WorstScore
	}

	deviation := math.Abs(estimated-targetMeters) / targetMeters
	distanceTerm := deviation
	if band := s.tuning.DeviationBand; deviation > band {
		// Outside the band, deviations count double.
		distanceTerm = band + 2*(deviation-band)
	}

	mean := estimated / float64(len(legs))
	closureTerm := legs[len(legs)-1] / mean

	variance := 0.0
	for _, leg := range legs {
		d := leg - mean
		variance += d * d
	}
	variance /= float64(len(legs))
	spacingTerm := math.Sqrt(variance) / mean

	return distanceTerm +
		s.tuning.ClosureWeight*closureTerm +
		s.tuning.SpacingWeight*spacingTerm
}
