package services

import (
	"context"
	"fmt"
	"log"
	"math"

	"loop-route-service/internal/domain"
	"loop-route-service/internal/ports"
)

// VerifyOutcome reports the best oracle-verified candidate, if any, and
// how much of the call budget was consumed.
type VerifyOutcome struct {
	Best           *domain.RouteCandidate
	VerifiedMeters float64
	CallsUsed      int
}

// VerifyRoutes submits the top-ranked candidates to the road-distance
// oracle, in rank order, while the call budget lasts. A candidate wins
// when its verified distance lies inside the configured band and is
// closer to the target than the current best. Oracle failures for one
// candidate are logged and do not abort verification of the rest.
func VerifyRoutes(
	ctx context.Context,
	oracle ports.RouteDistanceProvider,
	ranked []domain.RouteCandidate,
	cfg domain.SearchConfig,
	onProgress ProgressFunc,
) VerifyOutcome {
	target := cfg.TargetMeters()

	limit := cfg.Tuning.TopVerify
	if limit > len(ranked) {
		limit = len(ranked)
	}

	var outcome VerifyOutcome
	for i := 0; i < limit; i++ {
		if outcome.CallsUsed >= cfg.MaxOracleCalls {
			break
		}
		if ctx.Err() != nil {
			break
		}

		cand := &ranked[i]
		legs, err := oracle.GetRouteDistance(ctx, cand.Loop.Coords())
		outcome.CallsUsed++

		onProgress.Emit(domain.SearchProgress{
			Stage:           domain.StageVerifyingRoutes,
			Message:         fmt.Sprintf("verified candidate %d/%d", i+1, limit),
			OracleCallsUsed: outcome.CallsUsed,
		})

		if err != nil {
			log.Printf("verify routes: candidate %d (%d stops): %v", i+1, cand.Loop.StopCount(), err)
			continue
		}

		verified := legs.TotalMeters()
		if verified < cfg.MinDistanceMeters || verified > cfg.MaxDistanceMeters {
			continue
		}

		if outcome.Best == nil ||
			math.Abs(verified-target) < math.Abs(outcome.VerifiedMeters-target) {
			outcome.Best = cand
			outcome.VerifiedMeters = verified
		}
	}

	return outcome
}
