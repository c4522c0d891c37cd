package services

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sort"

	"github.com/google/uuid"

	"loop-route-service/internal/domain"
	"loop-route-service/internal/ports"
)

// Orchestrator sequences the route search: candidate gathering, loop
// generation per stop count, ranking, and oracle verification. All
// search state is local to one FindOptimalRoute call; concurrent
// searches are fully independent.
type Orchestrator struct {
	Places ports.PlacesProvider
	Oracle ports.RouteDistanceProvider

	// Generator overrides the default randomized greedy strategy.
	Generator RouteGenerator

	// Rand seeds the default generator; nil means unseeded randomness.
	// Tests inject a fixed source for reproducible ranking.
	Rand *rand.Rand
}

func NewOrchestrator(places ports.PlacesProvider, oracle ports.RouteDistanceProvider) *Orchestrator {
	return &Orchestrator{Places: places, Oracle: oracle}
}

// FindOptimalRoute is the sole externally callable operation of the
// search core. The state machine moves strictly forward:
//
//	gathering-candidates -> generating-routes -> verifying-routes
//	-> complete | failed
//
// and every failure maps to a typed SearchError; nothing is silently
// swallowed.
func (o *Orchestrator) FindOptimalRoute(
	ctx context.Context,
	start domain.Stop,
	cfg domain.SearchConfig,
	onProgress ProgressFunc,
) domain.SearchResult {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return o.fail(onProgress, domain.NewSearchError(domain.ErrInvalidConfig, "%v", err))
	}
	if !start.Location.Valid() {
		return o.fail(onProgress, domain.NewSearchError(domain.ErrInvalidConfig, "start stop has invalid coordinates"))
	}

	searchID := uuid.NewString()[:8]
	target := cfg.TargetMeters()
	log.Printf(
		"search=%s start=%q target=%.0fm stops=%d-%d radius=%.0fm",
		searchID, start.Name, target, cfg.MinStops, cfg.MaxStops, cfg.RadiusMeters,
	)

	onProgress.Emit(domain.SearchProgress{
		Stage:   domain.StageGatheringCandidates,
		Message: "looking for candidate stops near start",
	})

	pool, err := BuildCandidatePool(ctx, o.Places, start.Location, cfg, onProgress)
	if err != nil {
		return o.fail(onProgress, domain.NewSearchError(domain.ErrLookupFailed, "%v", err))
	}
	if len(pool) < cfg.MinStops {
		return o.fail(onProgress, domain.NewSearchError(
			domain.ErrInsufficientCandidates,
			"found %d candidate stops, need at least %d", len(pool), cfg.MinStops,
		))
	}

	onProgress.Emit(domain.SearchProgress{
		Stage:           domain.StageGeneratingRoutes,
		Message:         fmt.Sprintf("generating loops from %d candidates", len(pool)),
		CandidatesFound: len(pool),
	})

	gen := o.Generator
	if gen == nil {
		gen = NewGreedyLoopGenerator(cfg.Tuning, NewScorer(cfg.Tuning), o.Rand)
	}

	var merged []domain.RouteCandidate
	for stops := cfg.MinStops; stops <= cfg.MaxStops; stops++ {
		merged = append(merged, gen.Generate(start, pool, target, stops)...)
	}
	if len(merged) == 0 {
		return o.fail(onProgress, domain.NewSearchError(
			domain.ErrNoCandidatesGenerated,
			"no feasible loops generated for %d-%d stops", cfg.MinStops, cfg.MaxStops,
		))
	}

	rankCandidates(merged)
	log.Printf("search=%s generated=%d best_estimate=%.0fm", searchID, len(merged), merged[0].EstimatedMeters)

	onProgress.Emit(domain.SearchProgress{
		Stage:               domain.StageVerifyingRoutes,
		Message:             fmt.Sprintf("verifying best of %d generated loops", len(merged)),
		CandidatesEvaluated: len(merged),
	})

	outcome := VerifyRoutes(ctx, o.Oracle, merged, cfg, onProgress)

	if outcome.Best != nil {
		onProgress.Emit(domain.SearchProgress{
			Stage:           domain.StageComplete,
			Message:         fmt.Sprintf("verified loop of %d stops at %.0fm", outcome.Best.Loop.StopCount(), outcome.VerifiedMeters),
			OracleCallsUsed: outcome.CallsUsed,
		})
		return domain.SearchResult{
			OK:             true,
			Stops:          outcome.Best.Loop.Open(),
			DistanceMeters: outcome.VerifiedMeters,
			Verified:       true,
		}
	}

	// No candidate verified in range: fall back to the best estimated
	// loop and flag the distance as unverified.
	best := merged[0]
	log.Printf("search=%s falling back to estimated loop (%d stops, %.0fm)", searchID, best.Loop.StopCount(), best.EstimatedMeters)
	onProgress.Emit(domain.SearchProgress{
		Stage:           domain.StageComplete,
		Message:         fmt.Sprintf("no verified loop in range; using estimated loop at %.0fm", best.EstimatedMeters),
		OracleCallsUsed: outcome.CallsUsed,
	})
	return domain.SearchResult{
		OK:             true,
		Stops:          best.Loop.Open(),
		DistanceMeters: best.EstimatedMeters,
		Verified:       false,
	}
}

func (o *Orchestrator) fail(onProgress ProgressFunc, serr *domain.SearchError) domain.SearchResult {
	onProgress.Emit(domain.SearchProgress{
		Stage:   domain.StageFailed,
		Message: serr.Message,
	})
	return domain.Failed(serr)
}

// rankCandidates orders merged candidates by score ascending; exact
// score ties prefer the higher stop count, then earlier insertion.
func rankCandidates(cands []domain.RouteCandidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Score != cands[j].Score {
			return cands[i].Score < cands[j].Score
		}
		return cands[i].Loop.StopCount() > cands[j].Loop.StopCount()
	})
}
