package services

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"loop-route-service/internal/adapters/distance"
	"loop-route-service/internal/adapters/places"
	"loop-route-service/internal/domain"
)

func searchStart() domain.Stop {
	return domain.Stop{ID: "start", Name: "Trailhead", Location: genCenter}
}

func searchConfig() domain.SearchConfig {
	return domain.SearchConfig{
		Keyword:           "Burger Barn",
		RadiusMeters:      6000,
		MinDistanceMeters: 45000,
		MaxDistanceMeters: 55000,
		MinStops:          8,
		MaxStops:          10,
		Tuning:            genTuning(),
	}
}

func TestFindOptimalRouteVerifiedLoop(t *testing.T) {
	orch := &Orchestrator{
		Places: &places.MockPlacesProvider{Places: circlePlaces(genCenter, 5000, 12)},
		Oracle: &distance.MockRouteProvider{Factor: 1.0},
		Rand:   rand.New(rand.NewSource(11)),
	}

	var stages []domain.Stage
	res := orch.FindOptimalRoute(context.Background(), searchStart(), searchConfig(),
		func(p domain.SearchProgress) { stages = append(stages, p.Stage) })

	if !res.OK {
		t.Fatalf("search failed: %v", res.Err)
	}
	if !res.Verified {
		t.Fatal("expected an oracle-verified result")
	}
	if res.DistanceMeters < 45000 || res.DistanceMeters > 55000 {
		t.Errorf("verified distance %.0f outside requested band", res.DistanceMeters)
	}

	if n := len(res.Stops); n < 9 || n > 11 {
		t.Fatalf("result has %d stops, want start plus 8-10 interior", n)
	}
	if res.Stops[0].ID != "start" {
		t.Errorf("first stop = %q, want the start stop", res.Stops[0].ID)
	}
	seen := map[string]bool{}
	for _, s := range res.Stops {
		if seen[s.ID] {
			t.Errorf("stop %q repeated in open stop list", s.ID)
		}
		seen[s.ID] = true
	}

	assertForwardStages(t, stages, domain.StageComplete)
}

func TestFindOptimalRouteInsufficientCandidates(t *testing.T) {
	orch := &Orchestrator{
		Places: &places.MockPlacesProvider{Places: circlePlaces(genCenter, 5000, 3)},
		Oracle: &distance.MockRouteProvider{Factor: 1.0},
	}

	var stages []domain.Stage
	res := orch.FindOptimalRoute(context.Background(), searchStart(), searchConfig(),
		func(p domain.SearchProgress) { stages = append(stages, p.Stage) })

	if res.OK {
		t.Fatal("expected failure with a 3-stop pool")
	}
	if res.Err == nil || res.Err.Kind != domain.ErrInsufficientCandidates {
		t.Fatalf("error = %v, want kind %s", res.Err, domain.ErrInsufficientCandidates)
	}
	if stages[len(stages)-1] != domain.StageFailed {
		t.Errorf("final stage = %s, want %s", stages[len(stages)-1], domain.StageFailed)
	}
}

func TestFindOptimalRouteFallsBackWhenOracleDown(t *testing.T) {
	oracle := &distance.MockRouteProvider{Err: errors.New("quota exceeded")}
	orch := &Orchestrator{
		Places: &places.MockPlacesProvider{Places: circlePlaces(genCenter, 5000, 12)},
		Oracle: oracle,
		Rand:   rand.New(rand.NewSource(12)),
	}

	res := orch.FindOptimalRoute(context.Background(), searchStart(), searchConfig(), nil)

	if !res.OK {
		t.Fatalf("expected estimated fallback, got failure: %v", res.Err)
	}
	if res.Verified {
		t.Error("result must be flagged unverified when every oracle call fails")
	}
	if res.DistanceMeters <= 0 {
		t.Errorf("fallback distance = %f, want the straight-line estimate", res.DistanceMeters)
	}
	if oracle.Calls == 0 {
		t.Error("oracle was never attempted")
	}
}

func TestFindOptimalRouteLookupFailure(t *testing.T) {
	orch := &Orchestrator{
		Places: &places.MockPlacesProvider{Err: errors.New("places backend down")},
		Oracle: &distance.MockRouteProvider{},
	}

	res := orch.FindOptimalRoute(context.Background(), searchStart(), searchConfig(), nil)
	if res.OK {
		t.Fatal("expected failure when the nearby lookup fails")
	}
	if res.Err.Kind != domain.ErrLookupFailed {
		t.Errorf("error kind = %s, want %s", res.Err.Kind, domain.ErrLookupFailed)
	}
}

func TestFindOptimalRouteInvalidConfig(t *testing.T) {
	orch := NewOrchestrator(
		&places.MockPlacesProvider{},
		&distance.MockRouteProvider{},
	)

	cfg := searchConfig()
	cfg.Keyword = ""
	res := orch.FindOptimalRoute(context.Background(), searchStart(), cfg, nil)
	if res.OK || res.Err.Kind != domain.ErrInvalidConfig {
		t.Errorf("error = %v, want kind %s", res.Err, domain.ErrInvalidConfig)
	}

	badStart := searchStart()
	badStart.Location.Lat = 120
	res = orch.FindOptimalRoute(context.Background(), badStart, searchConfig(), nil)
	if res.OK || res.Err.Kind != domain.ErrInvalidConfig {
		t.Errorf("error = %v, want kind %s for invalid start", res.Err, domain.ErrInvalidConfig)
	}
}

func TestFindOptimalRouteDeterministicWithSeed(t *testing.T) {
	run := func() domain.SearchResult {
		orch := &Orchestrator{
			Places: &places.MockPlacesProvider{Places: circlePlaces(genCenter, 5000, 12)},
			Oracle: &distance.MockRouteProvider{Factor: 1.0},
			Rand:   rand.New(rand.NewSource(77)),
		}
		return orch.FindOptimalRoute(context.Background(), searchStart(), searchConfig(), nil)
	}

	first := run()
	second := run()

	if !first.OK || !second.OK {
		t.Fatalf("searches failed: %v / %v", first.Err, second.Err)
	}
	if first.DistanceMeters != second.DistanceMeters {
		t.Errorf("distances differ: %f vs %f", first.DistanceMeters, second.DistanceMeters)
	}
	if len(first.Stops) != len(second.Stops) {
		t.Fatalf("stop counts differ: %d vs %d", len(first.Stops), len(second.Stops))
	}
	for i := range first.Stops {
		if first.Stops[i].ID != second.Stops[i].ID {
			t.Fatalf("stop order differs at %d: %s vs %s", i, first.Stops[i].ID, second.Stops[i].ID)
		}
	}
}

// assertForwardStages checks the observed stage sequence never moves
// backward through the search state machine and ends at final.
func assertForwardStages(t *testing.T, stages []domain.Stage, final domain.Stage) {
	t.Helper()

	order := map[domain.Stage]int{
		domain.StageGatheringCandidates: 0,
		domain.StageGeneratingRoutes:    1,
		domain.StageVerifyingRoutes:     2,
		domain.StageComplete:            3,
		domain.StageFailed:              3,
	}

	if len(stages) == 0 {
		t.Fatal("no progress emitted")
	}
	prev := -1
	for i, s := range stages {
		rank, ok := order[s]
		if !ok {
			t.Fatalf("unknown stage %q at %d", s, i)
		}
		if rank < prev {
			t.Fatalf("stage %q at %d moves backward", s, i)
		}
		prev = rank
	}
	if last := stages[len(stages)-1]; last != final {
		t.Errorf("final stage = %s, want %s", last, final)
	}
}
