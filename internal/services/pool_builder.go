package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"loop-route-service/internal/domain"
	"loop-route-service/internal/ports"
)

// Category tags that mark a place as an eating establishment. The
// nearby lookup returns all kinds of places carrying the brand name
// (offices, distribution centers); only these tags qualify as stops.
var eateryCategories = map[string]struct{}{
	"restaurant":      {},
	"fast_food":       {},
	"cafe":            {},
	"food":            {},
	"meal_takeaway":   {},
	"food_court":      {},
	"sustenance":      {},
	"ice_cream":       {},
	"fast_food_chain": {},
}

// BuildCandidatePool queries the nearby lookup around the center and
// keeps places that are eating establishments matching one of the
// accepted brand-name spellings. Results are deduplicated by external
// identifier; lookup errors propagate unchanged.
func BuildCandidatePool(
	ctx context.Context,
	provider ports.PlacesProvider,
	center domain.Coordinates,
	cfg domain.SearchConfig,
	onProgress ProgressFunc,
) ([]domain.Stop, error) {
	results, err := provider.FindNearby(ctx, center, cfg.RadiusMeters, cfg.Keyword)
	if err != nil {
		return nil, fmt.Errorf("build candidate pool: find nearby: %w", err)
	}

	seen := make(map[string]struct{}, len(results))
	pool := make([]domain.Stop, 0, len(results))

	for _, r := range results {
		if r.ID == "" || !r.Location.Valid() {
			continue
		}
		if _, ok := seen[r.ID]; ok {
			continue
		}
		if !isEatery(r.Categories) {
			continue
		}
		if !matchesBrand(r.Name, cfg.BrandNames) {
			continue
		}
		seen[r.ID] = struct{}{}

		address := r.Address
		if address == "" {
			// Best effort: a failed detail lookup never drops the stop.
			det, derr := provider.GetDetails(ctx, r.ID)
			if derr != nil {
				log.Printf("candidate pool: details for %q failed: %v", r.ID, derr)
			} else {
				address = det.Address
			}
		}

		pool = append(pool, domain.Stop{
			ID:       r.ID,
			Name:     r.Name,
			Address:  address,
			Location: r.Location,
		})
	}

	onProgress.Emit(domain.SearchProgress{
		Stage:           domain.StageGatheringCandidates,
		Message:         fmt.Sprintf("found %d candidate stops", len(pool)),
		CandidatesFound: len(pool),
	})

	return pool, nil
}

func isEatery(categories []string) bool {
	for _, c := range categories {
		if _, ok := eateryCategories[strings.ToLower(strings.TrimSpace(c))]; ok {
			return true
		}
	}
	return false
}

func matchesBrand(name string, brands []string) bool {
	lower := strings.ToLower(name)
	for _, b := range brands {
		if b == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(b)) {
			return true
		}
	}
	return false
}
