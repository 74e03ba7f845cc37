package recommend

import (
	"context"
	"sort"
	"strings"

	"bikerental/internal/repository"
)

const maxResults = 8

// RentalHistory provides the read-only queries the ranker needs.
type RentalHistory interface {
	TypeFrequenciesForUser(ctx context.Context, userID int64) ([]repository.TypeFrequency, error)
	AvailableBikesWithCounts(ctx context.Context) ([]repository.BikeRentalCount, error)
}

type Service struct {
	rentals RentalHistory
}

func NewService(rentals RentalHistory) *Service {
	return &Service{rentals: rentals}
}

// Recommend returns up to 8 available bikes for the user. Users with rental
// history get bikes of their preferred types ranked by popularity; new users
// get a popularity ranking boosted toward Electric and Hybrid types. Ties
// break on bike id ascending for determinism.
func (s *Service) Recommend(ctx context.Context, userID int64) ([]repository.BikeRentalCount, error) {
	prefs, err := s.rentals.TypeFrequenciesForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.rentals.AvailableBikesWithCounts(ctx)
	if err != nil {
		return nil, err
	}

	if len(prefs) == 0 {
		return rankByBoostedPopularity(candidates), nil
	}
	return rankByPreference(candidates, prefs), nil
}

func rankByBoostedPopularity(bikes []repository.BikeRentalCount) []repository.BikeRentalCount {
	ranked := make([]repository.BikeRentalCount, len(bikes))
	copy(ranked, bikes)

	sort.SliceStable(ranked, func(i, j int) bool {
		si := float64(ranked[i].RentalCount) * typeBoost(ranked[i].Type)
		sj := float64(ranked[j].RentalCount) * typeBoost(ranked[j].Type)
		if si != sj {
			return si > sj
		}
		return ranked[i].ID < ranked[j].ID
	})

	return cap8(ranked)
}

func rankByPreference(bikes []repository.BikeRentalCount, prefs []repository.TypeFrequency) []repository.BikeRentalCount {
	preferred := make(map[string]bool, len(prefs))
	for _, p := range prefs {
		preferred[p.Type] = true
	}

	matched := make([]repository.BikeRentalCount, 0, len(bikes))
	for _, b := range bikes {
		if preferred[b.Type] {
			matched = append(matched, b)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].RentalCount != matched[j].RentalCount {
			return matched[i].RentalCount > matched[j].RentalCount
		}
		return matched[i].ID < matched[j].ID
	})

	return cap8(matched)
}

func typeBoost(bikeType string) float64 {
	switch {
	case strings.Contains(bikeType, "Electric"):
		return 1.2
	case strings.Contains(bikeType, "Hybrid"):
		return 1.1
	default:
		return 1.0
	}
}

func cap8(bikes []repository.BikeRentalCount) []repository.BikeRentalCount {
	if len(bikes) > maxResults {
		return bikes[:maxResults]
	}
	return bikes
}
