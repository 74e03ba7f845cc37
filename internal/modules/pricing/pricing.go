package pricing

import (
	"errors"
	"math"
)

// ErrInvalidPriceInput is returned for non-positive, NaN or infinite inputs
// instead of silently producing garbage.
var ErrInvalidPriceInput = errors.New("invalid price input")

type Tier string

const (
	TierRegular  Tier = "regular"
	TierFrequent Tier = "frequent"
	TierPremium  Tier = "premium"
)

func (t Tier) discount() float64 {
	switch t {
	case TierPremium:
		return 0.90
	case TierFrequent:
		return 0.95
	default:
		return 1.00
	}
}

// Price computes the dynamic rental price:
//
//	round2(base * (1 + 0.1*demand) * seasonality * tierDiscount)
//
// demand is a unitless non-negative signal such as a recent booking count.
// Rounding is half-away-from-zero to 2 decimal places.
func Price(base, demand, seasonality float64, tier Tier) (float64, error) {
	if !isFinite(base) || !isFinite(demand) || !isFinite(seasonality) {
		return 0, ErrInvalidPriceInput
	}
	if base <= 0 || demand < 0 || seasonality <= 0 {
		return 0, ErrInvalidPriceInput
	}

	demandMultiplier := 1 + 0.1*demand
	final := base * demandMultiplier * seasonality * tier.discount()
	return math.Round(final*100) / 100, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
