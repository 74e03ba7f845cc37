package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrice(t *testing.T) {
	tests := []struct {
		name        string
		base        float64
		demand      float64
		seasonality float64
		tier        Tier
		want        float64
	}{
		{"regular with demand", 100, 2, 1, TierRegular, 120.00},
		{"premium no demand", 100, 0, 1, TierPremium, 90.00},
		{"frequent no demand", 100, 0, 1, TierFrequent, 95.00},
		{"unknown tier falls back to regular", 100, 0, 1, Tier("gold"), 100.00},
		{"seasonality applied", 100, 0, 1.5, TierRegular, 150.00},
		{"everything combined", 80, 3, 1.25, TierPremium, 117.00},
		{"rounds to currency precision", 33.33, 1, 1, TierRegular, 36.66},
		{"half rounds away from zero", 100.125, 0, 1, TierRegular, 100.13},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Price(tt.base, tt.demand, tt.seasonality, tt.tier)
			assert.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.0001)
		})
	}
}

func TestPrice_InvalidInput(t *testing.T) {
	tests := []struct {
		name        string
		base        float64
		demand      float64
		seasonality float64
	}{
		{"zero base", 0, 1, 1},
		{"negative base", -10, 1, 1},
		{"negative demand", 100, -1, 1},
		{"zero seasonality", 100, 1, 0},
		{"NaN base", math.NaN(), 1, 1},
		{"infinite demand", 100, math.Inf(1), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Price(tt.base, tt.demand, tt.seasonality, TierRegular)
			assert.ErrorIs(t, err, ErrInvalidPriceInput)
		})
	}
}
