package games

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOddsToMultiplier(t *testing.T) {
	tests := []struct {
		name      string
		winChance string
		want      string
	}{
		{"even money", "0.5", "1.98"},
		{"49 in 100", "0.49", "2.0204"},
		{"near certain", "0.98", "1.0102"},
		{"long shot", "0.02", "49.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := oddsToMultiplier(decimal.RequireFromString(tt.winChance), standardPayoutFactor)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got, tt.want)
		})
	}
}

func TestHypergeometricSafeProb(t *testing.T) {
	// One draw from a 25-cell grid with 3 mines.
	got := hypergeometricSafeProb(25, 22, 1)
	assert.True(t, got.Equal(decimal.RequireFromString("0.88")), "got %s", got)

	// Two draws: (22/25) * (21/24).
	got = hypergeometricSafeProb(25, 22, 2)
	assert.True(t, got.Equal(decimal.RequireFromString("0.77")), "got %s", got)

	// Zero draws is a certainty.
	assert.True(t, hypergeometricSafeProb(25, 22, 0).Equal(decimal.NewFromInt(1)))
}

func TestRoundPayout(t *testing.T) {
	// Half-up at the cent.
	assert.Equal(t, "1.01", roundPayout(decimal.RequireFromString("1.005")).String())
	assert.Equal(t, "1.12", roundPayout(decimal.RequireFromString("1.124")).String())
	assert.Equal(t, "112.5", roundPayout(decimal.RequireFromString("112.504")).String())
}
