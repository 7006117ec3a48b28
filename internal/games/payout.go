package games

import (
	"github.com/shopspring/decimal"
)

// Shared payout math. Multipliers are held at scale 4, payouts at scale
// 2, both rounded half-up; win chances are reduced to scale 4 before the
// multiplier division so independent verifiers reproduce the exact same
// figures.

const (
	multiplierScale = 4
	payoutScale     = 2
)

var (
	// 1 - houseEdge for the 1% games (coinflip, dice, crash, mines).
	standardPayoutFactor = decimal.RequireFromString("0.99")

	decimalOne = decimal.NewFromInt(1)
)

// oddsToMultiplier converts a true win probability into the paid
// multiplier: (1 / winChance) * (1 - houseEdge), at scale 4.
func oddsToMultiplier(winChance, payoutFactor decimal.Decimal) decimal.Decimal {
	return decimalOne.DivRound(winChance, multiplierScale).Mul(payoutFactor).Round(multiplierScale)
}

// hypergeometricSafeProb returns the probability of drawing `draws`
// cells without replacement from `total` cells and hitting none of the
// total-safe forbidden ones: the product of (safe-k)/(total-k) for k in
// [0, draws). Generic over any "bust on forbidden cell" game.
func hypergeometricSafeProb(total, safe, draws int) decimal.Decimal {
	prob := decimalOne
	for k := 0; k < draws; k++ {
		num := decimal.NewFromInt(int64(safe - k))
		den := decimal.NewFromInt(int64(total - k))
		prob = prob.Mul(num.DivRound(den, 12))
	}
	return prob
}

// roundPayout reduces a payout to its external scale.
func roundPayout(d decimal.Decimal) decimal.Decimal {
	return d.Round(payoutScale)
}
