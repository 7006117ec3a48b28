package games

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fairbet/outcome-engine/internal/engine"
)

const (
	diceOutcomes  = 100
	diceMinTarget = 2
	diceMaxTarget = 98
)

// DiceResult is the terminal output of a dice roll.
type DiceResult struct {
	Roll       int             `json:"roll"`
	Target     int             `json:"target"`
	RollOver   bool            `json:"roll_over"`
	Win        bool            `json:"win"`
	WinChance  decimal.Decimal `json:"win_chance"`
	BetAmount  decimal.Decimal `json:"bet_amount"`
	Multiplier decimal.Decimal `json:"multiplier"`
	Payout     decimal.Decimal `json:"payout"`
	NetProfit  decimal.Decimal `json:"net_profit"`
	ServerSeed string          `json:"server_seed"`
	ClientSeed string          `json:"client_seed"`
	Nonce      uint64          `json:"nonce"`
}

// RollDice resolves one dice round. The roll is uniform over [0, 100);
// an over bet wins when roll > target, an under bet when roll < target.
// Targets outside [2, 98] are rejected so neither side can bet on a
// near-certain outcome.
func RollDice(seeds Seeds, nonce uint64, betAmount decimal.Decimal, target int, rollOver bool) (DiceResult, error) {
	if target < diceMinTarget || target > diceMaxTarget {
		return DiceResult{}, fmt.Errorf("dice: target %d outside [%d, %d]: %w",
			target, diceMinTarget, diceMaxTarget, engine.ErrInvalidArgument)
	}
	if betAmount.IsNegative() {
		return DiceResult{}, fmt.Errorf("dice: negative bet %s: %w", betAmount, engine.ErrInvalidArgument)
	}

	roll, err := engine.UniformInt(seeds.Server, seeds.Client, nonce, diceOutcomes)
	if err != nil {
		return DiceResult{}, err
	}

	win := roll < target
	if rollOver {
		win = roll > target
	}

	winChance := diceWinChance(target, rollOver)
	multiplier := oddsToMultiplier(winChance, standardPayoutFactor)

	payout := decimal.Zero
	if win {
		payout = roundPayout(betAmount.Mul(multiplier))
	}

	return DiceResult{
		Roll:       roll,
		Target:     target,
		RollOver:   rollOver,
		Win:        win,
		WinChance:  winChance,
		BetAmount:  betAmount,
		Multiplier: multiplier,
		Payout:     payout,
		NetProfit:  payout.Sub(betAmount),
		ServerSeed: seeds.Server,
		ClientSeed: seeds.Client,
		Nonce:      nonce,
	}, nil
}

// DiceMultiplier returns the paid multiplier for a target and
// direction without rolling.
func DiceMultiplier(target int, rollOver bool) (decimal.Decimal, error) {
	if target < diceMinTarget || target > diceMaxTarget {
		return decimal.Zero, fmt.Errorf("dice: target %d outside [%d, %d]: %w",
			target, diceMinTarget, diceMaxTarget, engine.ErrInvalidArgument)
	}
	return oddsToMultiplier(diceWinChance(target, rollOver), standardPayoutFactor), nil
}

// diceWinChance is the fraction of the outcome space on the winning
// side, at scale 4.
func diceWinChance(target int, rollOver bool) decimal.Decimal {
	winning := target
	if rollOver {
		winning = diceOutcomes - target
	}
	return decimal.NewFromInt(int64(winning)).
		DivRound(decimal.NewFromInt(diceOutcomes), multiplierScale)
}

// DiceGame adapts the roll to the registry interface.
type DiceGame struct{}

func (g *DiceGame) Spec() GameSpec {
	return GameSpec{ID: "dice", Name: "Dice", MetricLabel: "roll"}
}

func (g *DiceGame) Evaluate(seeds Seeds, nonce uint64, params map[string]any) (GameResult, error) {
	roll, err := engine.UniformInt(seeds.Server, seeds.Client, nonce, diceOutcomes)
	if err != nil {
		return GameResult{}, err
	}

	return GameResult{
		Metric:      float64(roll),
		MetricLabel: "roll",
		Details: map[string]any{
			"roll": roll,
		},
	}, nil
}
