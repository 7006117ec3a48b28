package games

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fairbet/outcome-engine/internal/engine"
)

// CoinSide is a coin flip outcome.
type CoinSide string

const (
	Heads CoinSide = "HEADS"
	Tails CoinSide = "TAILS"
)

const coinFlipHouseEdge = "0.01"

// Base multiplier for the fair 50/50 flip, before the house edge.
var coinFlipBaseMultiplier = decimal.RequireFromString("2.00")

// CoinFlipResult is the terminal output of a flip round.
type CoinFlipResult struct {
	Result       CoinSide        `json:"result"`
	PlayerChoice CoinSide        `json:"player_choice"`
	Win          bool            `json:"win"`
	BetAmount    decimal.Decimal `json:"bet_amount"`
	Multiplier   decimal.Decimal `json:"multiplier"`
	Payout       decimal.Decimal `json:"payout"`
	NetProfit    decimal.Decimal `json:"net_profit"`
	ServerSeed   string          `json:"server_seed"`
	ClientSeed   string          `json:"client_seed"`
	Nonce        uint64          `json:"nonce"`
}

// FlipCoin resolves one coin flip: a single uniform draw over two
// sides, paying the fixed 50/50 multiplier reduced by the house edge.
func FlipCoin(seeds Seeds, nonce uint64, betAmount decimal.Decimal, choice CoinSide) (CoinFlipResult, error) {
	if choice != Heads && choice != Tails {
		return CoinFlipResult{}, fmt.Errorf("coinflip: unknown side %q: %w", choice, engine.ErrInvalidArgument)
	}
	if betAmount.IsNegative() {
		return CoinFlipResult{}, fmt.Errorf("coinflip: negative bet %s: %w", betAmount, engine.ErrInvalidArgument)
	}

	side, err := engine.UniformInt(seeds.Server, seeds.Client, nonce, 2)
	if err != nil {
		return CoinFlipResult{}, err
	}

	result := Heads
	if side == 1 {
		result = Tails
	}

	win := result == choice
	multiplier := CoinFlipMultiplier()

	payout := decimal.Zero
	if win {
		payout = roundPayout(betAmount.Mul(multiplier))
	}

	return CoinFlipResult{
		Result:       result,
		PlayerChoice: choice,
		Win:          win,
		BetAmount:    betAmount,
		Multiplier:   multiplier,
		Payout:       payout,
		NetProfit:    payout.Sub(betAmount),
		ServerSeed:   seeds.Server,
		ClientSeed:   seeds.Client,
		Nonce:        nonce,
	}, nil
}

// CoinFlipMultiplier returns the paid multiplier: 2.00 x (1 - 1%) = 1.98.
func CoinFlipMultiplier() decimal.Decimal {
	factor := decimalOne.Sub(decimal.RequireFromString(coinFlipHouseEdge))
	return coinFlipBaseMultiplier.Mul(factor).Round(payoutScale)
}

// CoinFlipGame adapts the flip to the registry interface.
type CoinFlipGame struct{}

func (g *CoinFlipGame) Spec() GameSpec {
	return GameSpec{ID: "coinflip", Name: "Coin Flip", MetricLabel: "side"}
}

// Evaluate reports the seed-determined side; 0 is HEADS, 1 is TAILS.
func (g *CoinFlipGame) Evaluate(seeds Seeds, nonce uint64, params map[string]any) (GameResult, error) {
	side, err := engine.UniformInt(seeds.Server, seeds.Client, nonce, 2)
	if err != nil {
		return GameResult{}, err
	}

	result := Heads
	if side == 1 {
		result = Tails
	}

	return GameResult{
		Metric:      float64(side),
		MetricLabel: "side",
		Details: map[string]any{
			"side": string(result),
		},
	}, nil
}
