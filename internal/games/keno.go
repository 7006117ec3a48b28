package games

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fairbet/outcome-engine/internal/engine"
)

const (
	kenoNumbers   = 80 // balls numbered 1-80
	kenoDrawCount = 20
	kenoMinPicks  = 1
	kenoMaxPicks  = 10
)

// KenoResult is the terminal output of a keno round.
type KenoResult struct {
	Picks      []int           `json:"picks"`
	Draws      []int           `json:"draws"`
	Matches    []int           `json:"matches"`
	Hits       int             `json:"hits"`
	Multiplier int64           `json:"multiplier"`
	BetAmount  decimal.Decimal `json:"bet_amount"`
	Payout     decimal.Decimal `json:"payout"`
	NetProfit  decimal.Decimal `json:"net_profit"`
	ServerSeed string          `json:"server_seed"`
	ClientSeed string          `json:"client_seed"`
	Nonce      uint64          `json:"nonce"`
}

// PlayKeno draws 20 of 80 numbers without replacement and pays the
// fixed (picks, hits) table. The draw is the first 20 elements of the
// provably fair shuffle of 1..80 at the round nonce, so the whole
// sequence replays from the seed triple alone.
func PlayKeno(seeds Seeds, nonce uint64, betAmount decimal.Decimal, picks []int) (KenoResult, error) {
	if len(picks) < kenoMinPicks || len(picks) > kenoMaxPicks {
		return KenoResult{}, fmt.Errorf("keno: pick count %d outside [%d, %d]: %w",
			len(picks), kenoMinPicks, kenoMaxPicks, engine.ErrInvalidArgument)
	}
	if betAmount.IsNegative() {
		return KenoResult{}, fmt.Errorf("keno: negative bet %s: %w", betAmount, engine.ErrInvalidArgument)
	}

	seen := make(map[int]bool, len(picks))
	for _, p := range picks {
		if p < 1 || p > kenoNumbers {
			return KenoResult{}, fmt.Errorf("keno: pick %d outside [1, %d]: %w", p, kenoNumbers, engine.ErrInvalidArgument)
		}
		if seen[p] {
			return KenoResult{}, fmt.Errorf("keno: duplicate pick %d: %w", p, engine.ErrInvalidArgument)
		}
		seen[p] = true
	}

	draws := KenoDraws(seeds, nonce)

	drawn := make(map[int]bool, len(draws))
	for _, d := range draws {
		drawn[d] = true
	}

	matches := make([]int, 0, len(picks))
	for _, p := range picks {
		if drawn[p] {
			matches = append(matches, p)
		}
	}
	sort.Ints(matches)

	multiplier := KenoMultiplier(len(picks), len(matches))
	payout := roundPayout(betAmount.Mul(decimal.NewFromInt(multiplier)))

	return KenoResult{
		Picks:      picks,
		Draws:      draws,
		Matches:    matches,
		Hits:       len(matches),
		Multiplier: multiplier,
		BetAmount:  betAmount,
		Payout:     payout,
		NetProfit:  payout.Sub(betAmount),
		ServerSeed: seeds.Server,
		ClientSeed: seeds.Client,
		Nonce:      nonce,
	}, nil
}

// KenoDraws returns the 20 drawn numbers for a seed triple, sorted
// ascending for display; the unsorted shuffle prefix determines them.
func KenoDraws(seeds Seeds, nonce uint64) []int {
	pool := make([]int, kenoNumbers)
	for i := range pool {
		pool[i] = i + 1
	}

	shuffled := engine.Shuffle(seeds.Server, seeds.Client, nonce, pool)
	draws := make([]int, kenoDrawCount)
	copy(draws, shuffled[:kenoDrawCount])
	sort.Ints(draws)
	return draws
}

// KenoGame adapts the draw to the registry interface.
type KenoGame struct{}

func (g *KenoGame) Spec() GameSpec {
	return GameSpec{ID: "keno", Name: "Keno", MetricLabel: "first_draw"}
}

func (g *KenoGame) Evaluate(seeds Seeds, nonce uint64, params map[string]any) (GameResult, error) {
	draws := KenoDraws(seeds, nonce)

	return GameResult{
		Metric:      float64(draws[0]),
		MetricLabel: "first_draw",
		Details: map[string]any{
			"draws": draws,
		},
	}, nil
}
