package games

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fairbet/outcome-engine/internal/engine"
)

// Verification is the outcome of replaying a claimed result against the
// revealed seeds.
type Verification struct {
	GameID      string         `json:"game_id"`
	Match       bool           `json:"match"`
	Expected    float64        `json:"expected"`
	Claimed     float64        `json:"claimed"`
	MetricLabel string         `json:"metric_label"`
	Details     map[string]any `json:"details,omitempty"`
}

// Verify replays a round through the registry and compares the claimed
// primary metric against the recomputed one. The comparison is exact:
// every metric is either an integer or a decimal re-derived at a fixed
// scale, so a genuine replay reproduces it bit for bit and any drift is
// a mismatch.
func Verify(gameID string, seeds Seeds, nonce uint64, params map[string]any, claimedMetric float64) (Verification, error) {
	game, ok := Get(gameID)
	if !ok {
		return Verification{}, fmt.Errorf("verify: unknown game %q: %w", gameID, engine.ErrInvalidArgument)
	}

	result, err := game.Evaluate(seeds, nonce, params)
	if err != nil {
		return Verification{}, err
	}

	return Verification{
		GameID:      gameID,
		Match:       result.Metric == claimedMetric,
		Expected:    result.Metric,
		Claimed:     claimedMetric,
		MetricLabel: result.MetricLabel,
		Details:     result.Details,
	}, nil
}

// VerifyCoinFlip recomputes the flip and compares the claimed side.
func VerifyCoinFlip(seeds Seeds, nonce uint64, claimed CoinSide) (CoinSide, bool, error) {
	side, err := engine.UniformInt(seeds.Server, seeds.Client, nonce, 2)
	if err != nil {
		return "", false, err
	}
	actual := Heads
	if side == 1 {
		actual = Tails
	}
	return actual, actual == claimed, nil
}

// VerifyDice recomputes the roll and compares the claimed value.
func VerifyDice(seeds Seeds, nonce uint64, claimedRoll int) (int, bool, error) {
	roll, err := engine.UniformInt(seeds.Server, seeds.Client, nonce, diceOutcomes)
	if err != nil {
		return 0, false, err
	}
	return roll, roll == claimedRoll, nil
}

// VerifyRoulette recomputes the winning pocket for the wheel variant.
func VerifyRoulette(seeds Seeds, nonce uint64, wheel RouletteWheel, claimedPocket int) (int, bool, error) {
	pockets := europeanPockets
	switch wheel {
	case EuropeanWheel:
	case AmericanWheel:
		pockets = americanPockets
	default:
		return 0, false, fmt.Errorf("verify: unknown wheel %q: %w", wheel, engine.ErrInvalidArgument)
	}

	pocket, err := engine.UniformInt(seeds.Server, seeds.Client, nonce, pockets)
	if err != nil {
		return 0, false, err
	}
	return pocket, pocket == claimedPocket, nil
}

// VerifyCrashPoint recomputes the crash point and compares it exactly
// at the published scale.
func VerifyCrashPoint(seeds Seeds, nonce uint64, claimed decimal.Decimal) (decimal.Decimal, bool, error) {
	point := CrashPoint(seeds, nonce)
	return point, point.Equal(claimed), nil
}

// VerifyMinePositions recomputes the mine layout and compares the
// claimed sorted positions.
func VerifyMinePositions(seeds Seeds, nonce uint64, mineCount int, claimed []int) ([]int, bool, error) {
	if mineCount < minesMinCount || mineCount > minesMaxCount {
		return nil, false, fmt.Errorf("verify: mine count %d outside [%d, %d]: %w",
			mineCount, minesMinCount, minesMaxCount, engine.ErrInvalidArgument)
	}
	actual := MinePositions(seeds, nonce, mineCount)
	return actual, equalInts(actual, claimed), nil
}

// VerifyDeckOrder recomputes the full shuffled deck order and compares
// the claimed card strings position by position.
func VerifyDeckOrder(seeds Seeds, nonce uint64, claimed []string) ([]string, bool, error) {
	deck := NewShuffledDeck(seeds, nonce)
	actual := cardsToStrings(deck.Cards)
	if len(claimed) != len(actual) {
		return actual, false, nil
	}
	for i := range actual {
		if actual[i] != claimed[i] {
			return actual, false, nil
		}
	}
	return actual, true, nil
}

// VerifyKenoDraws recomputes the 20 drawn numbers.
func VerifyKenoDraws(seeds Seeds, nonce uint64, claimed []int) ([]int, bool, error) {
	actual := KenoDraws(seeds, nonce)
	return actual, equalInts(actual, claimed), nil
}

// VerifySicBoDice recomputes the three die faces.
func VerifySicBoDice(seeds Seeds, nonce uint64, claimed [3]int) ([3]int, bool, error) {
	actual, err := SicBoDice(seeds, nonce)
	if err != nil {
		return actual, false, err
	}
	return actual, actual == claimed, nil
}

// VerifySlotsGrid recomputes the symbol grid cell by cell.
func VerifySlotsGrid(seeds Seeds, nonce uint64, claimed [][]string) ([][]string, bool, error) {
	actual, err := SlotsGrid(seeds, nonce)
	if err != nil {
		return nil, false, err
	}
	if len(claimed) != len(actual) {
		return actual, false, nil
	}
	for reel := range actual {
		if len(claimed[reel]) != len(actual[reel]) {
			return actual, false, nil
		}
		for row := range actual[reel] {
			if actual[reel][row] != claimed[reel][row] {
				return actual, false, nil
			}
		}
	}
	return actual, true, nil
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
