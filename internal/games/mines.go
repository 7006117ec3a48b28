package games

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fairbet/outcome-engine/internal/engine"
)

const (
	minesGridSize = 25 // 5x5
	minesMinCount = 1
	minesMaxCount = 24
)

// Mines round statuses.
const (
	MinesStatePlaying   = "PLAYING"
	MinesStateBusted    = "BUSTED"
	MinesStateCashedOut = "CASHED_OUT"
)

// MinesState is the serializable snapshot of a mines round. The engine
// holds nothing between calls; the caller passes the snapshot back into
// each transition.
type MinesState struct {
	MinePositions []int           `json:"mine_positions"`
	Revealed      []int           `json:"revealed"`
	MineCount     int             `json:"mine_count"`
	GemsFound     int             `json:"gems_found"`
	Multiplier    decimal.Decimal `json:"multiplier"`
	BetAmount     decimal.Decimal `json:"bet_amount"`
	Payout        decimal.Decimal `json:"payout"`
	Status        string          `json:"status"`
	CanCashout    bool            `json:"can_cashout"`
	ServerSeed    string          `json:"server_seed"`
	ClientSeed    string          `json:"client_seed"`
	Nonce         uint64          `json:"nonce"`
}

// StartMines opens a round: the mine set is the first mineCount
// elements of the provably fair shuffle of the 25 grid positions.
func StartMines(seeds Seeds, nonce uint64, betAmount decimal.Decimal, mineCount int) (MinesState, error) {
	if mineCount < minesMinCount || mineCount > minesMaxCount {
		return MinesState{}, fmt.Errorf("mines: mine count %d outside [%d, %d]: %w",
			mineCount, minesMinCount, minesMaxCount, engine.ErrInvalidArgument)
	}
	if betAmount.IsNegative() {
		return MinesState{}, fmt.Errorf("mines: negative bet %s: %w", betAmount, engine.ErrInvalidArgument)
	}

	return MinesState{
		MinePositions: MinePositions(seeds, nonce, mineCount),
		Revealed:      []int{},
		MineCount:     mineCount,
		Multiplier:    decimalOne,
		BetAmount:     betAmount,
		Payout:        betAmount,
		Status:        MinesStatePlaying,
		ServerSeed:    seeds.Server,
		ClientSeed:    seeds.Client,
		Nonce:         nonce,
	}, nil
}

// MinePositions returns the seed-determined mine cells, sorted
// ascending.
func MinePositions(seeds Seeds, nonce uint64, mineCount int) []int {
	positions := make([]int, minesGridSize)
	for i := range positions {
		positions[i] = i
	}

	shuffled := engine.Shuffle(seeds.Server, seeds.Client, nonce, positions)
	mines := make([]int, mineCount)
	copy(mines, shuffled[:mineCount])
	sort.Ints(mines)
	return mines
}

// RevealMine uncovers one cell. Hitting a mine busts the round with
// payout zero; a safe cell bumps the gem count and recomputes the
// multiplier from the hypergeometric probability of the run so far.
func RevealMine(state MinesState, position int) (MinesState, error) {
	if state.Status != MinesStatePlaying {
		return MinesState{}, fmt.Errorf("mines: reveal in state %s: %w", state.Status, engine.ErrIllegalTransition)
	}
	if position < 0 || position >= minesGridSize {
		return MinesState{}, fmt.Errorf("mines: position %d outside grid: %w", position, engine.ErrInvalidArgument)
	}
	for _, p := range state.Revealed {
		if p == position {
			return MinesState{}, fmt.Errorf("mines: position %d already revealed: %w", position, engine.ErrIllegalTransition)
		}
	}

	next := state
	next.Revealed = append(append([]int{}, state.Revealed...), position)

	for _, m := range state.MinePositions {
		if m == position {
			next.Status = MinesStateBusted
			next.Payout = decimal.Zero
			next.CanCashout = false
			return next, nil
		}
	}

	next.GemsFound++
	next.Multiplier = MinesMultiplier(state.MineCount, next.GemsFound)
	next.Payout = roundPayout(state.BetAmount.Mul(next.Multiplier))
	next.CanCashout = true
	return next, nil
}

// CashoutMines freezes the current multiplier's payout. Permitted only
// while playing and after at least one safe reveal.
func CashoutMines(state MinesState) (MinesState, error) {
	if state.Status != MinesStatePlaying || !state.CanCashout {
		return MinesState{}, fmt.Errorf("mines: cashout in state %s with %d gems: %w",
			state.Status, state.GemsFound, engine.ErrIllegalTransition)
	}

	next := state
	next.Status = MinesStateCashedOut
	next.CanCashout = false
	return next, nil
}

// MinesMultiplier is 1 / P(gemsFound safe draws) * (1 - houseEdge),
// where P is the falling hypergeometric probability of revealing only
// safe cells. Strictly increasing in gems found for a fixed mine count.
func MinesMultiplier(mineCount, gemsFound int) decimal.Decimal {
	prob := hypergeometricSafeProb(minesGridSize, minesGridSize-mineCount, gemsFound)
	return oddsToMultiplier(prob, standardPayoutFactor)
}

// MinesMultiplierTable lists the multiplier at every gem count for a
// mine count, for display.
func MinesMultiplierTable(mineCount int) ([]decimal.Decimal, error) {
	if mineCount < minesMinCount || mineCount > minesMaxCount {
		return nil, fmt.Errorf("mines: mine count %d outside [%d, %d]: %w",
			mineCount, minesMinCount, minesMaxCount, engine.ErrInvalidArgument)
	}

	maxGems := minesGridSize - mineCount
	table := make([]decimal.Decimal, maxGems)
	for gems := 1; gems <= maxGems; gems++ {
		table[gems-1] = MinesMultiplier(mineCount, gems)
	}
	return table, nil
}

// MinesGame adapts the layout to the registry interface.
type MinesGame struct{}

func (g *MinesGame) Spec() GameSpec {
	return GameSpec{ID: "mines", Name: "Mines", MetricLabel: "first_mine"}
}

func (g *MinesGame) Evaluate(seeds Seeds, nonce uint64, params map[string]any) (GameResult, error) {
	mineCount := 3
	switch v := params["mines"].(type) {
	case int:
		mineCount = v
	case float64:
		mineCount = int(v)
	}
	if mineCount < minesMinCount || mineCount > minesMaxCount {
		return GameResult{}, fmt.Errorf("mines: mine count %d outside [%d, %d]: %w",
			mineCount, minesMinCount, minesMaxCount, engine.ErrInvalidArgument)
	}

	mines := MinePositions(seeds, nonce, mineCount)

	return GameResult{
		Metric:      float64(mines[0]),
		MetricLabel: "first_mine",
		Details: map[string]any{
			"mine_positions": mines,
			"mine_count":     mineCount,
		},
	}, nil
}
