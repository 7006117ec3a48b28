package games

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fairbet/outcome-engine/internal/engine"
)

const (
	slotReels     = 5
	slotRows      = 3
	slotScatter   = "STAR"
	slotFreeSpins = 10
)

// SlotWinLine is one paid line (or the scatter pseudo-line, numbered -1).
type SlotWinLine struct {
	Line   int             `json:"line"`
	Symbol string          `json:"symbol"`
	Count  int             `json:"count"`
	Payout decimal.Decimal `json:"payout"`
}

// SlotsResult is the terminal output of a spin.
type SlotsResult struct {
	Grid           [][]string      `json:"grid"` // grid[reel][row]
	WinLines       []SlotWinLine   `json:"win_lines"`
	BonusTriggered bool            `json:"bonus_triggered"`
	FreeSpins      int             `json:"free_spins"`
	BetPerLine     decimal.Decimal `json:"bet_per_line"`
	TotalPayout    decimal.Decimal `json:"total_payout"`
	ServerSeed     string          `json:"server_seed"`
	ClientSeed     string          `json:"client_seed"`
	Nonce          uint64          `json:"nonce"`
}

// SpinSlots resolves one 5x3 spin over 20 paylines. Cell (reel, row)
// draws a weighted symbol at nonce + reel*rows + row; lines pay on
// left-to-right runs of the first symbol, scatters pay anywhere and
// three or more trigger the free-spin bonus.
func SpinSlots(seeds Seeds, nonce uint64, betPerLine decimal.Decimal) (SlotsResult, error) {
	if betPerLine.IsNegative() {
		return SlotsResult{}, fmt.Errorf("slots: negative bet %s: %w", betPerLine, engine.ErrInvalidArgument)
	}

	grid, err := SlotsGrid(seeds, nonce)
	if err != nil {
		return SlotsResult{}, err
	}

	winLines := make([]SlotWinLine, 0, 4)
	totalPayout := decimal.Zero

	for lineNo, pattern := range slotPaylines {
		line, ok := settleSlotLine(grid, lineNo, pattern, betPerLine)
		if !ok {
			continue
		}
		winLines = append(winLines, line)
		totalPayout = totalPayout.Add(line.Payout)
	}

	// Scatter symbols pay anywhere on the grid.
	scatters := 0
	for _, reel := range grid {
		for _, sym := range reel {
			if sym == slotScatter {
				scatters++
			}
		}
	}
	if mult, ok := slotPayouts[slotScatter][scatters]; ok && scatters >= 3 {
		payout := roundPayout(betPerLine.Mul(decimal.NewFromInt(mult)))
		winLines = append(winLines, SlotWinLine{Line: -1, Symbol: slotScatter, Count: scatters, Payout: payout})
		totalPayout = totalPayout.Add(payout)
	}

	bonus := scatters >= 3
	freeSpins := 0
	if bonus {
		freeSpins = slotFreeSpins
	}

	return SlotsResult{
		Grid:           grid,
		WinLines:       winLines,
		BonusTriggered: bonus,
		FreeSpins:      freeSpins,
		BetPerLine:     betPerLine,
		TotalPayout:    totalPayout,
		ServerSeed:     seeds.Server,
		ClientSeed:     seeds.Client,
		Nonce:          nonce,
	}, nil
}

// SlotsGrid returns the seed-determined symbol grid, grid[reel][row].
func SlotsGrid(seeds Seeds, nonce uint64) ([][]string, error) {
	grid := make([][]string, slotReels)
	for reel := 0; reel < slotReels; reel++ {
		grid[reel] = make([]string, slotRows)
		for row := 0; row < slotRows; row++ {
			cellNonce := nonce + uint64(reel*slotRows+row)
			idx, err := engine.WeightedPick(seeds.Server, seeds.Client, cellNonce, slotWeights)
			if err != nil {
				return nil, err
			}
			grid[reel][row] = slotSymbols[idx]
		}
	}
	return grid, nil
}

func settleSlotLine(grid [][]string, lineNo int, pattern []int, betPerLine decimal.Decimal) (SlotWinLine, bool) {
	first := grid[0][pattern[0]]
	if first == slotScatter {
		return SlotWinLine{}, false
	}

	count := 1
	for reel := 1; reel < slotReels; reel++ {
		if grid[reel][pattern[reel]] != first {
			break
		}
		count++
	}

	mult, ok := slotPayouts[first][count]
	if !ok {
		return SlotWinLine{}, false
	}

	return SlotWinLine{
		Line:   lineNo,
		Symbol: first,
		Count:  count,
		Payout: roundPayout(betPerLine.Mul(decimal.NewFromInt(mult))),
	}, true
}

// SlotsGame adapts the spin to the registry interface.
type SlotsGame struct{}

func (g *SlotsGame) Spec() GameSpec {
	return GameSpec{ID: "slots", Name: "Slots", MetricLabel: "scatters"}
}

func (g *SlotsGame) Evaluate(seeds Seeds, nonce uint64, params map[string]any) (GameResult, error) {
	grid, err := SlotsGrid(seeds, nonce)
	if err != nil {
		return GameResult{}, err
	}

	scatters := 0
	for _, reel := range grid {
		for _, sym := range reel {
			if sym == slotScatter {
				scatters++
			}
		}
	}

	return GameResult{
		Metric:      float64(scatters),
		MetricLabel: "scatters",
		Details: map[string]any{
			"grid": grid,
		},
	}, nil
}
