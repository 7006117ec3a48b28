package games

import (
	"errors"
	"sort"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fairbet/outcome-engine/internal/engine"
)

func TestMinePositions(t *testing.T) {
	seeds := Seeds{Server: "test_server", Client: "test_client"}

	for _, count := range []int{1, 3, 5, 24} {
		mines := MinePositions(seeds, 1, count)
		if len(mines) != count {
			t.Fatalf("count %d: got %d mines", count, len(mines))
		}
		if !sort.IntsAreSorted(mines) {
			t.Errorf("count %d: positions not sorted", count)
		}

		seen := make(map[int]bool)
		for _, pos := range mines {
			if pos < 0 || pos >= minesGridSize {
				t.Errorf("position %d outside grid", pos)
			}
			if seen[pos] {
				t.Errorf("duplicate position %d", pos)
			}
			seen[pos] = true
		}
	}

	a := MinePositions(seeds, 42, 5)
	b := MinePositions(seeds, 42, 5)
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("determinism failed at index %d", i)
		}
	}
}

func TestMinesMultiplier(t *testing.T) {
	tests := []struct {
		mines, gems int
		want        string
	}{
		{3, 1, "1.1250"},
		{1, 1, "1.0313"},
		{1, 24, "24.75"},
	}

	for _, tt := range tests {
		got := MinesMultiplier(tt.mines, tt.gems)
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("MinesMultiplier(%d, %d) = %s, want %s", tt.mines, tt.gems, got, tt.want)
		}
	}
}

func TestMinesMultiplierIncreases(t *testing.T) {
	for _, mines := range []int{1, 3, 10, 24} {
		table, err := MinesMultiplierTable(mines)
		if err != nil {
			t.Fatalf("table for %d mines failed: %v", mines, err)
		}
		if len(table) != minesGridSize-mines {
			t.Errorf("%d mines: table length %d, want %d", mines, len(table), minesGridSize-mines)
		}
		for i := 1; i < len(table); i++ {
			if !table[i].GreaterThan(table[i-1]) {
				t.Errorf("%d mines: multiplier not increasing at gem %d: %s <= %s",
					mines, i+1, table[i], table[i-1])
			}
		}
	}
}

func TestStartMinesValidation(t *testing.T) {
	seeds := Seeds{Server: "s", Client: "c"}
	bet := decimal.NewFromInt(1)

	for _, count := range []int{0, -1, 25} {
		if _, err := StartMines(seeds, 1, bet, count); !errors.Is(err, engine.ErrInvalidArgument) {
			t.Errorf("count %d: expected ErrInvalidArgument, got %v", count, err)
		}
	}
	if _, err := StartMines(seeds, 1, decimal.NewFromInt(-1), 3); !errors.Is(err, engine.ErrInvalidArgument) {
		t.Error("expected ErrInvalidArgument for negative bet")
	}
	if _, err := MinesMultiplierTable(0); !errors.Is(err, engine.ErrInvalidArgument) {
		t.Error("expected ErrInvalidArgument for table with 0 mines")
	}
}

func TestMinesRevealFlow(t *testing.T) {
	seeds := Seeds{Server: "abc123", Client: "def456"}
	bet := decimal.NewFromInt(100)

	state, err := StartMines(seeds, 7, bet, 3)
	if err != nil {
		t.Fatalf("StartMines failed: %v", err)
	}
	if state.Status != MinesStatePlaying || state.CanCashout {
		t.Fatalf("fresh round: status %s, cashout %v", state.Status, state.CanCashout)
	}

	mined := make(map[int]bool)
	for _, m := range state.MinePositions {
		mined[m] = true
	}
	safe, mine := -1, state.MinePositions[0]
	for pos := 0; pos < minesGridSize; pos++ {
		if !mined[pos] {
			safe = pos
			break
		}
	}

	after, err := RevealMine(state, safe)
	if err != nil {
		t.Fatalf("safe reveal failed: %v", err)
	}
	if after.GemsFound != 1 || !after.CanCashout {
		t.Errorf("after safe reveal: gems %d, cashout %v", after.GemsFound, after.CanCashout)
	}
	if !after.Multiplier.Equal(decimal.RequireFromString("1.1250")) {
		t.Errorf("first-gem multiplier %s, expected 1.1250", after.Multiplier)
	}
	if !after.Payout.Equal(decimal.RequireFromString("112.50")) {
		t.Errorf("first-gem payout %s, expected 112.50", after.Payout)
	}

	if _, err := RevealMine(after, safe); !errors.Is(err, engine.ErrIllegalTransition) {
		t.Errorf("duplicate reveal: expected ErrIllegalTransition, got %v", err)
	}
	if _, err := RevealMine(after, -1); !errors.Is(err, engine.ErrInvalidArgument) {
		t.Errorf("position -1: expected ErrInvalidArgument, got %v", err)
	}
	if _, err := RevealMine(after, minesGridSize); !errors.Is(err, engine.ErrInvalidArgument) {
		t.Errorf("position 25: expected ErrInvalidArgument, got %v", err)
	}

	busted, err := RevealMine(after, mine)
	if err != nil {
		t.Fatalf("mine reveal failed: %v", err)
	}
	if busted.Status != MinesStateBusted || !busted.Payout.IsZero() {
		t.Errorf("bust: status %s, payout %s", busted.Status, busted.Payout)
	}
	if _, err := RevealMine(busted, safe+1); !errors.Is(err, engine.ErrIllegalTransition) {
		t.Errorf("reveal after bust: expected ErrIllegalTransition, got %v", err)
	}
	if _, err := CashoutMines(busted); !errors.Is(err, engine.ErrIllegalTransition) {
		t.Errorf("cashout after bust: expected ErrIllegalTransition, got %v", err)
	}
}

func TestMinesCashout(t *testing.T) {
	seeds := Seeds{Server: "abc123", Client: "def456"}
	bet := decimal.NewFromInt(50)

	state, _ := StartMines(seeds, 9, bet, 5)

	// No cashing out before the first safe reveal.
	if _, err := CashoutMines(state); !errors.Is(err, engine.ErrIllegalTransition) {
		t.Errorf("premature cashout: expected ErrIllegalTransition, got %v", err)
	}

	mined := make(map[int]bool)
	for _, m := range state.MinePositions {
		mined[m] = true
	}
	for pos := 0; pos < minesGridSize; pos++ {
		if !mined[pos] {
			var err error
			state, err = RevealMine(state, pos)
			if err != nil {
				t.Fatalf("reveal failed: %v", err)
			}
			break
		}
	}

	settled, err := CashoutMines(state)
	if err != nil {
		t.Fatalf("cashout failed: %v", err)
	}
	if settled.Status != MinesStateCashedOut {
		t.Errorf("status %s, expected CASHED_OUT", settled.Status)
	}
	if !settled.Payout.Equal(state.Payout) {
		t.Errorf("cashout changed payout: %s != %s", settled.Payout, state.Payout)
	}
	if _, err := CashoutMines(settled); !errors.Is(err, engine.ErrIllegalTransition) {
		t.Errorf("double cashout: expected ErrIllegalTransition, got %v", err)
	}
}
