package games

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fairbet/outcome-engine/internal/engine"
)

func TestDiceMultiplier(t *testing.T) {
	tests := []struct {
		name     string
		target   int
		rollOver bool
		want     string
	}{
		{"over 50", 50, true, "2.0204"},
		{"under 50", 50, false, "1.98"},
		{"under 98", 98, false, "1.0102"},
		{"over 2", 2, true, "1.0102"},
		{"under 2", 2, false, "49.5"},
		{"over 98", 98, true, "49.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DiceMultiplier(tt.target, tt.rollOver)
			if err != nil {
				t.Fatalf("DiceMultiplier failed: %v", err)
			}
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestDiceTargetValidation(t *testing.T) {
	seeds := Seeds{Server: "s", Client: "c"}
	bet := decimal.NewFromInt(1)

	for _, target := range []int{1, 0, -5, 99, 100} {
		_, err := RollDice(seeds, 1, bet, target, true)
		if !errors.Is(err, engine.ErrInvalidArgument) {
			t.Errorf("target %d: expected ErrInvalidArgument, got %v", target, err)
		}
		_, err = DiceMultiplier(target, false)
		if !errors.Is(err, engine.ErrInvalidArgument) {
			t.Errorf("target %d: expected ErrInvalidArgument, got %v", target, err)
		}
	}
}

func TestRollDiceOutcome(t *testing.T) {
	seeds := Seeds{Server: "test_server", Client: "test_client"}
	bet := decimal.NewFromInt(100)

	for nonce := uint64(0); nonce < 50; nonce++ {
		result, err := RollDice(seeds, nonce, bet, 50, true)
		if err != nil {
			t.Fatalf("RollDice failed: %v", err)
		}

		if result.Roll < 0 || result.Roll >= 100 {
			t.Errorf("nonce %d: roll %d outside [0, 100)", nonce, result.Roll)
		}
		if result.Win != (result.Roll > 50) {
			t.Errorf("nonce %d: win flag %v inconsistent with roll %d over 50", nonce, result.Win, result.Roll)
		}

		if result.Win {
			want := roundPayout(bet.Mul(result.Multiplier))
			if !result.Payout.Equal(want) {
				t.Errorf("nonce %d: payout %s, expected %s", nonce, result.Payout, want)
			}
		} else if !result.Payout.IsZero() {
			t.Errorf("nonce %d: losing payout %s, expected 0", nonce, result.Payout)
		}
	}
}

func TestRollDiceOverUnderComplement(t *testing.T) {
	seeds := Seeds{Server: "abc123", Client: "def456"}
	bet := decimal.NewFromInt(1)

	// Unless the roll lands exactly on the target, exactly one of the
	// over and under bets wins.
	for nonce := uint64(0); nonce < 50; nonce++ {
		over, _ := RollDice(seeds, nonce, bet, 50, true)
		under, _ := RollDice(seeds, nonce, bet, 50, false)

		if over.Roll != under.Roll {
			t.Fatalf("nonce %d: replay mismatch %d != %d", nonce, over.Roll, under.Roll)
		}
		if over.Roll == 50 {
			if over.Win || under.Win {
				t.Errorf("nonce %d: exact target hit should lose both sides", nonce)
			}
			continue
		}
		if over.Win == under.Win {
			t.Errorf("nonce %d: roll %d won both or neither side", nonce, over.Roll)
		}
	}
}
