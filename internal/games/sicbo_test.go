package games

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fairbet/outcome-engine/internal/engine"
)

func TestSicBoDice(t *testing.T) {
	seeds := Seeds{Server: "test_server", Client: "test_client"}

	faces, err := SicBoDice(seeds, 1)
	if err != nil {
		t.Fatalf("SicBoDice failed: %v", err)
	}
	for i, f := range faces {
		if f < 1 || f > 6 {
			t.Errorf("die %d shows %d, outside [1, 6]", i, f)
		}
	}

	replay, _ := SicBoDice(seeds, 1)
	if faces != replay {
		t.Errorf("determinism failed: %v != %v", faces, replay)
	}
}

func TestSettleSicBoBet(t *testing.T) {
	one := decimal.NewFromInt(1)

	tests := []struct {
		name  string
		label SicBoBet
		dice  [3]int
		win   bool
	}{
		{"small wins", "SMALL", [3]int{1, 2, 4}, true},
		{"small loses on triple", "SMALL", [3]int{2, 2, 2}, false},
		{"big wins", "BIG", [3]int{5, 6, 6}, true},
		{"big loses on triple", "BIG", [3]int{6, 6, 6}, false},
		{"exact total", "TOTAL_9", [3]int{2, 3, 4}, true},
		{"wrong total", "TOTAL_10", [3]int{2, 3, 4}, false},
		{"single present", "SINGLE_3", [3]int{3, 1, 5}, true},
		{"single absent", "SINGLE_6", [3]int{3, 1, 5}, false},
		{"double", "DOUBLE_4", [3]int{4, 4, 1}, true},
		{"double missing", "DOUBLE_4", [3]int{4, 2, 1}, false},
		{"any triple", "ANY_TRIPLE", [3]int{5, 5, 5}, true},
		{"specific triple", "TRIPLE_5", [3]int{5, 5, 5}, true},
		{"wrong triple", "TRIPLE_4", [3]int{5, 5, 5}, false},
		{"combo", "COMBO_2_5", [3]int{2, 3, 5}, true},
		{"combo half", "COMBO_2_5", [3]int{2, 3, 4}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := tt.dice[0] + tt.dice[1] + tt.dice[2]
			res := settleSicBoBet(tt.label, one, tt.dice, total)
			if res.Win != tt.win {
				t.Errorf("%s on %v: win = %v, want %v", tt.label, tt.dice, res.Win, tt.win)
			}
			if !res.Win && !res.Payout.IsZero() {
				t.Errorf("losing bet paid %s", res.Payout)
			}
		})
	}
}

func TestSicBoSinglePaysPerOccurrence(t *testing.T) {
	one := decimal.NewFromInt(1)

	for occurrences := 1; occurrences <= 3; occurrences++ {
		dice := [3]int{2, 2, 2}
		for i := occurrences; i < 3; i++ {
			dice[i] = 5
		}
		total := dice[0] + dice[1] + dice[2]

		res := settleSicBoBet("SINGLE_2", one, dice, total)
		want := decimal.NewFromInt(int64(occurrences + 1))
		if !res.Multiplier.Equal(want) {
			t.Errorf("%d occurrences: multiplier %s, want %s", occurrences, res.Multiplier, want)
		}
	}
}

func TestPlaySicBoValidation(t *testing.T) {
	seeds := Seeds{Server: "s", Client: "c"}
	one := decimal.NewFromInt(1)

	_, err := PlaySicBo(seeds, 1, nil)
	if !errors.Is(err, engine.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for no bets, got %v", err)
	}

	bad := []SicBoBet{"TOTAL_3", "TOTAL_18", "SINGLE_0", "SINGLE_7", "COMBO_5_2", "COMBO_3_3", "JACKPOT"}
	for _, label := range bad {
		_, err := PlaySicBo(seeds, 1, map[SicBoBet]decimal.Decimal{label: one})
		if !errors.Is(err, engine.ErrInvalidArgument) {
			t.Errorf("label %q: expected ErrInvalidArgument, got %v", label, err)
		}
	}

	_, err = PlaySicBo(seeds, 1, map[SicBoBet]decimal.Decimal{"SMALL": decimal.NewFromInt(-1)})
	if !errors.Is(err, engine.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for negative bet, got %v", err)
	}
}

func TestPlaySicBoAccounting(t *testing.T) {
	seeds := Seeds{Server: "abc123", Client: "def456"}
	bets := map[SicBoBet]decimal.Decimal{
		"SMALL":    decimal.NewFromInt(10),
		"BIG":      decimal.NewFromInt(10),
		"SINGLE_3": decimal.NewFromInt(5),
	}

	result, err := PlaySicBo(seeds, 3, bets)
	if err != nil {
		t.Fatalf("PlaySicBo failed: %v", err)
	}

	if !result.TotalBet.Equal(decimal.NewFromInt(25)) {
		t.Errorf("total bet %s, expected 25", result.TotalBet)
	}

	sum := decimal.Zero
	for _, r := range result.BetResults {
		sum = sum.Add(r.Payout)
	}
	if !sum.Equal(result.TotalPayout) {
		t.Errorf("total payout %s does not match per-bet sum %s", result.TotalPayout, sum)
	}
	if result.Total != result.Dice[0]+result.Dice[1]+result.Dice[2] {
		t.Errorf("total %d inconsistent with dice %v", result.Total, result.Dice)
	}
}
