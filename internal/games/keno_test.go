package games

import (
	"errors"
	"sort"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fairbet/outcome-engine/internal/engine"
)

func TestKenoDraws(t *testing.T) {
	seeds := Seeds{Server: "test_server", Client: "test_client"}

	draws := KenoDraws(seeds, 1)
	if len(draws) != kenoDrawCount {
		t.Fatalf("expected %d draws, got %d", kenoDrawCount, len(draws))
	}
	if !sort.IntsAreSorted(draws) {
		t.Error("draws should be sorted ascending")
	}

	seen := make(map[int]bool)
	for _, d := range draws {
		if d < 1 || d > kenoNumbers {
			t.Errorf("draw %d outside [1, %d]", d, kenoNumbers)
		}
		if seen[d] {
			t.Errorf("duplicate draw %d", d)
		}
		seen[d] = true
	}

	replay := KenoDraws(seeds, 1)
	for i := range draws {
		if draws[i] != replay[i] {
			t.Errorf("determinism failed at index %d: %d != %d", i, draws[i], replay[i])
		}
	}
}

func TestKenoMultiplier(t *testing.T) {
	tests := []struct {
		picks, hits int
		want        int64
	}{
		{1, 0, 0},
		{1, 1, 3},
		{3, 2, 2},
		{3, 3, 50},
		{5, 5, 500},
		{10, 4, 0},
		{10, 5, 2},
		{10, 10, 25000},
		{10, 11, 0}, // out of range
		{0, 0, 0},
		{11, 5, 0},
	}

	for _, tt := range tests {
		if got := KenoMultiplier(tt.picks, tt.hits); got != tt.want {
			t.Errorf("KenoMultiplier(%d, %d) = %d, want %d", tt.picks, tt.hits, got, tt.want)
		}
	}
}

func TestPlayKeno(t *testing.T) {
	seeds := Seeds{Server: "abc123", Client: "def456"}
	bet := decimal.NewFromInt(10)
	picks := []int{4, 8, 15, 16, 23}

	result, err := PlayKeno(seeds, 7, bet, picks)
	if err != nil {
		t.Fatalf("PlayKeno failed: %v", err)
	}

	if result.Hits != len(result.Matches) {
		t.Errorf("hits %d does not match %d matches", result.Hits, len(result.Matches))
	}
	if result.Multiplier != KenoMultiplier(len(picks), result.Hits) {
		t.Errorf("multiplier %d inconsistent with table", result.Multiplier)
	}
	want := roundPayout(bet.Mul(decimal.NewFromInt(result.Multiplier)))
	if !result.Payout.Equal(want) {
		t.Errorf("payout %s, expected %s", result.Payout, want)
	}
}

func TestPlayKenoValidation(t *testing.T) {
	seeds := Seeds{Server: "s", Client: "c"}
	bet := decimal.NewFromInt(1)

	cases := map[string][]int{
		"no picks":        {},
		"too many picks":  {1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},
		"pick too low":    {0, 5},
		"pick too high":   {81},
		"duplicate picks": {7, 7},
	}

	for name, picks := range cases {
		if _, err := PlayKeno(seeds, 1, bet, picks); !errors.Is(err, engine.ErrInvalidArgument) {
			t.Errorf("%s: expected ErrInvalidArgument, got %v", name, err)
		}
	}
}
