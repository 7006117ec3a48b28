package games

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fairbet/outcome-engine/internal/engine"
)

// SicBoBet is a sic bo wager label. Recognized forms:
//
//	SMALL, BIG            totals 4-10 / 11-17, losing on any triple
//	TOTAL_4 .. TOTAL_17   exact total
//	SINGLE_1 .. SINGLE_6  at least one die shows n (pays per occurrence)
//	DOUBLE_1 .. DOUBLE_6  at least two dice show n
//	ANY_TRIPLE            any three of a kind
//	TRIPLE_1 .. TRIPLE_6  a specific triple
//	COMBO_a_b             both a and b appear (a < b)
type SicBoBet string

const (
	SicBoSmall     SicBoBet = "SMALL"
	SicBoBig       SicBoBet = "BIG"
	SicBoAnyTriple SicBoBet = "ANY_TRIPLE"
)

// Payout multipliers include the returned stake.
var sicBoPayouts = map[string]decimal.Decimal{
	"SMALL":      decimal.RequireFromString("1.96"),
	"BIG":        decimal.RequireFromString("1.96"),
	"TOTAL_4":    decimal.RequireFromString("61.11"),
	"TOTAL_5":    decimal.RequireFromString("31.94"),
	"TOTAL_6":    decimal.RequireFromString("18.98"),
	"TOTAL_7":    decimal.RequireFromString("13.19"),
	"TOTAL_8":    decimal.RequireFromString("9.03"),
	"TOTAL_9":    decimal.RequireFromString("7.41"),
	"TOTAL_10":   decimal.RequireFromString("7.41"),
	"TOTAL_11":   decimal.RequireFromString("7.41"),
	"TOTAL_12":   decimal.RequireFromString("7.41"),
	"TOTAL_13":   decimal.RequireFromString("9.03"),
	"TOTAL_14":   decimal.RequireFromString("13.19"),
	"TOTAL_15":   decimal.RequireFromString("18.98"),
	"TOTAL_16":   decimal.RequireFromString("31.94"),
	"TOTAL_17":   decimal.RequireFromString("61.11"),
	"DOUBLE":     decimal.RequireFromString("11.11"),
	"ANY_TRIPLE": decimal.RequireFromString("31.94"),
	"TRIPLE":     decimal.RequireFromString("181"),
	"COMBO":      decimal.RequireFromString("7.14"),
}

// SicBoBetResult is the per-bet outcome.
type SicBoBetResult struct {
	Win        bool            `json:"win"`
	Multiplier decimal.Decimal `json:"multiplier"`
	Payout     decimal.Decimal `json:"payout"`
}

// SicBoResult is the terminal output of a roll.
type SicBoResult struct {
	Dice        [3]int                      `json:"dice"`
	Total       int                         `json:"total"`
	Bets        map[SicBoBet]decimal.Decimal `json:"bets"`
	BetResults  map[SicBoBet]SicBoBetResult  `json:"bet_results"`
	TotalBet    decimal.Decimal             `json:"total_bet"`
	TotalPayout decimal.Decimal             `json:"total_payout"`
	NetProfit   decimal.Decimal             `json:"net_profit"`
	Win         bool                        `json:"win"`
	ServerSeed  string                      `json:"server_seed"`
	ClientSeed  string                      `json:"client_seed"`
	Nonce       uint64                      `json:"nonce"`
}

// PlaySicBo rolls three dice (die i at nonce+i) and settles every
// submitted bet against the fixed payout table. Unrecognized bet labels
// are rejected up front so a typo cannot silently burn a stake.
func PlaySicBo(seeds Seeds, nonce uint64, bets map[SicBoBet]decimal.Decimal) (SicBoResult, error) {
	if len(bets) == 0 {
		return SicBoResult{}, fmt.Errorf("sicbo: at least one bet required: %w", engine.ErrInvalidArgument)
	}
	for label, amount := range bets {
		if amount.IsNegative() {
			return SicBoResult{}, fmt.Errorf("sicbo: negative bet on %q: %w", label, engine.ErrInvalidArgument)
		}
		if !sicBoBetRecognized(label) {
			return SicBoResult{}, fmt.Errorf("sicbo: unknown bet %q: %w", label, engine.ErrInvalidArgument)
		}
	}

	faces, err := SicBoDice(seeds, nonce)
	if err != nil {
		return SicBoResult{}, err
	}
	total := faces[0] + faces[1] + faces[2]

	totalBet := decimal.Zero
	totalPayout := decimal.Zero
	results := make(map[SicBoBet]SicBoBetResult, len(bets))

	for label, amount := range bets {
		totalBet = totalBet.Add(amount)
		res := settleSicBoBet(label, amount, faces, total)
		results[label] = res
		totalPayout = totalPayout.Add(res.Payout)
	}

	return SicBoResult{
		Dice:        faces,
		Total:       total,
		Bets:        bets,
		BetResults:  results,
		TotalBet:    totalBet,
		TotalPayout: totalPayout,
		NetProfit:   totalPayout.Sub(totalBet),
		Win:         totalPayout.GreaterThan(totalBet),
		ServerSeed:  seeds.Server,
		ClientSeed:  seeds.Client,
		Nonce:       nonce,
	}, nil
}

// SicBoDice returns the three die faces for a seed triple; die i is
// drawn at nonce+i.
func SicBoDice(seeds Seeds, nonce uint64) ([3]int, error) {
	var faces [3]int
	draws, err := engine.MultiDraw(seeds.Server, seeds.Client, nonce, 3, 6)
	if err != nil {
		return faces, err
	}
	for i, d := range draws {
		faces[i] = d + 1
	}
	return faces, nil
}

func settleSicBoBet(label SicBoBet, amount decimal.Decimal, dice [3]int, total int) SicBoBetResult {
	isTriple := dice[0] == dice[1] && dice[1] == dice[2]
	count := func(n int) int {
		c := 0
		for _, d := range dice {
			if d == n {
				c++
			}
		}
		return c
	}

	win := false
	multiplier := decimal.Zero
	name := string(label)

	switch {
	case label == SicBoSmall:
		win = total >= 4 && total <= 10 && !isTriple
		multiplier = sicBoPayouts["SMALL"]
	case label == SicBoBig:
		win = total >= 11 && total <= 17 && !isTriple
		multiplier = sicBoPayouts["BIG"]
	case strings.HasPrefix(name, "TOTAL_"):
		target, _ := strconv.Atoi(strings.TrimPrefix(name, "TOTAL_"))
		win = total == target
		multiplier = sicBoPayouts[name]
	case strings.HasPrefix(name, "SINGLE_"):
		n, _ := strconv.Atoi(strings.TrimPrefix(name, "SINGLE_"))
		// Singles pay per occurrence: 1:1, 2:1 or 3:1 plus the stake.
		c := count(n)
		win = c > 0
		multiplier = decimal.NewFromInt(int64(c + 1))
		if c == 0 {
			multiplier = decimal.Zero
		}
	case strings.HasPrefix(name, "DOUBLE_"):
		n, _ := strconv.Atoi(strings.TrimPrefix(name, "DOUBLE_"))
		win = count(n) >= 2
		multiplier = sicBoPayouts["DOUBLE"]
	case label == SicBoAnyTriple:
		win = isTriple
		multiplier = sicBoPayouts["ANY_TRIPLE"]
	case strings.HasPrefix(name, "TRIPLE_"):
		n, _ := strconv.Atoi(strings.TrimPrefix(name, "TRIPLE_"))
		win = isTriple && dice[0] == n
		multiplier = sicBoPayouts["TRIPLE"]
	case strings.HasPrefix(name, "COMBO_"):
		parts := strings.Split(name, "_")
		a, _ := strconv.Atoi(parts[1])
		b, _ := strconv.Atoi(parts[2])
		win = count(a) > 0 && count(b) > 0
		multiplier = sicBoPayouts["COMBO"]
	}

	if !win {
		return SicBoBetResult{Win: false, Multiplier: decimal.Zero, Payout: decimal.Zero}
	}
	return SicBoBetResult{
		Win:        true,
		Multiplier: multiplier,
		Payout:     roundPayout(amount.Mul(multiplier)),
	}
}

func sicBoBetRecognized(label SicBoBet) bool {
	name := string(label)
	switch {
	case label == SicBoSmall || label == SicBoBig || label == SicBoAnyTriple:
		return true
	case strings.HasPrefix(name, "TOTAL_"):
		n, err := strconv.Atoi(strings.TrimPrefix(name, "TOTAL_"))
		return err == nil && n >= 4 && n <= 17
	case strings.HasPrefix(name, "SINGLE_"), strings.HasPrefix(name, "DOUBLE_"), strings.HasPrefix(name, "TRIPLE_"):
		n, err := strconv.Atoi(name[strings.Index(name, "_")+1:])
		return err == nil && n >= 1 && n <= 6
	case strings.HasPrefix(name, "COMBO_"):
		parts := strings.Split(name, "_")
		if len(parts) != 3 {
			return false
		}
		a, errA := strconv.Atoi(parts[1])
		b, errB := strconv.Atoi(parts[2])
		return errA == nil && errB == nil && a >= 1 && a < b && b <= 6
	default:
		return false
	}
}

// SicBoGame adapts the roll to the registry interface.
type SicBoGame struct{}

func (g *SicBoGame) Spec() GameSpec {
	return GameSpec{ID: "sicbo", Name: "Sic Bo", MetricLabel: "total"}
}

func (g *SicBoGame) Evaluate(seeds Seeds, nonce uint64, params map[string]any) (GameResult, error) {
	faces, err := SicBoDice(seeds, nonce)
	if err != nil {
		return GameResult{}, err
	}

	return GameResult{
		Metric:      float64(faces[0] + faces[1] + faces[2]),
		MetricLabel: "total",
		Details: map[string]any{
			"dice": []int{faces[0], faces[1], faces[2]},
		},
	}, nil
}
