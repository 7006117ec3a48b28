package games

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fairbet/outcome-engine/internal/engine"
)

// RouletteWheel selects the wheel variant.
type RouletteWheel string

const (
	EuropeanWheel RouletteWheel = "EUROPEAN" // single zero, pockets 0-36
	AmericanWheel RouletteWheel = "AMERICAN" // adds double zero, pocket 37 rendered "00"
)

const (
	europeanPockets = 37
	americanPockets = 38
	doubleZero      = 37
)

var rouletteRedNumbers = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true,
	12: true, 14: true, 16: true, 18: true, 19: true,
	21: true, 23: true, 25: true, 27: true, 30: true,
	32: true, 34: true, 36: true,
}

// Payout multipliers include the returned stake: a winning straight bet
// pays 36x the wager (35:1 plus the bet back).
var roulettePayouts = map[string]decimal.Decimal{
	"straight": decimal.NewFromInt(36),
	"even":     decimal.NewFromInt(2),
	"dozen":    decimal.NewFromInt(3),
	"split":    decimal.NewFromInt(18),
	"street":   decimal.NewFromInt(12),
	"corner":   decimal.NewFromInt(9),
	"line":     decimal.NewFromInt(6),
}

// RouletteResult is the terminal output of a spin.
type RouletteResult struct {
	WinningNumber int                        `json:"winning_number"`
	Display       string                     `json:"display"` // "00" for the American double zero
	Color         string                     `json:"color"`
	Wheel         RouletteWheel              `json:"wheel"`
	Bets          map[string]decimal.Decimal `json:"bets"`
	WinningBets   map[string]decimal.Decimal `json:"winning_bets"`
	TotalBet      decimal.Decimal            `json:"total_bet"`
	TotalPayout   decimal.Decimal            `json:"total_payout"`
	NetProfit     decimal.Decimal            `json:"net_profit"`
	ServerSeed    string                     `json:"server_seed"`
	ClientSeed    string                     `json:"client_seed"`
	Nonce         uint64                     `json:"nonce"`
}

// SpinRoulette resolves one spin. Every submitted bet label is
// evaluated independently against the winning pocket; unrecognized
// labels resolve to no win rather than failing the round.
func SpinRoulette(seeds Seeds, nonce uint64, bets map[string]decimal.Decimal, wheel RouletteWheel) (RouletteResult, error) {
	if len(bets) == 0 {
		return RouletteResult{}, fmt.Errorf("roulette: at least one bet required: %w", engine.ErrInvalidArgument)
	}

	pockets := europeanPockets
	switch wheel {
	case EuropeanWheel:
	case AmericanWheel:
		pockets = americanPockets
	default:
		return RouletteResult{}, fmt.Errorf("roulette: unknown wheel %q: %w", wheel, engine.ErrInvalidArgument)
	}

	for label, amount := range bets {
		if amount.IsNegative() {
			return RouletteResult{}, fmt.Errorf("roulette: negative bet on %q: %w", label, engine.ErrInvalidArgument)
		}
	}

	winning, err := engine.UniformInt(seeds.Server, seeds.Client, nonce, pockets)
	if err != nil {
		return RouletteResult{}, err
	}

	totalBet := decimal.Zero
	totalPayout := decimal.Zero
	winningBets := make(map[string]decimal.Decimal)

	for label, amount := range bets {
		totalBet = totalBet.Add(amount)
		if !rouletteBetWins(label, winning, wheel) {
			continue
		}
		payout := roundPayout(amount.Mul(roulettePayoutMultiplier(label)))
		winningBets[label] = payout
		totalPayout = totalPayout.Add(payout)
	}

	return RouletteResult{
		WinningNumber: winning,
		Display:       roulettePocketDisplay(winning),
		Color:         rouletteColor(winning),
		Wheel:         wheel,
		Bets:          bets,
		WinningBets:   winningBets,
		TotalBet:      totalBet,
		TotalPayout:   totalPayout,
		NetProfit:     totalPayout.Sub(totalBet),
		ServerSeed:    seeds.Server,
		ClientSeed:    seeds.Client,
		Nonce:         nonce,
	}, nil
}

func roulettePocketDisplay(n int) string {
	if n == doubleZero {
		return "00"
	}
	return strconv.Itoa(n)
}

func rouletteColor(n int) string {
	switch {
	case n == 0 || n == doubleZero:
		return "GREEN"
	case rouletteRedNumbers[n]:
		return "RED"
	default:
		return "BLACK"
	}
}

// rouletteBetWins evaluates a single bet label against the winning
// pocket. Labels it does not recognize simply lose.
func rouletteBetWins(label string, winning int, wheel RouletteWheel) bool {
	// Straight-up on the double zero.
	if label == "00" {
		return wheel == AmericanWheel && winning == doubleZero
	}

	// Straight-up on a plain number.
	if n, err := strconv.Atoi(label); err == nil {
		return n == winning && winning != doubleZero
	}

	switch strings.ToLower(label) {
	case "red":
		return rouletteRedNumbers[winning]
	case "black":
		return winning >= 1 && winning <= 36 && !rouletteRedNumbers[winning]
	case "even":
		return winning >= 1 && winning <= 36 && winning%2 == 0
	case "odd":
		return winning >= 1 && winning <= 36 && winning%2 == 1
	case "low", "1-18":
		return winning >= 1 && winning <= 18
	case "high", "19-36":
		return winning >= 19 && winning <= 36
	case "1st12", "dozen1":
		return winning >= 1 && winning <= 12
	case "2nd12", "dozen2":
		return winning >= 13 && winning <= 24
	case "3rd12", "dozen3":
		return winning >= 25 && winning <= 36
	case "col1", "column1":
		return winning >= 1 && winning <= 36 && (winning-1)%3 == 0
	case "col2", "column2":
		return winning >= 1 && winning <= 36 && (winning-1)%3 == 1
	case "col3", "column3":
		return winning >= 1 && winning <= 36 && (winning-1)%3 == 2
	}

	lower := strings.ToLower(label)

	// Split: "a-b", two adjacent numbers.
	if a, b, ok := parseSplit(lower); ok {
		return winning == a || winning == b
	}

	// Street: "street<n>" covers n, n+1, n+2 where n starts a row.
	if n, ok := parsePrefixedNumber(lower, "street"); ok && n >= 1 && n <= 34 && n%3 == 1 {
		return winning >= n && winning <= n+2
	}

	// Corner: "corner<tl>" covers the 2x2 block whose top-left is tl.
	if tl, ok := parsePrefixedNumber(lower, "corner"); ok && tl >= 1 && tl <= 32 && tl%3 != 0 {
		return winning == tl || winning == tl+1 || winning == tl+3 || winning == tl+4
	}

	// Six line: "line<n>" covers two adjacent streets starting at n.
	if n, ok := parsePrefixedNumber(lower, "line"); ok && n >= 1 && n <= 31 && n%3 == 1 {
		return winning >= n && winning <= n+5
	}

	return false
}

func roulettePayoutMultiplier(label string) decimal.Decimal {
	if label == "00" {
		return roulettePayouts["straight"]
	}
	if _, err := strconv.Atoi(label); err == nil {
		return roulettePayouts["straight"]
	}

	lower := strings.ToLower(label)
	switch lower {
	case "red", "black", "even", "odd", "low", "high", "1-18", "19-36":
		return roulettePayouts["even"]
	case "1st12", "2nd12", "3rd12", "dozen1", "dozen2", "dozen3",
		"col1", "col2", "col3", "column1", "column2", "column3":
		return roulettePayouts["dozen"]
	}

	if _, _, ok := parseSplit(lower); ok {
		return roulettePayouts["split"]
	}
	if _, ok := parsePrefixedNumber(lower, "street"); ok {
		return roulettePayouts["street"]
	}
	if _, ok := parsePrefixedNumber(lower, "corner"); ok {
		return roulettePayouts["corner"]
	}
	if _, ok := parsePrefixedNumber(lower, "line"); ok {
		return roulettePayouts["line"]
	}
	return decimal.Zero
}

// parseSplit accepts "a-b" only when the two numbers share an edge on
// the betting layout: horizontal neighbours within a row (b = a+1, a
// not in the rightmost column) or vertical neighbours (b = a+3), plus
// the zero splits 0-1, 0-2, 0-3. Anything else is not a split and
// loses through the unrecognized-label path.
func parseSplit(label string) (int, int, bool) {
	parts := strings.Split(label, "-")
	if len(parts) != 2 {
		return 0, 0, false
	}
	a, errA := strconv.Atoi(parts[0])
	b, errB := strconv.Atoi(parts[1])
	if errA != nil || errB != nil {
		return 0, 0, false
	}
	if a < 0 || b > 36 || a >= b {
		return 0, 0, false
	}
	if a == 0 {
		return a, b, b <= 3
	}
	if b == a+1 && a%3 != 0 {
		return a, b, true
	}
	if b == a+3 {
		return a, b, true
	}
	return 0, 0, false
}

func parsePrefixedNumber(label, prefix string) (int, bool) {
	if !strings.HasPrefix(label, prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(label, prefix))
	if err != nil {
		return 0, false
	}
	return n, true
}

// RouletteGame adapts the spin to the registry interface.
type RouletteGame struct{}

func (g *RouletteGame) Spec() GameSpec {
	return GameSpec{ID: "roulette", Name: "Roulette", MetricLabel: "pocket"}
}

func (g *RouletteGame) Evaluate(seeds Seeds, nonce uint64, params map[string]any) (GameResult, error) {
	pockets := europeanPockets
	if w, ok := params["wheel"].(string); ok && RouletteWheel(strings.ToUpper(w)) == AmericanWheel {
		pockets = americanPockets
	}

	winning, err := engine.UniformInt(seeds.Server, seeds.Client, nonce, pockets)
	if err != nil {
		return GameResult{}, err
	}

	return GameResult{
		Metric:      float64(winning),
		MetricLabel: "pocket",
		Details: map[string]any{
			"pocket":  winning,
			"display": roulettePocketDisplay(winning),
			"color":   rouletteColor(winning),
		},
	}, nil
}
