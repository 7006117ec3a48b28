package games

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fairbet/outcome-engine/internal/engine"
)

// Crash round statuses.
const (
	CrashStateCrashed   = "CRASHED"
	CrashStateCashedOut = "CASHED_OUT"
)

var (
	crashMinPoint = decimal.RequireFromString("1.00")
	crashMaxPoint = decimal.RequireFromString("1000000.00")
)

// CrashResult is a settled (or settleable) crash round. The crash point
// is fixed at start; Cashout only re-settles against it.
type CrashResult struct {
	CrashPoint    decimal.Decimal  `json:"crash_point"`
	BetAmount     decimal.Decimal  `json:"bet_amount"`
	AutoCashoutAt *decimal.Decimal `json:"auto_cashout_at,omitempty"`
	CashedOutAt   *decimal.Decimal `json:"cashed_out_at,omitempty"`
	Win           bool             `json:"win"`
	Payout        decimal.Decimal  `json:"payout"`
	NetProfit     decimal.Decimal  `json:"net_profit"`
	Status        string           `json:"status"`
	RoundHash     string           `json:"round_hash"`
	ServerSeed    string           `json:"server_seed"`
	ClientSeed    string           `json:"client_seed"`
	Nonce         uint64           `json:"nonce"`
}

// PlayCrash starts a crash round. The crash point is derived from a
// single uniform decimal; if an auto-cashout target was supplied and
// the round reaches it, the round settles immediately as a win at that
// multiplier.
func PlayCrash(seeds Seeds, nonce uint64, betAmount decimal.Decimal, autoCashoutAt *decimal.Decimal) (CrashResult, error) {
	if betAmount.IsNegative() {
		return CrashResult{}, fmt.Errorf("crash: negative bet %s: %w", betAmount, engine.ErrInvalidArgument)
	}
	if autoCashoutAt != nil && autoCashoutAt.LessThan(crashMinPoint) {
		return CrashResult{}, fmt.Errorf("crash: auto cashout %s below 1.00: %w", autoCashoutAt, engine.ErrInvalidArgument)
	}

	crashPoint := CrashPoint(seeds, nonce)

	result := CrashResult{
		CrashPoint:    crashPoint,
		BetAmount:     betAmount,
		AutoCashoutAt: autoCashoutAt,
		Payout:        decimal.Zero,
		Status:        CrashStateCrashed,
		RoundHash:     engine.DigestHex(seeds.Server, seeds.Client, nonce),
		ServerSeed:    seeds.Server,
		ClientSeed:    seeds.Client,
		Nonce:         nonce,
	}

	if autoCashoutAt != nil && crashPoint.GreaterThanOrEqual(*autoCashoutAt) {
		result.Win = true
		result.CashedOutAt = autoCashoutAt
		result.Payout = roundPayout(betAmount.Mul(*autoCashoutAt))
		result.Status = CrashStateCashedOut
	}

	result.NetProfit = result.Payout.Sub(betAmount)
	return result, nil
}

// CashoutCrash settles a live round at the requested multiplier. The
// multiplier must be at least 1.00 and no greater than the realized
// crash point.
func CashoutCrash(round CrashResult, multiplier decimal.Decimal) (CrashResult, error) {
	if round.Status != CrashStateCrashed || round.CashedOutAt != nil {
		return CrashResult{}, fmt.Errorf("crash: round already settled as %s: %w", round.Status, engine.ErrIllegalTransition)
	}
	if multiplier.LessThan(crashMinPoint) {
		return CrashResult{}, fmt.Errorf("crash: cashout %s below 1.00: %w", multiplier, engine.ErrInvalidArgument)
	}
	if multiplier.GreaterThan(round.CrashPoint) {
		return CrashResult{}, fmt.Errorf("crash: cashout %s above crash point %s: %w",
			multiplier, round.CrashPoint, engine.ErrInvalidArgument)
	}

	round.Win = true
	round.CashedOutAt = &multiplier
	round.Payout = roundPayout(round.BetAmount.Mul(multiplier))
	round.NetProfit = round.Payout.Sub(round.BetAmount)
	round.Status = CrashStateCashedOut
	return round, nil
}

// CrashPoint derives the crash point for a seed triple:
//
//	adjusted = draw * (1 - houseEdge)
//	point    = clamp(99 / (100 * adjusted), 1.00, 1000000.00)
//
// with adjusted < 0.01 forced to exactly 1.00. The formula and its
// blanket floor are a product decision; changing them changes long-run
// RTP.
func CrashPoint(seeds Seeds, nonce uint64) decimal.Decimal {
	return crashPointFromDraw(engine.UniformDecimal(seeds.Server, seeds.Client, nonce))
}

func crashPointFromDraw(draw float64) decimal.Decimal {
	adjusted := draw * 0.99

	if adjusted < 0.01 {
		return crashMinPoint
	}

	point := decimal.NewFromFloat(99.0 / (100.0 * adjusted)).Round(payoutScale)
	if point.LessThan(crashMinPoint) {
		return crashMinPoint
	}
	if point.GreaterThan(crashMaxPoint) {
		return crashMaxPoint
	}
	return point
}

// CrashGame adapts the round to the registry interface.
type CrashGame struct{}

func (g *CrashGame) Spec() GameSpec {
	return GameSpec{ID: "crash", Name: "Crash", MetricLabel: "crash_point"}
}

func (g *CrashGame) Evaluate(seeds Seeds, nonce uint64, params map[string]any) (GameResult, error) {
	point := CrashPoint(seeds, nonce)
	metric, _ := point.Float64()

	return GameResult{
		Metric:      metric,
		MetricLabel: "crash_point",
		Details: map[string]any{
			"crash_point": point.String(),
			"round_hash":  engine.DigestHex(seeds.Server, seeds.Client, nonce),
		},
	}, nil
}
