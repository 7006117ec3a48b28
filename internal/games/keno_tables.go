package games

// Keno payout multipliers keyed by (picks, hits):
// kenoPayoutTable[picks-1][hits]. A zero entry is a loss.
var kenoPayoutTable = [][]int64{
	{0, 3},
	{0, 0, 15},
	{0, 0, 2, 50},
	{0, 0, 1, 5, 100},
	{0, 0, 0, 3, 15, 500},
	{0, 0, 0, 2, 5, 100, 1500},
	{0, 0, 0, 1, 3, 20, 400, 5000},
	{0, 0, 0, 0, 2, 10, 50, 1000, 10000},
	{0, 0, 0, 0, 1, 5, 25, 200, 2500, 15000},
	{0, 0, 0, 0, 0, 2, 10, 50, 500, 5000, 25000},
}

// KenoMultiplier returns the payout multiplier for a pick count and hit
// count; zero means no win.
func KenoMultiplier(picks, hits int) int64 {
	if picks < kenoMinPicks || picks > kenoMaxPicks {
		return 0
	}
	row := kenoPayoutTable[picks-1]
	if hits < 0 || hits >= len(row) {
		return 0
	}
	return row[hits]
}
