package games

// Slot symbols in draw order. The weight order must stay stable: the
// weighted pick walks this list, so reordering it would change every
// historical grid.
var slotSymbols = []string{
	"SEVEN", "BAR", "CHERRY", "BELL", "LEMON",
	"ORANGE", "PLUM", "GRAPE", "WATERMELON", "STAR",
}

// Relative appearance weights per symbol, aligned with slotSymbols.
var slotWeights = []float64{2, 5, 10, 15, 20, 20, 20, 25, 25, 8}

// Line payout multipliers per symbol keyed by match count. CHERRY pays
// from two of a kind; everything else needs three. STAR is the scatter
// and never pays on a line.
var slotPayouts = map[string]map[int]int64{
	"SEVEN":      {3: 100, 4: 500, 5: 2000},
	"BAR":        {3: 50, 4: 200, 5: 1000},
	"CHERRY":     {2: 5, 3: 20, 4: 100, 5: 500},
	"BELL":       {3: 15, 4: 75, 5: 300},
	"LEMON":      {3: 10, 4: 50, 5: 200},
	"ORANGE":     {3: 10, 4: 50, 5: 200},
	"PLUM":       {3: 10, 4: 50, 5: 200},
	"GRAPE":      {3: 8, 4: 40, 5: 150},
	"WATERMELON": {3: 8, 4: 40, 5: 150},
	"STAR":       {3: 2, 4: 10, 5: 50},
}

// Row index per reel for each of the 20 paylines.
var slotPaylines = [][]int{
	{1, 1, 1, 1, 1}, // middle row
	{0, 0, 0, 0, 0}, // top row
	{2, 2, 2, 2, 2}, // bottom row
	{0, 1, 2, 1, 0}, // v
	{2, 1, 0, 1, 2}, // inverted v
	{0, 0, 1, 0, 0},
	{2, 2, 1, 2, 2},
	{1, 0, 0, 0, 1},
	{1, 2, 2, 2, 1},
	{0, 1, 1, 1, 0},
	{2, 1, 1, 1, 2},
	{1, 0, 1, 0, 1},
	{1, 2, 1, 2, 1},
	{0, 1, 0, 1, 0},
	{2, 1, 2, 1, 2},
	{1, 1, 0, 1, 1},
	{1, 1, 2, 1, 1},
	{0, 2, 0, 2, 0},
	{2, 0, 2, 0, 2},
	{0, 2, 1, 2, 0},
}
