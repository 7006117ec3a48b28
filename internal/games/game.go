package games

// Seeds is the committed seed pair for a round. The server seed is
// generated and custodied externally; the client seed may be empty.
type Seeds struct {
	Server string `json:"server_seed"`
	Client string `json:"client_seed"`
}

// GameSpec describes a registered game.
type GameSpec struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MetricLabel string `json:"metric_label"`
}

// GameResult is the uniform evaluation output used by the registry,
// the scanner and the generic verifier. Metric is the game's primary
// outcome (roll, pocket, crash point, ...); Details carries the full
// computation trail so an external verifier call can be constructed
// without additional lookups.
type GameResult struct {
	Metric      float64        `json:"metric"`
	MetricLabel string         `json:"metric_label"`
	Details     map[string]any `json:"details,omitempty"`
}

// Game is the capability shared by every outcome engine: compute a
// result from seeds plus parameters. Engines are selected by the caller
// through the registry rather than by a central dispatcher; multi-step
// games additionally expose their typed start/action API and surface
// only the seed-determined layout here.
type Game interface {
	Spec() GameSpec
	Evaluate(seeds Seeds, nonce uint64, params map[string]any) (GameResult, error)
}

var registry = make(map[string]Game)

// Register adds a game to the registry. Later registrations with the
// same ID replace earlier ones.
func Register(g Game) {
	registry[g.Spec().ID] = g
}

// Get retrieves a game by ID.
func Get(id string) (Game, bool) {
	g, ok := registry[id]
	return g, ok
}

// List returns all registered game IDs.
func List() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	return ids
}

func init() {
	Register(&CoinFlipGame{})
	Register(&DiceGame{})
	Register(&RouletteGame{})
	Register(&CrashGame{})
	Register(&MinesGame{})
	Register(&BlackjackGame{})
	Register(&VideoPokerGame{})
	Register(&PokerGame{})
	Register(&KenoGame{})
	Register(&SicBoGame{})
	Register(&SlotsGame{})
	Register(&BaccaratGame{})
}
