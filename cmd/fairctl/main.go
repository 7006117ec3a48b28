// fairctl replays, verifies and scans provably fair casino outcomes
// from the command line.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fairbet/outcome-engine/internal/config"
	"github.com/fairbet/outcome-engine/internal/engine"
	"github.com/fairbet/outcome-engine/internal/games"
	"github.com/fairbet/outcome-engine/internal/scan"
)

type cliContext struct {
	cfg config.Config
	log *zap.Logger
}

type seedFlags struct {
	Server string `help:"Server seed (revealed)." required:""`
	Client string `help:"Client seed. A random UUID is used when omitted."`
	Nonce  uint64 `help:"Round nonce." default:"1"`
}

func (s *seedFlags) seeds() games.Seeds {
	client := s.Client
	if client == "" {
		client = uuid.NewString()
	}
	return games.Seeds{Server: s.Server, Client: client}
}

type playCmd struct {
	seedFlags
	Game   string            `arg:"" help:"Game ID (see 'fairctl games')."`
	Params map[string]string `help:"Game parameters, e.g. --params mines=5" mapsep:","`
}

func (c *playCmd) Run(cc *cliContext) error {
	game, ok := games.Get(c.Game)
	if !ok {
		return fmt.Errorf("unknown game %q: %w", c.Game, engine.ErrInvalidArgument)
	}

	seeds := c.seeds()
	params := coerceParams(c.Params)
	if c.Game == "roulette" {
		if _, ok := params["wheel"]; !ok {
			params["wheel"] = cc.cfg.Roulette.Wheel
		}
	}

	result, err := game.Evaluate(seeds, c.Nonce, params)
	if err != nil {
		return err
	}

	cc.log.Debug("round evaluated",
		zap.String("game", c.Game),
		zap.Uint64("nonce", c.Nonce),
		zap.Float64("metric", result.Metric),
	)

	return printJSON(map[string]any{
		"game":        c.Game,
		"server_seed": seeds.Server,
		"client_seed": seeds.Client,
		"nonce":       c.Nonce,
		"result":      result,
		"digest":      engine.DigestHex(seeds.Server, seeds.Client, c.Nonce),
	})
}

type verifyCmd struct {
	seedFlags
	Game   string            `arg:"" help:"Game ID."`
	Metric float64           `arg:"" help:"Claimed primary metric to check."`
	Params map[string]string `help:"Game parameters." mapsep:","`
}

func (c *verifyCmd) Run(cc *cliContext) error {
	seeds := c.seeds()
	v, err := games.Verify(c.Game, seeds, c.Nonce, coerceParams(c.Params), c.Metric)
	if err != nil {
		return err
	}

	if err := printJSON(v); err != nil {
		return err
	}
	if !v.Match {
		cc.log.Warn("verification mismatch",
			zap.String("game", c.Game),
			zap.Float64("expected", v.Expected),
			zap.Float64("claimed", v.Claimed),
		)
		os.Exit(1)
	}
	return nil
}

type scanCmd struct {
	seedFlags
	Game       string            `arg:"" help:"Game ID."`
	NonceStart uint64            `help:"First nonce of the range." default:"0"`
	NonceEnd   uint64            `help:"Last nonce of the range (inclusive)." required:""`
	Op         string            `help:"Comparison: eq, gt, ge, lt, le, between, outside." default:"ge"`
	Target     float64           `help:"Target value." required:""`
	Target2    float64           `help:"Upper bound for between/outside."`
	Tolerance  float64           `help:"Matching tolerance for eq and the range ops."`
	Limit      int               `help:"Maximum hits to report; 0 uses the configured default."`
	Params     map[string]string `help:"Game parameters." mapsep:","`
}

func (c *scanCmd) Run(cc *cliContext) error {
	limit := c.Limit
	if limit == 0 {
		limit = cc.cfg.Scan.Limit
	}

	scanner := scan.NewScanner(
		scan.WithWorkers(cc.cfg.Scan.Workers),
		scan.WithBatchSize(cc.cfg.Scan.BatchSize),
		scan.WithLogger(cc.log),
	)

	result, err := scanner.Scan(context.Background(), scan.Request{
		Game:       c.Game,
		Seeds:      c.seeds(),
		NonceStart: c.NonceStart,
		NonceEnd:   c.NonceEnd,
		Params:     coerceParams(c.Params),
		TargetOp:   scan.TargetOp(c.Op),
		TargetVal:  c.Target,
		TargetVal2: c.Target2,
		Tolerance:  c.Tolerance,
		Limit:      limit,
		TimeoutMs:  cc.cfg.Scan.TimeoutMs,
	})
	if err != nil {
		return err
	}
	return printJSON(result)
}

type gamesCmd struct{}

func (c *gamesCmd) Run(cc *cliContext) error {
	ids := games.List()
	sort.Strings(ids)

	specs := make([]games.GameSpec, 0, len(ids))
	for _, id := range ids {
		g, _ := games.Get(id)
		specs = append(specs, g.Spec())
	}
	return printJSON(specs)
}

var cli struct {
	Config string `help:"Path to a fairbet.yaml config file." type:"path"`

	Play   playCmd   `cmd:"" help:"Replay a round and print its outcome."`
	Verify verifyCmd `cmd:"" help:"Check a claimed outcome against the seeds."`
	Scan   scanCmd   `cmd:"" help:"Scan a nonce range for outcomes matching a target."`
	Games  gamesCmd  `cmd:"" help:"List the available games."`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("fairctl"),
		kong.Description("Provably fair outcome engine: replay, verify and scan casino rounds."),
		kong.UsageOnError(),
	)

	cfg, err := config.Load(cli.Config)
	kctx.FatalIfErrorf(err)

	log, err := newLogger(cfg.Log)
	kctx.FatalIfErrorf(err)
	defer log.Sync()

	err = kctx.Run(&cliContext{cfg: cfg, log: log})
	kctx.FatalIfErrorf(err)
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
	}

	zcfg := zap.NewProductionConfig()
	if cfg.Development {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	// Keep stdout clean for the JSON results.
	zcfg.OutputPaths = []string{"stderr"}
	return zcfg.Build()
}

// coerceParams turns CLI key=value strings into the typed values the
// game engines expect: numbers become float64, booleans bool, the rest
// stay strings.
func coerceParams(raw map[string]string) map[string]any {
	params := make(map[string]any, len(raw))
	for k, v := range raw {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			params[k] = n
			continue
		}
		if b, err := strconv.ParseBool(strings.ToLower(v)); err == nil {
			params[k] = b
			continue
		}
		params[k] = v
	}
	return params
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
