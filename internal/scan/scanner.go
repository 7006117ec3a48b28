// Package scan replays nonce ranges through a game engine in parallel,
// collecting the nonces whose primary metric matches a target
// condition. Operators use it to answer questions like "where does the
// next 100x crash land" against a revealed seed pair.
package scan

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fairbet/outcome-engine/internal/engine"
	"github.com/fairbet/outcome-engine/internal/games"
)

// TargetOp compares a metric against the target value(s).
type TargetOp string

const (
	OpEqual        TargetOp = "eq"
	OpGreater      TargetOp = "gt"
	OpGreaterEqual TargetOp = "ge"
	OpLess         TargetOp = "lt"
	OpLessEqual    TargetOp = "le"
	OpBetween      TargetOp = "between"
	OpOutside      TargetOp = "outside"
)

// Request describes one scan.
type Request struct {
	Game       string         `json:"game"`
	Seeds      games.Seeds    `json:"seeds"`
	NonceStart uint64         `json:"nonce_start"`
	NonceEnd   uint64         `json:"nonce_end"`
	Params     map[string]any `json:"params,omitempty"`
	TargetOp   TargetOp       `json:"target_op"`
	TargetVal  float64        `json:"target_val"`
	TargetVal2 float64        `json:"target_val2,omitempty"` // upper bound for between/outside
	Tolerance  float64        `json:"tolerance,omitempty"`
	Limit      int            `json:"limit,omitempty"`
	TimeoutMs  int            `json:"timeout_ms,omitempty"`
}

// Hit is one matching nonce.
type Hit struct {
	Nonce  uint64  `json:"nonce"`
	Metric float64 `json:"metric"`
}

// Summary aggregates a finished scan.
type Summary struct {
	TotalEvaluated uint64        `json:"total_evaluated"`
	HitsFound      int           `json:"hits_found"`
	MinMetric      float64       `json:"min_metric"`
	MaxMetric      float64       `json:"max_metric"`
	MeanMetric     float64       `json:"mean_metric"`
	Elapsed        time.Duration `json:"elapsed"`
	TimedOut       bool          `json:"timed_out,omitempty"`
}

// Result is the complete scan output. Hits are ordered by nonce and
// truncated to the request limit.
type Result struct {
	Hits    []Hit   `json:"hits"`
	Summary Summary `json:"summary"`
	Echo    Request `json:"echo"`
}

// span is one batch of nonces handed to a worker.
type span struct {
	start, end uint64
}

// Scanner fans a nonce range out over a worker pool.
type Scanner struct {
	workers   int
	batchSize uint64
	log       *zap.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithWorkers overrides the worker count (default GOMAXPROCS).
func WithWorkers(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithBatchSize overrides the nonces-per-job batch size.
func WithBatchSize(n uint64) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// WithLogger attaches a logger; the default is a nop logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Scanner) {
		if log != nil {
			s.log = log
		}
	}
}

// defaultBatchSize balances channel traffic against work-stealing
// granularity; measured throughput is flat between 4k and 16k.
const defaultBatchSize = 8192

// NewScanner builds a scanner with sane defaults.
func NewScanner(opts ...Option) *Scanner {
	s := &Scanner{
		workers:   runtime.GOMAXPROCS(0),
		batchSize: defaultBatchSize,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan replays every nonce in [NonceStart, NonceEnd] and returns the
// hits matching the target condition, ordered by nonce.
func (s *Scanner) Scan(ctx context.Context, req Request) (*Result, error) {
	game, ok := games.Get(req.Game)
	if !ok {
		return nil, fmt.Errorf("scan: unknown game %q: %w", req.Game, engine.ErrInvalidArgument)
	}
	if req.NonceEnd < req.NonceStart {
		return nil, fmt.Errorf("scan: nonce range [%d, %d] is inverted: %w",
			req.NonceStart, req.NonceEnd, engine.ErrInvalidArgument)
	}
	matcher, err := newMatcher(req)
	if err != nil {
		return nil, err
	}

	if req.TimeoutMs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(req.TimeoutMs)*time.Millisecond)
		defer cancel()
	}

	start := time.Now()
	s.log.Info("scan started",
		zap.String("game", req.Game),
		zap.Uint64("nonce_start", req.NonceStart),
		zap.Uint64("nonce_end", req.NonceEnd),
		zap.String("op", string(req.TargetOp)),
	)

	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan span, s.workers*2)
	hits := make(chan Hit, 1024)

	g.Go(func() error {
		defer close(jobs)
		for cur := req.NonceStart; ; {
			end := cur + s.batchSize - 1
			if end > req.NonceEnd || end < cur { // overflow guard
				end = req.NonceEnd
			}
			select {
			case jobs <- span{start: cur, end: end}:
			case <-gctx.Done():
				return gctx.Err()
			}
			if end == req.NonceEnd {
				return nil
			}
			cur = end + 1
		}
	})

	var evaluated atomic.Uint64
	for i := 0; i < s.workers; i++ {
		g.Go(func() error {
			for job := range jobs {
				for nonce := job.start; ; nonce++ {
					select {
					case <-gctx.Done():
						return gctx.Err()
					default:
					}

					result, err := game.Evaluate(req.Seeds, nonce, req.Params)
					if err != nil {
						return fmt.Errorf("scan: evaluate %s at nonce %d: %w", req.Game, nonce, err)
					}
					evaluated.Add(1)

					if matcher.matches(result.Metric) {
						select {
						case hits <- Hit{Nonce: nonce, Metric: result.Metric}:
						case <-gctx.Done():
							return gctx.Err()
						}
					}

					if nonce == job.end {
						break
					}
				}
			}
			return nil
		})
	}

	workErr := make(chan error, 1)
	go func() {
		workErr <- g.Wait()
		close(hits)
	}()

	collected := make([]Hit, 0, 256)
	var sum float64
	minMetric, maxMetric := math.Inf(1), math.Inf(-1)
	for hit := range hits {
		collected = append(collected, hit)
		sum += hit.Metric
		minMetric = math.Min(minMetric, hit.Metric)
		maxMetric = math.Max(maxMetric, hit.Metric)
	}

	err = <-workErr
	timedOut := false
	switch {
	case err == nil:
	case ctx.Err() != nil:
		// A deadline or cancellation mid-scan yields a partial result
		// rather than an error.
		timedOut = true
	default:
		return nil, err
	}

	sort.Slice(collected, func(i, j int) bool { return collected[i].Nonce < collected[j].Nonce })

	summary := Summary{
		TotalEvaluated: evaluated.Load(),
		HitsFound:      len(collected),
		Elapsed:        time.Since(start),
		TimedOut:       timedOut,
	}
	if len(collected) > 0 {
		summary.MinMetric = minMetric
		summary.MaxMetric = maxMetric
		summary.MeanMetric = sum / float64(len(collected))
	}
	if req.Limit > 0 && len(collected) > req.Limit {
		collected = collected[:req.Limit]
	}

	s.log.Info("scan finished",
		zap.Uint64("evaluated", summary.TotalEvaluated),
		zap.Int("hits", summary.HitsFound),
		zap.Duration("elapsed", summary.Elapsed),
		zap.Bool("timed_out", summary.TimedOut),
	)

	return &Result{Hits: collected, Summary: summary, Echo: req}, nil
}

// matcher evaluates the target condition with a tolerance band.
type matcher struct {
	op        TargetOp
	val1      float64
	val2      float64
	tolerance float64
}

func newMatcher(req Request) (*matcher, error) {
	switch req.TargetOp {
	case OpEqual, OpGreater, OpGreaterEqual, OpLess, OpLessEqual:
	case OpBetween, OpOutside:
		if req.TargetVal2 < req.TargetVal {
			return nil, fmt.Errorf("scan: target range [%g, %g] is inverted: %w",
				req.TargetVal, req.TargetVal2, engine.ErrInvalidArgument)
		}
	default:
		return nil, fmt.Errorf("scan: unknown target op %q: %w", req.TargetOp, engine.ErrInvalidArgument)
	}
	if req.Tolerance < 0 {
		return nil, fmt.Errorf("scan: negative tolerance %g: %w", req.Tolerance, engine.ErrInvalidArgument)
	}

	return &matcher{
		op:        req.TargetOp,
		val1:      req.TargetVal,
		val2:      req.TargetVal2,
		tolerance: req.Tolerance,
	}, nil
}

func (m *matcher) matches(metric float64) bool {
	switch m.op {
	case OpEqual:
		return math.Abs(metric-m.val1) <= m.tolerance
	case OpGreater:
		return metric > m.val1+m.tolerance
	case OpGreaterEqual:
		return metric >= m.val1-m.tolerance
	case OpLess:
		return metric < m.val1-m.tolerance
	case OpLessEqual:
		return metric <= m.val1+m.tolerance
	case OpBetween:
		return metric >= m.val1-m.tolerance && metric <= m.val2+m.tolerance
	case OpOutside:
		return metric < m.val1-m.tolerance || metric > m.val2+m.tolerance
	default:
		return false
	}
}
