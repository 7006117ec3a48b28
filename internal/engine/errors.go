package engine

import "errors"

// Error taxonomy shared by the RNG core and the game engines. Every
// failure is deterministic and input-dependent, so callers should never
// retry; they match with errors.Is.
var (
	// ErrInvalidArgument marks malformed or out-of-domain inputs:
	// non-positive draw bounds, targets outside their range, bad masks.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrIllegalTransition marks an action requested against a game
	// state that forbids it, e.g. a reveal after the round ended.
	ErrIllegalTransition = errors.New("illegal state transition")
)
