package engine

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
)

// The RNG core turns a committed seed triple (serverSeed, clientSeed,
// nonce) into uniform integers, uniform decimals, weighted picks and
// shuffled sequences. Every derived value is a pure function of the
// triple; no other entropy source is ever consulted.
//
// The HMAC is keyed by the server seed, so the house commits to the
// output distribution before the client seed is known, while the client
// seed still influences the result.

// Digest returns the HMAC-SHA256 digest for a seed triple. The message
// is the UTF-8 bytes of "serverSeed:clientSeed:nonce" and the key is the
// server seed. This is the single source of randomness for everything
// downstream.
func Digest(serverSeed, clientSeed string, nonce uint64) [32]byte {
	h := hmac.New(sha256.New, []byte(serverSeed))
	fmt.Fprintf(h, "%s:%s:%d", serverSeed, clientSeed, nonce)

	var digest [32]byte
	copy(digest[:], h.Sum(nil))
	return digest
}

// DigestHex returns the digest as a lowercase hex string. Rounds expose
// this as their public commitment hash.
func DigestHex(serverSeed, clientSeed string, nonce uint64) string {
	d := Digest(serverSeed, clientSeed, nonce)
	return hex.EncodeToString(d[:])
}

// UniformInt returns an integer in [0, max). The first 4 digest bytes
// are read as a big-endian unsigned 32-bit integer and reduced modulo
// max.
func UniformInt(serverSeed, clientSeed string, nonce uint64, max int) (int, error) {
	if max <= 0 {
		return 0, fmt.Errorf("uniform int: max must be positive, got %d: %w", max, ErrInvalidArgument)
	}

	d := Digest(serverSeed, clientSeed, nonce)
	v := binary.BigEndian.Uint32(d[:4])
	return int(v % uint32(max)), nil
}

// UniformDecimal returns a real in [0.0, 1.0). The first 8 digest bytes
// are read as a big-endian unsigned 64-bit integer and divided by the
// largest value of that width.
func UniformDecimal(serverSeed, clientSeed string, nonce uint64) float64 {
	d := Digest(serverSeed, clientSeed, nonce)
	v := binary.BigEndian.Uint64(d[:8])
	return float64(v) / float64(math.MaxUint64)
}

// WeightedPick draws a uniform decimal, scales it by the weight sum and
// walks the cumulative distribution, returning the first index whose
// cumulative weight meets or exceeds the scaled draw. The last index is
// the fallback if floating-point rounding overshoots.
func WeightedPick(serverSeed, clientSeed string, nonce uint64, weights []float64) (int, error) {
	if len(weights) == 0 {
		return 0, fmt.Errorf("weighted pick: empty weights: %w", ErrInvalidArgument)
	}

	total := 0.0
	for i, w := range weights {
		if w < 0 {
			return 0, fmt.Errorf("weighted pick: negative weight %f at index %d: %w", w, i, ErrInvalidArgument)
		}
		total += w
	}
	if total <= 0 {
		return 0, fmt.Errorf("weighted pick: weights sum to zero: %w", ErrInvalidArgument)
	}

	scaled := UniformDecimal(serverSeed, clientSeed, nonce) * total

	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if scaled <= cumulative {
			return i, nil
		}
	}
	return len(weights) - 1, nil
}

// MultiDraw returns count integers in [0, max); draw i uses nonce
// baseNonce+i so the full sequence replays from the round's three seed
// values alone.
func MultiDraw(serverSeed, clientSeed string, baseNonce uint64, count, max int) ([]int, error) {
	if count < 0 {
		return nil, fmt.Errorf("multi draw: negative count %d: %w", count, ErrInvalidArgument)
	}

	draws := make([]int, count)
	for i := 0; i < count; i++ {
		v, err := UniformInt(serverSeed, clientSeed, baseNonce+uint64(i), max)
		if err != nil {
			return nil, err
		}
		draws[i] = v
	}
	return draws, nil
}

// Shuffle returns a Fisher-Yates permutation of items. The swap partner
// for position i is UniformInt at nonce baseNonce+i with bound i+1; the
// per-position nonce scheme is load-bearing, since verification must
// replay the exact same sequence of draws. The input slice is not
// modified.
func Shuffle[T any](serverSeed, clientSeed string, baseNonce uint64, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)

	for i := len(out) - 1; i > 0; i-- {
		// max is i+1 > 0, so the error path is unreachable here.
		j, _ := UniformInt(serverSeed, clientSeed, baseNonce+uint64(i), i+1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
