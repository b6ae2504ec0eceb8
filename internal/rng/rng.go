// Package rng builds deterministic random sources for reproducible
// evaluation runs.
//
// Seeds travel as explicit values rather than process globals, so every
// component that samples owns its own source and two runs with the same
// configuration draw the same streams.
package rng

import (
	"math/rand/v2"
)

// DefaultSeed is the seed applied when a run does not configure one.
const DefaultSeed int64 = 1

// Source returns a deterministic pseudo random source for the given seed.
func Source(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
}

// WorkerSource derives the source for a parallel worker shard by offsetting
// the base seed with the worker id, so shards draw distinct but reproducible
// streams.
func WorkerSource(base int64, workerID int) *rand.Rand {
	return Source(base + int64(workerID))
}
