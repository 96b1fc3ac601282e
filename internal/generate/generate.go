// Package generate synthesizes the three offline datasets served when the
// warehouse is unreachable or sample mode is forced. All generators draw
// from an injected random source, so a fixed seed reproduces the exact
// dataset across runs and machines.
package generate

import "math/rand"

// DefaultSeed is used whenever the config does not override the sample seed.
const DefaultSeed int64 = 42

// NewRand returns a deterministic source for the generators.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
