// Package gen holds the procedural generators: enemies, equipment options,
// loot, inks, magic stones and equipment consumables. Every generator draws
// from an injected Rand so runs are reproducible under a fixed seed.
package gen

import (
	"github.com/inkblade/hackslash/internal/data"
	"github.com/inkblade/hackslash/internal/world"
)

// Rand is the random source the generators draw from. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// Generator produces new game objects from content tables.
type Generator struct {
	rng    Rand
	tables *data.Tables
	newID  func() string
}

// New creates a generator. IDs come from world.NewItemID.
func New(rng Rand, tables *data.Tables) *Generator {
	return &Generator{rng: rng, tables: tables, newID: world.NewItemID}
}

// Rand exposes the generator's source so callers share one stream.
func (g *Generator) Rand() Rand { return g.rng }

// Tables returns the content tables the generator reads.
func (g *Generator) Tables() *data.Tables { return g.tables }

// randInt returns an int in [lo, hi].
func (g *Generator) randInt(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.IntN(hi-lo+1)
}

// pick returns a random index into a list of length n.
func (g *Generator) pick(n int) int {
	if n <= 1 {
		return 0
	}
	return g.rng.IntN(n)
}
