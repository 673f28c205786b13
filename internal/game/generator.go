package game

import (
	"fmt"
	"math/rand/v2"
)

// Generator is an endless, immutable queue of prototypes. Get peeks at the
// head without consuming it; Next returns the queue advanced by one.
// Implementations must be comparable with ==; snapshots use identity to
// tell whether the queue moved.
type Generator interface {
	Get() *PiecePrototype
	Next() Generator
}

// Take returns the first n prototypes of g without consuming anything.
func Take(g Generator, n int) []*PiecePrototype {
	out := make([]*PiecePrototype, 0, max(n, 0))
	for i := 0; i < n; i++ {
		out = append(out, g.Get())
		g = g.Next()
	}
	return out
}

// BagGenerator deals every prototype of its set once per shuffled bag.
// Bag n is shuffled from a PCG stream keyed by (seed, n), so two generators
// built from the same seed deal the same sequence.
type BagGenerator struct {
	set  PieceSet
	seed uint64
	bagN uint64
	bag  []*PiecePrototype
}

func NewBagGenerator(set PieceSet, seed uint64) *BagGenerator {
	return &BagGenerator{set: set, seed: seed, bag: shuffledBag(set, seed, 0)}
}

func shuffledBag(set PieceSet, seed, n uint64) []*PiecePrototype {
	bag := make([]*PiecePrototype, len(set))
	copy(bag, set)
	rng := rand.New(rand.NewPCG(seed, n))
	// Fisher-Yates shuffle
	for i := len(bag) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		bag[i], bag[j] = bag[j], bag[i]
	}
	return bag
}

func (g *BagGenerator) Get() *PiecePrototype {
	return g.bag[0]
}

func (g *BagGenerator) Next() Generator {
	if len(g.bag) > 1 {
		return &BagGenerator{set: g.set, seed: g.seed, bagN: g.bagN, bag: g.bag[1:]}
	}
	n := g.bagN + 1
	return &BagGenerator{set: g.set, seed: g.seed, bagN: n, bag: shuffledBag(g.set, g.seed, n)}
}

// RandomGenerator draws each prototype independently and uniformly.
type RandomGenerator struct {
	set   PieceSet
	seed  uint64
	index uint64
}

func NewRandomGenerator(set PieceSet, seed uint64) *RandomGenerator {
	return &RandomGenerator{set: set, seed: seed}
}

func (g *RandomGenerator) Get() *PiecePrototype {
	rng := rand.New(rand.NewPCG(g.seed, g.index))
	return g.set[rng.IntN(len(g.set))]
}

func (g *RandomGenerator) Next() Generator {
	return &RandomGenerator{set: g.set, seed: g.seed, index: g.index + 1}
}

// CycleGenerator repeats a fixed sequence forever.
type CycleGenerator struct {
	seq []*PiecePrototype
	pos int
}

func NewCycleGenerator(seq ...*PiecePrototype) *CycleGenerator {
	if len(seq) == 0 {
		panic("game: cycle generator needs at least one prototype")
	}
	return &CycleGenerator{seq: seq}
}

func (g *CycleGenerator) Get() *PiecePrototype {
	return g.seq[g.pos]
}

func (g *CycleGenerator) Next() Generator {
	return &CycleGenerator{seq: g.seq, pos: (g.pos + 1) % len(g.seq)}
}

// Randomizer builds a generator for a piece set and seed.
type Randomizer func(set PieceSet, seed uint64) Generator

var randomizers = map[string]Randomizer{
	"bag": func(set PieceSet, seed uint64) Generator {
		return NewBagGenerator(set, seed)
	},
	"random": func(set PieceSet, seed uint64) Generator {
		return NewRandomGenerator(set, seed)
	},
}

// LookupRandomizer resolves a queue policy by its config name.
func LookupRandomizer(name string) (Randomizer, error) {
	r, ok := randomizers[name]
	if !ok {
		return nil, fmt.Errorf("unknown randomizer %q", name)
	}
	return r, nil
}
