package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kindsOf(protos []*PiecePrototype) []Kind {
	kinds := make([]Kind, len(protos))
	for i, pp := range protos {
		kinds[i] = pp.Kind()
	}
	return kinds
}

func TestBagDealsEveryKindOncePerBag(t *testing.T) {
	seq := Take(NewBagGenerator(Standard, 42), 7*20)
	for bag := 0; bag < 20; bag++ {
		assert.ElementsMatch(t, CanonicalOrder, kindsOf(seq[bag*7:(bag+1)*7]), "bag %d", bag)
	}
}

func TestBagIsDeterministicPerSeed(t *testing.T) {
	a := Take(NewBagGenerator(Standard, 7), 70)
	b := Take(NewBagGenerator(Standard, 7), 70)
	c := Take(NewBagGenerator(Standard, 8), 70)

	assert.Equal(t, a, b)
	assert.NotEqual(t, kindsOf(a), kindsOf(c))
}

func TestGetIsRepeatableAndNextIsPure(t *testing.T) {
	generators := map[string]Generator{
		"bag":    NewBagGenerator(Standard, 1),
		"random": NewRandomGenerator(Standard, 1),
		"cycle":  NewCycleGenerator(Standard...),
	}

	for name, g := range generators {
		t.Run(name, func(t *testing.T) {
			head := g.Get()
			assert.Same(t, head, g.Get())

			for i := 0; i < 10; i++ {
				g.Next()
			}
			assert.Same(t, head, g.Get(), "Next must not advance the receiver")

			n1 := g.Next()
			n2 := g.Next()
			assert.Equal(t, kindsOf(Take(n1, 20)), kindsOf(Take(n2, 20)))
		})
	}
}

func TestTakeDoesNotConsume(t *testing.T) {
	g := NewBagGenerator(Standard, 3)
	first := Take(g, 10)
	second := Take(g, 10)
	assert.Equal(t, first, second)
	assert.Empty(t, Take(g, 0))
	assert.Empty(t, Take(g, -2))
}

func TestTakeMatchesGetNextWalk(t *testing.T) {
	g := Generator(NewBagGenerator(Standard, 99))
	want := Take(g, 30)
	for i := 0; i < 30; i++ {
		require.Same(t, want[i], g.Get(), "element %d", i)
		g = g.Next()
	}
}

func TestRandomGeneratorDrawsFromSet(t *testing.T) {
	set := SRS.Prototypes()
	for _, pp := range Take(NewRandomGenerator(set, 5), 200) {
		assert.Same(t, set.ByKind(pp.Kind()), pp)
	}
	assert.Equal(t, Take(NewRandomGenerator(set, 5), 50), Take(NewRandomGenerator(set, 5), 50))
}

func TestCycleGeneratorWraps(t *testing.T) {
	i, o := protoOf(t, KindI), protoOf(t, KindO)
	got := Take(NewCycleGenerator(i, o), 5)
	assert.Equal(t, []*PiecePrototype{i, o, i, o, i}, got)

	assert.Panics(t, func() { NewCycleGenerator() })
}

func TestLookupRandomizer(t *testing.T) {
	for _, name := range []string{"bag", "random"} {
		r, err := LookupRandomizer(name)
		require.NoError(t, err)
		assert.NotNil(t, r(Standard, 1).Get())
	}

	_, err := LookupRandomizer("history4")
	assert.Error(t, err)
}
