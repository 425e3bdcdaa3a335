package genome

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGenes() []Gene {
	return []Gene{
		{Name: "flag", Value: Bool(true)},
		{Name: "size", Value: Int(50)},
		{Name: "rate", Value: Float(0.5)},
		{Name: "mode", Value: Text("balanced")},
		{Name: "flags", Value: Sequence(Bool(true), Bool(false))},
	}
}

func TestFingerprintDeterminism(t *testing.T) {
	a := New(testGenes())
	b := New(testGenes())
	assert.Equal(t, a.ID, b.ID, "identical gene content must produce identical ids")
}

func TestFingerprintKeyOrderIndependence(t *testing.T) {
	genes := testGenes()
	reversed := make([]Gene, len(genes))
	for i, g := range genes {
		reversed[len(genes)-1-i] = g
	}

	a := New(genes)
	b := New(reversed)
	assert.Equal(t, a.ID, b.ID, "insertion order must not affect the fingerprint")

	// but iteration order is preserved
	assert.Equal(t, []string{"flag", "size", "rate", "mode", "flags"}, a.Names())
	assert.Equal(t, []string{"flags", "mode", "rate", "size", "flag"}, b.Names())
}

func TestFingerprintContentSensitivity(t *testing.T) {
	a := New(testGenes())

	genes := testGenes()
	genes[1].Value = Int(51)
	b := New(genes)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestIDFrozenAfterInPlaceMutation(t *testing.T) {
	g := New(testGenes())
	birthID := g.ID

	g.Set("size", Int(99))
	assert.Equal(t, birthID, g.ID, "Set must not re-derive the birth fingerprint")

	rng := rand.New(rand.NewSource(3))
	g.Mutate(1.0, rng)
	assert.Equal(t, birthID, g.ID, "Mutate must not re-derive the birth fingerprint")

	// a fresh genome built from the mutated content gets its own id
	fresh := New(g.Genes())
	assert.NotEqual(t, birthID, fresh.ID)
}

func TestGetSet(t *testing.T) {
	g := New(testGenes())

	v, ok := g.Get("rate")
	require.True(t, ok)
	assert.Equal(t, 0.5, v.Float())

	_, ok = g.Get("missing")
	assert.False(t, ok)

	g.Set("rate", Float(0.9))
	v, _ = g.Get("rate")
	assert.Equal(t, 0.9, v.Float())

	g.Set("new_gene", Int(1))
	assert.Equal(t, 6, g.Len())
}

func TestCopyIsDeep(t *testing.T) {
	g := New(testGenes())
	g.Fitness = 0.8
	g.Generation = 3

	c := g.Copy()
	assert.Equal(t, g.ID, c.ID)
	assert.Equal(t, 0.8, c.Fitness)
	assert.Equal(t, 3, c.Generation)

	// in-place mutation of the copy must not alias the source
	rng := rand.New(rand.NewSource(5))
	c.Mutate(1.0, rng)
	c.Set("size", Int(1))

	v, _ := g.Get("size")
	assert.Equal(t, int64(50), v.Int())
	v, _ = g.Get("mode")
	assert.Equal(t, "balanced", v.Text())
}

func TestMutateRateZeroAndOne(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	untouched := New(testGenes())
	untouched.Mutate(0.0, rng)
	for i, gene := range untouched.Genes() {
		assert.True(t, gene.Value.Equal(testGenes()[i].Value))
	}

	// rate 1.0 flips every boolean deterministically
	flipped := New(testGenes())
	flipped.Mutate(1.0, rng)
	v, _ := flipped.Get("flag")
	assert.False(t, v.Bool())
	v, _ = flipped.Get("mode")
	assert.Equal(t, "balanced", v.Text(), "text genes are immutable")
}

func TestFloatAt(t *testing.T) {
	g := New(testGenes())
	assert.Equal(t, 0.5, g.FloatAt("rate", -1))
	assert.Equal(t, 50.0, g.FloatAt("size", -1), "integer genes convert")
	assert.Equal(t, -1.0, g.FloatAt("mode", -1), "text genes fall back")
	assert.Equal(t, -1.0, g.FloatAt("missing", -1))
}

func TestCrossoverInheritsFromParents(t *testing.T) {
	a := New([]Gene{
		{Name: "x", Value: Int(1)},
		{Name: "y", Value: Int(2)},
		{Name: "z", Value: Int(3)},
	})
	b := New([]Gene{
		{Name: "x", Value: Int(10)},
		{Name: "y", Value: Int(20)},
		{Name: "z", Value: Int(30)},
	})

	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 50; i++ {
		child := Crossover(a, b, rng)
		require.Equal(t, 3, child.Len())
		assert.Equal(t, a.Names(), child.Names(), "gene order follows the first parent")

		for _, gene := range child.Genes() {
			av, _ := a.Get(gene.Name)
			bv, _ := b.Get(gene.Name)
			assert.True(t, gene.Value.Equal(av) || gene.Value.Equal(bv),
				"every gene comes from one of the two parents")
		}
	}
}

func TestCrossoverGenesMissingFromSecondParent(t *testing.T) {
	a := New([]Gene{
		{Name: "x", Value: Int(1)},
		{Name: "only_a", Value: Text("keep")},
	})
	b := New([]Gene{{Name: "x", Value: Int(10)}})

	rng := rand.New(rand.NewSource(13))
	for i := 0; i < 20; i++ {
		child := Crossover(a, b, rng)
		v, ok := child.Get("only_a")
		require.True(t, ok)
		assert.Equal(t, "keep", v.Text())
	}
}

func TestCrossoverChildHasFreshFingerprint(t *testing.T) {
	a := New([]Gene{{Name: "x", Value: Int(1)}})
	b := New([]Gene{{Name: "x", Value: Int(2)}})

	rng := rand.New(rand.NewSource(17))
	child := Crossover(a, b, rng)
	assert.NotEmpty(t, child.ID)
	assert.Equal(t, 0.0, child.Fitness)
}
