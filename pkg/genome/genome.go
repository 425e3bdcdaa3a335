// Package genome defines the configuration vectors the evolution engine
// searches over: typed gene values, their schema, and the mutation and
// crossover operators that produce new candidates.
package genome

import (
	"crypto/sha256"
	"encoding/hex"
	"math/rand"
	"sort"
)

// Gene is a single named, typed configuration entry.
type Gene struct {
	Name  string
	Value Value
}

// Genome is an insertion-ordered set of genes plus fitness and provenance
// metadata.
//
// ID is a birth fingerprint: it is derived from gene content once at
// construction and is key-order independent, but it is NOT re-derived when
// genes are later mutated in place. Two genomes constructed from identical
// gene content always share an ID; a genome mutated after construction keeps
// the ID it was born with. Callers use it for deduplication and logging, not
// for equality of current content.
type Genome struct {
	genes []Gene
	index map[string]int

	ID         string
	Fitness    float64
	Generation int
}

// New constructs a genome from the given genes, computing its fingerprint ID
// from their content. Gene order is preserved for iteration; the fingerprint
// is order independent.
func New(genes []Gene) *Genome {
	g := &Genome{
		genes: make([]Gene, 0, len(genes)),
		index: make(map[string]int, len(genes)),
	}
	for _, gene := range genes {
		g.append(gene.Name, gene.Value.Clone())
	}
	g.ID = g.fingerprint()
	return g
}

func (g *Genome) append(name string, v Value) {
	if i, ok := g.index[name]; ok {
		g.genes[i].Value = v
		return
	}
	g.index[name] = len(g.genes)
	g.genes = append(g.genes, Gene{Name: name, Value: v})
}

// fingerprint hashes gene content sorted by name so insertion order does not
// affect the result.
func (g *Genome) fingerprint() string {
	names := make([]string, 0, len(g.genes))
	for _, gene := range g.genes {
		names = append(names, gene.Name)
	}
	sort.Strings(names)

	h := sha256.New()
	for _, name := range names {
		h.Write([]byte(name))
		h.Write([]byte{0})
		g.genes[g.index[name]].Value.writeHash(h)
	}
	return hex.EncodeToString(h.Sum(nil)[:8])
}

// Len returns the number of genes.
func (g *Genome) Len() int { return len(g.genes) }

// Get returns the value of the named gene.
func (g *Genome) Get(name string) (Value, bool) {
	i, ok := g.index[name]
	if !ok {
		return Value{}, false
	}
	return g.genes[i].Value, true
}

// Set replaces the named gene's value in place, appending the gene if it does
// not exist. The genome's ID is deliberately left untouched.
func (g *Genome) Set(name string, v Value) {
	g.append(name, v.Clone())
}

// Genes returns a copy of the gene list in insertion order.
func (g *Genome) Genes() []Gene {
	out := make([]Gene, len(g.genes))
	for i, gene := range g.genes {
		out[i] = Gene{Name: gene.Name, Value: gene.Value.Clone()}
	}
	return out
}

// Names returns the gene names in insertion order.
func (g *Genome) Names() []string {
	names := make([]string, len(g.genes))
	for i, gene := range g.genes {
		names[i] = gene.Name
	}
	return names
}

// FloatAt reads a gene as a float64, converting integer genes. Returns the
// fallback when the gene is absent or not numeric. Scoring policies use this
// to read mixed-kind genomes tolerantly.
func (g *Genome) FloatAt(name string, fallback float64) float64 {
	v, ok := g.Get(name)
	if !ok {
		return fallback
	}
	switch v.Kind() {
	case KindFloat:
		return v.Float()
	case KindInt:
		return float64(v.Int())
	default:
		return fallback
	}
}

// Copy returns a new genome with deep-copied genes and the same fitness,
// generation, and ID. Elite carryover uses this so elites are insulated from
// later in-place mutation of the source.
func (g *Genome) Copy() *Genome {
	c := &Genome{
		genes:      make([]Gene, 0, len(g.genes)),
		index:      make(map[string]int, len(g.genes)),
		ID:         g.ID,
		Fitness:    g.Fitness,
		Generation: g.Generation,
	}
	for _, gene := range g.genes {
		c.append(gene.Name, gene.Value.Clone())
	}
	return c
}

// Mutate applies a type-dispatched random variation to each gene
// independently with probability rate. Mutation never changes a gene's kind
// and never re-derives the genome's ID.
func (g *Genome) Mutate(rate float64, rng *rand.Rand) {
	for i := range g.genes {
		if rng.Float64() < rate {
			g.genes[i].Value = mutateValue(g.genes[i].Value, rng)
		}
	}
}

// Crossover produces a child genome by uniform crossover: each gene is
// inherited from parent a or parent b independently with equal probability.
// Gene order follows parent a; genes absent from b always come from a. The
// child gets a fresh fingerprint and zero fitness.
func Crossover(a, b *Genome, rng *rand.Rand) *Genome {
	genes := make([]Gene, 0, len(a.genes))
	for _, gene := range a.genes {
		v := gene.Value
		if other, ok := b.Get(gene.Name); ok && rng.Float64() < 0.5 {
			v = other
		}
		genes = append(genes, Gene{Name: gene.Name, Value: v})
	}
	return New(genes)
}
