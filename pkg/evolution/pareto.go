package evolution

import (
	"context"

	"github.com/evolvex/evotune-go/pkg/logging"
)

// ResourceFunc reads the resource-cost objective from an individual.
// Lower is better.
type ResourceFunc func(*Individual) float64

// GeneResource reads the cost objective from a numeric gene, falling back to
// zero cost when the gene is absent.
func GeneResource(name string) ResourceFunc {
	return func(ind *Individual) float64 {
		return ind.Genome.FloatAt(name, 0.0)
	}
}

// FrontCalculator extracts the non-dominated set of a finished run's final
// population under two objectives: fitness (maximize) and resource cost
// (minimize). It composes over the engine rather than extending it; the
// search loop itself is untouched.
type FrontCalculator struct {
	Resource ResourceFunc
}

// NewFrontCalculator returns a calculator reading cost from the
// "resource_usage" gene, the reference cost objective.
func NewFrontCalculator() *FrontCalculator {
	return &FrontCalculator{Resource: GeneResource("resource_usage")}
}

// Dominates reports whether a dominates b: not worse on both objectives and
// strictly better on at least one.
func (fc *FrontCalculator) Dominates(a, b *Individual) bool {
	resA, resB := fc.Resource(a), fc.Resource(b)
	if a.Fitness() < b.Fitness() || resA > resB {
		return false
	}
	return a.Fitness() > b.Fitness() || resA < resB
}

// Extract returns every individual dominated by none, testing all pairs.
// Quadratic, run once per completed run.
func (fc *FrontCalculator) Extract(population []*Individual) []*Individual {
	front := make([]*Individual, 0)
	for _, candidate := range population {
		dominated := false
		for _, other := range population {
			if other == candidate {
				continue
			}
			if fc.Dominates(other, candidate) {
				dominated = true
				break
			}
		}
		if !dominated {
			front = append(front, candidate)
		}
	}
	return front
}

// MultiObjective runs a single-objective engine and extracts the Pareto
// front of its final population. The final population is evaluated once
// before extraction so every member carries a real fitness score, then the
// front is computed exactly once.
type MultiObjective struct {
	Engine *Engine
	Front  *FrontCalculator
}

// NewMultiObjective composes an engine with the default front calculator.
func NewMultiObjective(engine *Engine) *MultiObjective {
	return &MultiObjective{
		Engine: engine,
		Front:  NewFrontCalculator(),
	}
}

// Run evolves for the given number of generations and returns the
// non-dominated front of the final population.
func (m *MultiObjective) Run(ctx context.Context, generations int, evaluator Evaluator) ([]*Individual, error) {
	if _, err := m.Engine.Evolve(ctx, generations, evaluator); err != nil {
		return nil, err
	}

	ctx = logging.WithRunID(ctx, m.Engine.runID)
	m.Engine.evaluatePopulation(ctx, evaluator)

	front := m.Front.Extract(m.Engine.Population())
	logging.GetLogger().Info(ctx, "Pareto front extracted: %d of %d individuals non-dominated",
		len(front), len(m.Engine.population))
	return front, nil
}
