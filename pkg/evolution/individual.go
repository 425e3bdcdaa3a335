package evolution

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/evolvex/evotune-go/pkg/errors"
	"github.com/evolvex/evotune-go/pkg/genome"
)

// Evaluator scores a genome. Implementations may block on measurement or I/O;
// the engine invokes them concurrently within a generation and applies its
// failure policy to errors. Scores are expected in [0, 1]; out-of-range
// scores are clamped.
type Evaluator interface {
	Evaluate(ctx context.Context, g *genome.Genome) (float64, error)
}

// EvaluatorFunc adapts a plain function to the Evaluator interface.
type EvaluatorFunc func(ctx context.Context, g *genome.Genome) (float64, error)

func (f EvaluatorFunc) Evaluate(ctx context.Context, g *genome.Genome) (float64, error) {
	return f(ctx, g)
}

// Individual wraps exactly one genome with evaluation bookkeeping. The genome
// is exclusively owned: copying an individual deep-copies it.
type Individual struct {
	ID                 string
	Genome             *genome.Genome
	PerformanceMetrics map[string]float64
	BirthTime          time.Time
	Evaluations        int
}

// NewIndividual wraps a genome in a fresh individual.
func NewIndividual(g *genome.Genome) *Individual {
	return &Individual{
		ID:                 uuid.New().String(),
		Genome:             g,
		PerformanceMetrics: make(map[string]float64),
		BirthTime:          time.Now(),
	}
}

// Fitness returns the genome's current fitness score.
func (ind *Individual) Fitness() float64 {
	return ind.Genome.Fitness
}

// Evaluate invokes the evaluator and writes the clamped score back to the
// genome. Evaluator failures propagate to the caller; the engine decides the
// failure policy.
func (ind *Individual) Evaluate(ctx context.Context, evaluator Evaluator) error {
	score, err := evaluator.Evaluate(ctx, ind.Genome)
	if err != nil {
		return errors.WithFields(
			errors.Wrap(err, errors.EvaluationFailed, "scoring function failed"),
			errors.Fields{"individual": ind.ID, "genome": ind.Genome.ID})
	}
	if score < 0.0 {
		score = 0.0
	}
	if score > 1.0 {
		score = 1.0
	}
	ind.Genome.Fitness = score
	ind.Evaluations++
	return nil
}

// Copy returns a faithful clone of the individual with a deep-copied genome.
func (ind *Individual) Copy() *Individual {
	metrics := make(map[string]float64, len(ind.PerformanceMetrics))
	for k, v := range ind.PerformanceMetrics {
		metrics[k] = v
	}
	return &Individual{
		ID:                 ind.ID,
		Genome:             ind.Genome.Copy(),
		PerformanceMetrics: metrics,
		BirthTime:          ind.BirthTime,
		Evaluations:        ind.Evaluations,
	}
}
