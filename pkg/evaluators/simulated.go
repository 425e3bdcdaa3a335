// Package evaluators provides scoring collaborators for the evolution
// engine. The engine accepts any Evaluator; Simulated reproduces the
// reference scoring policy used by the default configuration genome.
package evaluators

import (
	"context"
	"math/rand"
	"sync"

	"github.com/evolvex/evotune-go/pkg/genome"
)

// Reference scoring weights: a weighted sum of normalized sub-scores over
// the default configuration genes, clamped to [0, 1].
const (
	latencyWeight      = 0.3
	confidenceWeight   = 0.3
	resourceWeight     = 0.2
	adaptabilityWeight = 0.2

	latencySaturation = 1000.0

	// DefaultNoiseStdDev is the standard deviation of the additive
	// zero-mean Gaussian noise that models evaluation non-determinism.
	DefaultNoiseStdDev = 0.05
)

// Simulated scores a genome from its latency_tolerance, confidence_threshold,
// resource_usage, and adaptability genes, with additive Gaussian noise. Tests
// zero NoiseStdDev for exact expectations.
type Simulated struct {
	NoiseStdDev float64

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulated constructs the reference evaluator with the given noise seed.
func NewSimulated(seed int64) *Simulated {
	return &Simulated{
		NoiseStdDev: DefaultNoiseStdDev,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

// Evaluate implements evolution.Evaluator. Safe for concurrent use; the
// engine fans evaluation out across the population.
func (s *Simulated) Evaluate(ctx context.Context, g *genome.Genome) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	latency := g.FloatAt("latency_tolerance", latencySaturation) / latencySaturation
	if latency > 1.0 {
		latency = 1.0
	}
	confidence := g.FloatAt("confidence_threshold", 0.0)
	resource := g.FloatAt("resource_usage", 1.0)
	adaptability := g.FloatAt("adaptability", 0.0)

	score := latencyWeight*(1.0-latency) +
		confidenceWeight*confidence +
		resourceWeight*(1.0-resource) +
		adaptabilityWeight*adaptability

	if s.NoiseStdDev > 0 {
		s.mu.Lock()
		score += s.rng.NormFloat64() * s.NoiseStdDev
		s.mu.Unlock()
	}

	if score < 0.0 {
		score = 0.0
	}
	if score > 1.0 {
		score = 1.0
	}
	return score, nil
}
