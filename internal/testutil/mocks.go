// Package testutil provides shared test doubles for engine tests.
package testutil

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/evolvex/evotune-go/pkg/genome"
)

// MockEvaluator is a mock implementation of evolution.Evaluator.
type MockEvaluator struct {
	mock.Mock
}

func (m *MockEvaluator) Evaluate(ctx context.Context, g *genome.Genome) (float64, error) {
	args := m.Called(ctx, g)
	return args.Get(0).(float64), args.Error(1)
}

// CountingEvaluator wraps a scoring function and counts invocations, for
// asserting the per-generation evaluation fan-out without mock plumbing.
type CountingEvaluator struct {
	Score func(g *genome.Genome) float64

	mu    sync.Mutex
	calls int
}

func (c *CountingEvaluator) Evaluate(ctx context.Context, g *genome.Genome) (float64, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return c.Score(g), nil
}

// Calls returns how many times Evaluate ran.
func (c *CountingEvaluator) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}
