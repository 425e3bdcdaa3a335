package logging

import "context"

type contextKey string

const (
	runIDKey      contextKey = "evotune-run-id"
	generationKey contextKey = "evotune-generation"
)

// WithRunID annotates a context with an optimization run identifier that the
// logger attaches to every entry produced under that context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// GetRunID extracts the run identifier from a context.
func GetRunID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(runIDKey).(string)
	return id, ok
}

// WithGeneration annotates a context with the current generation index.
func WithGeneration(ctx context.Context, generation int) context.Context {
	return context.WithValue(ctx, generationKey, generation)
}

// GetGeneration extracts the generation index from a context.
func GetGeneration(ctx context.Context) (int, bool) {
	g, ok := ctx.Value(generationKey).(int)
	return g, ok
}
