// Package evolution implements a generational genetic algorithm over typed
// configuration genomes: seeded populations, concurrent fitness evaluation,
// tournament selection, uniform crossover, mutation, elitism, and per-run
// history, plus Pareto-front extraction for two-objective runs.
package evolution

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"

	"github.com/evolvex/evotune-go/pkg/errors"
	"github.com/evolvex/evotune-go/pkg/genome"
	"github.com/evolvex/evotune-go/pkg/logging"
)

// GenerationStats is one append-only history entry: the per-generation
// summary recorded after evaluation. Diversity is the variance of fitness
// across the population; zero diversity signals a degenerate (stagnant)
// population and is reported, not treated as an error.
type GenerationStats struct {
	Generation  int     `yaml:"generation"`
	BestFitness float64 `yaml:"best_fitness"`
	AvgFitness  float64 `yaml:"avg_fitness"`
	Diversity   float64 `yaml:"diversity"`
}

// Stats is a read-only snapshot of engine state for introspection.
type Stats struct {
	Generation     int
	PopulationSize int
	BestFitness    float64
	RecentHistory  []GenerationStats
	BestGenes      []genome.Gene
}

// recentHistorySize bounds the history tail returned by Stats.
const recentHistorySize = 10

// Engine drives the generational loop. It owns its population, best-so-far
// individual, and history exclusively; it is not designed for concurrent
// Evolve calls on the same instance. The only concurrency inside a run is
// the per-generation evaluation fan-out, which joins before selection.
type Engine struct {
	config Config
	rng    *rand.Rand
	runID  string

	schema     genome.Schema
	population []*Individual
	generation int
	best       *Individual
	history    []GenerationStats
}

// New constructs an engine with the given configuration. The configuration
// is validated eagerly; population size and elite size are fixed from here on.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Engine{
		config: cfg,
		rng:    rand.New(rand.NewSource(seed)),
		runID:  uuid.New().String()[:8],
	}, nil
}

// InitializePopulation seeds a random population from the gene schema.
// Allowed only once, before the first Evolve call.
func (e *Engine) InitializePopulation(schema genome.Schema) error {
	if e.population != nil {
		return errors.New(errors.InvalidInput, "population already seeded")
	}
	if err := schema.Validate(); err != nil {
		return err
	}

	logger := logging.GetLogger()
	ctx := logging.WithRunID(context.Background(), e.runID)
	logger.Info(ctx, "Seeding population with %d individuals across %d genes",
		e.config.PopulationSize, len(schema))

	e.schema = schema
	e.population = make([]*Individual, 0, e.config.PopulationSize)
	for i := 0; i < e.config.PopulationSize; i++ {
		e.population = append(e.population, NewIndividual(schema.Random(e.rng)))
	}
	return nil
}

// Evolve runs the generational loop for the given number of generations and
// returns a copy of the best individual ever observed. Cancellation is
// honored at generation boundaries only; a generation in flight always
// completes.
func (e *Engine) Evolve(ctx context.Context, generations int, evaluator Evaluator) (*Individual, error) {
	if generations <= 0 {
		return nil, errors.WithFields(
			errors.New(errors.InvalidInput, "generations must be positive"),
			errors.Fields{"generations": generations})
	}
	if evaluator == nil {
		return nil, errors.New(errors.InvalidInput, "evaluator is nil")
	}
	if e.population == nil {
		return nil, errors.New(errors.PopulationNotSeeded, "population not seeded; call InitializePopulation first")
	}

	logger := logging.GetLogger()
	ctx = logging.WithRunID(ctx, e.runID)
	logger.Info(ctx, "Starting evolution: generations=%d, population=%d, elite=%d",
		generations, e.config.PopulationSize, e.config.EliteSize)

	for g := 0; g < generations; g++ {
		if err := errors.CheckContext(ctx, "evolution run"); err != nil {
			return e.bestCopy(), err
		}

		genCtx := logging.WithGeneration(ctx, e.generation)
		e.evaluatePopulation(genCtx, evaluator)
		stats := e.recordGeneration(genCtx)

		logger.Info(genCtx, "Generation complete: best=%.4f, avg=%.4f, diversity=%.6f",
			stats.BestFitness, stats.AvgFitness, stats.Diversity)

		e.population = e.nextGeneration()
		e.generation++
	}

	best := e.bestCopy()
	logger.Info(ctx, "Evolution finished: generations=%d, best_fitness=%.4f",
		e.generation, best.Fitness())
	return best, nil
}

// evaluatePopulation scores every individual concurrently and joins before
// returning. A failing evaluator is a per-individual fault: the individual
// gets minimum fitness and the generation continues.
func (e *Engine) evaluatePopulation(ctx context.Context, evaluator Evaluator) {
	logger := logging.GetLogger()

	concurrency := e.config.Concurrency
	if concurrency <= 0 {
		concurrency = len(e.population)
	}
	p := pool.New().WithMaxGoroutines(concurrency)

	var mu sync.Mutex
	failures := 0

	for _, ind := range e.population {
		ind := ind
		p.Go(func() {
			if err := ind.Evaluate(ctx, evaluator); err != nil {
				ind.Genome.Fitness = 0.0
				logger.Warn(ctx, "Evaluation failed, assigning minimum fitness: %v", err)
				mu.Lock()
				failures++
				mu.Unlock()
			}
		})
	}
	p.Wait()

	if failures > 0 {
		logger.Warn(ctx, "Generation evaluated with %d/%d failures", failures, len(e.population))
	}
}

// recordGeneration updates the best-so-far individual and appends the
// generation summary to history. Best-ever is replaced only on strictly
// greater fitness, so ties retain the earliest-found individual.
func (e *Engine) recordGeneration(ctx context.Context) GenerationStats {
	current := e.population[0]
	sum := 0.0
	for _, ind := range e.population {
		sum += ind.Fitness()
		if ind.Fitness() > current.Fitness() {
			current = ind
		}
	}
	mean := sum / float64(len(e.population))

	variance := 0.0
	for _, ind := range e.population {
		d := ind.Fitness() - mean
		variance += d * d
	}
	variance /= float64(len(e.population))

	if e.best == nil || current.Fitness() > e.best.Fitness() {
		e.best = current.Copy()
		logging.GetLogger().Debug(ctx, "New best individual: fitness=%.4f, genome=%s",
			current.Fitness(), current.Genome.ID)
	}

	stats := GenerationStats{
		Generation:  e.generation,
		BestFitness: current.Fitness(),
		AvgFitness:  mean,
		Diversity:   variance,
	}
	e.history = append(e.history, stats)
	return stats
}

// nextGeneration builds the successor population: elite copies first, then
// children from tournament-selected parents via uniform crossover (or a
// parent copy when crossover does not fire) followed by mutation.
func (e *Engine) nextGeneration() []*Individual {
	ranked := make([]*Individual, len(e.population))
	copy(ranked, e.population)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Fitness() > ranked[j].Fitness()
	})

	next := make([]*Individual, 0, e.config.PopulationSize)
	for i := 0; i < e.config.EliteSize; i++ {
		next = append(next, ranked[i].Copy())
	}

	for len(next) < e.config.PopulationSize {
		parent1 := e.tournamentSelect()
		parent2 := e.tournamentSelect()

		var child *genome.Genome
		if e.rng.Float64() < e.config.CrossoverRate {
			child = genome.Crossover(parent1.Genome, parent2.Genome, e.rng)
		} else {
			child = parent1.Genome.Copy()
		}

		child.Mutate(e.config.MutationRate, e.rng)
		child.Generation = e.generation + 1
		child.Fitness = 0.0
		next = append(next, NewIndividual(child))
	}

	return next
}

// tournamentSelect samples TournamentSize individuals with replacement and
// returns the fittest. The first sampled wins ties.
func (e *Engine) tournamentSelect() *Individual {
	best := e.population[e.rng.Intn(len(e.population))]
	for i := 1; i < e.config.TournamentSize; i++ {
		contender := e.population[e.rng.Intn(len(e.population))]
		if contender.Fitness() > best.Fitness() {
			best = contender
		}
	}
	return best
}

func (e *Engine) bestCopy() *Individual {
	if e.best == nil {
		return nil
	}
	return e.best.Copy()
}

// BestGenome returns a copy of the best genome observed so far, or nil when
// nothing has been evaluated yet.
func (e *Engine) BestGenome() *genome.Genome {
	if e.best == nil {
		return nil
	}
	return e.best.Genome.Copy()
}

// History returns a copy of the full per-generation history.
func (e *Engine) History() []GenerationStats {
	out := make([]GenerationStats, len(e.history))
	copy(out, e.history)
	return out
}

// Population returns the current population slice. The front calculator
// consumes this after a finished run; callers must not mutate the
// individuals.
func (e *Engine) Population() []*Individual {
	out := make([]*Individual, len(e.population))
	copy(out, e.population)
	return out
}

// Stats returns a read-only snapshot: current generation, best fitness, the
// bounded history tail, and the best genome's genes.
func (e *Engine) Stats() Stats {
	s := Stats{
		Generation:     e.generation,
		PopulationSize: e.config.PopulationSize,
	}
	if e.best != nil {
		s.BestFitness = e.best.Fitness()
		s.BestGenes = e.best.Genome.Genes()
	}

	tail := len(e.history) - recentHistorySize
	if tail < 0 {
		tail = 0
	}
	s.RecentHistory = make([]GenerationStats, len(e.history)-tail)
	copy(s.RecentHistory, e.history[tail:])
	return s
}
