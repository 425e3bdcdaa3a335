// Package evotune is a generic, pluggable evolutionary optimizer for typed
// configuration sets. Callers supply a gene schema and a scoring function;
// the engine searches the configuration space with a generational genetic
// algorithm and returns the best genome found, or the Pareto front under a
// quality-versus-cost objective pair.
//
// Key components:
//
//   - genome: typed gene values (bool, int, float, text, sequence), their
//     schema, and the mutation and crossover operators.
//
//   - evolution: the Individual evaluation contract and the Engine driving
//     the generational loop (concurrent evaluation, tournament selection,
//     uniform crossover, elitism, diversity history), plus the Pareto front
//     calculator for two-objective runs.
//
//   - evaluators: scoring collaborators, including the reference simulated
//     scoring policy.
//
//   - adapter: the integration boundary translating winning genomes into
//     grouped configuration updates for a consuming system.
//
// See examples/quickstart for a complete run.
package evotune
