package evaluators

import "github.com/evolvex/evotune-go/pkg/genome"

// ReferenceSchema returns the gene schema the Simulated evaluator scores:
// the default configuration space for compatibility runs and the quickstart
// example.
func ReferenceSchema() genome.Schema {
	return genome.Schema{
		{Name: "latency_tolerance", Kind: genome.KindInt, IntMin: 1, IntMax: 1000},
		{Name: "confidence_threshold", Kind: genome.KindFloat, FloatMin: 0, FloatMax: 1},
		{Name: "resource_usage", Kind: genome.KindFloat, FloatMin: 0, FloatMax: 1},
		{Name: "adaptability", Kind: genome.KindFloat, FloatMin: 0, FloatMax: 1},
		{Name: "exploration_mode", Kind: genome.KindText, Choices: []string{"conservative", "balanced", "aggressive"}},
		{Name: "feature_flags", Kind: genome.KindSequence, Length: 3,
			Elem: &genome.GeneSpec{Kind: genome.KindBool}},
	}
}
