// Package adapter is the integration boundary between the evolution engine
// and a consuming system: it translates winning genomes into nested
// configuration-update structures grouped by subsystem. The core engine
// never serializes or transmits genomes; that responsibility lives here.
package adapter

import (
	"gopkg.in/yaml.v3"

	"github.com/evolvex/evotune-go/pkg/errors"
	"github.com/evolvex/evotune-go/pkg/evolution"
	"github.com/evolvex/evotune-go/pkg/genome"
)

// ConfigUpdate is the nested update shape a consuming system receives:
// gene values grouped by the subsystem they tune. Genes outside the known
// grouping land in Extra so nothing is silently dropped.
type ConfigUpdate struct {
	GenomeID    string                 `yaml:"genome_id"`
	Fitness     float64                `yaml:"fitness"`
	Generation  int                    `yaml:"generation"`
	Learning    map[string]interface{} `yaml:"learning,omitempty"`
	Performance map[string]interface{} `yaml:"performance,omitempty"`
	Resources   map[string]interface{} `yaml:"resources,omitempty"`
	Extra       map[string]interface{} `yaml:"extra,omitempty"`
}

// subsystemOf maps gene names to their subsystem group. The grouping is
// adapter-defined; downstream systems that tune different genes supply their
// own adapter.
var subsystemOf = map[string]string{
	"adaptability":         "learning",
	"confidence_threshold": "learning",
	"exploration_mode":     "learning",
	"latency_tolerance":    "performance",
	"feature_flags":        "performance",
	"resource_usage":       "resources",
	"memory_limit":         "resources",
}

// FromGenome translates a genome into a grouped configuration update.
func FromGenome(g *genome.Genome) *ConfigUpdate {
	update := &ConfigUpdate{
		GenomeID:    g.ID,
		Fitness:     g.Fitness,
		Generation:  g.Generation,
		Learning:    make(map[string]interface{}),
		Performance: make(map[string]interface{}),
		Resources:   make(map[string]interface{}),
		Extra:       make(map[string]interface{}),
	}

	for _, gene := range g.Genes() {
		value := gene.Value.Interface()
		switch subsystemOf[gene.Name] {
		case "learning":
			update.Learning[gene.Name] = value
		case "performance":
			update.Performance[gene.Name] = value
		case "resources":
			update.Resources[gene.Name] = value
		default:
			update.Extra[gene.Name] = value
		}
	}
	return update
}

// FromFront translates a Pareto front into one update per member, preserving
// front order.
func FromFront(front []*evolution.Individual) []*ConfigUpdate {
	updates := make([]*ConfigUpdate, 0, len(front))
	for _, ind := range front {
		updates = append(updates, FromGenome(ind.Genome))
	}
	return updates
}

// ToYAML renders an update for handoff to systems that consume YAML
// configuration.
func (u *ConfigUpdate) ToYAML() ([]byte, error) {
	data, err := yaml.Marshal(u)
	if err != nil {
		return nil, errors.Wrap(err, errors.Unknown, "failed to marshal config update")
	}
	return data, nil
}
