package evolution

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/evolvex/evotune-go/pkg/errors"
)

// Config contains the evolutionary parameters of an engine. PopulationSize
// and EliteSize are fixed for the lifetime of the engine.
type Config struct {
	PopulationSize int     `yaml:"population_size" validate:"required,gt=1"`
	EliteSize      int     `yaml:"elite_size" validate:"gte=0,ltfield=PopulationSize"`
	MutationRate   float64 `yaml:"mutation_rate" validate:"gte=0,lte=1"`
	CrossoverRate  float64 `yaml:"crossover_rate" validate:"gte=0,lte=1"`
	TournamentSize int     `yaml:"tournament_size" validate:"gt=0"`

	// Concurrency bounds the per-generation evaluation fan-out.
	// Zero means one goroutine per individual.
	Concurrency int `yaml:"concurrency" validate:"gte=0"`

	// Seed initializes the engine's random source. Zero seeds from the clock.
	Seed int64 `yaml:"seed"`
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{
		PopulationSize: 20,
		EliteSize:      2,
		MutationRate:   0.1,
		CrossoverRate:  0.7,
		TournamentSize: 3,
	}
}

var validate = validator.New()

// Validate rejects caller bugs eagerly with a descriptive fault. Invalid
// configurations are never retried.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, errors.ValidationFailed, "invalid engine configuration")
	}
	return nil
}

// LoadConfig reads a Config from a YAML file, overlaying the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.InvalidInput, "failed to read config file")
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, errors.InvalidInput, "failed to parse config file")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
