package genome

import (
	"math/rand"

	"github.com/evolvex/evotune-go/pkg/errors"
)

// GeneSpec declares one tunable gene: its name, kind, and legal range or
// choice set. Sequences are declared through Elem and Length; every element
// follows the same spec.
type GeneSpec struct {
	Name     string    `yaml:"name"`
	Kind     Kind      `yaml:"kind"`
	IntMin   int64     `yaml:"int_min,omitempty"`
	IntMax   int64     `yaml:"int_max,omitempty"`
	FloatMin float64   `yaml:"float_min,omitempty"`
	FloatMax float64   `yaml:"float_max,omitempty"`
	Choices  []string  `yaml:"choices,omitempty"`
	Elem     *GeneSpec `yaml:"elem,omitempty"`
	Length   int       `yaml:"length,omitempty"`
}

// Schema is the ordered set of gene specs the engine seeds populations from.
type Schema []GeneSpec

// Validate checks the schema eagerly so violations surface at engine
// construction rather than mid-run.
func (s Schema) Validate() error {
	if len(s) == 0 {
		return errors.New(errors.ValidationFailed, "gene schema is empty")
	}
	seen := make(map[string]bool, len(s))
	for i := range s {
		spec := &s[i]
		if spec.Name == "" {
			return errors.WithFields(
				errors.New(errors.ValidationFailed, "gene spec has no name"),
				errors.Fields{"position": i})
		}
		if seen[spec.Name] {
			return errors.WithFields(
				errors.New(errors.ValidationFailed, "duplicate gene name"),
				errors.Fields{"gene": spec.Name})
		}
		seen[spec.Name] = true
		if err := spec.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (spec *GeneSpec) validate() error {
	switch spec.Kind {
	case KindBool:
		return nil
	case KindInt:
		if spec.IntMin > spec.IntMax {
			return errors.WithFields(
				errors.New(errors.ValidationFailed, "integer range is inverted"),
				errors.Fields{"gene": spec.Name, "min": spec.IntMin, "max": spec.IntMax})
		}
		return nil
	case KindFloat:
		if spec.FloatMin > spec.FloatMax {
			return errors.WithFields(
				errors.New(errors.ValidationFailed, "float range is inverted"),
				errors.Fields{"gene": spec.Name, "min": spec.FloatMin, "max": spec.FloatMax})
		}
		return nil
	case KindText:
		if len(spec.Choices) == 0 {
			return errors.WithFields(
				errors.New(errors.ValidationFailed, "text gene has no choices"),
				errors.Fields{"gene": spec.Name})
		}
		return nil
	case KindSequence:
		if spec.Elem == nil {
			return errors.WithFields(
				errors.New(errors.ValidationFailed, "sequence gene has no element spec"),
				errors.Fields{"gene": spec.Name})
		}
		if spec.Length <= 0 {
			return errors.WithFields(
				errors.New(errors.ValidationFailed, "sequence gene length must be positive"),
				errors.Fields{"gene": spec.Name, "length": spec.Length})
		}
		if spec.Elem.Kind == KindSequence {
			return errors.WithFields(
				errors.New(errors.UnsupportedGeneType, "nested sequence genes are not supported"),
				errors.Fields{"gene": spec.Name})
		}
		elem := *spec.Elem
		elem.Name = spec.Name + ".elem"
		return elem.validate()
	default:
		return errors.WithFields(
			errors.New(errors.UnsupportedGeneType, "unknown gene kind"),
			errors.Fields{"gene": spec.Name, "kind": int(spec.Kind)})
	}
}

// Random seeds a genome uniformly at random within the schema's declared
// ranges: booleans 50/50, integers and floats uniform in range, text a
// uniform choice.
func (s Schema) Random(rng *rand.Rand) *Genome {
	genes := make([]Gene, 0, len(s))
	for i := range s {
		genes = append(genes, Gene{Name: s[i].Name, Value: s[i].random(rng)})
	}
	return New(genes)
}

func (spec *GeneSpec) random(rng *rand.Rand) Value {
	switch spec.Kind {
	case KindBool:
		return Bool(rng.Intn(2) == 0)
	case KindInt:
		span := spec.IntMax - spec.IntMin
		return Int(spec.IntMin + rng.Int63n(span+1))
	case KindFloat:
		return Float(spec.FloatMin + rng.Float64()*(spec.FloatMax-spec.FloatMin))
	case KindText:
		return Text(spec.Choices[rng.Intn(len(spec.Choices))])
	case KindSequence:
		elems := make([]Value, spec.Length)
		for i := range elems {
			elems[i] = spec.Elem.random(rng)
		}
		return Sequence(elems...)
	default:
		return Value{}
	}
}
