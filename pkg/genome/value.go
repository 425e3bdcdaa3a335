package genome

import (
	"fmt"
	"hash"
	"math/rand"
	"strconv"
	"strings"
)

// Kind enumerates the value types a gene may hold. Mutation and crossover
// dispatch exhaustively on the kind, so adding a new kind requires adding a
// corresponding mutation rule or the gene is treated as immutable.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindFloat
	KindText
	KindSequence
)

// String provides human-readable kind names.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	case KindSequence:
		return "sequence"
	default:
		return "unknown"
	}
}

// Value is a tagged variant over the gene types the engine understands.
// The zero Value is a false boolean.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	seq  []Value
}

// Bool constructs a boolean gene value.
func Bool(v bool) Value {
	return Value{kind: KindBool, b: v}
}

// Int constructs an integer gene value.
func Int(v int64) Value {
	return Value{kind: KindInt, i: v}
}

// Float constructs a floating-point gene value.
func Float(v float64) Value {
	return Value{kind: KindFloat, f: v}
}

// Text constructs a categorical string gene value. Text values are immutable
// under mutation; they identify choices rather than carry mutable content.
func Text(v string) Value {
	return Value{kind: KindText, s: v}
}

// Sequence constructs a sequence gene value from the given elements.
func Sequence(elems ...Value) Value {
	seq := make([]Value, len(elems))
	copy(seq, elems)
	return Value{kind: KindSequence, seq: seq}
}

func (v Value) Kind() Kind { return v.kind }

// Bool returns the boolean payload. Valid only when Kind() == KindBool.
func (v Value) Bool() bool { return v.b }

// Int returns the integer payload. Valid only when Kind() == KindInt.
func (v Value) Int() int64 { return v.i }

// Float returns the float payload. Valid only when Kind() == KindFloat.
func (v Value) Float() float64 { return v.f }

// Text returns the string payload. Valid only when Kind() == KindText.
func (v Value) Text() string { return v.s }

// Elems returns a copy of the sequence payload. Valid only when
// Kind() == KindSequence.
func (v Value) Elems() []Value {
	elems := make([]Value, len(v.seq))
	copy(elems, v.seq)
	return elems
}

// Len returns the number of sequence elements, or 0 for scalar values.
func (v Value) Len() int { return len(v.seq) }

// Clone returns a deep copy of the value.
func (v Value) Clone() Value {
	if v.kind != KindSequence {
		return v
	}
	seq := make([]Value, len(v.seq))
	for i, e := range v.seq {
		seq[i] = e.Clone()
	}
	return Value{kind: KindSequence, seq: seq}
}

// Equal reports whether two values have the same kind and content.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f
	case KindText:
		return v.s == other.s
	case KindSequence:
		if len(v.seq) != len(other.seq) {
			return false
		}
		for i := range v.seq {
			if !v.seq[i].Equal(other.seq[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// String renders the value for logs and diagnostics.
func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindText:
		return v.s
	case KindSequence:
		parts := make([]string, len(v.seq))
		for i, e := range v.seq {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, " ") + "]"
	default:
		return "<invalid>"
	}
}

// Interface returns the payload as a plain Go value, recursively for
// sequences. Used by the integration adapter when exporting genomes.
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindText:
		return v.s
	case KindSequence:
		out := make([]interface{}, len(v.seq))
		for i, e := range v.seq {
			out[i] = e.Interface()
		}
		return out
	default:
		return nil
	}
}

// writeHash feeds the value's kind tag and content into the fingerprint hash.
func (v Value) writeHash(h hash.Hash) {
	fmt.Fprintf(h, "%d:", v.kind)
	switch v.kind {
	case KindBool:
		fmt.Fprintf(h, "%t;", v.b)
	case KindInt:
		fmt.Fprintf(h, "%d;", v.i)
	case KindFloat:
		fmt.Fprintf(h, "%g;", v.f)
	case KindText:
		fmt.Fprintf(h, "%q;", v.s)
	case KindSequence:
		fmt.Fprintf(h, "%d[", len(v.seq))
		for _, e := range v.seq {
			e.writeHash(h)
		}
		fmt.Fprint(h, "];")
	}
}

// Mutation bounds. These are engine tunables, not caller configuration: the
// integer offset is drawn uniformly from [-intMutationSpan, +intMutationSpan]
// and float values are scaled by a factor uniform in
// [floatScaleMin, floatScaleMax].
const (
	intMutationSpan = 10
	floatScaleMin   = 0.8
	floatScaleMax   = 1.2
)

// mutateValue returns a type-preserving random variation of v. Text values
// come back unchanged. Sequences mutate exactly one randomly chosen element.
// Unknown kinds are treated as immutable.
func mutateValue(v Value, rng *rand.Rand) Value {
	switch v.kind {
	case KindBool:
		return Bool(!v.b)
	case KindInt:
		offset := int64(rng.Intn(2*intMutationSpan+1) - intMutationSpan)
		return Int(v.i + offset)
	case KindFloat:
		scale := floatScaleMin + rng.Float64()*(floatScaleMax-floatScaleMin)
		return Float(v.f * scale)
	case KindText:
		return v
	case KindSequence:
		if len(v.seq) == 0 {
			return v
		}
		mutated := v.Clone()
		idx := rng.Intn(len(mutated.seq))
		mutated.seq[idx] = mutateValue(mutated.seq[idx], rng)
		return mutated
	default:
		return v
	}
}
