package genbranch

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats/scalar"
)

// Sense is the direction of a component bound.
type Sense int

const (
	GreaterEqual Sense = iota
	LessThan
)

func (s Sense) String() string {
	if s == GreaterEqual {
		return ">="
	}
	return "<"
}

// flip returns the opposite sense.
func (s Sense) flip() Sense {
	if s == GreaterEqual {
		return LessThan
	}
	return GreaterEqual
}

// ComponentBound is a single restriction on one component of a generator
// vector. compIndex is the component's position in the generator union of
// the invocation that produced the bound; Component carries the identity of
// the underlying original variable.
type ComponentBound struct {
	Component *OrigVar
	compIndex int
	Sense     Sense
	Bound     float64
}

// admits reports whether a generator vector falls on the bound's side of the
// split.
func (cb ComponentBound) admits(generator []float64) bool {
	v := generator[cb.compIndex]
	if cb.Sense == GreaterEqual {
		return v > cb.Bound-eps
	}
	return v < cb.Bound-eps
}

func (cb ComponentBound) String() string {
	return fmt.Sprintf("(%s %s %g)", cb.Component.Name, cb.Sense, cb.Bound)
}

// Sequence is an ordered conjunction of component bounds. A column satisfies
// the sequence at position p if it satisfies every bound up to and including
// p.
type Sequence []ComponentBound

// extended returns a copy of s with cb appended. The receiver is never
// mutated: sibling recursion branches share s as a common prefix.
func (s Sequence) extended(cb ComponentBound) Sequence {
	out := make(Sequence, len(s)+1)
	copy(out, s)
	out[len(s)] = cb
	return out
}

// admits reports whether a generator vector satisfies every bound of the
// sequence.
func (s Sequence) admits(generator []float64) bool {
	for _, cb := range s {
		if !cb.admits(generator) {
			return false
		}
	}
	return true
}

// sameBoundAt reports whether both sequences reach position p and restrict
// the same component with the same bound value there.
func (s Sequence) sameBoundAt(other Sequence, p int) bool {
	if len(s) <= p || len(other) <= p {
		return false
	}
	return s[p].Component == other[p].Component &&
		scalar.EqualWithinAbs(s[p].Bound, other[p].Bound, eps)
}

// Family is the set of bound sequences established by the relevant ancestor
// nodes of the branch tree.
type Family []Sequence

// record is the candidate pool of one separation run. Append-only; fully
// consumed by chooseSequence.
type record struct {
	sequences []Sequence
}

func (r *record) add(s Sequence) {
	r.sequences = append(r.sequences, s)
}

// chooseSequence picks the winning bound sequence from the record.
// All candidates currently carry equal priority, so the shortest sequence
// wins; the priority slot exists for a future pseudocost-based scoring.
// An empty record is an invariant violation: separation is only ever invoked
// on a non-empty fractional column set.
func chooseSequence(r *record) (Sequence, error) {
	if len(r.sequences) == 0 {
		return nil, errors.New("separation produced no candidate bound sequence")
	}

	best := r.sequences[0]
	for _, s := range r.sequences[1:] {
		if len(s) < len(best) {
			best = s
		}
	}

	if len(best) == 0 {
		return nil, errors.New("chosen bound sequence is empty")
	}

	return best, nil
}
