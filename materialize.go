package genbranch

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats/scalar"
)

// childSpec is one prospective child node: its own bound sequence, the
// right-hand side of its branching constraint, and the master columns that
// currently satisfy the sequence.
type childSpec struct {
	seq  Sequence
	rhs  float64
	cols []*MasterColumn
}

// buildChildren computes the len(s)+1 prospective children for the chosen
// sequence s. Child p (p < len(s)) is defined by the length-(p+1) prefix of
// s with the final sense flipped; the last child takes the full sequence
// unchanged.
//
// Right-hand sides follow the running-total scheme: L narrows with the
// weighted count of columns satisfying the unflipped prefix, each child gets
// rhs = previous L - current L + 1, and the last child inherits the final
// (ceiled) L. The rhs values of all children must sum to identical + len(s);
// a mismatch is a logic defect and aborts the branching attempt.
func buildChildren(s Sequence, F []*column, identical int) ([]childSpec, error) {

	if len(s) == 0 {
		return nil, errors.New("cannot materialize children of an empty bound sequence")
	}

	k := len(s)
	pL := float64(identical)

	// the candidate pool narrows cumulatively: child p only considers
	// columns satisfying the first p+1 unflipped bounds
	pool := make([]*column, len(F))
	copy(pool, F)

	children := make([]childSpec, 0, k+1)

	for p := 0; p <= k; p++ {

		if p == k {
			// final child: full sequence, unflipped, rhs from the running total
			seq := make(Sequence, k)
			copy(seq, s)
			children = append(children, childSpec{
				seq:  seq,
				rhs:  pL,
				cols: admittedSources(F, seq),
			})
			break
		}

		seq := make(Sequence, p+1)
		copy(seq, s[:p+1])
		seq[p].Sense = seq[p].Sense.flip()

		pool = filterAdmitted(pool, s[p])
		mu := totalWeight(pool)

		L := mu
		if p == k-1 {
			L = math.Ceil(mu)
		}

		children = append(children, childSpec{
			seq:  seq,
			rhs:  pL - L + 1,
			cols: admittedSources(F, seq),
		})
		pL = L
	}

	sum := 0.0
	for _, c := range children {
		sum += c.rhs
	}
	if !scalar.EqualWithinAbs(sum, float64(identical+k), feasTol) {
		return nil, errors.Errorf("child right-hand sides sum to %g, want %d", sum, identical+k)
	}

	return children, nil
}

// filterAdmitted keeps the columns admitted by the bound. Returns a fresh
// slice.
func filterAdmitted(cols []*column, cb ComponentBound) []*column {
	var out []*column
	for _, c := range cols {
		if cb.admits(c.generator) {
			out = append(out, c)
		}
	}
	return out
}

// admittedSources collects the master columns whose generators satisfy the
// whole sequence.
func admittedSources(cols []*column, s Sequence) []*MasterColumn {
	var out []*MasterColumn
	for _, c := range cols {
		if s.admits(c.generator) {
			out = append(out, c.source)
		}
	}
	return out
}

// materializeChildren creates the child nodes and branching constraints for
// the chosen sequence, skipping children the dominance pruner rejects.
// Returns the number of children actually created; zero with a nil error
// means every child was dominated and the node can be cut off.
func (rule *BranchRule) materializeChildren(parentNode NodeID, parentData *BranchData, block int, s Sequence, F []*column) (int, error) {

	children, err := buildChildren(s, F, rule.master.IdenticalBlocks(block))
	if err != nil {
		return 0, err
	}

	// children created at the search tree root still need a common parent
	// record, or the dominance pruner could never see them again
	if parentData == nil {
		if rule.rootData == nil {
			rule.rootData = &BranchData{Block: -1}
		}
		parentData = rule.rootData
	}

	created := 0
	for n, child := range children {

		if dominated(child.rhs, child.seq, block, parentData) {
			rule.middleware.ProcessDecision(block, childDominated)
			log.WithFields(log.Fields{
				"block": block,
				"child": n,
				"rhs":   child.rhs,
			}).Debug("child dominated by existing branching constraint, skipping")
			continue
		}

		name := fmt.Sprintf("genbranch_b%d_n%d_c%d", block, parentNode, n)
		cons, err := rule.master.AddBranchConstraint(name, child.cols, child.rhs)
		if err != nil {
			return created, errors.Wrapf(err, "registering branching constraint %s", name)
		}

		data := &BranchData{
			Block:  block,
			S:      child.seq,
			Rhs:    child.rhs,
			Cons:   cons,
			parent: parentData,
		}
		parentData.children = append(parentData.children, data)

		node := rule.tree.CreateChild(parentNode)
		rule.tree.AttachBranchData(node, data)

		rule.middleware.ProcessDecision(block, childCreated)
		created++
	}

	return created, nil
}
