package genbranch

import (
	"gonum.org/v1/gonum/floats/scalar"
)

// BranchData is the persistent per-node record of one generic branching
// decision: the block branched on, the chosen bound sequence, the
// right-hand side of the registered constraint, and the constraint handle
// itself. Parent and child links let the dominance pruner inspect siblings
// and ancestors without walking the external tree.
type BranchData struct {
	Block int
	S     Sequence
	Rhs   float64
	Cons  ConstraintHandle

	parent   *BranchData
	children []*BranchData
}

func (b *BranchData) Parent() *BranchData {
	return b.parent
}

func (b *BranchData) Children() []*BranchData {
	return b.children
}

// Activate adds the registered constraint to the LP. Called by the tree
// layer when the search enters the node.
func (b *BranchData) Activate() error {
	if b.Cons == nil {
		return nil
	}
	return b.Cons.Activate()
}

// Deactivate removes the registered constraint from the LP. Called by the
// tree layer when the search backtracks past the node.
func (b *BranchData) Deactivate() error {
	if b.Cons == nil {
		return nil
	}
	return b.Cons.Deactivate()
}

// AncestorFamily assembles the bound-sequence family C for a block by
// walking the branch data chain from data up to the root. The separation
// core receives the assembled family as a parameter and never touches the
// tree itself.
func AncestorFamily(data *BranchData, block int) Family {
	var fam Family
	for d := data; d != nil; d = d.parent {
		if d.Block == block && len(d.S) > 0 {
			fam = append(fam, d.S)
		}
	}
	return fam
}

// dominated reports whether a prospective child (rhs, s, block) is already
// implied by an existing sibling or ancestor branching constraint, in which
// case materializing it would add a logically redundant node to the tree.
func dominated(rhs float64, s Sequence, block int, parent *BranchData) bool {
	for d := parent; d != nil; d = d.parent {
		// the walked node's own constraint dominates just like a sibling's:
		// re-proposing it (or its final flip at the same rhs) is redundant
		if d.Block == block && len(d.S) == len(s) &&
			scalar.EqualWithinAbs(d.Rhs, rhs, feasTol) && impliedBy(s, d.S) {
			return true
		}
		for _, sib := range d.children {
			if sib.Block != block || len(sib.S) != len(s) {
				continue
			}
			if !scalar.EqualWithinAbs(sib.Rhs, rhs, feasTol) {
				continue
			}
			if impliedBy(s, sib.S) {
				return true
			}
		}
	}
	return false
}

// impliedBy reports whether candidate is implied by existing: equal length,
// matching component and bound at every position, and senses identical
// throughout or differing only at the final position.
func impliedBy(candidate, existing Sequence) bool {
	for p := range candidate {
		if !candidate.sameBoundAt(existing, p) {
			return false
		}
		if candidate[p].Sense != existing[p].Sense && p != len(candidate)-1 {
			return false
		}
	}
	return true
}
