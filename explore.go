package genbranch

import (
	"gonum.org/v1/gonum/floats/scalar"
)

// explore is the node-level counterpart of separate. At recursion depth p it
// probes the ancestor family for the bound dictated at position p; the
// component to test is not a free choice until the family structure runs
// out, at which point the remaining work is plain separation.
func (ctx *sepCtx) explore(fam Family, p int, F []*column, indexSet []int, S Sequence) {

	if len(fam) == 0 || len(F) == 0 || len(indexSet) == 0 {
		ctx.separate(F, indexSet, S)
		return
	}

	k := familyMemberCovering(fam, p)
	if k < 0 {
		// ancestor structure exhausted
		ctx.separate(F, indexSet, S)
		return
	}
	cb := fam[k][p-1]

	// aggregated weight of the columns the ancestor bound admits, with its
	// exact sense. A fractional value terminates the walk: the ancestor
	// bound itself separates the point.
	alpha := 0.0
	for _, c := range F {
		if cb.admits(c.generator) {
			alpha += c.weight
		}
	}
	if fractional(alpha) {
		// record the bound with the ancestor's own sense: the flipped
		// sense admits weight muAll-alpha, which can be integral when
		// muAll is not
		ctx.rec.add(S.extended(ComponentBound{
			Component: cb.Component,
			compIndex: cb.compIndex,
			Sense:     cb.Sense,
			Bound:     cb.Bound,
		}))
		return
	}

	muAll := totalWeight(F)

	// weight of the at-or-above side, regardless of the ancestor's sense
	alphaAbove := alpha
	if cb.Sense == LessThan {
		alphaAbove = muAll - alpha
	}

	above, below := partitionColumns(F, cb.compIndex, cb.Bound)
	famAbove := restrictFamily(fam, p, cb, GreaterEqual)
	famBelow := restrictFamily(fam, p, cb, LessThan)

	// a side whose aggregated weight bounds flag it as empty must not be
	// entered
	aboveDead := alphaAbove < eps
	belowDead := scalar.EqualWithinAbs(alphaAbove, muAll, eps)

	// descend into the side backed by the larger part of the family
	goAbove := len(famAbove) >= len(famBelow)
	if goAbove && aboveDead {
		goAbove = false
	} else if !goAbove && belowDead {
		goAbove = true
	}
	if (goAbove && aboveDead) || (!goAbove && belowDead) {
		return
	}

	if goAbove {
		ctx.explore(famAbove, p+1, above, indexSet, S.extended(ComponentBound{
			Component: cb.Component,
			compIndex: cb.compIndex,
			Sense:     GreaterEqual,
			Bound:     cb.Bound,
		}))
		return
	}

	ctx.explore(famBelow, p+1, below, indexSet, S.extended(ComponentBound{
		Component: cb.Component,
		compIndex: cb.compIndex,
		Sense:     LessThan,
		Bound:     cb.Bound,
	}))
}
