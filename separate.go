package genbranch

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// sepCtx carries the per-invocation constants of one separation run: the
// generator union, its discreteness flags, and the candidate record being
// filled. The recursion itself only ever hands fresh column and index
// subsets downward; nothing owned by a sibling call is ever touched.
type sepCtx struct {
	union    []*OrigVar
	discrete []bool
	rec      *record
}

// separate is the root-level recursive partitioning. It either finds one or
// more components whose aggregated weight over F is already fractional, in
// which case each yields a complete candidate sequence, or it splits F at
// the weighted median of the highest-priority discriminating component and
// recurses into both non-empty halves.
//
// Every recursive call strictly shrinks F or the index set, so the recursion
// terminates.
func (ctx *sepCtx) separate(F []*column, indexSet []int, S Sequence) {

	// base case
	if len(F) == 0 || len(indexSet) == 0 {
		return
	}

	muAll := totalWeight(F)

	// fractionality scan: any component with fractional aggregated weight
	// suffices on its own. All such components are recorded, not just the
	// first: they yield candidates of equal minimal length.
	found := false
	for _, i := range indexSet {
		if !ctx.discrete[i] {
			continue
		}
		if !fractional(aggregate(F, i)) {
			continue
		}
		bound, ok := discriminatingBound(F, i)
		if !ok {
			// no integer-offset bound near the median separates this
			// component; leave it to the partition path below
			continue
		}
		found = true
		ctx.rec.add(S.extended(ComponentBound{
			Component: ctx.union[i],
			compIndex: i,
			Sense:     GreaterEqual,
			Bound:     bound,
		}))
	}
	if found {
		return
	}

	// discriminating set: components whose aggregate lies strictly between 0
	// and the total weight, so a split on them separates something.
	var J []int
	for _, i := range indexSet {
		if !ctx.discrete[i] {
			continue
		}
		alpha := aggregate(F, i)
		if alpha > eps && alpha < muAll-eps {
			J = append(J, i)
		}
	}
	if len(J) == 0 {
		return
	}

	// priority partition: take the remaining component of maximal generator
	// range; a median stuck at the component's minimum cannot split F, so
	// such components are dropped and the next one is tried.
	winner := -1
	var winnerMedian float64
	for len(J) > 0 {
		best := maxRangeIndex(F, J)
		i := J[best]

		vals := genValues(F, i)
		min := floats.Min(vals)
		median := medianOf(vals, min)

		if scalar.EqualWithinAbs(median, min, eps) {
			J = dropIndex(J, best)
			continue
		}

		winner = i
		winnerMedian = median
		J = dropIndex(J, best)
		break
	}
	if winner < 0 {
		return
	}

	// recurse into both non-empty sides. Recursing into only the smaller
	// side can miss every discriminating sequence on the other one.
	above, below := partitionColumns(F, winner, winnerMedian)

	if len(above) > 0 {
		ctx.separate(above, J, S.extended(ComponentBound{
			Component: ctx.union[winner],
			compIndex: winner,
			Sense:     GreaterEqual,
			Bound:     winnerMedian,
		}))
	}
	if len(below) > 0 {
		ctx.separate(below, J, S.extended(ComponentBound{
			Component: ctx.union[winner],
			compIndex: winner,
			Sense:     LessThan,
			Bound:     winnerMedian,
		}))
	}
}

// discriminatingBound computes the median of F's generator entries at
// component i, then nudges it in alternating integer steps (down 1, up 2,
// down 3, ...) until the weight of the columns at or above it is fractional.
// A bound whose at-or-above weight is already integral would not separate
// the fractional point. Reports false once the walk has stepped past the
// generator range on both sides, where the at-or-above weight can only ever
// be 0 or the full total.
func discriminatingBound(F []*column, i int) (float64, bool) {
	vals := genValues(F, i)
	min := floats.Min(vals)
	span := floats.Max(vals) - min
	median := medianOf(vals, min)

	step := 1.0
	down := true
	for {
		muF := 0.0
		for _, c := range F {
			if c.generator[i] > median-eps {
				muF += c.weight
			}
		}
		if fractional(muF) {
			return median, true
		}

		if step > span+2 {
			return 0, false
		}

		if down {
			median -= step
		} else {
			median += step
		}
		down = !down
		step++
	}
}

// maxRangeIndex returns the position within J of the component with the
// largest generator range (max entry minus min entry) over F.
func maxRangeIndex(F []*column, J []int) int {
	best := 0
	bestRange := -1.0
	for pos, i := range J {
		vals := genValues(F, i)
		r := floats.Max(vals) - floats.Min(vals)
		if r > bestRange {
			best = pos
			bestRange = r
		}
	}
	return best
}

// dropIndex returns J without the element at position pos, leaving J itself
// intact for the caller's siblings.
func dropIndex(J []int, pos int) []int {
	out := make([]int, 0, len(J)-1)
	out = append(out, J[:pos]...)
	out = append(out, J[pos+1:]...)
	return out
}
