package genbranch

import (
	"sort"

	"gonum.org/v1/gonum/floats/scalar"
)

// sortColumns totally orders the candidate columns before separation.
// Without ancestor constraints the order is plain descending lexicographic on
// the generator vectors. With a non-empty family the induced comparator is
// used, which first groups columns consistently with the already-imposed
// ancestor restrictions and only then falls back to raw coefficient order.
func sortColumns(cols []*column, fam Family) {
	if len(fam) == 0 {
		sort.SliceStable(cols, func(a, b int) bool {
			return lexLess(cols[a], cols[b])
		})
		return
	}

	sort.SliceStable(cols, func(a, b int) bool {
		return inducedLess(cols[a], cols[b], fam, 1)
	})
}

// lexLess compares generator vectors entrywise in union order, descending:
// the first strictly larger entry sorts its column first.
func lexLess(a, b *column) bool {
	for i := range a.generator {
		if a.generator[i] > b.generator[i]+eps {
			return true
		}
		if b.generator[i] > a.generator[i]+eps {
			return false
		}
	}
	return false
}

// inducedLess compares two columns through the family structure at recursion
// depth p. When both columns fall on the same side of the family's bound at
// position p-1, the comparison recurses into the family members consistent
// with that side; on divergence, or once at most one member remains, the
// plain lexicographic comparator decides.
func inducedLess(a, b *column, fam Family, p int) bool {
	if len(fam) <= 1 {
		return lexLess(a, b)
	}

	k := familyMemberCovering(fam, p)
	if k < 0 {
		return lexLess(a, b)
	}
	cb := fam[k][p-1]

	aAbove := a.generator[cb.compIndex] > cb.Bound-eps
	bAbove := b.generator[cb.compIndex] > cb.Bound-eps
	if aAbove != bAbove {
		return lexLess(a, b)
	}

	side := LessThan
	if aAbove {
		side = GreaterEqual
	}

	return inducedLess(a, b, restrictFamily(fam, p, cb, side), p+1)
}

// familyMemberCovering returns the index of the first family member whose
// sequence reaches position p, or -1 if none does. Probing the first member
// keeps the sorter and the explorer aligned on the same structure.
func familyMemberCovering(fam Family, p int) int {
	for k, s := range fam {
		if len(s) >= p {
			return k
		}
	}
	return -1
}

// restrictFamily keeps the members that restrict cb's component with cb's
// bound at position p-1 using the given sense. The input family is never
// mutated; callers on different recursion branches share it.
func restrictFamily(fam Family, p int, cb ComponentBound, side Sense) Family {
	var out Family
	for _, s := range fam {
		if len(s) < p {
			continue
		}
		at := s[p-1]
		if at.Component == cb.Component && at.Sense == side && scalar.EqualWithinAbs(at.Bound, cb.Bound, eps) {
			out = append(out, s)
		}
	}
	return out
}
