package genbranch

import (
	"gonum.org/v1/gonum/floats/scalar"
)

// column is the per-invocation view of one fractional master variable: its
// weight in the current LP solution and its dense generator vector over the
// invocation's union of original variables.
// Columns are created fresh for each branching invocation and discarded once
// the child nodes have been built.
type column struct {
	source *MasterColumn

	// current LP value of the master variable
	weight float64

	// dense coefficients over the generator union, with a parallel flag
	// marking which components belong to discrete original variables
	generator []float64
	discrete  []bool
}

// blockVarUnion builds the union of original variables appearing in any
// master column of the given block, skipping the column passed as skip (nil
// to include all). The parallel bool slice marks each union entry as
// discrete unless the underlying variable is continuous or semi-continuous.
//
// Linking policy: a column whose Block differs from block contributes
// nothing to the union, and its entries are never consulted again. Columns
// spanning multiple blocks therefore participate only through the block they
// are assigned to.
func blockVarUnion(block int, columns []*MasterColumn, skip *MasterColumn) ([]*OrigVar, []bool) {
	var union []*OrigVar
	var discrete []bool

	for _, col := range columns {
		if col == skip || col.Block != block {
			continue
		}
		for _, e := range col.Entries {
			if containsVar(union, e.Var) {
				continue
			}
			union = append(union, e.Var)
			discrete = append(discrete, e.Var.Type.discrete())
		}
	}

	return union, discrete
}

func containsVar(vars []*OrigVar, v *OrigVar) bool {
	for _, u := range vars {
		if u == v {
			return true
		}
	}
	return false
}

// overlayGenerator projects the target column onto the union: every union
// entry starts at 0, the target's own coefficients are overlaid onto the
// matching entries, and an entry is marked non-discrete when its variable is
// continuous. Entries of the target on variables outside the union are
// dropped. The discreteness slice is copied, never mutated in place.
func overlayGenerator(union []*OrigVar, discrete []bool, target *MasterColumn) ([]float64, []bool) {
	gen := make([]float64, len(union))
	disc := make([]bool, len(discrete))
	copy(disc, discrete)

	for _, e := range target.Entries {
		for i, v := range union {
			if v != e.Var {
				continue
			}
			if v.Type == Continuous {
				disc[i] = false
			}
			// a zero coefficient keeps the initialized entry
			if !scalar.EqualWithinAbs(e.Coef, 0, eps) {
				gen[i] = e.Coef
			}
			break
		}
	}

	return gen, disc
}

// extractGenerator computes the generator vector of target over the union of
// original variables of the remaining columns of its block. Side-effect free
// and deterministic: two calls with identical inputs yield identical vectors.
//
// The resulting positions are relative to a union that excludes the target,
// so vectors of different targets are not positionally comparable. Callers
// that need one index space across several columns, like the branching
// driver, build a single union with blockVarUnion(block, cols, nil) and
// overlay each column onto it instead.
func extractGenerator(block int, columns []*MasterColumn, target *MasterColumn) ([]float64, []bool) {
	union, discrete := blockVarUnion(block, columns, target)
	return overlayGenerator(union, discrete, target)
}

// totalWeight sums the LP values of the columns.
func totalWeight(cols []*column) float64 {
	total := 0.0
	for _, c := range cols {
		total += c.weight
	}
	return total
}

// aggregate computes alpha_i, the weighted sum of the columns' generator
// entries at component i.
func aggregate(cols []*column, i int) float64 {
	alpha := 0.0
	for _, c := range cols {
		alpha += c.generator[i] * c.weight
	}
	return alpha
}

// genValues collects the generator entries of the columns at component i.
func genValues(cols []*column, i int) []float64 {
	vals := make([]float64, len(cols))
	for j, c := range cols {
		vals[j] = c.generator[i]
	}
	return vals
}

// partitionColumns splits cols into the subset with generator entry at or
// above bound at component i and the subset strictly below it. Fresh slices;
// cols is never reordered.
func partitionColumns(cols []*column, i int, bound float64) (above, below []*column) {
	for _, c := range cols {
		if c.generator[i] > bound-eps {
			above = append(above, c)
		} else {
			below = append(below, c)
		}
	}
	return above, below
}
