package genbranch

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// SimplexMaster is a reference implementation of the Master interface backed
// by the gonum simplex solver. It holds the restricted master LP in dense
// form: minimize c^T x subject to A x = b, G x <= h, x >= 0, with one master
// column per LP variable. Branching constraints registered through
// AddBranchConstraint become extra inequality rows while active.
//
// It exists so the branching rule is runnable and testable without an
// external column-generation code; it does no pricing.
type SimplexMaster struct {
	c []float64
	A *mat.Dense
	b []float64
	G *mat.Dense
	h []float64

	// one master column per LP variable, same order as c
	columns []*MasterColumn

	identical map[int]int

	branchRows []*branchRow

	// last solution, nil until Solve succeeds
	x []float64
}

func NewSimplexMaster(c []float64, A *mat.Dense, b []float64, G *mat.Dense, h []float64, columns []*MasterColumn) *SimplexMaster {
	if len(columns) != len(c) {
		panic("number of master columns not equal to number of LP variables")
	}
	if insane := sanityCheckDimensions(c, A, b, G, h); insane != nil {
		panic(insane)
	}

	return &SimplexMaster{
		c:         c,
		A:         A,
		b:         b,
		G:         G,
		h:         h,
		columns:   columns,
		identical: make(map[int]int),
	}
}

// SetIdenticalBlocks declares how many identical pricing problems are
// aggregated into a block. Unset blocks default to 1.
func (m *SimplexMaster) SetIdenticalBlocks(block, count int) {
	m.identical[block] = count
}

func (m *SimplexMaster) IdenticalBlocks(block int) int {
	if n, ok := m.identical[block]; ok {
		return n
	}
	return 1
}

// Solve runs the simplex on the current LP, including all active branching
// rows, and writes the solution values back onto the master columns.
func (m *SimplexMaster) Solve() error {

	G, h := m.combineConstraints()

	var x []float64
	var err error

	if G != nil {
		c, A, b := convertToEqualities(m.c, m.A, m.b, G, h)
		_, x, err = lp.Simplex(c, A, b, 0, nil)

		// take only the non-slack variables from the result
		if err == nil && len(x) > len(m.c) {
			x = x[:len(m.c)]
		}
	} else {
		_, x, err = lp.Simplex(m.c, m.A, m.b, 0, nil)
	}

	if err != nil {
		return errors.Wrap(err, "solving master relaxation")
	}

	m.x = x
	for i, col := range m.columns {
		col.Value = x[i]
	}

	return nil
}

func (m *SimplexMaster) FractionalColumns(block int) []*MasterColumn {
	var out []*MasterColumn
	for _, col := range m.columns {
		if col.Block == block && fractional(col.Value) {
			out = append(out, col)
		}
	}
	return out
}

func (m *SimplexMaster) AddBranchConstraint(name string, cols []*MasterColumn, rhs float64) (ConstraintHandle, error) {

	row := &branchRow{
		master: m,
		name:   name,
		rhs:    rhs,
	}

	for _, c := range cols {
		idx := m.columnIndex(c)
		if idx < 0 {
			return nil, errors.Errorf("constraint %s references a column unknown to this master", name)
		}
		row.vars = append(row.vars, idx)
	}

	m.branchRows = append(m.branchRows, row)
	return row, nil
}

func (m *SimplexMaster) columnIndex(c *MasterColumn) int {
	for i, col := range m.columns {
		if col == c {
			return i
		}
	}
	return -1
}

// Retrieve all inequalities of the current LP as a single G matrix and h
// vector: the original inequality rows plus one row per active branching
// constraint. A branching row sum(vars) >= rhs enters as -sum(vars) <= -rhs.
func (m *SimplexMaster) combineConstraints() (*mat.Dense, []float64) {

	var active []*branchRow
	for _, row := range m.branchRows {
		if row.active {
			active = append(active, row)
		}
	}

	if len(active) == 0 {
		if m.G == nil {
			return nil, nil
		}
		h := make([]float64, len(m.h))
		copy(h, m.h)
		return mat.DenseCopyOf(m.G), h
	}

	var h []float64
	h = append(h, m.h...)

	var rows []float64
	for _, row := range active {
		vect := make([]float64, len(m.c))
		for _, idx := range row.vars {
			vect[idx] = -1
		}
		rows = append(rows, vect...)
		h = append(h, -row.rhs)
	}
	branchG := mat.NewDense(len(active), len(m.c), rows)

	if m.G == nil {
		return branchG, h
	}

	origRows, _ := m.G.Dims()
	combined := mat.NewDense(origRows+len(active), len(m.c), nil)
	combined.Stack(m.G, branchG)

	return combined, h
}

// branchRow is the handle for one registered branching constraint.
// Activation only flips a flag; the row enters the LP on the next Solve.
type branchRow struct {
	master *SimplexMaster
	name   string
	vars   []int
	rhs    float64
	active bool
}

func (r *branchRow) Activate() error {
	r.active = true
	return nil
}

func (r *branchRow) Deactivate() error {
	r.active = false
	return nil
}

// Convert a problem with inequalities (G and h) to one with only nonnegative
// equalities by introducing slack variables, as expected by the simplex.
func convertToEqualities(c []float64, A *mat.Dense, b []float64, G *mat.Dense, h []float64) (cNew []float64, aNew *mat.Dense, bNew []float64) {

	if G == nil {
		panic("provided pointer to G matrix is nil")
	}
	if insane := sanityCheckDimensions(c, A, b, G, h); insane != nil {
		panic(insane)
	}

	nVar := len(c)
	nCons := len(b)
	nIneq := len(h)

	// one slack variable per inequality, zero objective coefficient
	cNew = make([]float64, nVar+nIneq)
	copy(cNew, c)

	bNew = make([]float64, nCons+nIneq)
	copy(bNew, b)
	copy(bNew[nCons:], h)

	aNew = mat.NewDense(nCons+nIneq, nVar+nIneq, nil)

	// embed the original A matrix in the top left part, if present
	if A != nil {
		aNew.Slice(0, nCons, 0, nVar).(*mat.Dense).Copy(A)
	}

	// embed G below it and set the slack indicators on the diagonal next to it
	aNew.Slice(nCons, nCons+nIneq, 0, nVar).(*mat.Dense).Copy(G)
	bottomRight := aNew.Slice(nCons, nCons+nIneq, nVar, nVar+nIneq).(*mat.Dense)
	for i := 0; i < nIneq; i++ {
		bottomRight.Set(i, i, 1)
	}

	return
}

// Sanity check for the LP dimensions.
func sanityCheckDimensions(c []float64, A *mat.Dense, b []float64, G *mat.Dense, h []float64) error {
	if G == nil && A == nil {
		return errors.New("no constraint matrices provided")
	}

	if G != nil {
		if h == nil {
			return errors.New("h vector is nil while G matrix is provided")
		}

		rG, cG := G.Dims()
		if rG != len(h) {
			return errors.New("number of rows in G matrix is not equal to length of h")
		}
		if cG != len(c) {
			return errors.New("number of columns in G matrix is not equal to number of variables")
		}
	}

	if h != nil && G == nil {
		return errors.New("G matrix is nil while h vector is provided")
	}

	if A != nil {
		rA, cA := A.Dims()
		if rA != len(b) {
			return errors.New("number of rows in A matrix is not equal to length of b")
		}
		if cA != len(c) {
			return errors.New("number of columns in A matrix is not equal to number of variables")
		}
	}

	if b != nil && A == nil {
		return errors.New("A matrix is nil while b vector is provided")
	}

	return nil
}
