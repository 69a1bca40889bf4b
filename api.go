package genbranch

// VarType describes the domain of an original problem variable.
type VarType int

const (
	Binary VarType = iota
	Integer
	ImpliedInteger
	Continuous
	SemiContinuous
)

// discrete reports whether a bound on this variable type can be enforced by
// an integer split of its generator entries.
func (t VarType) discrete() bool {
	return t != Continuous && t != SemiContinuous
}

// OrigVar is one variable of the original (pre-decomposition) problem.
// Identity of the pointer is significant: component bounds and generator
// unions refer to original variables by pointer, never by a dense index.
type OrigVar struct {
	Name string
	Type VarType
}

// ColEntry is the coefficient of a master column on one original variable.
type ColEntry struct {
	Var  *OrigVar
	Coef float64
}

// MasterColumn is one variable of the master problem: a column generated for
// a single structural block, with its coefficients on the original variables
// and its value in the current LP relaxation.
type MasterColumn struct {
	Name    string
	Block   int
	Value   float64
	Entries []ColEntry
}

// ConstraintHandle is the external LP layer's reference to a registered
// branching constraint. The constraint is added to the LP when the owning
// tree node is entered and removed when the search backtracks past it.
type ConstraintHandle interface {
	Activate() error
	Deactivate() error
}

// NodeID identifies a node of the external search tree.
type NodeID int64

// Master is the view of the master LP required by the branching rule.
// The implementation owns the LP; the rule only queries fractional columns
// and registers new constraints.
type Master interface {
	// FractionalColumns returns the master columns of the given block whose
	// current LP value is not integral.
	FractionalColumns(block int) []*MasterColumn

	// IdenticalBlocks returns the number of identical pricing problems
	// aggregated into the given block.
	IdenticalBlocks(block int) int

	// AddBranchConstraint registers the constraint sum(cols) >= rhs with the
	// LP layer and returns a handle for activation bookkeeping.
	AddBranchConstraint(name string, cols []*MasterColumn, rhs float64) (ConstraintHandle, error)
}

// SearchTree is the view of the branch-and-bound tree required by the
// branching rule.
type SearchTree interface {
	CreateChild(parent NodeID) NodeID
	AttachBranchData(node NodeID, data *BranchData)
}

// Decomposition collects the original variables and master columns of a
// decomposed problem. It is a convenience builder for assembling the inputs
// of the branching rule; the Master implementation may equally construct
// MasterColumn values directly.
type Decomposition struct {
	Variables []*OrigVar
	Columns   []*MasterColumn

	nblocks int
}

func NewDecomposition() Decomposition {
	return Decomposition{}
}

// AddVariable declares an original variable and returns a reference to it.
func (d *Decomposition) AddVariable(name string, vtype VarType) *OrigVar {

	v := OrigVar{
		Name: name,
		Type: vtype,
	}

	d.Variables = append(d.Variables, &v)

	return &v
}

// AddColumn declares a master column on a block with its LP value and its
// coefficients on original variables.
func (d *Decomposition) AddColumn(name string, block int, value float64, entries []ColEntry) *MasterColumn {
	if block < 0 {
		panic("block number must be non-negative")
	}

	for _, e := range entries {
		if !d.checkEntry(e) {
			panic("provided entry contains an original variable that has not been declared to this decomposition yet")
		}
	}

	col := MasterColumn{
		Name:    name,
		Block:   block,
		Value:   value,
		Entries: entries,
	}

	d.Columns = append(d.Columns, &col)

	if block+1 > d.nblocks {
		d.nblocks = block + 1
	}

	return &col
}

// Check whether the entry is legal considering the variables currently
// declared to this decomposition.
func (d *Decomposition) checkEntry(e ColEntry) bool {

	// check whether the pointer to the variable provided is currently included in the decomposition
	for _, v := range d.Variables {
		if v == e.Var {
			return true
		}
	}

	return false

}

// Blocks returns the number of structural blocks seen so far.
func (d *Decomposition) Blocks() int {
	return d.nblocks
}
