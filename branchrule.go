package genbranch

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// selectable block-selection heuristic options
type BlockHeuristic int

const (
	BLOCK_FIRST_FRACTIONAL BlockHeuristic = 0
	BLOCK_MOST_FRACTIONAL  BlockHeuristic = 1
)

// branching decisions observable through the middleware
type branchDecision string

const (
	fractionalComponentFound branchDecision = "component with fractional aggregated weight found"
	ancestorStructureReused  branchDecision = "ancestor bound structure extended at this node"
	childCreated             branchDecision = "child node and branching constraint created"
	childDominated           branchDecision = "child dominated by existing branching constraint"
	nodeCutOff               branchDecision = "all children dominated, node can be cut off"
)

// ErrNoBranchingCandidate is returned by the driver when no block has a
// fractional master variable. The caller should fall back to another
// branching rule; this is a precondition failure, not a branching result.
var ErrNoBranchingCandidate = errors.New("no fractional master variable to branch on")

// BranchRule implements Vanderbeck's generic branching scheme over the
// master columns of one decomposed problem.
type BranchRule struct {
	master Master
	tree   SearchTree

	// number of structural blocks
	blocks int

	heuristic  BlockHeuristic
	middleware branchMiddleware

	// anchor for children created at the search tree root, so that later
	// dominance walks can see the root generation
	rootData *BranchData
}

func NewBranchRule(master Master, tree SearchTree, blocks int) *BranchRule {
	return &BranchRule{
		master:     master,
		tree:       tree,
		blocks:     blocks,
		heuristic:  BLOCK_FIRST_FRACTIONAL,
		middleware: dummyMiddleware{},
	}
}

// SetBlockHeuristic selects how Branch picks the block to branch on.
func (rule *BranchRule) SetBlockHeuristic(h BlockHeuristic) {
	rule.heuristic = h
}

// SetMiddleware installs an observer for branching decisions.
func (rule *BranchRule) SetMiddleware(m branchMiddleware) {
	if m == nil {
		m = dummyMiddleware{}
	}
	rule.middleware = m
}

// BranchOutcome summarizes one successful branching decision.
type BranchOutcome struct {
	Block    int
	Sequence Sequence
	Children int

	// CutOff is set when every prospective child was dominated by existing
	// branching constraints: the node needs no children at all.
	CutOff bool
}

// Branch picks a block with fractional master variables and branches on it.
// Returns ErrNoBranchingCandidate when no such block exists.
func (rule *BranchRule) Branch(parentNode NodeID, parentData *BranchData) (BranchOutcome, error) {
	block := rule.selectBlock()
	if block < 0 {
		return BranchOutcome{}, ErrNoBranchingCandidate
	}
	return rule.BranchOnBlock(parentNode, parentData, block)
}

// BranchOnBlock runs the full separation pipeline for one block: collect the
// fractional columns F, assemble the ancestor family C, sort, separate or
// explore, choose one sequence, and materialize the children.
func (rule *BranchRule) BranchOnBlock(parentNode NodeID, parentData *BranchData, block int) (BranchOutcome, error) {

	S, F, err := rule.runSeparation(parentData, block)
	if err != nil {
		return BranchOutcome{}, err
	}
	rule.middleware.ProcessDecision(block, fractionalComponentFound)

	log.WithFields(log.Fields{
		"block":      block,
		"fractional": len(F),
		"seqlen":     len(S),
	}).Debug("bound sequence chosen")

	created, err := rule.materializeChildren(parentNode, parentData, block, S, F)
	if err != nil {
		return BranchOutcome{}, errors.Wrapf(err, "materializing children on block %d", block)
	}

	outcome := BranchOutcome{
		Block:    block,
		Sequence: S,
		Children: created,
		CutOff:   created == 0,
	}
	if outcome.CutOff {
		rule.middleware.ProcessDecision(block, nodeCutOff)
		log.WithField("block", block).Info("all children dominated, node can be cut off")
	}

	return outcome, nil
}

// NumberOfChildNodes runs the separation for a block without creating nodes
// or constraints and reports how many children a subsequent BranchOnBlock
// would propose (before dominance pruning). A pre-check for committing to
// the decision.
func (rule *BranchRule) NumberOfChildNodes(parentData *BranchData, block int) (int, error) {
	S, _, err := rule.runSeparation(parentData, block)
	if err != nil {
		return 0, err
	}
	return len(S) + 1, nil
}

// runSeparation is the part of the branching pipeline shared by
// BranchOnBlock and NumberOfChildNodes: collect F, rebind the ancestor
// family, sort, separate or explore, and choose one sequence. It touches
// neither the master nor the tree.
func (rule *BranchRule) runSeparation(parentData *BranchData, block int) (Sequence, []*column, error) {

	F, union, discrete := rule.collectColumns(block)
	if len(F) == 0 {
		return nil, nil, ErrNoBranchingCandidate
	}

	fam := rebindFamily(AncestorFamily(parentData, block), &union, &discrete, F)

	sortColumns(F, fam)

	indexSet := make([]int, len(union))
	for i := range indexSet {
		indexSet[i] = i
	}

	ctx := &sepCtx{
		union:    union,
		discrete: discrete,
		rec:      &record{},
	}

	if len(fam) == 0 {
		ctx.separate(F, indexSet, nil)
	} else {
		rule.middleware.ProcessDecision(block, ancestorStructureReused)
		ctx.explore(fam, 1, F, indexSet, nil)
	}

	S, err := chooseSequence(ctx.rec)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "separation on block %d", block)
	}
	return S, F, nil
}

// rebindFamily maps ancestor component bounds onto this invocation's union.
// A bound stores the union position of the invocation that created it, and
// the union is rebuilt from the currently fractional columns, so positions
// shift between nodes. Components that no longer appear in any fractional
// column get a fresh union entry; every current generator is zero there, so
// the bound keeps its meaning. The stored ancestor sequences are never
// mutated, only copies are rebound.
func rebindFamily(fam Family, union *[]*OrigVar, discrete *[]bool, F []*column) Family {
	if len(fam) == 0 {
		return nil
	}

	pos := make(map[*OrigVar]int, len(*union))
	for i, v := range *union {
		pos[v] = i
	}

	rebound := make(Family, 0, len(fam))
	for _, s := range fam {
		rs := make(Sequence, len(s))
		for p, cb := range s {
			i, ok := pos[cb.Component]
			if !ok {
				i = len(*union)
				pos[cb.Component] = i
				*union = append(*union, cb.Component)
				*discrete = append(*discrete, cb.Component.Type.discrete())
				for _, c := range F {
					c.generator = append(c.generator, 0)
					c.discrete = append(c.discrete, cb.Component.Type.discrete())
				}
			}
			cb.compIndex = i
			rs[p] = cb
		}
		rebound = append(rebound, rs)
	}
	return rebound
}

// collectColumns builds the per-invocation column views for one block: the
// fractional master columns with their dense generators over a shared union.
// The union is built once over all columns of the block so that component
// indices agree across the whole of F.
func (rule *BranchRule) collectColumns(block int) ([]*column, []*OrigVar, []bool) {

	fractionalCols := rule.master.FractionalColumns(block)

	union, discrete := blockVarUnion(block, fractionalCols, nil)

	var F []*column
	for _, mc := range fractionalCols {
		if mc.Block != block || !fractional(mc.Value) {
			continue
		}
		gen, disc := overlayGenerator(union, discrete, mc)
		F = append(F, &column{
			source:    mc,
			weight:    mc.Value,
			generator: gen,
			discrete:  disc,
		})
	}

	return F, union, discrete
}

// selectBlock picks the block to branch on per the configured heuristic, or
// -1 when no block has a fractional column.
func (rule *BranchRule) selectBlock() int {

	switch rule.heuristic {

	case BLOCK_FIRST_FRACTIONAL:
		for b := 0; b < rule.blocks; b++ {
			if rule.hasFractional(b) {
				return b
			}
		}
		return -1

	case BLOCK_MOST_FRACTIONAL:
		best := -1
		bestCount := 0
		for b := 0; b < rule.blocks; b++ {
			count := 0
			for _, mc := range rule.master.FractionalColumns(b) {
				if mc.Block == b && fractional(mc.Value) {
					count++
				}
			}
			if count > bestCount {
				best = b
				bestCount = count
			}
		}
		return best

	default:
		panic("provided block heuristic config variable unknown")
	}
}

func (rule *BranchRule) hasFractional(block int) bool {
	for _, mc := range rule.master.FractionalColumns(block) {
		if mc.Block == block && fractional(mc.Value) {
			return true
		}
	}
	return false
}
