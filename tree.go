package genbranch

// MemTree is an in-memory SearchTree for callers without an external tree
// layer, and the fixture the package's own tests run against.
// This code should not contain branching business logic to ensure loose
// coupling: it only stores parent/child structure and the attached branch
// data.
type MemTree struct {
	nodes map[NodeID]*treeNode
	next  NodeID
}

type treeNode struct {
	id       NodeID
	parent   NodeID
	children []NodeID
	data     *BranchData
}

// NewMemTree creates a tree holding only the root node.
func NewMemTree() *MemTree {
	t := &MemTree{
		nodes: make(map[NodeID]*treeNode),
		next:  1,
	}
	t.nodes[0] = &treeNode{id: 0, parent: -1}
	return t
}

// Root returns the id of the root node.
func (t *MemTree) Root() NodeID {
	return 0
}

func (t *MemTree) CreateChild(parent NodeID) NodeID {
	p, ok := t.nodes[parent]
	if !ok {
		panic("parent node does not exist in this tree")
	}

	id := t.next
	t.next++

	t.nodes[id] = &treeNode{id: id, parent: parent}
	p.children = append(p.children, id)

	return id
}

func (t *MemTree) AttachBranchData(node NodeID, data *BranchData) {
	n, ok := t.nodes[node]
	if !ok {
		panic("node does not exist in this tree")
	}
	n.data = data
}

// Data returns the branch data attached to a node, or nil.
func (t *MemTree) Data(node NodeID) *BranchData {
	n, ok := t.nodes[node]
	if !ok {
		return nil
	}
	return n.data
}

// Children returns the ids of a node's children.
func (t *MemTree) Children(node NodeID) []NodeID {
	n, ok := t.nodes[node]
	if !ok {
		return nil
	}
	out := make([]NodeID, len(n.children))
	copy(out, n.children)
	return out
}

// Len returns the number of nodes in the tree.
func (t *MemTree) Len() int {
	return len(t.nodes)
}
