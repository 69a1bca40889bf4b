package genbranch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemTree(t *testing.T) {

	tree := NewMemTree()
	assert.Equal(t, 1, tree.Len())
	assert.Empty(t, tree.Children(tree.Root()))

	a := tree.CreateChild(tree.Root())
	b := tree.CreateChild(tree.Root())
	c := tree.CreateChild(a)

	assert.Equal(t, 4, tree.Len())
	assert.Equal(t, []NodeID{a, b}, tree.Children(tree.Root()))
	assert.Equal(t, []NodeID{c}, tree.Children(a))

	data := &BranchData{Block: 1, Rhs: 2}
	tree.AttachBranchData(a, data)

	require.NotNil(t, tree.Data(a))
	assert.Equal(t, data, tree.Data(a))
	assert.Nil(t, tree.Data(b))

	assert.Panics(t, func() { tree.CreateChild(NodeID(99)) })
	assert.Panics(t, func() { tree.AttachBranchData(NodeID(99), data) })
}
