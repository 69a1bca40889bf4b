package genbranch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_chooseSequence(t *testing.T) {

	x := &OrigVar{Name: "x", Type: Integer}

	short := Sequence{{Component: x, Sense: GreaterEqual, Bound: 1}}
	long := Sequence{
		{Component: x, Sense: GreaterEqual, Bound: 1},
		{Component: x, Sense: LessThan, Bound: 3},
	}

	r := &record{}
	r.add(long)
	r.add(short)
	r.add(long)

	got, err := chooseSequence(r)
	require.NoError(t, err)
	assert.Equal(t, short, got)
}

func Test_chooseSequence_emptyRecord(t *testing.T) {
	_, err := chooseSequence(&record{})
	assert.Error(t, err)
}

func Test_Sense_flip(t *testing.T) {
	assert.Equal(t, LessThan, GreaterEqual.flip())
	assert.Equal(t, GreaterEqual, LessThan.flip())
	assert.Equal(t, ">=", GreaterEqual.String())
	assert.Equal(t, "<", LessThan.String())
}

func Test_ComponentBound_admits(t *testing.T) {

	x := &OrigVar{Name: "x", Type: Integer}

	ge := ComponentBound{Component: x, compIndex: 0, Sense: GreaterEqual, Bound: 2}
	lt := ComponentBound{Component: x, compIndex: 0, Sense: LessThan, Bound: 2}

	assert.True(t, ge.admits([]float64{2}))
	assert.True(t, ge.admits([]float64{3}))
	assert.False(t, ge.admits([]float64{1}))

	assert.False(t, lt.admits([]float64{2}))
	assert.True(t, lt.admits([]float64{1}))
}

func Test_Sequence_extended(t *testing.T) {

	x := &OrigVar{Name: "x", Type: Integer}
	y := &OrigVar{Name: "y", Type: Integer}

	base := Sequence{{Component: x, Sense: GreaterEqual, Bound: 1}}

	a := base.extended(ComponentBound{Component: y, Sense: GreaterEqual, Bound: 2})
	b := base.extended(ComponentBound{Component: y, Sense: LessThan, Bound: 5})

	// sibling extensions share the prefix without clobbering each other
	require.Len(t, base, 1)
	assert.Equal(t, y, a[1].Component)
	assert.Equal(t, GreaterEqual, a[1].Sense)
	assert.Equal(t, LessThan, b[1].Sense)
}
