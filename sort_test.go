package genbranch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_lexLess(t *testing.T) {
	type args struct {
		a []float64
		b []float64
	}
	tests := []struct {
		name string
		args args
		want bool
	}{
		{
			name: "larger first entry sorts first",
			args: args{
				a: []float64{1, 0},
				b: []float64{0, 1},
			},
			want: true,
		},
		{
			name: "smaller first entry sorts later",
			args: args{
				a: []float64{0, 1},
				b: []float64{1, 0},
			},
			want: false,
		},
		{
			name: "tie broken by later entry",
			args: args{
				a: []float64{1, 2},
				b: []float64{1, 1},
			},
			want: true,
		},
		{
			name: "equal vectors",
			args: args{
				a: []float64{1, 1},
				b: []float64{1, 1},
			},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lexLess(&column{generator: tt.args.a}, &column{generator: tt.args.b})
			if got != tt.want {
				t.Errorf("lexLess() = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_sortColumns_plain(t *testing.T) {

	a := &column{generator: []float64{0, 1}}
	b := &column{generator: []float64{2, 0}}
	c := &column{generator: []float64{2, 3}}

	cols := []*column{a, b, c}
	sortColumns(cols, nil)

	// descending lexicographic: c before b before a
	assert.Equal(t, []*column{c, b, a}, cols)
}

func Test_sortColumns_induced(t *testing.T) {

	x := &OrigVar{Name: "x", Type: Integer}
	y := &OrigVar{Name: "y", Type: Integer}

	fam := Family{
		Sequence{{Component: x, compIndex: 0, Sense: GreaterEqual, Bound: 1}},
		Sequence{
			{Component: x, compIndex: 0, Sense: LessThan, Bound: 1},
			{Component: y, compIndex: 1, Sense: GreaterEqual, Bound: 2},
		},
	}

	// a falls below the probed bound, b at or above it: the comparison
	// diverges immediately and raw coefficient order decides
	a := &column{generator: []float64{0, 5}}
	b := &column{generator: []float64{2, 0}}
	cols := []*column{a, b}
	sortColumns(cols, fam)
	assert.Equal(t, []*column{b, a}, cols)

	// both on the same side: recursion restricts the family to one member
	// and falls back to the lexicographic comparator
	c := &column{generator: []float64{2, 5}}
	d := &column{generator: []float64{3, 0}}
	cols = []*column{c, d}
	sortColumns(cols, fam)
	assert.Equal(t, []*column{d, c}, cols)
}

func Test_familyMemberCovering(t *testing.T) {

	x := &OrigVar{Name: "x", Type: Integer}

	fam := Family{
		Sequence{{Component: x, compIndex: 0, Sense: GreaterEqual, Bound: 1}},
		Sequence{
			{Component: x, compIndex: 0, Sense: LessThan, Bound: 1},
			{Component: x, compIndex: 0, Sense: GreaterEqual, Bound: 3},
		},
	}

	assert.Equal(t, 0, familyMemberCovering(fam, 1))
	assert.Equal(t, 1, familyMemberCovering(fam, 2))
	assert.Equal(t, -1, familyMemberCovering(fam, 3))
}

func Test_restrictFamily(t *testing.T) {

	x := &OrigVar{Name: "x", Type: Integer}
	y := &OrigVar{Name: "y", Type: Integer}

	ge := Sequence{{Component: x, compIndex: 0, Sense: GreaterEqual, Bound: 1}}
	lt := Sequence{{Component: x, compIndex: 0, Sense: LessThan, Bound: 1}}
	other := Sequence{{Component: y, compIndex: 1, Sense: GreaterEqual, Bound: 1}}

	fam := Family{ge, lt, other}

	cb := ComponentBound{Component: x, compIndex: 0, Sense: GreaterEqual, Bound: 1}

	restricted := restrictFamily(fam, 1, cb, GreaterEqual)
	assert.Equal(t, Family{ge}, restricted)

	restricted = restrictFamily(fam, 1, cb, LessThan)
	assert.Equal(t, Family{lt}, restricted)

	// the input family is never mutated
	assert.Equal(t, 3, len(fam))
}
