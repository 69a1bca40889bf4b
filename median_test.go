package genbranch

import (
	"testing"
)

func Test_selectIndex(t *testing.T) {
	type args struct {
		values []float64
		k      int
	}
	tests := []struct {
		name string
		args args
		want float64
	}{
		{
			name: "single element",
			args: args{
				values: []float64{3},
				k:      0,
			},
			want: 3,
		},
		{
			name: "smallest of three",
			args: args{
				values: []float64{3, 1, 2},
				k:      0,
			},
			want: 1,
		},
		{
			name: "middle of three",
			args: args{
				values: []float64{3, 1, 2},
				k:      1,
			},
			want: 2,
		},
		{
			name: "largest of three",
			args: args{
				values: []float64{3, 1, 2},
				k:      2,
			},
			want: 3,
		},
		{
			name: "duplicates",
			args: args{
				values: []float64{2, 2, 1, 2},
				k:      2,
			},
			want: 2,
		},
		{
			name: "already sorted",
			args: args{
				values: []float64{1, 2, 3, 4, 5},
				k:      3,
			},
			want: 4,
		},
		{
			name: "reverse sorted",
			args: args{
				values: []float64{5, 4, 3, 2, 1},
				k:      1,
			},
			want: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := selectIndex(tt.args.values, tt.args.k); got != tt.want {
				t.Errorf("selectIndex() = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_medianOf(t *testing.T) {
	type args struct {
		values []float64
		min    float64
	}
	tests := []struct {
		name string
		args args
		want float64
	}{
		{
			name: "even count takes the upper middle",
			args: args{
				values: []float64{1, 2, 3, 4},
				min:    1,
			},
			want: 3,
		},
		{
			name: "odd count takes the lower middle, guard promotes it off the minimum",
			args: args{
				values: []float64{1, 2, 3},
				min:    1,
			},
			// index 0 selects the minimum, so the ceiled mean is used
			want: 2,
		},
		{
			name: "guard triggers on non-constant values",
			args: args{
				values: []float64{0, 0, 1},
				min:    0,
			},
			want: 1,
		},
		{
			name: "constant values stay at the minimum",
			args: args{
				values: []float64{2, 2, 2},
				min:    2,
			},
			want: 2,
		},
		{
			name: "even count off the minimum needs no guard",
			args: args{
				values: []float64{0, 1},
				min:    0,
			},
			want: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := medianOf(tt.args.values, tt.args.min); got != tt.want {
				t.Errorf("medianOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

// the degeneracy guard must keep the median off the minimum whenever the
// values are not constant
func Test_medianOf_degeneracyGuard(t *testing.T) {
	cases := [][]float64{
		{0, 1},
		{0, 0, 1},
		{0, 0, 0, 5},
		{1, 1, 2, 2},
		{-3, -3, -1},
	}
	for _, values := range cases {
		min := values[0]
		for _, v := range values {
			if v < min {
				min = v
			}
		}
		if got := medianOf(append([]float64(nil), values...), min); got == min {
			t.Errorf("medianOf(%v, %v) returned the minimum", values, min)
		}
	}
}
