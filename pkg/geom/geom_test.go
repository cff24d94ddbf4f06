package geom

import (
	"math"
	"testing"
)

func TestNewBBoxRounds(t *testing.T) {
	tests := []struct {
		name string
		in   [4]float64
		want BBox
	}{
		{"integral", [4]float64{1, 2, 3, 4}, BBox{1, 2, 3, 4}},
		{"down", [4]float64{1.2, 2.4, 3.49, 4.1}, BBox{1, 2, 3, 4}},
		{"up", [4]float64{1.5, 2.6, 119.7, 39.5}, BBox{2, 3, 120, 40}},
		{"negative offsets", [4]float64{-10.6, -0.4, 5, 5}, BBox{-11, 0, 5, 5}},
		{"negative halves round up", [4]float64{-2.5, -0.5, 5, 5}, BBox{-2, 0, 5, 5}},
		{"not finite", [4]float64{math.NaN(), math.Inf(1), 1, 1}, BBox{0, 0, 1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewBBox(tt.in[0], tt.in[1], tt.in[2], tt.in[3])
			if got != tt.want {
				t.Errorf("NewBBox(%v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestBBoxZeroValue(t *testing.T) {
	var b BBox
	if !b.IsEmpty() {
		t.Error("zero BBox should be empty")
	}
	if (BBox{Width: 1}).IsEmpty() {
		t.Error("non-zero BBox should not be empty")
	}
	if NewBBox(0.2, 0.3, 0.4, 0.1) != (BBox{}) {
		t.Error("sub-half values should round to the empty box")
	}
}

func TestBBoxEdges(t *testing.T) {
	b := BBoxFromRect(Rect{Left: 10, Top: 20, Width: 30.4, Height: 40.6})
	if b.Right() != 40 || b.Bottom() != 61 {
		t.Errorf("edges = %d,%d, want 40,61", b.Right(), b.Bottom())
	}
	r := b.Rect()
	if r.Right() != 40 || r.Bottom() != 61 {
		t.Errorf("rect edges = %v,%v", r.Right(), r.Bottom())
	}
	if moved := r.Translate(-10, -20); moved.Left != 0 || moved.Top != 0 || moved.Width != 30 {
		t.Errorf("Translate = %+v", moved)
	}
}
