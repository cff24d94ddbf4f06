// Package geom holds the geometry value types shared by the host surface
// and element views.
package geom

import "math"

// Rect is a measured rectangle in the host surface's global coordinate
// space. Fields are unrounded.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Right returns the right edge.
func (r Rect) Right() float64 {
	return r.Left + r.Width
}

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Top + r.Height
}

// Translate returns r shifted by dx, dy.
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Width: r.Width, Height: r.Height}
}

// BBox is an integer-rounded box describing an element's position relative
// to its parent. The zero value is the empty box.
type BBox struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewBBox rounds each field to the nearest integer. Halves round toward
// positive infinity, so -2.5 becomes -2, matching JavaScript Math.round.
func NewBBox(left, top, width, height float64) BBox {
	return BBox{
		Left:   round(left),
		Top:    round(top),
		Width:  round(width),
		Height: round(height),
	}
}

// BBoxFromRect rounds a measured rectangle.
func BBoxFromRect(r Rect) BBox {
	return NewBBox(r.Left, r.Top, r.Width, r.Height)
}

// IsEmpty reports whether b is the zero box.
func (b BBox) IsEmpty() bool {
	return b == BBox{}
}

// Right returns the right edge.
func (b BBox) Right() int {
	return b.Left + b.Width
}

// Bottom returns the bottom edge.
func (b BBox) Bottom() int {
	return b.Top + b.Height
}

// Rect converts b back to a float rectangle.
func (b BBox) Rect() Rect {
	return Rect{
		Left:   float64(b.Left),
		Top:    float64(b.Top),
		Width:  float64(b.Width),
		Height: float64(b.Height),
	}
}

func round(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(math.Floor(v + 0.5))
}
