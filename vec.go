package textmesh

import "math"

// Vec2 is a 2D vector in cursor space. It is used both for positions
// and for displacements such as glyph offsets and advances.
type Vec2 struct {
	X, Y float32
}

// V2 is a convenience function to create a Vec2.
func V2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns the sum of two vectors.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{X: v.X + w.X, Y: v.Y + w.Y}
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{X: v.X - w.X, Y: v.Y - w.Y}
}

// Mul returns the vector scaled by a scalar.
func (v Vec2) Mul(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Lerp performs linear interpolation between two vectors.
// t=0 returns v, t=1 returns w.
func (v Vec2) Lerp(w Vec2, t float32) Vec2 {
	return Vec2{
		X: v.X + (w.X-v.X)*t,
		Y: v.Y + (w.Y-v.Y)*t,
	}
}

// maxVec returns the component-wise maximum of two vectors.
func maxVec(v, w Vec2) Vec2 {
	return Vec2{X: max(v.X, w.X), Y: max(v.Y, w.Y)}
}

// minVec returns the component-wise minimum of two vectors.
func minVec(v, w Vec2) Vec2 {
	return Vec2{X: min(v.X, w.X), Y: min(v.Y, w.Y)}
}

// Rect is an axis-aligned bounding rectangle given by its min and max
// corners. The zero value is the degenerate rectangle at the origin,
// which acts as the identity for Join.
type Rect struct {
	Min, Max Vec2
}

// RectFromSize creates a rectangle from a min corner and a size.
func RectFromSize(min, size Vec2) Rect {
	return Rect{Min: min, Max: min.Add(size)}
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() float32 { return r.Max.X - r.Min.X }

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() float32 { return r.Max.Y - r.Min.Y }

// Left returns the X coordinate of the left edge.
func (r Rect) Left() float32 { return r.Min.X }

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float32 { return r.Max.X }

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float32 { return r.Min.Y }

// Top returns the Y coordinate of the top edge.
func (r Rect) Top() float32 { return r.Max.Y }

// CenterX returns the X coordinate of the rectangle center.
func (r Rect) CenterX() float32 { return (r.Min.X + r.Max.X) / 2 }

// CenterY returns the Y coordinate of the rectangle center.
func (r Rect) CenterY() float32 { return (r.Min.Y + r.Max.Y) / 2 }

// IsDegenerate reports whether the rectangle has its min and max
// corners coincident.
func (r Rect) IsDegenerate() bool { return r.Min == r.Max }

// Join returns the union of two rectangles. A degenerate rectangle is
// treated as empty and acts as the identity, so accumulating a bound
// from the zero Rect never drags the origin into the result.
func (r Rect) Join(s Rect) Rect {
	if r.IsDegenerate() {
		return s
	}
	if s.IsDegenerate() {
		return r
	}
	return Rect{Min: minVec(r.Min, s.Min), Max: maxVec(r.Max, s.Max)}
}

// Translated returns the rectangle shifted by v.
func (r Rect) Translated(v Vec2) Rect {
	return Rect{Min: r.Min.Add(v), Max: r.Max.Add(v)}
}

// Contains reports whether s lies fully inside r (edges included).
func (r Rect) Contains(s Rect) bool {
	return s.Min.X >= r.Min.X && s.Min.Y >= r.Min.Y &&
		s.Max.X <= r.Max.X && s.Max.Y <= r.Max.Y
}

// roundf rounds to the nearest whole unit, halves away from zero.
func roundf(x float32) float32 {
	return float32(math.Round(float64(x)))
}
