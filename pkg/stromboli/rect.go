package stromboli

import "math"

// Rect is an axis-aligned rectangle in caller-defined coordinate units.
// Y increases downward, matching screen coordinates. No constraint is
// placed on the sign of any field.
type Rect struct {
	X      float64 `toml:"x" json:"x"`
	Y      float64 `toml:"y" json:"y"`
	Width  float64 `toml:"width" json:"width"`
	Height float64 `toml:"height" json:"height"`
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (x, y float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// DistanceTo returns the euclidean distance from the rectangle's center
// to the given point.
func (r Rect) DistanceTo(x, y float64) float64 {
	cx, cy := r.Center()
	return math.Hypot(cx-x, cy-y)
}
