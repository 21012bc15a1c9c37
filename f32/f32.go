// SPDX-License-Identifier: Unlicense OR MIT

/*
Package f32 is a float32 point type for pointer coordinates and
the vectors between them.

The coordinate space is the host's screen space. Hosts only deliver
planar input, so there is no third component.
*/
package f32

import "strconv"

// A Point is a two dimensional point or vector. The zero
// value is the origin.
type Point struct {
	X, Y float32
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Add return the point p+p2.
func (p Point) Add(p2 Point) Point {
	return Point{X: p.X + p2.X, Y: p.Y + p2.Y}
}

// Sub returns the vector p-p2.
func (p Point) Sub(p2 Point) Point {
	return Point{X: p.X - p2.X, Y: p.Y - p2.Y}
}

// IsZero reports whether p is the zero vector.
func (p Point) IsZero() bool {
	return p == Point{}
}

func (p Point) String() string {
	return "(" + strconv.FormatFloat(float64(p.X), 'f', -1, 32) +
		"," + strconv.FormatFloat(float64(p.Y), 'f', -1, 32) + ")"
}
