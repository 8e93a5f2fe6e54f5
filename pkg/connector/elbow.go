package connector

import "math"

// CornerRadius is the radius of the elbow turns.
const CornerRadius = 8.0

// Elbow returns the connector from parent to child. spacing is the horizontal
// gap the layout left between the parent's right edge and its children; the
// vertical run sits at half of it.
func Elbow(parent, child Box, spacing float64) Path {
	start := parent.RightMid()
	end := child.LeftMid()
	midX := start.X + spacing/2
	r := CornerRadius

	p := Path{
		{Op: MoveTo, X: start.X, Y: start.Y},
		{Op: LineTo, X: midX - r, Y: start.Y},
	}

	dy := end.Y - start.Y
	if math.Abs(dy) > r {
		sign := 1.0
		if dy < 0 {
			sign = -1.0
		}
		p = append(p,
			Command{Op: QuadTo, X1: midX, Y1: start.Y, X: midX, Y: start.Y + sign*r},
			Command{Op: LineTo, X: midX, Y: end.Y - sign*r},
			Command{Op: QuadTo, X1: midX, Y1: end.Y, X: midX + r, Y: end.Y},
		)
	} else {
		p = append(p,
			Command{Op: LineTo, X: midX, Y: start.Y},
			Command{Op: LineTo, X: midX + r, Y: end.Y},
		)
	}

	return append(p, Command{Op: LineTo, X: end.X, Y: end.Y})
}

// RoundedRect returns the outline of a box with quadratic corners of radius r,
// starting at the top edge and running clockwise. The path is closed by
// returning to its start point.
func RoundedRect(b Box, r float64) Path {
	r = math.Max(0, math.Min(r, math.Min(b.W, b.H)/2))
	x, y, w, h := b.X, b.Y, b.W, b.H
	return Path{
		{Op: MoveTo, X: x + r, Y: y},
		{Op: LineTo, X: x + w - r, Y: y},
		{Op: QuadTo, X1: x + w, Y1: y, X: x + w, Y: y + r},
		{Op: LineTo, X: x + w, Y: y + h - r},
		{Op: QuadTo, X1: x + w, Y1: y + h, X: x + w - r, Y: y + h},
		{Op: LineTo, X: x + r, Y: y + h},
		{Op: QuadTo, X1: x, Y1: y + h, X: x, Y: y + h - r},
		{Op: LineTo, X: x, Y: y + r},
		{Op: QuadTo, X1: x, Y1: y, X: x + r, Y: y},
	}
}
