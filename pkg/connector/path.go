package connector

import "fmt"

// Op identifies a path command.
type Op int

const (
	MoveTo Op = iota // start a new subpath at (X, Y)
	LineTo           // straight line to (X, Y)
	QuadTo           // quadratic curve with control (X1, Y1) ending at (X, Y)
)

func (o Op) String() string {
	switch o {
	case MoveTo:
		return "M"
	case LineTo:
		return "L"
	case QuadTo:
		return "Q"
	default:
		return fmt.Sprintf("Op(%d)", int(o))
	}
}

// Command is a single path command. X1, Y1 are only used by QuadTo.
type Command struct {
	Op     Op
	X1, Y1 float64
	X, Y   float64
}

// Point is a position in layout units.
type Point struct{ X, Y float64 }

// Path is an ordered sequence of commands.
type Path []Command

// Start returns the point of the first command.
func (p Path) Start() Point {
	if len(p) == 0 {
		return Point{}
	}
	return Point{p[0].X, p[0].Y}
}

// End returns the end point of the last command.
func (p Path) End() Point {
	if len(p) == 0 {
		return Point{}
	}
	last := p[len(p)-1]
	return Point{last.X, last.Y}
}


// Box is an axis-aligned rectangle with its top-left corner at (X, Y).
type Box struct {
	X, Y, W, H float64
}

// RightMid returns the midpoint of the right edge.
func (b Box) RightMid() Point { return Point{b.X + b.W, b.Y + b.H/2} }

// LeftMid returns the midpoint of the left edge.
func (b Box) LeftMid() Point { return Point{b.X, b.Y + b.H/2} }
