package world

import "github.com/driftwood2d/driftwood/internal/render"

// Code classifies an overlap by the quadrant the other box's top-left corner
// occupies relative to this box's top-left corner.
type Code uint8

const (
	CodeNone       Code = iota
	CodeUpperLeft       // other sits up and to the left
	CodeUpperRight      // other sits up and to the right (or same column)
	CodeLowerRight      // other sits down-right (or same corner)
	CodeLowerLeft       // other sits down and to the left
)

func (c Code) String() string {
	switch c {
	case CodeUpperLeft:
		return "upper-left"
	case CodeUpperRight:
		return "upper-right"
	case CodeLowerRight:
		return "lower-right"
	case CodeLowerLeft:
		return "lower-left"
	default:
		return "none"
	}
}

// Above reports whether the other entity was above this one.
func (c Code) Above() bool { return c == CodeUpperLeft || c == CodeUpperRight }

// Left reports whether the other entity was to the left of this one.
func (c Code) Left() bool { return c == CodeUpperLeft || c == CodeLowerLeft }

// Overlaps reports whether two half-open boxes intersect. Touching edges do not.
func Overlaps(a, b render.Rect) bool {
	return a.X < b.X+b.W && b.X < a.X+a.W &&
		a.Y < b.Y+b.H && b.Y < a.Y+a.H
}

// Classify returns the code of other relative to self, or CodeNone when the
// boxes do not overlap.
func Classify(self, other render.Rect) Code {
	if !Overlaps(self, other) {
		return CodeNone
	}
	left := other.X < self.X
	above := other.Y < self.Y
	switch {
	case above && left:
		return CodeUpperLeft
	case above:
		return CodeUpperRight
	case left:
		return CodeLowerLeft
	default:
		return CodeLowerRight
	}
}

// Detect tests a against b and b against a and returns both perspectives.
func (w *World) Detect(a, b *Entity) (ab, ba Code) {
	boxA, boxB := w.Types.Box(a), w.Types.Box(b)
	ab = Classify(boxA, boxB)
	ba = Classify(boxB, boxA)
	return ab, ba
}

// Block pushes mover out of solid along axis by the exact overlap and zeroes
// the mover's velocity on that axis. code is from solid's perspective. On Y
// a mover coming from above lands and loses its airborne/jumping flags.
// Static movers are left alone. It reports whether the mover was displaced.
func (w *World) Block(solid, mover *Entity, code Code, axis Axis) bool {
	if mover.Has(FlagStatic) || code == CodeNone {
		return false
	}
	s, m := w.Types.Box(solid), w.Types.Box(mover)
	if !Overlaps(s, m) {
		return false
	}
	switch axis {
	case AxisX:
		if code.Left() {
			mover.X = s.X - m.W
		} else {
			mover.X = s.X + s.W
		}
		mover.VX = 0
	case AxisY:
		if code.Above() {
			mover.Y = s.Y - m.H
			mover.Clear(FlagAirborne | FlagJumping)
		} else {
			mover.Y = s.Y + s.H
		}
		mover.VY = 0
	}
	return true
}
