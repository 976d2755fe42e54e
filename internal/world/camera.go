package world

import "github.com/driftwood2d/driftwood/internal/render"

// Camera is the viewport into the scene, clamped to the scene bounds.
type Camera struct {
	X, Y          int32
	Width, Height int32
	boundsW       int32
	boundsH       int32
}

// Bounds sets the scene extent. Zero means unbounded on that axis.
func (c *Camera) Bounds(w, h int32) {
	c.boundsW, c.boundsH = w, h
}

// Follow centres the viewport on box along one axis.
func (c *Camera) Follow(box render.Rect, axis Axis) {
	switch axis {
	case AxisX:
		c.X = clampView(box.X+box.W/2-c.Width/2, c.Width, c.boundsW)
	case AxisY:
		c.Y = clampView(box.Y+box.H/2-c.Height/2, c.Height, c.boundsH)
	}
}

// Project converts a world box to screen coordinates.
func (c *Camera) Project(box render.Rect) render.Rect {
	box.X -= c.X
	box.Y -= c.Y
	return box
}

// Visible reports whether any part of box is inside the viewport.
func (c *Camera) Visible(box render.Rect) bool {
	if c.Width == 0 || c.Height == 0 {
		return true
	}
	return Overlaps(box, render.Rect{X: c.X, Y: c.Y, W: c.Width, H: c.Height})
}

func clampView(v, view, bound int32) int32 {
	if bound <= 0 {
		return v
	}
	if v > bound-view {
		v = bound - view
	}
	if v < 0 {
		v = 0
	}
	return v
}
