package handler

import (
	"github.com/driftwood2d/driftwood/internal/render"
	"github.com/driftwood2d/driftwood/internal/world"
	"go.uber.org/zap"
)

// Deps holds shared dependencies injected into the modal frames.
type Deps struct {
	Log *zap.Logger
}

func (d *Deps) log() *zap.Logger {
	if d == nil || d.Log == nil {
		return zap.NewNop()
	}
	return d.Log
}

// closeFrame pops f if it is the active frame.
func closeFrame(w *world.World, f world.Handler) {
	if !w.Input.Remove(f) {
		w.Log.Debug("frame close ignored, not on top")
	}
}

// cellSize returns the font cell size, falling back to 8x8 without a font.
func cellSize(f render.Font) (int32, int32) {
	if f == nil {
		return 8, 8
	}
	cw, ch := f.CellSize()
	return int32(cw), int32(ch)
}

// viewSize returns the camera viewport, or a fallback when it is unset.
func viewSize(w *world.World) (int32, int32) {
	vw, vh := w.Camera.Width, w.Camera.Height
	if vw <= 0 {
		vw = 320
	}
	if vh <= 0 {
		vh = 240
	}
	return vw, vh
}
