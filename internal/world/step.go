package world

import "go.uber.org/zap"

// TickSimulation runs one full step: update X, collide X, update Y, collide Y.
// Entities killed during the step are swept once it has finished.
func (w *World) TickSimulation() {
	w.updatePass(AxisX)
	w.collidePass(AxisX)
	w.updatePass(AxisY)
	w.collidePass(AxisY)
	w.Sweep()
	w.Frame++
	w.Metrics.Frames.Inc()
}

func (w *World) updatePass(axis Axis) {
	w.Store.Each(func(e *Entity) {
		d := w.Types.Lookup(e.Kind)
		if d == nil {
			contract(w.Log, "update of unregistered kind", zap.Uint8("kind", uint8(e.Kind)))
			return
		}
		d.Behavior.Update(w, e, axis)
	})
}

// collidePass dispatches every overlapping unordered pair (a before b in
// store order). Positions corrected by earlier pairs are visible to later
// ones. Entities spawned during the pass are not candidates until the next.
func (w *World) collidePass(axis Axis) {
	n := w.Store.Len()
	hits := 0
	for i := 0; i < n; i++ {
		a := w.Store.At(i)
		if !a.Alive() {
			continue
		}
		da := w.Types.Lookup(a.Kind)
		if da == nil {
			contract(w.Log, "collision of unregistered kind", zap.Uint8("kind", uint8(a.Kind)))
			continue
		}
		for j := i + 1; j < n && a.Alive(); j++ {
			b := w.Store.At(j)
			if !b.Alive() {
				continue
			}
			db := w.Types.Lookup(b.Kind)
			if db == nil {
				continue
			}
			ab, ba := w.Detect(a, b)
			if ab == CodeNone {
				continue
			}
			hits++
			da.Behavior.Collide(w, a, b, ab, axis)
			db.Behavior.Collide(w, b, a, ba, axis)
		}
	}
	if hits > 0 {
		w.Metrics.Collisions.WithLabelValues(axis.String()).Add(float64(hits))
	}
}
