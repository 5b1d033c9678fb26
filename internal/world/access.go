package world

import "skyring/internal/engine"

// Objects lets World satisfy engine.WorldAccess.
func (w *World) Objects() []engine.Object {
	return w.List.All()
}
