package engine

import (
	"time"

	"github.com/lixenwraith/termtris/render"
)

// Application is the per-game hook pair driven by Engine
type Application interface {
	// Create runs once after Setup; false aborts the run
	Create(r *render.Renderer) bool

	// Update advances by elapsed wall time and issues draw calls; false ends the loop
	Update(r *render.Renderer, elapsed time.Duration) bool
}
