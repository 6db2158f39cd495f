// pkg/render/renderer.go
package render

import (
	"github.com/opd-ai/go-dogfight/pkg/engine"
	"github.com/opd-ai/go-dogfight/pkg/logging"
)

// Renderer consumes game-state snapshots. The simulation never calls a
// renderer directly; callers pull a snapshot and push it here.
type Renderer interface {
	Render(state *engine.GameState)
}

// NullRenderer discards frames, logging them at debug level. Useful for
// headless runs and benchmarks.
type NullRenderer struct {
	logger *logging.Logger
}

// NewNullRenderer creates a renderer that draws nothing.
func NewNullRenderer() *NullRenderer {
	return &NullRenderer{logger: logging.NewLogger("render")}
}

// Render implements Renderer.
func (r *NullRenderer) Render(state *engine.GameState) {
	if state == nil {
		return
	}
	r.logger.Debug("frame",
		"tick", state.Tick,
		"ships", len(state.Ships),
		"projectiles", len(state.Projectiles))
}
