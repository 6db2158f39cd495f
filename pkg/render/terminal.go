// pkg/render/terminal.go
package render

import (
	"fmt"
	"strings"

	"github.com/opd-ai/go-dogfight/pkg/engine"
	"github.com/opd-ai/go-dogfight/pkg/physics"
)

// TerminalRenderer draws a top-down ASCII view of the fight: the X/Z
// plane on the grid, altitude and flight state in the status lines.
type TerminalRenderer struct {
	width  int
	height int
	buffer [][]rune
	scale  float64 // world units per character cell
	center physics.Vector3
	focus  uint64 // ship ID the view centers on, 0 for world origin
}

// NewTerminalRenderer creates a terminal renderer with the given grid
// dimensions and world-units-per-cell scale.
func NewTerminalRenderer(width, height int, scale float64) *TerminalRenderer {
	buffer := make([][]rune, height)
	for i := range buffer {
		buffer[i] = make([]rune, width)
	}
	return &TerminalRenderer{
		width:  width,
		height: height,
		buffer: buffer,
		scale:  scale,
	}
}

// Follow centers the view on the given ship each frame.
func (r *TerminalRenderer) Follow(shipID uint64) {
	r.focus = shipID
}

// worldToScreen projects a world position onto the grid. X maps to
// columns, Z to rows (inverted so +Z is up on screen).
func (r *TerminalRenderer) worldToScreen(pos physics.Vector3) (int, int) {
	screenX := int((pos.X-r.center.X)/r.scale + float64(r.width)/2)
	screenY := int((r.center.Z-pos.Z)/r.scale + float64(r.height)/2)
	return screenX, screenY
}

func (r *TerminalRenderer) plot(pos physics.Vector3, symbol rune) {
	x, y := r.worldToScreen(pos)
	if x >= 0 && x < r.width && y >= 0 && y < r.height {
		r.buffer[y][x] = symbol
	}
}

// Render implements Renderer.
func (r *TerminalRenderer) Render(state *engine.GameState) {
	if state == nil {
		return
	}

	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = ' '
		}
	}

	var focused *engine.ShipState
	for i := range state.Ships {
		if state.Ships[i].ID == r.focus {
			focused = &state.Ships[i]
		}
	}
	if focused != nil {
		r.center = focused.Position
	}

	for _, p := range state.Projectiles {
		r.plot(p.Position, '.')
	}
	for _, ship := range state.Ships {
		symbol := shipSymbol(ship)
		r.plot(ship.Position, symbol)
	}

	// Clear terminal and draw.
	fmt.Print("\033[H\033[2J")
	fmt.Println("+" + strings.Repeat("-", r.width) + "+")
	for y := range r.buffer {
		fmt.Println("|" + string(r.buffer[y]) + "|")
	}
	fmt.Println("+" + strings.Repeat("-", r.width) + "+")

	fmt.Printf("tick %d  t=%.1fs  ships=%d  shots=%d\n",
		state.Tick, state.ElapsedTime, len(state.Ships), len(state.Projectiles))
	if focused != nil {
		stall := ""
		if focused.Stalled {
			stall = "  STALL"
		}
		fmt.Printf("%s  alt=%.0f  spd=%.0f  hull=%.0f/%.0f%s\n",
			focused.Name, focused.Position.Y, focused.Speed,
			focused.Hull, focused.MaxHull, stall)
		for _, w := range focused.Weapons {
			lock := ""
			if w.Locked {
				lock = "  LOCK"
			} else if w.LockProgress > 0 {
				lock = fmt.Sprintf("  lock %.0f%%", w.LockProgress*100)
			}
			overheat := ""
			if w.Overheated {
				overheat = "  OVERHEAT"
			}
			fmt.Printf("  %-16s heat %.0f/%.0f%s%s\n", w.Name, w.Heat, w.MaxHeat, overheat, lock)
		}
	}
}

// shipSymbol picks a glyph per team, uppercase while flying and
// lowercase while stalled.
func shipSymbol(ship engine.ShipState) rune {
	symbols := []rune{'A', 'V', 'X', 'Y'}
	symbol := symbols[ship.TeamID%len(symbols)]
	if ship.Stalled {
		symbol = symbol + ('a' - 'A')
	}
	return symbol
}
