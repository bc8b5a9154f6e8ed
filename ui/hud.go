package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/nebula/telemetry"
)

// HUDData holds the values shown in the stats block.
type HUDData struct {
	Particles    int
	LastRegen    time.Duration
	Stats        telemetry.FieldStats
	Shape        string
	Distribution string
}

// HUD renders the top-left stats panel.
type HUD struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewHUD creates a HUD anchored at the given position.
func NewHUD(x, y, width int32) *HUD {
	return &HUD{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Draw renders the HUD and returns the Y position below it.
func (h *HUD) Draw(data HUDData) int32 {
	r := h.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	panelHeight := lineHeight*9 + padding*2 + 6

	r.DrawPanel(h.x, h.y, h.width, panelHeight)

	y := h.y + padding

	rl.DrawText("Field", h.x+padding, y, 14, rl.White)
	y += lineHeight + 2

	x := h.x + padding
	y = r.DrawLabelValue(x, y, "FPS", fmt.Sprintf("%d", rl.GetFPS()))
	y = r.DrawLabelValue(x, y, "Particles", fmt.Sprintf("%d", data.Particles))
	y = r.DrawLabelValue(x, y, "Regen", data.LastRegen.Round(time.Microsecond).String())
	y = r.DrawLabelValue(x, y, "Shape", data.Shape)
	y = r.DrawLabelValue(x, y, "Distribution", data.Distribution)
	y = r.DrawLabelValue(x, y, "Radial mean", fmt.Sprintf("%.2f", data.Stats.RadialMean))
	y = r.DrawLabelValue(x, y, "Radial p50", fmt.Sprintf("%.2f", data.Stats.RadialP50))
	y = r.DrawLabelValue(x, y, "Radial p90", fmt.Sprintf("%.2f", data.Stats.RadialP90))

	return y
}
