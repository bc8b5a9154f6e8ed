package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/nebula/galaxy"
)

// Event reports the outcome of one panel frame.
type Event struct {
	// Committed is set when an edit was committed this frame and the
	// field should be regenerated with Params.
	Committed bool
	Params    galaxy.Params

	// Reseed requests a fresh RNG seed along with the regeneration.
	Reseed bool
}

// ControlPanel renders the parameter panel and tracks edit state.
// Slider and picker drags mutate a draft parameter set; the draft is
// committed when the mouse button is released, not on every drag value.
// Combo box selections commit immediately.
type ControlPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool

	defaults galaxy.Params // For the Reset button
	draft    galaxy.Params
	applied  galaxy.Params

	shapeIndex int32
	distIndex  int32

	rect rl.Rectangle
}

// NewControlPanel creates a panel seeded with the initial parameter set.
func NewControlPanel(x, y, width int32, initial galaxy.Params) *ControlPanel {
	p := &ControlPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
		defaults: initial,
		draft:    initial,
		applied:  initial,
	}
	p.shapeIndex = indexOfShape(initial.Shape)
	p.distIndex = indexOfDistribution(initial.Distribution)
	return p
}

// Toggle switches panel visibility.
func (p *ControlPanel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// IsVisible returns whether the panel is shown.
func (p *ControlPanel) IsVisible() bool {
	return p.visible
}

// MouseOver reports whether the pointer is over the panel, so the caller
// can suppress camera input while editing.
func (p *ControlPanel) MouseOver() bool {
	return p.visible && rl.CheckCollisionPointRec(rl.GetMousePosition(), p.rect)
}

// Draw renders the panel widgets and returns the frame's event.
// Must be called between BeginDrawing and EndDrawing.
func (p *ControlPanel) Draw() Event {
	if !p.visible {
		return Event{}
	}

	r := p.renderer
	padding := r.Theme.Padding

	const panelHeight = 664
	p.rect = rl.Rectangle{
		X: float32(p.x), Y: float32(p.y),
		Width: float32(p.width), Height: panelHeight,
	}
	r.DrawPanel(p.x, p.y, p.width, panelHeight)

	x := p.x + padding
	y := p.y + padding
	w := p.width - padding*2

	rl.DrawText("Galaxy", x, y, 16, rl.White)
	y += r.Theme.LineHeight + 6

	commitNow := false

	count := p.sliderRow(x, &y, w, "Count", "%.0f", float32(p.draft.Count), 500, 100000)
	p.draft.Count = int(count)

	p.draft.Size = float64(p.sliderRow(x, &y, w, "Size", "%.3f", float32(p.draft.Size), 0.01, 0.3))
	p.draft.Radius = float64(p.sliderRow(x, &y, w, "Radius", "%.1f", float32(p.draft.Radius), 1, 20))

	branches := p.sliderRow(x, &y, w, "Branches", "%.0f", float32(p.draft.Branches), 2, 10)
	p.draft.Branches = int(branches + 0.5)

	p.draft.Spin = float64(p.sliderRow(x, &y, w, "Spin", "%.2f", float32(p.draft.Spin), -5, 5))
	p.draft.Randomness = float64(p.sliderRow(x, &y, w, "Randomness", "%.2f", float32(p.draft.Randomness), 0, 2))
	p.draft.RandomnessPower = float64(p.sliderRow(x, &y, w, "Power", "%.1f", float32(p.draft.RandomnessPower), 1, 10))
	p.draft.ThetaScale = float64(p.sliderRow(x, &y, w, "Theta Scale", "%.2f", float32(p.draft.ThetaScale), 0.1, 2))

	// Shape and distribution commit on click.
	r.DrawLabel(x, y, "Shape")
	y += r.Theme.LineHeight
	newShape := gui.ComboBox(
		rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(w), Height: 22},
		joinShapes(), p.shapeIndex,
	)
	if newShape != p.shapeIndex {
		p.shapeIndex = newShape
		p.draft.Shape = galaxy.Shapes()[newShape]
		commitNow = true
	}
	y += 22 + r.Theme.RowGap

	r.DrawLabel(x, y, "Distribution")
	y += r.Theme.LineHeight
	newDist := gui.ComboBox(
		rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(w), Height: 22},
		joinDistributions(), p.distIndex,
	)
	if newDist != p.distIndex {
		p.distIndex = newDist
		p.draft.Distribution = galaxy.Distributions()[newDist]
		commitNow = true
	}
	y += 22 + r.Theme.RowGap

	// Color pickers edit the draft; release commits like the sliders.
	half := (w - padding) / 2
	r.DrawLabel(x, y, "Inside")
	r.DrawLabel(x+half+padding, y, "Outside")
	y += r.Theme.LineHeight

	inside := gui.ColorPicker(
		rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(half - 24), Height: 90},
		"", toRL(p.draft.InsideColor),
	)
	outside := gui.ColorPicker(
		rl.Rectangle{X: float32(x + half + padding), Y: float32(y), Width: float32(half - 24), Height: 90},
		"", toRL(p.draft.OutsideColor),
	)
	p.draft.InsideColor = fromRL(inside)
	p.draft.OutsideColor = fromRL(outside)
	y += 90 + r.Theme.RowGap*2

	event := Event{}

	buttonW := float32(w-padding*2) / 3
	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: buttonW, Height: 26}, "Regenerate") {
		commitNow = true
	}
	if gui.Button(rl.Rectangle{X: float32(x) + buttonW + float32(padding), Y: float32(y), Width: buttonW, Height: 26}, "Reseed") {
		event.Reseed = true
		commitNow = true
	}
	if gui.Button(rl.Rectangle{X: float32(x) + (buttonW+float32(padding))*2, Y: float32(y), Width: buttonW, Height: 26}, "Reset") {
		p.draft = p.defaults
		p.shapeIndex = indexOfShape(p.defaults.Shape)
		p.distIndex = indexOfDistribution(p.defaults.Distribution)
		commitNow = true
	}
	y += 26 + r.Theme.RowGap*2

	r.DrawLabel(x, y, "Tab: panel  Drag: orbit  Wheel: zoom  R: camera")

	// Debounced commit: apply the draft once the drag ends.
	released := rl.IsMouseButtonReleased(rl.MouseLeftButton)
	if commitNow || (released && p.draft != p.applied) {
		p.applied = p.draft
		event.Committed = true
		event.Params = p.applied
	}

	return event
}

// sliderRow draws a labeled slider with its current value and advances y.
func (p *ControlPanel) sliderRow(x int32, y *int32, w int32, label, format string, value, min, max float32) float32 {
	r := p.renderer

	r.DrawLabel(x, *y, label)
	rl.DrawText(fmt.Sprintf(format, value), x+w-44, *y, r.Theme.FontSize, r.Theme.ValueColor)
	*y += r.Theme.LineHeight

	v := gui.SliderBar(
		rl.Rectangle{X: float32(x), Y: float32(*y), Width: float32(w), Height: float32(r.Theme.SliderHeight)},
		"", "", value, min, max,
	)
	*y += r.Theme.SliderHeight + r.Theme.RowGap

	return v
}

func joinShapes() string {
	s := ""
	for i, shape := range galaxy.Shapes() {
		if i > 0 {
			s += ";"
		}
		s += string(shape)
	}
	return s
}

func joinDistributions() string {
	s := ""
	for i, d := range galaxy.Distributions() {
		if i > 0 {
			s += ";"
		}
		s += string(d)
	}
	return s
}

func indexOfShape(shape galaxy.Shape) int32 {
	for i, s := range galaxy.Shapes() {
		if s == shape {
			return int32(i)
		}
	}
	return 0
}

func indexOfDistribution(dist galaxy.Distribution) int32 {
	for i, d := range galaxy.Distributions() {
		if d == dist {
			return int32(i)
		}
	}
	return 0
}

// toRL converts a generator color to a renderer color.
func toRL(c galaxy.Color) rl.Color {
	return rl.NewColor(channel(c.R), channel(c.G), channel(c.B), 255)
}

// fromRL converts a renderer color to a generator color.
func fromRL(c rl.Color) galaxy.Color {
	return galaxy.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

func channel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
