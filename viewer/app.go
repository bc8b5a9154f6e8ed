// Package viewer wires the field generator, renderer, camera and control
// panel into the interactive application.
package viewer

import (
	"fmt"
	"log/slog"
	"math/rand"
	"path/filepath"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/nebula/camera"
	"github.com/pthm-cable/nebula/config"
	"github.com/pthm-cable/nebula/galaxy"
	"github.com/pthm-cable/nebula/renderer"
	"github.com/pthm-cable/nebula/telemetry"
	"github.com/pthm-cable/nebula/ui"
)

// Options holds startup options from the command line.
type Options struct {
	Seed      int64
	OutputDir string
}

// App owns the viewer state: the applied parameter set, the current
// field, and the collaborators around the generator. Regenerations are
// serialized by the frame loop; the renderer swap happens only after a
// generation succeeds, so a failed edit leaves the display untouched.
type App struct {
	cfg *config.Config
	rng *rand.Rand

	params    galaxy.Params
	field     *galaxy.Field
	stats     telemetry.FieldStats
	lastRegen time.Duration

	fieldRenderer *renderer.FieldRenderer
	cam           *camera.Orbit
	panel         *ui.ControlPanel
	hud           *ui.HUD
	output        *telemetry.OutputManager

	// orbitActive is set while a drag that started outside the panel is
	// in progress, so slider drags never move the camera.
	orbitActive bool

	elapsed float32
}

// NewApp builds the application from the loaded config. Requires an
// initialized window.
func NewApp(opts Options) (*App, error) {
	cfg := config.Cfg()

	params, err := cfg.GalaxyParams()
	if err != nil {
		return nil, fmt.Errorf("galaxy config: %w", err)
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if output != nil {
		if err := cfg.WriteYAML(filepath.Join(output.Dir(), "config.yaml")); err != nil {
			slog.Warn("failed to write config snapshot", "error", err)
		}
	}

	a := &App{
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(opts.Seed)),
		params: params,
		fieldRenderer: renderer.NewFieldRenderer(
			cfg.Render.SpriteSize, cfg.Render.RotationRate),
		cam: camera.New(
			float32(cfg.Camera.Yaw), float32(cfg.Camera.Pitch),
			float32(cfg.Camera.Distance), float32(cfg.Camera.FOV),
			float32(cfg.Camera.MinDistance), float32(cfg.Camera.MaxDistance)),
		output: output,
	}

	panelWidth := int32(280)
	a.panel = ui.NewControlPanel(int32(cfg.Screen.Width)-panelWidth-10, 10, panelWidth, params)
	a.hud = ui.NewHUD(10, 10, 210)

	a.regenerate(params)

	return a, nil
}

// regenerate runs the generator and, on success, swaps the new field into
// the renderer and records telemetry. On error the previous field and its
// render state are left untouched.
func (a *App) regenerate(p galaxy.Params) {
	start := time.Now()
	field, err := galaxy.Generate(p, a.rng)
	duration := time.Since(start)

	if err != nil {
		slog.Error("field generation failed", "error", err)
		return
	}

	a.params = p
	a.field = field
	a.stats = telemetry.ComputeFieldStats(field)
	a.lastRegen = duration
	a.fieldRenderer.SetField(field, p.Size)

	slog.Info("field regenerated",
		"count", p.Count,
		"shape", string(p.Shape),
		"distribution", string(p.Distribution),
		"duration_us", duration.Microseconds(),
	)

	if a.cfg.Telemetry.Enabled {
		rec := telemetry.NewRegenRecord(p, a.stats, duration)
		if err := a.output.WriteRegen(rec); err != nil {
			slog.Warn("failed to write regen record", "error", err)
		}
	}
}

// Update handles input and advances presentation time.
func (a *App) Update() {
	a.elapsed += rl.GetFrameTime()

	if rl.IsKeyPressed(rl.KeyTab) {
		a.panel.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.cam.Reset(
			float32(a.cfg.Camera.Yaw),
			float32(a.cfg.Camera.Pitch),
			float32(a.cfg.Camera.Distance))
	}

	// Orbit only for drags that started outside the panel.
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		a.orbitActive = !a.panel.MouseOver()
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		a.orbitActive = false
	}
	if a.orbitActive && rl.IsMouseButtonDown(rl.MouseLeftButton) {
		delta := rl.GetMouseDelta()
		a.cam.Rotate(delta.X*0.005, delta.Y*0.005)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 && !a.panel.MouseOver() {
		factor := float32(1) - wheel*0.1
		a.cam.Dolly(factor)
	}
}

// Draw renders one frame and applies any committed panel edits.
func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	cam := a.camera3D()
	rl.BeginMode3D(cam)
	a.fieldRenderer.Draw(cam, a.elapsed)
	rl.EndMode3D()

	a.hud.Draw(ui.HUDData{
		Particles:    a.fieldCount(),
		LastRegen:    a.lastRegen,
		Stats:        a.stats,
		Shape:        string(a.params.Shape),
		Distribution: string(a.params.Distribution),
	})

	event := a.panel.Draw()

	rl.EndDrawing()

	if event.Reseed {
		a.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if event.Committed {
		a.regenerate(event.Params)
	}
}

// Unload flushes telemetry and releases GPU resources.
func (a *App) Unload() {
	a.fieldRenderer.Unload()
	if err := a.output.Close(); err != nil {
		slog.Warn("failed to close output", "error", err)
	}
}

func (a *App) fieldCount() int {
	if a.field == nil {
		return 0
	}
	return a.field.Count()
}

// camera3D converts the orbit camera to the renderer's camera type.
func (a *App) camera3D() rl.Camera3D {
	x, y, z := a.cam.Position()
	return rl.Camera3D{
		Position:   rl.Vector3{X: x, Y: y, Z: z},
		Target:     rl.Vector3{X: a.cam.TargetX, Y: a.cam.TargetY, Z: a.cam.TargetZ},
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       a.cam.FOV,
		Projection: rl.CameraPerspective,
	}
}
