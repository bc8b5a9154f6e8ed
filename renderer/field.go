// Package renderer draws generated particle fields as camera-facing
// sprites with additive blending.
package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/nebula/galaxy"
)

// fieldBuffers is the GPU-facing representation of one generated field.
// A complete set is built per regeneration and swapped in atomically, so
// a draw never sees a half-converted field.
type fieldBuffers struct {
	positions []rl.Vector3
	colors    []rl.Color
	size      float32
}

// FieldRenderer owns the current field handle and the shared sprite
// texture. Regeneration replaces the handle (construct-then-swap); the
// previous buffers are garbage collected, and the sprite texture is
// reused across fields.
type FieldRenderer struct {
	sprite       rl.Texture2D
	current      *fieldBuffers
	rotationRate float32
}

// NewFieldRenderer creates a renderer with a procedural radial-falloff
// sprite. Requires an initialized window.
func NewFieldRenderer(spriteSize int, rotationRate float64) *FieldRenderer {
	img := rl.GenImageGradientRadial(spriteSize, spriteSize, 0, rl.White, rl.Blank)
	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(tex, rl.FilterBilinear)

	return &FieldRenderer{
		sprite:       tex,
		rotationRate: float32(rotationRate),
	}
}

// SetField converts a generated field into draw buffers and swaps them in.
// size is the particle sprite size in world units.
func (r *FieldRenderer) SetField(f *galaxy.Field, size float64) {
	n := f.Count()
	b := &fieldBuffers{
		positions: make([]rl.Vector3, n),
		colors:    make([]rl.Color, n),
		size:      float32(size),
	}

	for i := 0; i < n; i++ {
		x, y, z := f.Position(i)
		b.positions[i] = rl.Vector3{X: x, Y: y, Z: z}

		cr, cg, cb := f.ColorAt(i)
		b.colors[i] = rl.NewColor(channelByte(cr), channelByte(cg), channelByte(cb), 255)
	}

	r.current = b
}

// HasField reports whether a field has been attached.
func (r *FieldRenderer) HasField() bool {
	return r.current != nil
}

// Draw renders the current field. Must be called inside an active 3D
// mode. elapsed drives the passive rotation about the vertical axis;
// rotating positions on the CPU keeps the billboards exactly
// camera-facing.
func (r *FieldRenderer) Draw(cam rl.Camera3D, elapsed float32) {
	b := r.current
	if b == nil {
		return
	}

	angle := float64(r.rotationRate * elapsed)
	cos := float32(math.Cos(angle))
	sin := float32(math.Sin(angle))

	rl.BeginBlendMode(rl.BlendAdditive)
	rl.DisableDepthMask()

	for i := range b.positions {
		p := b.positions[i]
		rotated := rl.Vector3{
			X: p.X*cos + p.Z*sin,
			Y: p.Y,
			Z: -p.X*sin + p.Z*cos,
		}
		rl.DrawBillboard(cam, r.sprite, rotated, b.size, b.colors[i])
	}

	rl.EnableDepthMask()
	rl.EndBlendMode()
}

// Unload releases the sprite texture.
func (r *FieldRenderer) Unload() {
	rl.UnloadTexture(r.sprite)
}

// channelByte converts a [0, 1] channel to a byte. Colors extrapolated
// past the endpoint by unbounded radial laws are clamped here, at the
// presentation boundary.
func channelByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
