package galaxy

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// Generation error kinds. Both are configuration errors: the fix is a
// corrected parameter value, not a retry.
var (
	ErrInvalidShape        = errors.New("galaxy: invalid shape")
	ErrInvalidDistribution = errors.New("galaxy: invalid distribution")
)

// Field is a generated particle field: two parallel flat buffers of
// (x, y, z) and (r, g, b) triples. Both are exactly 3*Count() long.
type Field struct {
	Positions []float32
	Colors    []float32
}

// Count returns the number of particles in the field.
func (f *Field) Count() int {
	return len(f.Positions) / 3
}

// Position returns the i-th particle position.
func (f *Field) Position(i int) (x, y, z float32) {
	return f.Positions[i*3], f.Positions[i*3+1], f.Positions[i*3+2]
}

// ColorAt returns the i-th particle color, channels in [0, 1] for bounded
// radial laws (unbounded laws extrapolate past the outside color).
func (f *Field) ColorAt(i int) (r, g, b float32) {
	return f.Colors[i*3], f.Colors[i*3+1], f.Colors[i*3+2]
}

// Generate produces a particle field from p, drawing randomness from rng.
// It is a pure function of its inputs: no state survives between calls.
// On error no field is returned; the caller keeps whatever it had.
//
// Per particle the rng is consumed in a fixed order: the radial sample
// first, then magnitude and sign draws for the x, y and z jitter terms.
func Generate(p Params, rng *rand.Rand) (*Field, error) {
	if p.Count <= 0 {
		return nil, fmt.Errorf("galaxy: count must be positive, got %d", p.Count)
	}
	sample, ok := samplers[p.Distribution]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDistribution, p.Distribution)
	}
	switch p.Shape {
	case ShapeSpiral, ShapeCircle, ShapeEllipse:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidShape, p.Shape)
	}

	f := &Field{
		Positions: make([]float32, p.Count*3),
		Colors:    make([]float32, p.Count*3),
	}

	branches := float64(p.Branches)
	for i := 0; i < p.Count; i++ {
		radius := sample(rng) * p.Radius

		// Arm membership is deterministic by index residue.
		branchAngle := float64(i%p.Branches) / branches * 2 * math.Pi
		spinAngle := radius * p.Spin

		// Jitter magnitude is U^power with a fair coin flip for sign.
		// The Randomness parameter intentionally does not scale these
		// terms; see Params.Randomness.
		randomX := jitter(rng, p.RandomnessPower)
		randomY := jitter(rng, p.RandomnessPower)
		randomZ := jitter(rng, p.RandomnessPower)

		var x, z float64
		switch p.Shape {
		case ShapeSpiral:
			x = math.Cos(branchAngle+spinAngle)*radius + randomX
			z = math.Sin(branchAngle+spinAngle)*radius + randomZ
		case ShapeCircle:
			x = math.Cos(branchAngle)*radius + randomX
			z = math.Sin(branchAngle)*radius + randomZ
		case ShapeEllipse:
			x = math.Cos(branchAngle)*radius*p.ThetaScale + randomX
			z = math.Sin(branchAngle)*radius + randomZ
		}

		f.Positions[i*3] = float32(x)
		f.Positions[i*3+1] = float32(randomY)
		f.Positions[i*3+2] = float32(z)

		c := p.InsideColor.Lerp(p.OutsideColor, radius/p.Radius)
		f.Colors[i*3] = float32(c.R)
		f.Colors[i*3+1] = float32(c.G)
		f.Colors[i*3+2] = float32(c.B)
	}

	return f, nil
}

// jitter draws one per-axis perturbation: |U|^power with random sign.
func jitter(rng *rand.Rand, power float64) float64 {
	m := math.Pow(rng.Float64(), power)
	if rng.Float64() < 0.5 {
		return -m
	}
	return m
}
