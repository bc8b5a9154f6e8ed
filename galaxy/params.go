// Package galaxy generates point-cloud approximations of spiral galaxies.
// The generator is a pure function of a parameter set and a randomness
// source; it produces flat position and color buffers sized for GPU upload
// and holds no state between calls.
package galaxy

import (
	"fmt"
	"strings"
)

// Shape selects the planar coordinate formula for particle placement.
type Shape string

const (
	ShapeSpiral  Shape = "spiral"
	ShapeCircle  Shape = "circle"
	ShapeEllipse Shape = "ellipse"
)

// ParseShape normalizes and validates a shape name.
func ParseShape(s string) (Shape, error) {
	switch Shape(strings.ToLower(strings.TrimSpace(s))) {
	case ShapeSpiral:
		return ShapeSpiral, nil
	case ShapeCircle:
		return ShapeCircle, nil
	case ShapeEllipse:
		return ShapeEllipse, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidShape, s)
}

// Distribution selects the radial sampling law.
type Distribution string

const (
	DistUniform     Distribution = "uniform"
	DistGaussian    Distribution = "gaussian"
	DistExponential Distribution = "exponential"
	DistWeibull     Distribution = "weibull"
	DistLognormal   Distribution = "lognormal"
	DistPareto      Distribution = "pareto"
)

// ParseDistribution normalizes and validates a distribution name.
func ParseDistribution(s string) (Distribution, error) {
	d := Distribution(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := samplers[d]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidDistribution, s)
	}
	return d, nil
}

// Distributions returns the supported radial sampling laws in display order.
func Distributions() []Distribution {
	return []Distribution{
		DistUniform, DistGaussian, DistExponential,
		DistWeibull, DistLognormal, DistPareto,
	}
}

// Shapes returns the supported shapes in display order.
func Shapes() []Shape {
	return []Shape{ShapeSpiral, ShapeCircle, ShapeEllipse}
}

// Color is an RGB color with channels in [0, 1].
type Color struct {
	R, G, B float64
}

// Lerp linearly interpolates between c and other by t.
// t is not clamped: unbounded radial laws extrapolate past the endpoint.
func (c Color) Lerp(other Color, t float64) Color {
	return Color{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
	}
}

// ParseHexColor parses a "#rrggbb" hex color into channel values in [0, 1].
func ParseHexColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return Color{}, fmt.Errorf("invalid hex color %q", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(h, "%02x%02x%02x", &r, &g, &b); err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}, nil
}

// Hex returns the color as a "#rrggbb" string.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x",
		uint8(clamp01(c.R)*255+0.5),
		uint8(clamp01(c.G)*255+0.5),
		uint8(clamp01(c.B)*255+0.5))
}

// Params is the immutable-per-generation input to Generate.
type Params struct {
	// Count is the number of particles.
	Count int

	// Size is the visual point size. It is consumed by the renderer only
	// and has no effect on generation.
	Size float64

	// Radius is the outer extent of the field.
	Radius float64

	// Branches is the number of spiral arms (>= 2). Particles are assigned
	// to arms by index residue, not by random choice.
	Branches int

	// Spin is the angular twist in radians per unit radius.
	Spin float64

	// Randomness is a reserved dispersion magnitude. It is present in the
	// configuration surface but does not scale the jitter terms.
	Randomness float64

	// RandomnessPower shapes the jitter falloff: higher powers bias jitter
	// magnitude toward zero.
	RandomnessPower float64

	// InsideColor and OutsideColor are the endpoints of the radial
	// color interpolation.
	InsideColor  Color
	OutsideColor Color

	// Shape selects the planar coordinate formula.
	Shape Shape

	// ThetaScale stretches the x axis; used only when Shape is ellipse.
	ThetaScale float64

	// Distribution selects the radial sampling law.
	Distribution Distribution
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
