package galaxy

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

// scriptedSource feeds rand.Rand a fixed sequence of Float64 values.
// Values must be dyadic rationals (0, 0.25, 0.5, ...) so the Int63
// encoding reproduces them exactly; the sequence repeats when exhausted.
type scriptedSource struct {
	vals []float64
	i    int
}

func (s *scriptedSource) Int63() int64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return int64(v * (1 << 63))
}

func (s *scriptedSource) Seed(int64) {}

func scripted(vals ...float64) *rand.Rand {
	return rand.New(&scriptedSource{vals: vals})
}

func baseParams() Params {
	return Params{
		Count:           100,
		Size:            0.05,
		Radius:          5,
		Branches:        3,
		Spin:            1,
		Randomness:      0.2,
		RandomnessPower: 3,
		InsideColor:     Color{R: 1, G: 0.4, B: 0.2},
		OutsideColor:    Color{R: 0.1, G: 0.2, B: 0.5},
		Shape:           ShapeSpiral,
		ThetaScale:      0.6,
		Distribution:    DistUniform,
	}
}

func TestGenerateBufferLengths(t *testing.T) {
	for _, shape := range Shapes() {
		for _, dist := range Distributions() {
			p := baseParams()
			p.Shape = shape
			p.Distribution = dist
			p.Count = 257

			f, err := Generate(p, rand.New(rand.NewSource(42)))
			if err != nil {
				t.Fatalf("%s/%s: unexpected error: %v", shape, dist, err)
			}
			if f.Count() != p.Count {
				t.Errorf("%s/%s: expected %d particles, got %d", shape, dist, p.Count, f.Count())
			}
			if len(f.Positions) != p.Count*3 || len(f.Colors) != p.Count*3 {
				t.Errorf("%s/%s: buffer lengths %d/%d, want %d",
					shape, dist, len(f.Positions), len(f.Colors), p.Count*3)
			}
		}
	}
}

func TestBranchAngleDeterministic(t *testing.T) {
	// Every draw returns 0.5: radius is 0.5*Radius and each jitter term is
	// +0.5^power, identical for all particles. Positions then differ only
	// by the branch angle (i mod branches)/branches * 2pi.
	p := baseParams()
	p.Shape = ShapeCircle
	p.Count = 9
	p.Branches = 3
	p.RandomnessPower = 2

	f, err := Generate(p, scripted(0.5))
	if err != nil {
		t.Fatal(err)
	}

	radius := 0.5 * p.Radius
	j := math.Pow(0.5, p.RandomnessPower)
	for i := 0; i < p.Count; i++ {
		branchAngle := float64(i%p.Branches) / float64(p.Branches) * 2 * math.Pi
		wantX := math.Cos(branchAngle)*radius + j
		wantZ := math.Sin(branchAngle)*radius + j

		x, _, z := f.Position(i)
		if math.Abs(float64(x)-wantX) > 1e-6 || math.Abs(float64(z)-wantZ) > 1e-6 {
			t.Errorf("particle %d: got (%f, %f), want (%f, %f)", i, x, z, wantX, wantZ)
		}
	}
}

func TestDegenerateOriginScenario(t *testing.T) {
	// All draws zero: radius 0, jitter 0^power = 0. Four particles on two
	// branches collapse to the origin and take the inside color exactly.
	p := baseParams()
	p.Count = 4
	p.Branches = 2
	p.Shape = ShapeCircle
	p.Distribution = DistUniform

	f, err := Generate(p, scripted(0))
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 4; i++ {
		x, y, z := f.Position(i)
		if x != 0 || y != 0 || z != 0 {
			t.Errorf("particle %d: expected origin, got (%f, %f, %f)", i, x, y, z)
		}
		r, g, b := f.ColorAt(i)
		if r != float32(p.InsideColor.R) || g != float32(p.InsideColor.G) || b != float32(p.InsideColor.B) {
			t.Errorf("particle %d: expected inside color, got (%f, %f, %f)", i, r, g, b)
		}
	}
}

func TestCircleIgnoresSpin(t *testing.T) {
	p := baseParams()
	p.Shape = ShapeCircle
	p.Count = 64

	p.Spin = 0
	a, err := Generate(p, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatal(err)
	}

	p.Spin = 5
	b, err := Generate(p, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatal(err)
	}

	for i := range a.Positions {
		if a.Positions[i] != b.Positions[i] {
			t.Fatalf("position %d changed with spin: %f vs %f", i, a.Positions[i], b.Positions[i])
		}
	}
}

func TestEllipseScalesX(t *testing.T) {
	// Script one particle per cycle: radius draw 0.5, then zero jitter
	// magnitudes (sign draws are irrelevant at zero magnitude).
	draws := []float64{0.5, 0, 0.75, 0, 0.75, 0, 0.75}

	p := baseParams()
	p.Count = 12
	p.ThetaScale = 0.5

	p.Shape = ShapeCircle
	circle, err := Generate(p, scripted(draws...))
	if err != nil {
		t.Fatal(err)
	}

	p.Shape = ShapeEllipse
	ellipse, err := Generate(p, scripted(draws...))
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < p.Count; i++ {
		cx, cy, cz := circle.Position(i)
		ex, ey, ez := ellipse.Position(i)
		if math.Abs(float64(ex)-float64(cx)*p.ThetaScale) > 1e-6 {
			t.Errorf("particle %d: x %f, want %f", i, ex, cx*float32(p.ThetaScale))
		}
		if ey != cy || ez != cz {
			t.Errorf("particle %d: y/z changed: (%f, %f) vs (%f, %f)", i, ey, ez, cy, cz)
		}
	}
}

func TestColorMidpoint(t *testing.T) {
	// Radius draw 0.5 puts every particle exactly halfway between the
	// color endpoints.
	p := baseParams()
	p.Count = 3

	f, err := Generate(p, scripted(0.5))
	if err != nil {
		t.Fatal(err)
	}

	want := p.InsideColor.Lerp(p.OutsideColor, 0.5)
	r, g, b := f.ColorAt(0)
	if math.Abs(float64(r)-want.R) > 1e-6 || math.Abs(float64(g)-want.G) > 1e-6 || math.Abs(float64(b)-want.B) > 1e-6 {
		t.Errorf("got (%f, %f, %f), want (%f, %f, %f)", r, g, b, want.R, want.G, want.B)
	}
}

func TestLerpExtrapolates(t *testing.T) {
	inside := Color{R: 0, G: 0, B: 0}
	outside := Color{R: 0.5, G: 0.5, B: 0.5}

	if got := inside.Lerp(outside, 0); got != inside {
		t.Errorf("t=0: got %+v, want inside", got)
	}
	if got := inside.Lerp(outside, 1); got != outside {
		t.Errorf("t=1: got %+v, want outside", got)
	}
	// Unbounded laws can push t past 1; the lerp must not clamp.
	if got := inside.Lerp(outside, 2); got.R != 1 {
		t.Errorf("t=2: got R=%f, want 1", got.R)
	}
}

func TestInvalidShape(t *testing.T) {
	p := baseParams()
	p.Shape = "hexagon"

	f, err := Generate(p, rand.New(rand.NewSource(1)))
	if !errors.Is(err, ErrInvalidShape) {
		t.Fatalf("expected ErrInvalidShape, got %v", err)
	}
	if f != nil {
		t.Error("expected no field on invalid shape")
	}
}

func TestInvalidDistribution(t *testing.T) {
	p := baseParams()
	p.Distribution = "bogus"

	f, err := Generate(p, rand.New(rand.NewSource(1)))
	if !errors.Is(err, ErrInvalidDistribution) {
		t.Fatalf("expected ErrInvalidDistribution, got %v", err)
	}
	if f != nil {
		t.Error("expected no field on invalid distribution")
	}
}

func TestInvalidCount(t *testing.T) {
	p := baseParams()
	p.Count = 0

	if _, err := Generate(p, rand.New(rand.NewSource(1))); err == nil {
		t.Fatal("expected error for zero count")
	}
}

func TestParseShape(t *testing.T) {
	if s, err := ParseShape(" Spiral "); err != nil || s != ShapeSpiral {
		t.Errorf("got (%q, %v)", s, err)
	}
	if _, err := ParseShape("hexagon"); !errors.Is(err, ErrInvalidShape) {
		t.Errorf("expected ErrInvalidShape, got %v", err)
	}
}

func TestParseDistribution(t *testing.T) {
	if d, err := ParseDistribution("WEIBULL"); err != nil || d != DistWeibull {
		t.Errorf("got (%q, %v)", d, err)
	}
	if _, err := ParseDistribution("bogus"); !errors.Is(err, ErrInvalidDistribution) {
		t.Errorf("expected ErrInvalidDistribution, got %v", err)
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#ff6030")
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(c.R-1) > 1e-9 || math.Abs(c.G-96.0/255) > 1e-9 || math.Abs(c.B-48.0/255) > 1e-9 {
		t.Errorf("got %+v", c)
	}
	if c.Hex() != "#ff6030" {
		t.Errorf("roundtrip: got %q", c.Hex())
	}

	if _, err := ParseHexColor("red"); err == nil {
		t.Error("expected error for non-hex input")
	}
}
