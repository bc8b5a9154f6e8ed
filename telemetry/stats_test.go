package telemetry

import (
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pthm-cable/nebula/galaxy"
)

func testParams() galaxy.Params {
	return galaxy.Params{
		Count:           1000,
		Size:            0.05,
		Radius:          5,
		Branches:        3,
		Spin:            1,
		RandomnessPower: 3,
		InsideColor:     galaxy.Color{R: 1, G: 0.4, B: 0.2},
		OutsideColor:    galaxy.Color{R: 0.1, G: 0.2, B: 0.5},
		Shape:           galaxy.ShapeSpiral,
		ThetaScale:      0.6,
		Distribution:    galaxy.DistUniform,
	}
}

func TestComputeFieldStatsEmpty(t *testing.T) {
	if s := ComputeFieldStats(nil); s.Count != 0 {
		t.Errorf("nil field: got %+v", s)
	}
}

func TestComputeFieldStats(t *testing.T) {
	f, err := galaxy.Generate(testParams(), rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatal(err)
	}

	s := ComputeFieldStats(f)
	if s.Count != 1000 {
		t.Errorf("count %d", s.Count)
	}
	// Uniform radii on [0, 5] with small jitter: mean near 2.5 and the
	// percentiles in order.
	if s.RadialMean < 2.0 || s.RadialMean > 3.0 {
		t.Errorf("radial mean %f out of expected range", s.RadialMean)
	}
	if !(s.RadialP10 <= s.RadialP50 && s.RadialP50 <= s.RadialP90 && s.RadialP90 <= s.MaxRadius) {
		t.Errorf("percentiles out of order: %+v", s)
	}
	if s.RadialStd <= 0 {
		t.Errorf("expected positive std, got %f", s.RadialStd)
	}
}

func TestComputeFieldStatsDegenerate(t *testing.T) {
	// All particles at the origin: zero mean, zero spread.
	f := &galaxy.Field{
		Positions: make([]float32, 12),
		Colors:    make([]float32, 12),
	}

	s := ComputeFieldStats(f)
	if s.RadialMean != 0 || s.MaxRadius != 0 {
		t.Errorf("got %+v", s)
	}
	if math.IsNaN(s.RadialStd) {
		t.Error("std is NaN for constant input")
	}
}

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatal(err)
	}
	if om != nil {
		t.Fatal("expected nil manager for empty dir")
	}
	// Nil manager must be safe to use.
	if err := om.WriteRegen(RegenRecord{}); err != nil {
		t.Errorf("nil write: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("nil close: %v", err)
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	p := testParams()
	f, err := galaxy.Generate(p, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatal(err)
	}
	rec := NewRegenRecord(p, ComputeFieldStats(f), 1500*time.Microsecond)

	if err := om.WriteRegen(rec); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteRegen(rec); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "regen.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 records, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "timestamp,") {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "spiral") || !strings.Contains(lines[1], "uniform") {
		t.Errorf("record missing shape/distribution: %q", lines[1])
	}
}

func TestNewRegenRecord(t *testing.T) {
	p := testParams()
	rec := NewRegenRecord(p, FieldStats{RadialMean: 2.5}, 2*time.Millisecond)

	if rec.DurationUS != 2000 {
		t.Errorf("duration %d", rec.DurationUS)
	}
	if rec.Shape != "spiral" || rec.Distribution != "uniform" {
		t.Errorf("got %q/%q", rec.Shape, rec.Distribution)
	}
	if rec.InsideColor != "#ff6633" {
		t.Errorf("inside color %q", rec.InsideColor)
	}
}
