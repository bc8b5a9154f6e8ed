// Package telemetry records field regeneration events and statistics.
package telemetry

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/nebula/galaxy"
)

// FieldStats summarizes the radial distribution of a generated field.
// Radial distance is measured in the galactic plane (x, z), matching the
// generator's radial sampling law; the thin-disk y jitter is excluded.
type FieldStats struct {
	Count      int
	RadialMean float64
	RadialStd  float64
	RadialP10  float64
	RadialP50  float64
	RadialP90  float64
	MaxRadius  float64
}

// ComputeFieldStats derives radial statistics from a field.
// Returns the zero value for a nil or empty field.
func ComputeFieldStats(f *galaxy.Field) FieldStats {
	if f == nil || f.Count() == 0 {
		return FieldStats{}
	}

	n := f.Count()
	radii := make([]float64, n)
	for i := 0; i < n; i++ {
		x, _, z := f.Position(i)
		radii[i] = math.Hypot(float64(x), float64(z))
	}
	sort.Float64s(radii)

	return FieldStats{
		Count:      n,
		RadialMean: stat.Mean(radii, nil),
		RadialStd:  stat.StdDev(radii, nil),
		RadialP10:  stat.Quantile(0.1, stat.Empirical, radii, nil),
		RadialP50:  stat.Quantile(0.5, stat.Empirical, radii, nil),
		RadialP90:  stat.Quantile(0.9, stat.Empirical, radii, nil),
		MaxRadius:  radii[n-1],
	}
}
