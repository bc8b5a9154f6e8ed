package telemetry

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/nebula/galaxy"
)

// RegenRecord is one row of regen.csv: a snapshot of the parameters that
// produced a field, how long generation took, and the resulting radial
// statistics.
type RegenRecord struct {
	Timestamp       string  `csv:"timestamp"`
	DurationUS      int64   `csv:"duration_us"`
	Count           int     `csv:"count"`
	Radius          float64 `csv:"radius"`
	Branches        int     `csv:"branches"`
	Spin            float64 `csv:"spin"`
	RandomnessPower float64 `csv:"randomness_power"`
	Shape           string  `csv:"shape"`
	Distribution    string  `csv:"distribution"`
	InsideColor     string  `csv:"inside_color"`
	OutsideColor    string  `csv:"outside_color"`
	RadialMean      float64 `csv:"radial_mean"`
	RadialStd       float64 `csv:"radial_std"`
	RadialP50       float64 `csv:"radial_p50"`
	RadialP90       float64 `csv:"radial_p90"`
	MaxRadius       float64 `csv:"radial_max"`
}

// NewRegenRecord builds a record from a generation's inputs and outcome.
func NewRegenRecord(p galaxy.Params, stats FieldStats, duration time.Duration) RegenRecord {
	return RegenRecord{
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
		DurationUS:      duration.Microseconds(),
		Count:           p.Count,
		Radius:          p.Radius,
		Branches:        p.Branches,
		Spin:            p.Spin,
		RandomnessPower: p.RandomnessPower,
		Shape:           string(p.Shape),
		Distribution:    string(p.Distribution),
		InsideColor:     p.InsideColor.Hex(),
		OutsideColor:    p.OutsideColor.Hex(),
		RadialMean:      stats.RadialMean,
		RadialStd:       stats.RadialStd,
		RadialP50:       stats.RadialP50,
		RadialP90:       stats.RadialP90,
		MaxRadius:       stats.MaxRadius,
	}
}

// OutputManager handles structured run output with CSV logging.
// A nil OutputManager is valid and discards everything.
type OutputManager struct {
	dir       string
	regenFile *os.File

	// Track if the header has been written
	regenHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	regenPath := filepath.Join(dir, "regen.csv")
	f, err := os.Create(regenPath)
	if err != nil {
		return nil, fmt.Errorf("creating regen.csv: %w", err)
	}
	om.regenFile = f

	return om, nil
}

// Dir returns the output directory, or "" when output is disabled.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// WriteRegen appends a regeneration record to regen.csv.
func (om *OutputManager) WriteRegen(rec RegenRecord) error {
	if om == nil {
		return nil
	}

	records := []RegenRecord{rec}

	if !om.regenHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.regenFile); err != nil {
			return fmt.Errorf("writing regen record: %w", err)
		}
		om.regenHeaderWritten = true
	} else {
		// Subsequent writes skip headers
		if err := gocsv.MarshalWithoutHeaders(records, om.regenFile); err != nil {
			return fmt.Errorf("writing regen record: %w", err)
		}
	}

	return nil
}

// Close flushes and closes the output files.
func (om *OutputManager) Close() error {
	if om == nil || om.regenFile == nil {
		return nil
	}
	return om.regenFile.Close()
}
