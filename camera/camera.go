// Package camera provides an orbital 3D camera for viewing the field.
package camera

import "math"

// Orbit is a camera that circles a target point at a fixed distance.
// Yaw rotates about the vertical axis, pitch tilts toward the poles.
// It carries no rendering dependency; the viewer converts it to the
// renderer's camera type each frame.
type Orbit struct {
	// Target is the point the camera looks at, in world coordinates.
	TargetX, TargetY, TargetZ float32

	// Yaw and Pitch in radians. Pitch is clamped away from the poles so
	// the up vector never degenerates.
	Yaw, Pitch float32

	// Distance from the target.
	Distance float32

	// FOV is the vertical field of view in degrees.
	FOV float32

	// Distance constraints.
	MinDistance, MaxDistance float32
}

// maxPitch keeps the eye off the vertical axis.
const maxPitch = math.Pi/2 - 0.05

// New creates an orbit camera looking at the origin.
func New(yaw, pitch, distance, fov, minDist, maxDist float32) *Orbit {
	o := &Orbit{
		Yaw:         yaw,
		FOV:         fov,
		MinDistance: minDist,
		MaxDistance: maxDist,
	}
	o.Pitch = clamp(pitch, -maxPitch, maxPitch)
	o.Distance = clamp(distance, minDist, maxDist)
	return o
}

// Position returns the eye point in world coordinates.
func (o *Orbit) Position() (x, y, z float32) {
	cosPitch := float32(math.Cos(float64(o.Pitch)))
	x = o.TargetX + o.Distance*cosPitch*float32(math.Cos(float64(o.Yaw)))
	y = o.TargetY + o.Distance*float32(math.Sin(float64(o.Pitch)))
	z = o.TargetZ + o.Distance*cosPitch*float32(math.Sin(float64(o.Yaw)))
	return x, y, z
}

// Rotate adjusts yaw and pitch by the given deltas in radians.
// Pitch is clamped; yaw wraps freely.
func (o *Orbit) Rotate(dYaw, dPitch float32) {
	o.Yaw += dYaw
	o.Pitch = clamp(o.Pitch+dPitch, -maxPitch, maxPitch)
}

// Dolly scales the distance by the given factor, clamped to the
// configured range. Factors below 1 move closer.
func (o *Orbit) Dolly(factor float32) {
	o.Distance = clamp(o.Distance*factor, o.MinDistance, o.MaxDistance)
}

// Reset restores the given pose.
func (o *Orbit) Reset(yaw, pitch, distance float32) {
	o.Yaw = yaw
	o.Pitch = clamp(pitch, -maxPitch, maxPitch)
	o.Distance = clamp(distance, o.MinDistance, o.MaxDistance)
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
