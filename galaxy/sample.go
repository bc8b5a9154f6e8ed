package galaxy

import (
	"math"
	"math/rand"
)

// Sampler draws one radial sample. Bounded laws return values in [0, 1];
// exponential, lognormal and pareto are unbounded above.
type Sampler func(rng *rand.Rand) float64

// samplers maps each distribution to its sampling function. Adding a law
// means adding a row here; dispatch and validation pick it up automatically.
var samplers = map[Distribution]Sampler{
	DistUniform:     sampleUniform,
	DistGaussian:    sampleGaussian,
	DistExponential: sampleExponential,
	DistWeibull:     sampleWeibull,
	DistLognormal:   sampleLognormal,
	DistPareto:      samplePareto,
}

func sampleUniform(rng *rand.Rand) float64 {
	return rng.Float64()
}

// sampleGaussian draws from N(0.5, 0.15) via Box-Muller, clamped to [0, 1].
func sampleGaussian(rng *rand.Rand) float64 {
	return clamp01(0.5 + 0.15*boxMuller(rng))
}

// sampleExponential is the inverse-CDF sample -ln(1-U) with rate 1.
func sampleExponential(rng *rand.Rand) float64 {
	return -math.Log(1 - rng.Float64())
}

// sampleWeibull with shape 1 and scale 1 reduces to (-ln(1-U))^(1/1).
func sampleWeibull(rng *rand.Rand) float64 {
	const shape, scale = 1.0, 1.0
	return scale * math.Pow(-math.Log(1-rng.Float64()), 1/shape)
}

func sampleLognormal(rng *rand.Rand) float64 {
	return math.Exp(boxMuller(rng))
}

// samplePareto with alpha 1 and xm 1 is xm / (1-U)^(1/alpha).
func samplePareto(rng *rand.Rand) float64 {
	const alpha, xm = 1.0, 1.0
	return xm / math.Pow(1-rng.Float64(), 1/alpha)
}

// boxMuller returns one standard normal deviate from two uniform draws.
// 1-U keeps the log argument in (0, 1] so a zero draw cannot blow up.
func boxMuller(rng *rand.Rand) float64 {
	u1 := 1 - rng.Float64()
	u2 := rng.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}
