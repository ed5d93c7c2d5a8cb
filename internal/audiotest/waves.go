// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"math"
	"math/rand/v2"
)

// Ramp returns n samples rising linearly from 0 towards 1.
func Ramp(n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(i) / float32(n)
	}
	return out
}

// Sine returns n samples of a full-scale sine at freq Hz.
func Sine(n, rate int, freq float64) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(math.Sin(2 * math.Pi * freq * float64(i) / float64(rate)))
	}
	return out
}

// Saw returns n samples of a full-scale rising sawtooth at freq Hz.
func Saw(n, rate int, freq float64) []float32 {
	out := make([]float32, n)
	for i := range out {
		ph := freq * float64(i) / float64(rate)
		out[i] = float32(2*(ph-math.Floor(ph)) - 1)
	}
	return out
}

// Noise returns n samples of uniform white noise in [-1, 1), repeatable
// for a given seed.
func Noise(n int, seed uint64) []float32 {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(rng.Float64()*2 - 1)
	}
	return out
}

// Constant returns n copies of v.
func Constant(n int, v float32) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// Kick returns n samples of a synthetic kick: a sine sweeping exponentially
// from 180 Hz down to 55 Hz under an exponential amplitude decay.
func Kick(n, rate int) []float32 {
	out := make([]float32, n)
	const (
		startHz = 180.0
		endHz   = 55.0
		sweep   = 0.03 // seconds
		decay   = 0.35 // seconds
	)
	phase := 0.0
	for i := range out {
		t := float64(i) / float64(rate)
		freq := endHz + (startHz-endHz)*math.Exp(-t/sweep)
		phase += 2 * math.Pi * freq / float64(rate)
		out[i] = float32(math.Sin(phase) * math.Exp(-t/decay))
	}
	return out
}

// Interleave merges equal-length channel slices into one interleaved slice.
func Interleave(channels ...[]float32) []float32 {
	if len(channels) == 0 {
		return nil
	}
	frames := len(channels[0])
	out := make([]float32, frames*len(channels))
	for f := range frames {
		for c, ch := range channels {
			out[f*len(channels)+c] = ch[f]
		}
	}
	return out
}
