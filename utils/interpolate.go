// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// CubicInterpolate performs Catmull-Rom interpolation.
// x is the fractional position between y1 and y2 (0 <= x <= 1);
// y0, y1, y2, y3 are four consecutive samples.
func CubicInterpolate(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2
	a3 := y1

	return a0*x*x*x + a1*x*x + a2*x + a3
}

// LinearInterpolate blends a and b by x (0 returns a, 1 returns b).
func LinearInterpolate(a, b, x float32) float32 {
	return a + (b-a)*x
}

// Hann returns the Hann window value for a normalized distance d from the
// window centre, where |d| == 1 is the window edge. Outside the window it is 0.
func Hann(d float64) float64 {
	if d <= -1 || d >= 1 {
		return 0
	}
	return 0.5 * (1 + math.Cos(math.Pi*d))
}
