// SPDX-License-Identifier: EPL-2.0

package shift

import (
	"math"

	"github.com/ik5/hardkick/sample"
)

// Period search parameters.
const (
	analysisWindow = 4096
	minFrequency   = 30.0
	maxFrequency   = 1000.0

	// MinClarity is the normalized autocorrelation a lag needs before it is
	// trusted as the period.
	MinClarity = 0.3

	// candidates within this fraction of the best peak win if they are
	// shorter, which keeps the estimate off multiples of the true period
	peakTolerance = 0.9
)

// Analysis is the pitch information PSOLA needs about an asset. It is
// computed once per asset, off the render goroutine.
type Analysis struct {
	// Period is the estimated pitch period in source frames.
	Period float64
	// Clarity is the normalized autocorrelation at Period, 0 when the
	// period is the fallback.
	Clarity float64
}

// Voiced reports whether the period came from the signal rather than the
// fallback.
func (a Analysis) Voiced() bool { return a.Clarity >= MinClarity }

// FallbackPeriod is used for unpitched material: a 10 ms grid.
func FallbackPeriod(rate int) float64 { return float64(rate) / 100 }

// Analyze estimates the pitch period of the first frames of src with a
// normalized autocorrelation over lags between 1 kHz and 30 Hz.
func Analyze(src *sample.Asset) Analysis {
	fallback := Analysis{Period: FallbackPeriod(src.SampleRate())}

	x := src.Mono()
	n := min(len(x), analysisWindow)
	x = x[:n]

	rate := float64(src.SampleRate())
	minLag := max(int(rate/maxFrequency), 2)
	maxLag := min(int(rate/minFrequency), n/2)
	if maxLag-minLag < 2 {
		return fallback
	}

	// energy[i] is the sum of squares of x[:i]
	energy := make([]float64, n+1)
	for i, v := range x {
		energy[i+1] = energy[i] + float64(v)*float64(v)
	}

	r := make([]float64, maxLag+1)
	best := 0.0
	for lag := minLag; lag <= maxLag; lag++ {
		var c float64
		for i := 0; i+lag < n; i++ {
			c += float64(x[i]) * float64(x[i+lag])
		}
		e1 := energy[n-lag]
		e2 := energy[n] - energy[lag]
		if d := math.Sqrt(e1 * e2); d > 0 {
			r[lag] = c / d
		}
		best = max(best, r[lag])
	}
	if best < MinClarity {
		return fallback
	}

	for lag := minLag + 1; lag < maxLag; lag++ {
		if r[lag] < peakTolerance*best || r[lag] <= r[lag-1] || r[lag] < r[lag+1] {
			continue
		}
		return Analysis{Period: float64(lag) + parabolicOffset(r[lag-1], r[lag], r[lag+1]), Clarity: r[lag]}
	}
	return fallback
}

// parabolicOffset places the vertex of the parabola through three equally
// spaced points, relative to the middle one.
func parabolicOffset(a, b, c float64) float64 {
	d := a - 2*b + c
	if d == 0 {
		return 0
	}
	off := 0.5 * (a - c) / d
	return math.Max(-0.5, math.Min(0.5, off))
}
