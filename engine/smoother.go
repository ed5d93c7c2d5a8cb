// SPDX-License-Identifier: EPL-2.0

package engine

import "math"

// Smoothing times for gain changes.
const (
	voiceGainSmoothing  = 0.005
	masterGainSmoothing = 0.05
)

// smoother ramps linearly to a new target over a fixed number of ticks.
type smoother struct {
	value     float64
	target    float64
	step      float64
	remaining int
	length    int
}

func newSmoother(seconds float64, rate int, v float64) smoother {
	s := smoother{}
	s.setLength(seconds, rate)
	s.reset(v)
	return s
}

func (s *smoother) setLength(seconds float64, rate int) {
	s.length = max(1, int(math.Round(seconds*float64(rate))))
}

// reset jumps to v with no ramp.
func (s *smoother) reset(v float64) {
	s.value, s.target = v, v
	s.step, s.remaining = 0, 0
}

func (s *smoother) setTarget(v float64) {
	if v == s.target {
		return
	}
	s.target = v
	s.remaining = s.length
	s.step = (v - s.value) / float64(s.length)
}

func (s *smoother) next() float64 {
	if s.remaining > 0 {
		s.remaining--
		s.value += s.step
		if s.remaining == 0 {
			s.value = s.target
		}
	}
	return s.value
}
