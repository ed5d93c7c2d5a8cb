// SPDX-License-Identifier: EPL-2.0

package shift

import (
	"math"
	"testing"

	"github.com/ik5/hardkick/internal/audiotest"
)

func TestAnalyze(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		rate       int
		data       []float32
		wantPeriod float64
		tolerance  float64
		wantVoiced bool
	}{
		{"sine 200 Hz", 48000, audiotest.Sine(8000, 48000, 200), 240, 0.5, true},
		{"saw 150 Hz", 44100, audiotest.Saw(8000, 44100, 150), 294, 1, true},
		{"sine 55 Hz", 48000, audiotest.Sine(8000, 48000, 55), 48000.0 / 55, 2, true},
		{"noise", 48000, audiotest.Noise(8000, 1), 480, 0, false},
		{"silence", 48000, audiotest.Constant(8000, 0), 480, 0, false},
		{"too short", 44100, audiotest.Sine(64, 44100, 440), 441, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Analyze(mustAsset(t, tt.rate, tt.data))
			if math.Abs(got.Period-tt.wantPeriod) > tt.tolerance {
				t.Errorf("Period = %v, want %v ±%v", got.Period, tt.wantPeriod, tt.tolerance)
			}
			if got.Voiced() != tt.wantVoiced {
				t.Errorf("Voiced() = %v (clarity %v), want %v", got.Voiced(), got.Clarity, tt.wantVoiced)
			}
		})
	}
}

func TestAnalyze_StereoUsesMixdown(t *testing.T) {
	t.Parallel()

	sine := audiotest.Sine(6000, 48000, 400)
	got := Analyze(mustAsset(t, 48000, sine, sine))
	if math.Abs(got.Period-120) > 0.5 {
		t.Errorf("Period = %v, want 120", got.Period)
	}
}

func TestAnalyze_Kick(t *testing.T) {
	t.Parallel()

	got := Analyze(mustAsset(t, 48000, audiotest.Kick(9600, 48000)))
	// the sweep starts at 180 Hz and settles at 55 Hz
	if got.Period < 48000/200.0 || got.Period > 48000/50.0 {
		t.Errorf("Period = %v, outside the sweep range", got.Period)
	}
}

func TestParabolicOffset(t *testing.T) {
	t.Parallel()

	if got := parabolicOffset(0.5, 1, 0.5); got != 0 {
		t.Errorf("symmetric peak offset = %v, want 0", got)
	}
	if got := parabolicOffset(0.9, 1, 0.5); got >= 0 {
		t.Errorf("left-leaning peak offset = %v, want negative", got)
	}
	if got := parabolicOffset(1, 1, 1); got != 0 {
		t.Errorf("flat offset = %v, want 0", got)
	}
}

func BenchmarkAnalyze(b *testing.B) {
	src := mustAsset(b, 48000, audiotest.Kick(48000, 48000))

	b.ReportAllocs()
	for range b.N {
		Analyze(src)
	}
}
