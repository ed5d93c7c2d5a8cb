// SPDX-License-Identifier: EPL-2.0

package sample

import (
	"errors"
	"io"
	"math"
	"testing"
	"time"

	"github.com/ik5/hardkick/internal/audiotest"
)

func TestNew_Deinterleaves(t *testing.T) {
	t.Parallel()

	a, err := New(48000, 2, []float32{0.1, -0.1, 0.2, -0.2, 0.3, -0.3})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if a.Channels() != 2 || a.Frames() != 3 || a.SampleRate() != 48000 {
		t.Fatalf("got %d ch, %d frames, %d Hz", a.Channels(), a.Frames(), a.SampleRate())
	}
	if a.At(0, 2) != 0.3 || a.At(1, 1) != -0.2 {
		t.Errorf("At() returned wrong values: %v %v", a.At(0, 2), a.At(1, 1))
	}
	if a.At(0, -1) != 0 || a.At(0, 3) != 0 {
		t.Error("At() outside the asset should be silent")
	}
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		rate     int
		channels int
		data     []float32
		want     error
	}{
		{"zero rate", 0, 1, []float32{1}, ErrInvalidRate},
		{"no channels", 44100, 0, []float32{1}, ErrTooManyChannels},
		{"too many channels", 44100, MaxChannels + 1, make([]float32, 90), ErrTooManyChannels},
		{"empty", 44100, 2, []float32{1}, ErrEmptyAsset},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := New(tt.rate, tt.channels, tt.data); !errors.Is(err, tt.want) {
				t.Errorf("New() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestFromPlanar(t *testing.T) {
	t.Parallel()

	left := []float32{1, 2, 3}
	a, err := FromPlanar(44100, left, []float32{4, 5, 6})
	if err != nil {
		t.Fatalf("FromPlanar() error = %v", err)
	}

	left[0] = 99
	if a.At(0, 0) != 1 {
		t.Error("FromPlanar() must copy its input")
	}

	if _, err := FromPlanar(44100, []float32{1, 2}, []float32{1}); !errors.Is(err, ErrChannelLength) {
		t.Errorf("mismatched channels error = %v, want ErrChannelLength", err)
	}
}

func TestFromSource(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSineSource(22050, 2, 10000, 100)
	a, err := FromSource(src)
	if err != nil {
		t.Fatalf("FromSource() error = %v", err)
	}

	if a.Frames() != 10000 || a.Channels() != 2 || a.SampleRate() != 22050 {
		t.Errorf("got %d frames, %d ch, %d Hz", a.Frames(), a.Channels(), a.SampleRate())
	}
	if !src.Closed() {
		t.Error("FromSource() did not close the source")
	}
	if want := 10000 * time.Second / 22050; a.Duration() < want-time.Microsecond || a.Duration() > want+time.Microsecond {
		t.Errorf("Duration() = %v, want %v", a.Duration(), want)
	}
}

type failingSource struct{ *audiotest.MockSource }

func (failingSource) ReadSamples([]float32) (int, error) { return 0, io.ErrUnexpectedEOF }

func TestFromSource_ReadError(t *testing.T) {
	t.Parallel()

	src := failingSource{audiotest.NewSilentSource(8000, 1, 10)}
	if _, err := FromSource(src); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("FromSource() error = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestCubic(t *testing.T) {
	t.Parallel()

	ramp := audiotest.Ramp(100)
	a, err := New(8000, 1, ramp)
	if err != nil {
		t.Fatal(err)
	}

	for i := range 100 {
		if got := a.Cubic(0, float64(i)); got != ramp[i] {
			t.Fatalf("Cubic(%d) = %v, want exact %v", i, got, ramp[i])
		}
	}

	// linear data interpolates linearly away from the edges
	if got := a.Cubic(0, 10.5); math.Abs(float64(got-0.105)) > 1e-6 {
		t.Errorf("Cubic(10.5) = %v, want 0.105", got)
	}
	if a.Cubic(0, -0.5) != 0 || a.Cubic(0, 100) != 0 {
		t.Error("Cubic() outside the asset should be silent")
	}
}

func TestMono(t *testing.T) {
	t.Parallel()

	a, err := FromPlanar(8000, []float32{0.2, 0.4}, []float32{0.4, 0.0})
	if err != nil {
		t.Fatal(err)
	}

	mono := a.Mono()
	want := []float32{0.3, 0.2}
	for i := range want {
		if math.Abs(float64(mono[i]-want[i])) > 1e-6 {
			t.Errorf("Mono()[%d] = %v, want %v", i, mono[i], want[i])
		}
	}
}

func BenchmarkCubic(b *testing.B) {
	a, _ := New(48000, 1, audiotest.Sine(48000, 48000, 50))
	var sink float32

	b.ReportAllocs()
	for i := range b.N {
		sink += a.Cubic(0, float64(i%47000)+0.37)
	}
	_ = sink
}
