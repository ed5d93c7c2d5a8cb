// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"math"
	"testing"

	"github.com/ik5/hardkick/internal/audiotest"
)

func TestMonoMixer_Mixdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		value    func(channel int) float32
		want     float32
	}{
		{"mono passthrough", 1, func(int) float32 { return 0.5 }, 0.5},
		{"stereo average", 2, func(c int) float32 { return []float32{0.4, 0.6}[c] }, 0.5},
		{"quad average", 4, func(c int) float32 { return float32(c) / 10 }, 0.15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := audiotest.NewMockSource(8000, tt.channels, 100, func(_ int, c int) float32 {
				return tt.value(c)
			})
			mixer := NewMonoMixer(src)
			if mixer.Channels() != 1 {
				t.Fatalf("Channels() = %d, want 1", mixer.Channels())
			}

			buf := make([]float32, 10)
			n, err := mixer.ReadSamples(buf)
			if err != nil {
				t.Fatalf("ReadSamples() error = %v", err)
			}
			if n != 10 {
				t.Fatalf("ReadSamples() n = %d, want 10", n)
			}
			for i := range n {
				if math.Abs(float64(buf[i]-tt.want)) > 0.001 {
					t.Errorf("buf[%d] = %v, want %v", i, buf[i], tt.want)
				}
			}
		})
	}
}

func TestMonoMixer_EOF(t *testing.T) {
	t.Parallel()

	mixer := NewMonoMixer(audiotest.NewSilentSource(8000, 2, 5))
	buf := make([]float32, 10)

	n, err := mixer.ReadSamples(buf)
	if err != io.EOF || n != 5 {
		t.Errorf("ReadSamples() = (%d, %v), want (5, io.EOF)", n, err)
	}

	n, err = mixer.ReadSamples(buf)
	if err != io.EOF || n != 0 {
		t.Errorf("second ReadSamples() = (%d, %v), want (0, io.EOF)", n, err)
	}
}

func TestMonoMixer_EmptyBufferAndClose(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(44100, 2, 100)
	mixer := NewMonoMixer(src)

	if n, err := mixer.ReadSamples(nil); n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = (%d, %v), want (0, nil)", n, err)
	}
	if mixer.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %d, want 44100", mixer.SampleRate())
	}
	if err := mixer.Close(); err != nil || !src.Closed() {
		t.Errorf("Close() = %v, closed = %v", err, src.Closed())
	}
}

func BenchmarkMonoMixer_StereoToMono(b *testing.B) {
	src := audiotest.NewSineSource(8000, 2, 100000, 440.0)
	mixer := NewMonoMixer(src)
	buf := make([]float32, 4096)

	b.ReportAllocs()
	for range b.N {
		src.Reset()
		for {
			if _, err := mixer.ReadSamples(buf); err == io.EOF {
				break
			}
		}
	}
}
