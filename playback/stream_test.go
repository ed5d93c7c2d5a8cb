// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/hardkick/engine"
	"github.com/ik5/hardkick/internal/audiotest"
	"github.com/ik5/hardkick/sample"
)

func newEngine(t testing.TB, channels int) *engine.Engine {
	t.Helper()

	cfg := engine.DefaultConfig()
	cfg.Channels = channels
	e, err := engine.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = e.Close() })

	a, err := sample.FromPlanar(cfg.SampleRate, audiotest.Constant(1000, 0.5))
	if err != nil {
		t.Fatal(err)
	}
	if err := e.SetLayerSample(0, a); err != nil {
		t.Fatal(err)
	}
	return e
}

func decode(p []byte) []float32 {
	out := make([]float32, len(p)/bytesPerSample)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(p[i*bytesPerSample:]))
	}
	return out
}

func TestNewStream(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		block    int
		wantErr  bool
	}{
		{"mono", 1, 64, false},
		{"stereo default block", 2, 0, false},
		{"no channels", 0, 64, true},
		{"surround", 6, 64, true},
		{"negative block", 2, -1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, err := NewStream(tt.channels, tt.block)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidOptions) {
					t.Errorf("error = %v, want ErrInvalidOptions", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewStream() error = %v", err)
			}
			if s.Channels() != tt.channels {
				t.Errorf("Channels() = %d", s.Channels())
			}
		})
	}
}

func TestStream_SilentWithoutEngine(t *testing.T) {
	t.Parallel()

	s, _ := NewStream(2, 16)
	p := make([]byte, 100)
	for i := range p {
		p[i] = 0xff
	}

	n, err := s.Read(p)
	if err != nil || n != 96 {
		t.Fatalf("Read() = %d, %v; want 96 whole-frame bytes", n, err)
	}
	for i, b := range p[:n] {
		if b != 0 {
			t.Fatalf("byte %d = %#x, want silence", i, b)
		}
	}
	if s.Frames() != 12 {
		t.Errorf("Frames() = %d, want 12", s.Frames())
	}
}

func TestStream_RendersEngine(t *testing.T) {
	t.Parallel()

	e := newEngine(t, 2)
	s, _ := NewStream(2, 16)
	if err := s.Attach(e); err != nil {
		t.Fatal(err)
	}
	if !e.Post(engine.NoteOnEvent(0, 60, 1)) {
		t.Fatal("Post() = false")
	}

	// spans several blocks and a partial one
	p := make([]byte, 50*2*bytesPerSample)
	n, err := s.Read(p)
	if err != nil || n != len(p) {
		t.Fatalf("Read() = %d, %v", n, err)
	}
	for i, v := range decode(p) {
		if v != 0.5 {
			t.Fatalf("sample %d = %v, want 0.5", i, v)
		}
	}

	if err := s.Attach(nil); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Read(p); err != nil {
		t.Fatal(err)
	}
	if decode(p)[0] != 0 {
		t.Error("detached stream is not silent")
	}
}

func TestStream_Errors(t *testing.T) {
	t.Parallel()

	s, _ := NewStream(2, 16)
	if err := s.Attach(newEngine(t, 1)); !errors.Is(err, ErrChannelMismatch) {
		t.Errorf("Attach(mono) error = %v, want ErrChannelMismatch", err)
	}
	if n, err := s.Read(make([]byte, 7)); n != 0 || !errors.Is(err, io.ErrShortBuffer) {
		t.Errorf("Read(7 bytes) = %d, %v; want io.ErrShortBuffer", n, err)
	}
}

func TestStream_ReadZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	s, _ := NewStream(2, 64)
	if err := s.Attach(newEngine(t, 2)); err != nil {
		t.Fatal(err)
	}
	p := make([]byte, 512*2*bytesPerSample)

	allocs := testing.AllocsPerRun(50, func() {
		_, _ = s.Read(p)
	})
	if allocs != 0 {
		t.Errorf("Read() allocs = %v, want 0", allocs)
	}
}

func BenchmarkStream_Read(b *testing.B) {
	s, _ := NewStream(2, DefaultBlockFrames)
	e := newEngine(b, 2)
	_ = s.Attach(e)
	p := make([]byte, 1024*2*bytesPerSample)

	b.ReportAllocs()
	for b.Loop() {
		e.Post(engine.NoteOnEvent(0, 60, 1))
		_, _ = s.Read(p)
	}
}
