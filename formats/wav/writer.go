// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"
	"math"
	"strings"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/hardkick/utils"
)

// Encoding selects the sample format Write produces.
type Encoding uint8

const (
	PCM16 Encoding = iota
	PCM24
	Float32
)

func (e Encoding) String() string {
	switch e {
	case PCM16:
		return "pcm16"
	case PCM24:
		return "pcm24"
	case Float32:
		return "float32"
	default:
		return fmt.Sprintf("Encoding(%d)", uint8(e))
	}
}

// ParseEncoding accepts the String names, ignoring case.
func ParseEncoding(s string) (Encoding, error) {
	for _, e := range []Encoding{PCM16, PCM24, Float32} {
		if strings.EqualFold(strings.TrimSpace(s), e.String()) {
			return e, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnsupportedEncoding)
}

func (e Encoding) bitDepth() int {
	if e == PCM24 {
		return 24
	}
	if e == Float32 {
		return 32
	}
	return 16
}

func (e Encoding) formatTag() int {
	if e == Float32 {
		return formatFloat
	}
	return formatPCM
}

const writeChunkFrames = 8192

// Write encodes interleaved float32 samples as a WAV file. Integer
// encodings clamp to [-1, 1]. When w cannot seek the file is assembled in
// memory first, since the RIFF sizes are patched after the data.
func Write(w io.Writer, sampleRate, channels int, enc Encoding, samples []float32) error {
	if sampleRate <= 0 || channels < 1 {
		return fmt.Errorf("rate %d, %d channels: %w", sampleRate, channels, ErrUnsupportedWavLayout)
	}
	if enc > Float32 {
		return fmt.Errorf("%s: %w", enc, ErrUnsupportedEncoding)
	}
	frames := len(samples) / channels
	if frames == 0 {
		return ErrNoSamples
	}

	ws, seekable := w.(io.WriteSeeker)
	var mem *memFile
	if !seekable {
		mem = &memFile{}
		ws = mem
	}

	e := gowav.NewEncoder(ws, sampleRate, enc.bitDepth(), channels, enc.formatTag())
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:   make([]int, min(frames, writeChunkFrames)*channels),
	}

	samples = samples[:frames*channels]
	for len(samples) > 0 {
		n := min(len(samples), len(buf.Data))
		buf.Data = buf.Data[:n]
		for i, v := range samples[:n] {
			buf.Data[i] = encode(enc, v)
		}
		if err := e.Write(buf); err != nil {
			return fmt.Errorf("writing wav frames: %w", err)
		}
		samples = samples[n:]
	}

	if err := e.Close(); err != nil {
		return fmt.Errorf("finishing wav: %w", err)
	}

	if mem != nil {
		if _, err := w.Write(mem.Bytes()); err != nil {
			return fmt.Errorf("flushing wav: %w", err)
		}
	}
	return nil
}

func encode(enc Encoding, v float32) int {
	switch enc {
	case PCM24:
		v = min(max(v, -1), 1)
		return int(v * 8388607)
	case Float32:
		return int(int32(math.Float32bits(v)))
	default:
		return int(utils.Float32ToInt16(v))
	}
}

// memFile is a growable in-memory io.WriteSeeker.
type memFile struct {
	buf []byte
	off int
}

func (m *memFile) Write(p []byte) (int, error) {
	if end := m.off + len(p); end > len(m.buf) {
		m.buf = append(m.buf, make([]byte, end-len(m.buf))...)
	}
	n := copy(m.buf[m.off:], p)
	m.off += n
	return n, nil
}

func (m *memFile) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(m.off) + offset
	case io.SeekEnd:
		abs = int64(len(m.buf)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}
	if abs < 0 {
		return 0, fmt.Errorf("negative position %d", abs)
	}
	m.off = int(abs)
	return abs, nil
}

func (m *memFile) Bytes() []byte { return m.buf }
