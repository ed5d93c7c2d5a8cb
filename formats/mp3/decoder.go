// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/hardkick/audio"
	"github.com/ik5/hardkick/utils"
)

// go-mp3 always emits interleaved stereo 16-bit little-endian PCM, upmixing
// mono streams itself.
const (
	outputChannels = 2
	bytesPerSample = 2
	defaultBufSize = 4096
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        mp3Reader
	sampleRate int
	buf        []byte
	// a read may end mid-sample; the odd byte waits for its partner
	carry    byte
	hasCarry bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return outputChannels }
func (s *source) Close() error    { return nil }

// BufSize reports the sample capacity, not bytes.
func (s *source) BufSize() int {
	if cap(s.buf) == 0 {
		return defaultBufSize
	}
	return cap(s.buf) / bytesPerSample
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	need := len(dst) * bytesPerSample
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	off := 0
	if s.hasCarry {
		s.buf[0] = s.carry
		off = 1
	}

	m, err := s.dec.Read(s.buf[off:])
	m += off
	if err != nil && err != io.EOF {
		return 0, fmt.Errorf("decoding mp3: %w", err)
	}

	n := m / bytesPerSample
	s.hasCarry = m%bytesPerSample != 0
	if s.hasCarry {
		s.carry = s.buf[m-1]
	}

	for i := range n {
		v := int16(binary.LittleEndian.Uint16(s.buf[i*bytesPerSample:]))
		dst[i] = utils.IntToFloat32(int(v), 16)
	}

	if m == 0 && err == nil {
		return 0, io.EOF
	}
	return n, err
}

// Decoder reads MPEG-1/2 Layer III streams.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("opening mp3 stream: %w", err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		buf:        make([]byte, defaultBufSize*bytesPerSample),
	}, nil
}
