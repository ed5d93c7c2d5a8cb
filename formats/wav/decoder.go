// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"
	"math"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/hardkick/audio"
	"github.com/ik5/hardkick/utils"
)

// WAVE format tags understood by the decoder.
const (
	formatPCM        = 1
	formatFloat      = 3
	formatExtensible = 0xFFFE
)

const defaultBufSize = 4096

// pcmReader is the part of gowav.Decoder the source needs, split out so
// tests can feed it directly.
type pcmReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type source struct {
	dec        pcmReader
	sampleRate int
	channels   int
	bitDepth   int
	float      bool
	intBuf     *goaudio.IntBuffer
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data)
	}
	return defaultBufSize
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{Data: make([]int, len(dst))}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		if err != nil {
			return 0, fmt.Errorf("reading wav pcm: %w", err)
		}
		return 0, io.EOF
	}

	for i, v := range s.intBuf.Data[:n] {
		dst[i] = s.sample(v)
	}

	return n, err
}

func (s *source) sample(v int) float32 {
	switch {
	case s.float:
		return math.Float32frombits(uint32(int32(v)))
	case s.bitDepth == 8:
		// 8-bit WAV is unsigned
		return utils.IntToFloat32(v-128, 8)
	default:
		return utils.IntToFloat32(v, s.bitDepth)
	}
}

// Decoder reads RIFF/WAVE files holding integer PCM (8, 16, 24 or 32 bit)
// or 32-bit IEEE float samples.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	// go-audio needs to seek between chunks
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading wav data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		if err := dec.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNotWavFile, err)
		}
		return nil, ErrNotWavFile
	}

	float := false
	switch dec.WavAudioFormat {
	case formatPCM, formatExtensible:
	case formatFloat:
		float = true
	default:
		return nil, fmt.Errorf("format tag %#x: %w", dec.WavAudioFormat, ErrUnsupportedEncoding)
	}

	depth := int(dec.BitDepth)
	switch {
	case float && depth != 32:
		return nil, fmt.Errorf("%d-bit float: %w", depth, ErrUnsupportedBitDepth)
	case depth != 8 && depth != 16 && depth != 24 && depth != 32:
		return nil, fmt.Errorf("%d-bit: %w", depth, ErrUnsupportedBitDepth)
	}

	if dec.SampleRate == 0 {
		return nil, ErrUnsupportedWavLayout
	}

	return &source{
		dec:        dec,
		sampleRate: int(dec.SampleRate),
		channels:   int(dec.NumChans),
		bitDepth:   depth,
		float:      float,
	}, nil
}
