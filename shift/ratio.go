// SPDX-License-Identifier: EPL-2.0

package shift

import (
	"math"

	"github.com/ik5/hardkick/utils"
)

// Bounds applied to every ratio that reaches a shifter.
const (
	MinRatio = 1e-4
	MaxRatio = 16.0
)

// Ratio returns the playback frequency ratio for note against a layer
// rooted at root, shifted by semitones. Without key tracking the note is
// ignored and only the semitone offset applies.
func Ratio(note, root int, semitones float64, keyTrack bool) float64 {
	st := semitones
	if keyTrack {
		st += float64(note - root)
	}
	return ClampRatio(utils.SemitonesToRatio(st))
}

// ClampRatio keeps r inside [MinRatio, MaxRatio]. NaN becomes 1 so a bad
// parameter plays the sample unshifted instead of stalling the voice.
func ClampRatio(r float64) float64 {
	switch {
	case math.IsNaN(r):
		return 1
	case r < MinRatio:
		return MinRatio
	case r > MaxRatio:
		return MaxRatio
	}
	return r
}
