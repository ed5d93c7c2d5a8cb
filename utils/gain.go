// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// SemitonesPerOctave is the number of equal-tempered steps in one octave.
const SemitonesPerOctave = 12.0

// DBToGain converts decibels to a linear amplitude factor.
func DBToGain(db float64) float64 {
	return math.Pow(10, db/20)
}

// GainToDB converts a linear amplitude factor to decibels. Non-positive
// gains map to -Inf.
func GainToDB(gain float64) float64 {
	if gain <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(gain)
}

// SemitonesToRatio returns the playback-rate ratio for a pitch offset in
// semitones: 2^(semitones/12).
func SemitonesToRatio(semitones float64) float64 {
	return math.Exp2(semitones / SemitonesPerOctave)
}
