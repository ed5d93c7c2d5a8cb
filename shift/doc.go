// SPDX-License-Identifier: EPL-2.0

// Package shift implements the two pitch shifters a voice can play through.
//
// The Resampler reads the sample at a fractional rate equal to the pitch
// ratio, so raising the pitch also shortens the note. PSOLA re-spaces
// period-synchronous Hann grains instead and keeps the original duration.
// Its tonal control sets how fast each grain is read: at 1 the grains keep
// their original spectrum (formants stay put), at 0 they are resampled by
// the full pitch ratio like the Resampler.
//
// Both are driven through Shifter, which produces one frame per call and
// never allocates.
package shift
