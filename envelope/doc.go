// SPDX-License-Identifier: EPL-2.0

// Package envelope implements the per-voice ADSR gain envelope.
//
// Ramps are linear. Each call to Next advances the envelope by exactly one
// sample at the configured rate; there is no way to read ahead. A stage
// whose duration is zero completes instantly instead of dividing by zero.
package envelope
