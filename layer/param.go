// SPDX-License-Identifier: EPL-2.0

package layer

import (
	"fmt"
	"strings"
)

// ParamID names one field of Params for sample-accurate automation.
type ParamID uint8

const (
	ParamMute ParamID = iota
	ParamTonal
	ParamGain
	ParamRootNote
	ParamSemitones
	ParamKeyTrack
	ParamAttack
	ParamDecay
	ParamSustain
	ParamRelease
	ParamStartOffset
	ParamBlendGroup
	ParamShift

	numParams
)

var paramNames = [numParams]string{
	ParamMute:        "mute",
	ParamTonal:       "tonal",
	ParamGain:        "gain",
	ParamRootNote:    "root",
	ParamSemitones:   "semitones",
	ParamKeyTrack:    "keytrack",
	ParamAttack:      "attack",
	ParamDecay:       "decay",
	ParamSustain:     "sustain",
	ParamRelease:     "release",
	ParamStartOffset: "start",
	ParamBlendGroup:  "group",
	ParamShift:       "shift",
}

func (id ParamID) String() string {
	if id < numParams {
		return paramNames[id]
	}
	return fmt.Sprintf("ParamID(%d)", uint8(id))
}

// ParseParamID looks a parameter up by its String name.
func ParseParamID(s string) (ParamID, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for id, name := range paramNames {
		if name == s {
			return ParamID(id), nil
		}
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownParam)
}
