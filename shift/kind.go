// SPDX-License-Identifier: EPL-2.0

package shift

import (
	"fmt"
	"strings"
)

// Kind selects the pitch shifting algorithm.
type Kind uint8

const (
	KindResample Kind = iota
	KindPSOLA
)

func (k Kind) String() string {
	switch k {
	case KindResample:
		return "resample"
	case KindPSOLA:
		return "psola"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Valid reports whether k names a known algorithm.
func (k Kind) Valid() bool { return k <= KindPSOLA }

// ParseKind accepts the names produced by String, case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "resample", "resampler":
		return KindResample, nil
	case "psola":
		return KindPSOLA, nil
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownKind)
}
