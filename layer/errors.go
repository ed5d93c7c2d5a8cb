// SPDX-License-Identifier: EPL-2.0

package layer

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidParam  = errors.New("invalid layer parameter")
	ErrUnknownParam  = errors.New("unknown layer parameter")
	ErrLayerIndex    = errors.New("layer index out of range")
	ErrOffsetPastEnd = errors.New("start offset past end of sample")
)

// ConfigError reports a rejected parameter update. The previous value stays
// in effect.
type ConfigError struct {
	Layer int // -1 when not tied to a slot
	Param ParamID
	Value float64
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Layer < 0 {
		return fmt.Sprintf("%s = %v: %v", e.Param, e.Value, e.Err)
	}
	return fmt.Sprintf("layer %d: %s = %v: %v", e.Layer, e.Param, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }
