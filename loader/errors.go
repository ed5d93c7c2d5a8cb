// SPDX-License-Identifier: EPL-2.0

package loader

import (
	"errors"
	"fmt"
)

var (
	ErrNoRegistry = errors.New("loader has no decoder registry")
	ErrEmptyPath  = errors.New("empty sample path")
)

// AssetError reports a sample that could not be turned into an asset.
// Layer is -1 when the load was not tied to a slot.
type AssetError struct {
	Layer int
	Path  string
	Err   error
}

func (e *AssetError) Error() string {
	if e.Layer < 0 {
		return fmt.Sprintf("load %q: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("layer %d: load %q: %v", e.Layer, e.Path, e.Err)
}

func (e *AssetError) Unwrap() error { return e.Err }
