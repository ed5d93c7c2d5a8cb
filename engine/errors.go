// SPDX-License-Identifier: EPL-2.0

package engine

import "errors"

var (
	ErrInvalidConfig = errors.New("invalid engine config")
	ErrClosed        = errors.New("engine closed")
)
