// SPDX-License-Identifier: EPL-2.0

package playback

import "errors"

var (
	ErrChannelMismatch = errors.New("engine channel count does not match the stream")
	ErrInvalidOptions  = errors.New("invalid playback options")
)
