// SPDX-License-Identifier: EPL-2.0

package sample

import "errors"

var (
	ErrEmptyAsset      = errors.New("sample has no frames")
	ErrInvalidRate     = errors.New("invalid sample rate")
	ErrTooManyChannels = errors.New("unsupported channel count")
	ErrChannelLength   = errors.New("channels differ in length")
)
