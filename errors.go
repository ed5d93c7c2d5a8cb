// SPDX-License-Identifier: EPL-2.0

package hardkick

import "errors"

var (
	ErrBlockSize = errors.New("invalid block size")
	ErrNoScript  = errors.New("no scenario to render")
)
