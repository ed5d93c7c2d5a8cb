// SPDX-License-Identifier: EPL-2.0

package script

import "errors"

var (
	ErrScript       = errors.New("scenario script failed")
	ErrBadArgument  = errors.New("bad scenario argument")
	ErrUnknownField = errors.New("unknown field")
)
