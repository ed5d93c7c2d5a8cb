// SPDX-License-Identifier: EPL-2.0

package shift

import "errors"

var ErrUnknownKind = errors.New("unknown shift kind")
