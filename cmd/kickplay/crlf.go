// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"io"
)

// crlfWriter writes \r\n for every \n.
type crlfWriter struct {
	w io.Writer
}

func (c crlfWriter) Write(p []byte) (int, error) {
	if _, err := c.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}
