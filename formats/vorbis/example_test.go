// SPDX-License-Identifier: EPL-2.0

package vorbis_test

import (
	"bytes"
	"fmt"

	"github.com/ik5/hardkick/audio"
	"github.com/ik5/hardkick/formats/vorbis"
)

// Example registers the decoder under the usual Ogg extensions.
func Example() {
	reg := audio.NewRegistry()
	for _, ext := range []string{"ogg", "oga"} {
		reg.Register(ext, vorbis.Decoder{})
	}

	fmt.Println(reg.Formats())
	// Output:
	// [oga ogg]
}

func ExampleDecoder_Decode_errorHandling() {
	_, err := vorbis.Decoder{}.Decode(bytes.NewReader([]byte("RIFF")))
	fmt.Println(err != nil)
	// Output:
	// true
}
