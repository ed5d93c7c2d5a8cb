// SPDX-License-Identifier: EPL-2.0

package shift

import (
	"errors"
	"testing"
)

func TestParseKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"resample", KindResample, false},
		{"Resampler", KindResample, false},
		{" PSOLA ", KindPSOLA, false},
		{"granular", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseKind(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownKind) {
					t.Fatalf("ParseKind(%q) error = %v, want ErrUnknownKind", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseKind(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
			}
			if back, _ := ParseKind(got.String()); back != got {
				t.Errorf("String() of %v does not parse back", got)
			}
		})
	}
}

func TestKind_Valid(t *testing.T) {
	t.Parallel()

	if !KindResample.Valid() || !KindPSOLA.Valid() {
		t.Error("known kinds reported invalid")
	}
	if Kind(9).Valid() {
		t.Error("Kind(9) reported valid")
	}
	if Kind(9).String() != "Kind(9)" {
		t.Errorf("Kind(9).String() = %q", Kind(9).String())
	}
}
