// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.
package common

import (
	"errors"
	"fmt"
	"testing"
)

func TestConstError_IsAnError(t *testing.T) {
	var _ error = ErrInvalidFieldEncoding
}

func TestConstError_WrappedErrorsMatchTheirSentinel(t *testing.T) {
	_, decodeErr := FieldFromHex("0xzz")
	other := ConstError("tree is full")

	tests := map[string]struct {
		err   error
		match bool
	}{
		"nil":                {nil, false},
		"sentinel":           {ErrInvalidFieldEncoding, true},
		"decoding failure":   {decodeErr, true},
		"wrapped twice":      {fmt.Errorf("genesis: %w", decodeErr), true},
		"other sentinel":     {other, false},
		"joined with other":  {errors.Join(other, decodeErr), true},
		"joined without":     {errors.Join(other), false},
		"formatted, no wrap": {fmt.Errorf("%v", ErrInvalidFieldEncoding), false},
	}
	for name, test := range tests {
		if got := errors.Is(test.err, ErrInvalidFieldEncoding); got != test.match {
			t.Errorf("%s: unexpected match result for %v, wanted %t", name, test.err, test.match)
		}
	}
}

func TestConstError_MessageIsTheConstant(t *testing.T) {
	if got := ErrInvalidFieldEncoding.Error(); got != "invalid field element encoding" {
		t.Errorf("unexpected message %q", got)
	}
}
