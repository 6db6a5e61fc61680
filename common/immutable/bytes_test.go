// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package immutable

import (
	"bytes"
	"fmt"
	"testing"
)

func TestBytes_ComparableByContent(t *testing.T) {
	code := NewBytes([]byte{0x60, 0x01, 0x60, 0x02})
	same := NewBytes([]byte{0x60, 0x01, 0x60, 0x02})
	other := NewBytes([]byte{0x60, 0x02})

	if code != same {
		t.Errorf("bytecode with equal content should compare equal: %v vs %v", code, same)
	}
	if code == other {
		t.Errorf("bytecode with different content should differ: %v vs %v", code, other)
	}
	seen := map[Bytes]int{code: 1}
	if seen[same] != 1 {
		t.Errorf("equal content should map to the same key")
	}
}

func TestBytes_IsDetachedFromInput(t *testing.T) {
	data := []byte{1, 2, 3}
	b := NewBytes(data)
	data[0] = 9
	if got := b.ToBytes(); !bytes.Equal(got, []byte{1, 2, 3}) {
		t.Errorf("modifying the input changed the value, got %v", got)
	}
	out := b.ToBytes()
	out[1] = 9
	if got := b.ToBytes(); !bytes.Equal(got, []byte{1, 2, 3}) {
		t.Errorf("modifying the output changed the value, got %v", got)
	}
}

func TestBytes_LenAndIsEmpty(t *testing.T) {
	var empty Bytes
	if !empty.IsEmpty() || empty.Len() != 0 {
		t.Errorf("zero value should be empty, got len %d", empty.Len())
	}
	b := NewBytes([]byte{1, 2, 3})
	if b.IsEmpty() || b.Len() != 3 {
		t.Errorf("unexpected length %d", b.Len())
	}
}

func TestBytes_PrintsAsHex(t *testing.T) {
	b := NewBytes([]byte{0xde, 0xad})
	if got, want := fmt.Sprint(b), "0xdead"; got != want {
		t.Errorf("unexpected string, got %v, want %v", got, want)
	}
}

func TestBytes_Chunks_SplitContentIntoPiecesOfGivenSize(t *testing.T) {
	tests := []struct {
		data []byte
		size int
		want [][]byte
	}{
		{nil, 3, [][]byte{}},
		{[]byte{1}, 3, [][]byte{{1}}},
		{[]byte{1, 2, 3}, 3, [][]byte{{1, 2, 3}}},
		{[]byte{1, 2, 3, 4}, 3, [][]byte{{1, 2, 3}, {4}}},
		{[]byte{1, 2, 3, 4, 5, 6}, 2, [][]byte{{1, 2}, {3, 4}, {5, 6}}},
	}

	for _, test := range tests {
		got := NewBytes(test.data).Chunks(test.size)
		if len(got) != len(test.want) {
			t.Fatalf("unexpected number of chunks for %v, wanted %d, got %d", test.data, len(test.want), len(got))
		}
		for i := range got {
			if !bytes.Equal(got[i], test.want[i]) {
				t.Errorf("unexpected chunk %d for %v, wanted %v, got %v", i, test.data, test.want[i], got[i])
			}
		}
	}
}

func TestBytes_TextEncoding_RoundTrips(t *testing.T) {
	b := NewBytes([]byte{0xca, 0xfe, 0x01})
	text, err := b.MarshalText()
	if err != nil {
		t.Fatalf("failed to encode: %v", err)
	}
	var restored Bytes
	if err := restored.UnmarshalText(text); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if b != restored {
		t.Errorf("unexpected value, wanted %v, got %v", b, restored)
	}
	if err := restored.UnmarshalText([]byte("0xzz")); err == nil {
		t.Errorf("invalid input should be rejected")
	}
}
