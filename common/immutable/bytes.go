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
	"encoding/hex"
	"fmt"
	"strings"
)

// Bytes is an immutable slice of bytes that can be trivially cloned. It is
// used for contract bytecode which is shared between the world state, the
// journal and the side-effect trace.
type Bytes struct {
	data string
}

// NewBytes creates a new Bytes from a slice of bytes.
func NewBytes(data []byte) Bytes {
	return Bytes{data: string(data)}
}

func (b Bytes) ToBytes() []byte {
	return []byte(b.data)
}

func (b Bytes) Len() int {
	return len(b.data)
}

func (b Bytes) IsEmpty() bool {
	return len(b.data) == 0
}

// Chunks splits the content into consecutive pieces of the given size. The
// last chunk may be shorter. Empty content yields no chunks.
func (b Bytes) Chunks(size int) [][]byte {
	if size <= 0 {
		panic(fmt.Sprintf("invalid chunk size %d", size))
	}
	res := make([][]byte, 0, (len(b.data)+size-1)/size)
	for start := 0; start < len(b.data); start += size {
		end := min(start+size, len(b.data))
		res = append(res, []byte(b.data[start:end]))
	}
	return res
}

func (b Bytes) String() string {
	return fmt.Sprintf("0x%x", b.data)
}

func (b Bytes) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *Bytes) UnmarshalText(text []byte) error {
	data, err := hex.DecodeString(strings.TrimPrefix(string(text), "0x"))
	if err != nil {
		return fmt.Errorf("invalid byte string: %w", err)
	}
	*b = NewBytes(data)
	return nil
}
