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
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// FieldBytes is the size of the canonical big-endian encoding of a Field.
const FieldBytes = fr.Bytes

// Field is an element of the BN254 scalar field. Field values are immutable
// and comparable, so they can be used as map keys and compared using ==.
// The zero value is the field element 0, which is also used to represent
// "unset" values throughout the state journal.
type Field struct {
	e fr.Element
}

// Zero is the additive identity and the "unset" marker.
var Zero = Field{}

// NewField creates a field element from a small integer.
func NewField(v uint64) Field {
	var res Field
	res.e.SetUint64(v)
	return res
}

// FieldFromBig reduces the given integer modulo the field order.
func FieldFromBig(v *big.Int) Field {
	var res Field
	res.e.SetBigInt(v)
	return res
}

// FieldFromBytes interprets the given bytes as a big-endian integer and
// reduces it modulo the field order.
func FieldFromBytes(b []byte) Field {
	var res Field
	res.e.SetBytes(b)
	return res
}

// FieldFromCanonicalBytes decodes a 32-byte big-endian encoding that must be
// smaller than the field order.
func FieldFromCanonicalBytes(b []byte) (Field, error) {
	var res Field
	if err := res.e.SetBytesCanonical(b); err != nil {
		return Zero, fmt.Errorf("%w: %v", ErrInvalidFieldEncoding, err)
	}
	return res, nil
}

// FieldFromHex parses a 0x-prefixed (or bare) hexadecimal string of at most
// 32 bytes encoding a canonical field element.
func FieldFromHex(s string) (Field, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s)%2 == 1 {
		s = "0" + s
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return Zero, fmt.Errorf("%w: %v", ErrInvalidFieldEncoding, err)
	}
	if len(raw) > FieldBytes {
		return Zero, fmt.Errorf("%w: %d bytes exceed field size", ErrInvalidFieldEncoding, len(raw))
	}
	var padded [FieldBytes]byte
	copy(padded[FieldBytes-len(raw):], raw)
	return FieldFromCanonicalBytes(padded[:])
}

// Bytes returns the canonical big-endian encoding of the element.
func (f Field) Bytes() [FieldBytes]byte {
	return f.e.Bytes()
}

// BigInt returns the canonical integer representation of the element.
func (f Field) BigInt() *big.Int {
	res := new(big.Int)
	f.e.BigInt(res)
	return res
}

// Uint64 returns the element as an integer if it fits into 64 bits.
func (f Field) Uint64() (uint64, bool) {
	if !f.e.IsUint64() {
		return 0, false
	}
	return f.e.Uint64(), true
}

func (f Field) IsZero() bool {
	return f.e.IsZero()
}

// Cmp compares the canonical integer representations of f and o and returns
// -1, 0, or 1.
func (f Field) Cmp(o Field) int {
	return f.e.Cmp(&o.e)
}

// Add returns f + o in the field.
func (f Field) Add(o Field) Field {
	var res Field
	res.e.Add(&f.e, &o.e)
	return res
}

// AddUint64 returns f + v in the field.
func (f Field) AddUint64(v uint64) Field {
	return f.Add(NewField(v))
}

func (f Field) String() string {
	b := f.e.Bytes()
	return "0x" + hex.EncodeToString(b[:])
}

func (f Field) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *Field) UnmarshalText(text []byte) error {
	res, err := FieldFromHex(string(text))
	if err != nil {
		return err
	}
	*f = res
	return nil
}

// Fields converts a list of small integers into field elements.
func Fields(values ...uint64) []Field {
	res := make([]Field, len(values))
	for i, v := range values {
		res[i] = NewField(v)
	}
	return res
}
