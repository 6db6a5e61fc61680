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
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/poseidon2"
)

// GeneratorIndex is a domain separator prepended to the inputs of a hash to
// distinguish hashes computed for different purposes.
type GeneratorIndex uint32

const (
	GeneratorIndexNoteHashNonce   GeneratorIndex = 2
	GeneratorIndexUniqueNoteHash  GeneratorIndex = 3
	GeneratorIndexSiloedNoteHash  GeneratorIndex = 4
	GeneratorIndexOuterNullifier  GeneratorIndex = 7
	GeneratorIndexContractLeaf    GeneratorIndex = 16
	GeneratorIndexPublicLeafIndex GeneratorIndex = 23
	GeneratorIndexPublicBytecode  GeneratorIndex = 41
)

// HashFields computes the Poseidon2 hash of the given sequence of field
// elements.
func HashFields(fields ...Field) Field {
	hasher := poseidon2.NewMerkleDamgardHasher()
	for _, f := range fields {
		b := f.Bytes()
		// Canonical encodings are always accepted by the hasher.
		_, _ = hasher.Write(b[:])
	}
	return FieldFromBytes(hasher.Sum(nil))
}

// HashWithSeparator computes the Poseidon2 hash of the given fields prefixed
// by the separator.
func HashWithSeparator(separator GeneratorIndex, fields ...Field) Field {
	all := make([]Field, 0, len(fields)+1)
	all = append(all, NewField(uint64(separator)))
	all = append(all, fields...)
	return HashFields(all...)
}

// HashPair is the hash used for inner nodes of merkle trees.
func HashPair(left, right Field) Field {
	return HashFields(left, right)
}
