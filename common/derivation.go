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

import "github.com/Fantom-foundation/avmstate/common/immutable"

const (
	// UpdatesValuesLen is the number of storage slots holding the preimage of
	// a scheduled contract update.
	UpdatesValuesLen = 3

	// bytecodeChunkSize is the number of bytecode bytes packed into a single
	// field element when committing to public bytecode.
	bytecodeChunkSize = 31
)

// UpdatedClassIDsSlot is the storage slot of the map in the deployer
// contract holding scheduled contract updates.
var UpdatedClassIDsSlot = NewField(1)

// SiloNullifier binds a nullifier to the contract emitting it.
func SiloNullifier(contract Address, nullifier Field) Field {
	return HashWithSeparator(GeneratorIndexOuterNullifier, contract.ToField(), nullifier)
}

// SiloNoteHash binds a note hash to the contract emitting it.
func SiloNoteHash(contract Address, noteHash Field) Field {
	return HashWithSeparator(GeneratorIndexSiloedNoteHash, contract.ToField(), noteHash)
}

// ComputeNoteHashNonce derives the nonce of the note hash with the given
// position within a transaction.
func ComputeNoteHashNonce(firstNullifier Field, noteHashIndex uint64) Field {
	return HashWithSeparator(GeneratorIndexNoteHashNonce, firstNullifier, NewField(noteHashIndex))
}

// ComputeUniqueNoteHash makes a siloed note hash unique by combining it with
// a nonce.
func ComputeUniqueNoteHash(nonce, siloedNoteHash Field) Field {
	return HashWithSeparator(GeneratorIndexUniqueNoteHash, nonce, siloedNoteHash)
}

// ComputePublicDataLeafSlot computes the key of a storage slot in the public
// data tree.
func ComputePublicDataLeafSlot(contract Address, slot Field) Field {
	return HashWithSeparator(GeneratorIndexPublicLeafIndex, contract.ToField(), slot)
}

// DeriveStorageSlotInMap computes the slot of an entry of a storage map.
func DeriveStorageSlotInMap(mapSlot, key Field) Field {
	return HashFields(mapSlot, key)
}

// ComputeDeploymentNullifier is the nullifier emitted by the deployer
// contract when the given contract is deployed.
func ComputeDeploymentNullifier(contract Address) Field {
	return SiloNullifier(DeployerAddress, contract.ToField())
}

// ComputeContractUpdateSlots returns the first of the UpdatesValuesLen slots
// holding the preimage of a scheduled update of the given contract and the
// slot holding the hash of that preimage. Both are slots of the deployer
// contract.
func ComputeContractUpdateSlots(contract Address) (valuesSlot, hashSlot Field) {
	valuesSlot = DeriveStorageSlotInMap(UpdatedClassIDsSlot, contract.ToField())
	hashSlot = valuesSlot.AddUint64(UpdatesValuesLen)
	return valuesSlot, hashSlot
}

// ComputePublicBytecodeCommitment commits to the public bytecode of a
// contract class. The bytecode is packed into 31-byte big-endian chunks.
func ComputePublicBytecodeCommitment(bytecode immutable.Bytes) Field {
	chunks := bytecode.Chunks(bytecodeChunkSize)
	fields := make([]Field, 0, len(chunks)+1)
	fields = append(fields, NewField(uint64(bytecode.Len())))
	for _, chunk := range chunks {
		fields = append(fields, FieldFromBytes(chunk))
	}
	return HashWithSeparator(GeneratorIndexPublicBytecode, fields...)
}

// ComputeContractClassID derives the id of a contract class.
func ComputeContractClassID(artifactHash, privateFunctionsRoot, publicBytecodeCommitment Field) Field {
	return HashWithSeparator(GeneratorIndexContractLeaf, artifactHash, privateFunctionsRoot, publicBytecodeCommitment)
}
