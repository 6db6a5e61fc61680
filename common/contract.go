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
	"fmt"

	"github.com/Fantom-foundation/avmstate/common/immutable"
)

// PublicKeys are the master public keys registered with a contract instance.
type PublicKeys struct {
	MasterNullifierPublicKey       Field
	MasterIncomingViewingPublicKey Field
	MasterOutgoingViewingPublicKey Field
	MasterTaggingPublicKey         Field
}

// ContractInstance is a deployed contract. The current class of an instance
// may differ from its original class if the contract has been updated.
type ContractInstance struct {
	Address            Address
	Salt               Field
	Deployer           Address
	CurrentClassID     Field
	OriginalClassID    Field
	InitializationHash Field
	PublicKeys         PublicKeys
}

// ContractClass is the code of a contract shared by all of its instances.
type ContractClass struct {
	ArtifactHash         Field
	PrivateFunctionsRoot Field
	PackedBytecode       immutable.Bytes
}

// Preimage computes the class id preimage of this class, including the
// commitment to its public bytecode.
func (c *ContractClass) Preimage() ContractClassPreimage {
	return ContractClassPreimage{
		ArtifactHash:             c.ArtifactHash,
		PrivateFunctionsRoot:     c.PrivateFunctionsRoot,
		PublicBytecodeCommitment: ComputePublicBytecodeCommitment(c.PackedBytecode),
	}
}

// ContractClassPreimage is the set of values hashed into a contract class id.
type ContractClassPreimage struct {
	ArtifactHash             Field
	PrivateFunctionsRoot     Field
	PublicBytecodeCommitment Field
}

func (p ContractClassPreimage) ClassID() Field {
	return ComputeContractClassID(p.ArtifactHash, p.PrivateFunctionsRoot, p.PublicBytecodeCommitment)
}

// ContractUpdate is a scheduled change of the class of a contract instance
// as recorded in the storage of the deployer protocol contract.
type ContractUpdate struct {
	PreviousClassID Field
	NextClassID     Field
	BlockOfChange   uint64
}

// ToFields serializes the update into the storage layout used by the
// deployer contract.
func (u ContractUpdate) ToFields() []Field {
	return []Field{u.PreviousClassID, u.NextClassID, NewField(u.BlockOfChange)}
}

// ContractUpdateFromFields is the inverse of ContractUpdate.ToFields.
func ContractUpdateFromFields(fields []Field) (ContractUpdate, error) {
	if len(fields) != UpdatesValuesLen {
		return ContractUpdate{}, fmt.Errorf("invalid contract update preimage length %d, expected %d", len(fields), UpdatesValuesLen)
	}
	block, ok := fields[2].Uint64()
	if !ok {
		return ContractUpdate{}, fmt.Errorf("block of change %v exceeds 64 bits", fields[2])
	}
	return ContractUpdate{
		PreviousClassID: fields[0],
		NextClassID:     fields[1],
		BlockOfChange:   block,
	}, nil
}

// Hash is the value stored in the update hash slot of the deployer contract.
func (u ContractUpdate) Hash() Field {
	return HashFields(u.ToFields()...)
}

// ClassIDAt returns the class id in effect at the given block, given the
// original class of the instance.
func (u ContractUpdate) ClassIDAt(block uint64, original Field) Field {
	if u == (ContractUpdate{}) {
		return original
	}
	if block >= u.BlockOfChange {
		return u.NextClassID
	}
	if u.PreviousClassID.IsZero() {
		return original
	}
	return u.PreviousClassID
}

// PublicCallRequest describes a public call enqueued by a transaction.
type PublicCallRequest struct {
	MsgSender       Address
	ContractAddress Address
	IsStaticCall    bool
	CalldataHash    Field
}
