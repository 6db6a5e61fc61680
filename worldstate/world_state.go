// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package worldstate

import (
	"context"

	"github.com/Fantom-foundation/avmstate/common"
	"github.com/Fantom-foundation/avmstate/tree"
)

//go:generate mockgen -source world_state.go -destination world_state_mocks.go -package worldstate

// WorldStateDB provides read access to the committed world state a
// transaction is executed on. The state journal never modifies it; all
// modifications of a transaction are kept in the journal.
//
// Implementations must present a consistent snapshot for the duration of a
// transaction: values reported by the lookup methods must agree with the
// trees exposed through GetMerkleInterface.
type WorldStateDB interface {
	// GetContractInstance returns the instance deployed at the given
	// address, or nil if there is none.
	GetContractInstance(ctx context.Context, address common.Address) (*common.ContractInstance, error)

	// GetContractClass returns the class with the given id, or nil if
	// there is none.
	GetContractClass(ctx context.Context, classID common.Field) (*common.ContractClass, error)

	// GetBytecodeCommitment returns the commitment to the public bytecode of
	// the class with the given id.
	GetBytecodeCommitment(ctx context.Context, classID common.Field) (common.Field, bool, error)

	// GetCommitmentValue returns the unique note hash stored at the given
	// index of the note hash tree.
	GetCommitmentValue(ctx context.Context, leafIndex uint64) (common.Field, bool, error)

	// GetL1ToL2LeafValue returns the message hash stored at the given index
	// of the L1 to L2 message tree.
	GetL1ToL2LeafValue(ctx context.Context, leafIndex uint64) (common.Field, bool, error)

	// StorageRead returns the value of a public storage slot. Absent slots
	// hold zero.
	StorageRead(ctx context.Context, contract common.Address, slot common.Field) (common.Field, error)

	// GetNullifierIndex returns the index of the leaf holding the given
	// siloed nullifier in the nullifier tree, if present.
	GetNullifierIndex(ctx context.Context, siloedNullifier common.Field) (uint64, bool, error)

	// GetMerkleInterface returns the committed trees of this world state.
	GetMerkleInterface() tree.MerkleDB
}

// DebugFunctionNames is implemented by world states that know the names of
// public functions. The names are used in diagnostics only.
type DebugFunctionNames interface {
	// GetDebugFunctionName returns the name of the public function with
	// the given selector of the contract at the given address.
	GetDebugFunctionName(ctx context.Context, address common.Address, selector common.Field) (string, bool, error)
}
