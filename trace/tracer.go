// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package trace

import (
	"github.com/Fantom-foundation/avmstate/common"
	"github.com/Fantom-foundation/avmstate/common/immutable"
	"github.com/Fantom-foundation/avmstate/common/witness"
)

//go:generate mockgen -source tracer.go -destination tracer_mocks.go -package trace

// Tracer records the side effects of public execution together with the
// witnesses needed to prove them. Every state access of the journal is
// reported to its tracer in execution order.
//
// Tracers are forked and merged alongside the journal. Merging a child
// tracer appends the child's side effects to the parent. If the child's
// execution was reverted, its side effects are still recorded, but marked as
// reverted.
//
// Trace methods may fail if a side effect exceeds a limit of the
// transaction. Such failures are recoverable: the current call fails, its
// enclosing frame continues.
type Tracer interface {
	// TracePublicStorageRead records a storage read. Outside of proof mode
	// the hint is empty.
	TracePublicStorageRead(contract common.Address, slot, value common.Field, hint witness.PublicDataReadHint) error

	// TracePublicStorageWrite records a storage write.
	TracePublicStorageWrite(contract common.Address, slot, value common.Field, protocolWrite bool, hint witness.PublicDataWriteHint) error

	// TraceNoteHashCheck records a check for an existing note hash. The note
	// hash is the value found at the given leaf index, not the value queried.
	TraceNoteHashCheck(contract common.Address, noteHash common.Field, leafIndex uint64, exists bool, path witness.SiblingPath) error

	// TraceNewNoteHash records the insertion of a unique note hash.
	TraceNewNoteHash(uniqueNoteHash common.Field, leafIndex uint64, path witness.SiblingPath) error

	// TraceNullifierCheck records a check for the existence of a siloed
	// nullifier.
	TraceNullifierCheck(siloedNullifier common.Field, exists bool, hint witness.NullifierReadHint) error

	// TraceNewNullifier records the insertion of a siloed nullifier.
	TraceNewNullifier(siloedNullifier common.Field, hint witness.NullifierWriteHint) error

	// TraceL1ToL2MessageCheck records a check for an L1 to L2 message. The
	// message hash is the value found at the given leaf index.
	TraceL1ToL2MessageCheck(contract common.Address, msgHash common.Field, leafIndex uint64, exists bool, path witness.SiblingPath) error

	// TraceNewL2ToL1Message records a message sent to L1.
	TraceNewL2ToL1Message(contract common.Address, recipient, content common.Field) error

	// TracePublicLog records a public log.
	TracePublicLog(contract common.Address, fields []common.Field) error

	// TraceGetContractInstance records a contract instance retrieval. The
	// instance is nil if the contract does not exist.
	TraceGetContractInstance(contract common.Address, exists bool, instance *common.ContractInstance, hints witness.ContractHints) error

	// TraceGetBytecode records a bytecode retrieval. Instance and class are
	// nil if the contract does not exist.
	TraceGetBytecode(contract common.Address, exists bool, bytecode immutable.Bytes, instance *common.ContractInstance, class *common.ContractClassPreimage, hints witness.ContractHints) error

	// TraceEnqueuedCall records a public call enqueued by the transaction.
	TraceEnqueuedCall(request common.PublicCallRequest, calldata []common.Field, reverted bool) error

	// NoteHashCount returns the number of non-reverted note hashes emitted
	// so far by the transaction, including those of enclosing frames. It
	// determines the nonce of the next note hash.
	NoteHashCount() uint64

	// Fork creates a tracer for a nested call.
	Fork() Tracer

	// Merge appends the side effects of a forked tracer to this tracer.
	Merge(child Tracer, reverted bool) error
}
