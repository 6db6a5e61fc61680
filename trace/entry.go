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
	"fmt"

	"github.com/Fantom-foundation/avmstate/common"
	"github.com/Fantom-foundation/avmstate/common/immutable"
	"github.com/Fantom-foundation/avmstate/common/witness"
)

// Kind enumerates the kinds of recorded side effects.
type Kind int

const (
	KindPublicStorageRead Kind = iota
	KindPublicStorageWrite
	KindNoteHashCheck
	KindNewNoteHash
	KindNullifierCheck
	KindNewNullifier
	KindL1ToL2MessageCheck
	KindNewL2ToL1Message
	KindPublicLog
	KindGetContractInstance
	KindGetBytecode
	KindEnqueuedCall
)

func (k Kind) String() string {
	switch k {
	case KindPublicStorageRead:
		return "PublicStorageRead"
	case KindPublicStorageWrite:
		return "PublicStorageWrite"
	case KindNoteHashCheck:
		return "NoteHashCheck"
	case KindNewNoteHash:
		return "NewNoteHash"
	case KindNullifierCheck:
		return "NullifierCheck"
	case KindNewNullifier:
		return "NewNullifier"
	case KindL1ToL2MessageCheck:
		return "L1ToL2MessageCheck"
	case KindNewL2ToL1Message:
		return "NewL2ToL1Message"
	case KindPublicLog:
		return "PublicLog"
	case KindGetContractInstance:
		return "GetContractInstance"
	case KindGetBytecode:
		return "GetBytecode"
	case KindEnqueuedCall:
		return "EnqueuedCall"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Entry is a single recorded side effect. Data holds one of the record
// types below, matching the kind of the entry.
type Entry struct {
	Counter  uint32
	Kind     Kind
	Contract common.Address // zero for siloed side effects
	Reverted bool
	Data     any
}

type PublicStorageRead struct {
	Slot  common.Field
	Value common.Field
	Hint  witness.PublicDataReadHint
}

type PublicStorageWrite struct {
	Slot          common.Field
	Value         common.Field
	ProtocolWrite bool
	Hint          witness.PublicDataWriteHint
}

type NoteHashCheck struct {
	NoteHash  common.Field
	LeafIndex uint64
	Exists    bool
	Path      witness.SiblingPath
}

type NewNoteHash struct {
	UniqueNoteHash common.Field
	LeafIndex      uint64
	Path           witness.SiblingPath
}

type NullifierCheck struct {
	SiloedNullifier common.Field
	Exists          bool
	Hint            witness.NullifierReadHint
}

type NewNullifier struct {
	SiloedNullifier common.Field
	Hint            witness.NullifierWriteHint
}

type L1ToL2MessageCheck struct {
	MsgHash   common.Field
	LeafIndex uint64
	Exists    bool
	Path      witness.SiblingPath
}

type L2ToL1Message struct {
	Recipient common.Field
	Content   common.Field
}

type PublicLog struct {
	Fields []common.Field
}

type ContractInstanceRead struct {
	Exists   bool
	Instance *common.ContractInstance
	Hints    witness.ContractHints
}

type BytecodeRead struct {
	Exists   bool
	Bytecode immutable.Bytes
	Instance *common.ContractInstance
	Class    *common.ContractClassPreimage
	Hints    witness.ContractHints
}

type EnqueuedCall struct {
	Request  common.PublicCallRequest
	Calldata []common.Field
	Reverted bool
}
