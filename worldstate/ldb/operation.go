// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package ldb

import (
	"context"
	"fmt"

	"github.com/Fantom-foundation/avmstate/common"
	"github.com/Fantom-foundation/avmstate/worldstate/memory"
)

type opKind byte

const (
	opSetBlockNumber opKind = iota + 1
	opRegisterClass
	opDeployContract
	opScheduleUpdate
	opSetStorage
	opInsertNullifier
	opAppendNoteHash
	opAppendL1ToL2Message
)

func (k opKind) String() string {
	switch k {
	case opSetBlockNumber:
		return "set-block-number"
	case opRegisterClass:
		return "register-class"
	case opDeployContract:
		return "deploy-contract"
	case opScheduleUpdate:
		return "schedule-update"
	case opSetStorage:
		return "set-storage"
	case opInsertNullifier:
		return "insert-nullifier"
	case opAppendNoteHash:
		return "append-note-hash"
	case opAppendL1ToL2Message:
		return "append-l1-to-l2-message"
	}
	return fmt.Sprintf("op(%d)", byte(k))
}

// operation is an entry of the operation log. Only the fields used by its
// kind are set.
type operation struct {
	Kind     opKind                   `json:"kind"`
	Block    uint64                   `json:"block,omitempty"`
	Address  common.Address           `json:"address"`
	Key      common.Field             `json:"key"`
	Value    common.Field             `json:"value"`
	Class    *common.ContractClass    `json:"class,omitempty"`
	Instance *common.ContractInstance `json:"instance,omitempty"`
	Update   *common.ContractUpdate   `json:"update,omitempty"`
}

func (op *operation) apply(ctx context.Context, state *memory.WorldState) error {
	switch op.Kind {
	case opSetBlockNumber:
		state.SetBlockNumber(op.Block)
		return nil
	case opRegisterClass:
		if op.Class == nil {
			return fmt.Errorf("missing class in %v", op.Kind)
		}
		state.RegisterContractClass(*op.Class)
		return nil
	case opDeployContract:
		if op.Instance == nil {
			return fmt.Errorf("missing instance in %v", op.Kind)
		}
		return state.DeployContract(ctx, *op.Instance)
	case opScheduleUpdate:
		if op.Update == nil {
			return fmt.Errorf("missing update in %v", op.Kind)
		}
		return state.ScheduleContractUpdate(ctx, op.Address, *op.Update)
	case opSetStorage:
		return state.SetStorage(ctx, op.Address, op.Key, op.Value)
	case opInsertNullifier:
		return state.InsertNullifier(ctx, op.Value)
	case opAppendNoteHash:
		_, err := state.AppendNoteHash(ctx, op.Value)
		return err
	case opAppendL1ToL2Message:
		_, err := state.AppendL1ToL2Message(ctx, op.Value)
		return err
	}
	return fmt.Errorf("unknown operation kind %v", op.Kind)
}
