// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.
package main

import (
	"context"
	"fmt"

	"github.com/Fantom-foundation/avmstate/common"
	"github.com/Fantom-foundation/avmstate/common/interrupt"
	"github.com/Fantom-foundation/avmstate/state"
	"github.com/Fantom-foundation/avmstate/trace"
	"github.com/Fantom-foundation/avmstate/worldstate"
	"go.uber.org/zap"
)

// script describes a transaction's public execution: the nullifiers of its
// private part followed by a list of enqueued calls.
type script struct {
	FirstNullifier          common.Field   `json:"firstNullifier"`
	NonRevertibleNullifiers []common.Field `json:"nonRevertibleNullifiers"`
	Calls                   []call         `json:"calls"`
}

// call is a public call executing a list of steps on behalf of a contract.
// A call reverts if one of its steps fails recoverably or if Revert is set.
type call struct {
	Contract common.Address `json:"contract"`
	Calldata []common.Field `json:"calldata"`
	Revert   bool           `json:"revert"`
	Steps    []step         `json:"steps"`
}

// step is a single state access. The used fields depend on the operation:
//
//	sload, sstore              Slot, Value
//	nullifierExists            Value
//	emitNullifier              Value
//	noteHashExists             Value, LeafIndex
//	emitNoteHash               Value
//	l1ToL2MessageExists        Value, LeafIndex
//	sendL2ToL1Message          Recipient, Value
//	emitLog                    Fields
//	getContractInstance        Target
//	getBytecode                Target
//	call                       Call
type step struct {
	Op        string         `json:"op"`
	Slot      common.Field   `json:"slot"`
	Value     common.Field   `json:"value"`
	LeafIndex uint64         `json:"leafIndex"`
	Recipient common.Field   `json:"recipient"`
	Fields    []common.Field `json:"fields"`
	Target    common.Address `json:"target"`
	Call      *call          `json:"call,omitempty"`
}

// executor runs scripts against a world state.
type executor struct {
	db     worldstate.WorldStateDB
	config state.Config
	limits trace.Limits
	log    *zap.Logger
}

// result is the outcome of a script execution.
type result struct {
	trace    *trace.SideEffectTrace
	journal  *state.StateManager
	reverted []bool // per enqueued call
}

func (e *executor) run(ctx context.Context, s *script) (*result, error) {
	tracer := trace.NewSideEffectTrace(e.limits)
	journal, err := state.NewStateManager(ctx, e.db, tracer, s.FirstNullifier, e.config)
	if err != nil {
		return nil, err
	}
	if err := journal.WriteSiloedNullifiersFromPrivate(ctx, s.NonRevertibleNullifiers); err != nil {
		return nil, fmt.Errorf("invalid non-revertible nullifiers: %w", err)
	}

	res := &result{trace: tracer, journal: journal}
	for i := range s.Calls {
		if err := interrupt.Check(ctx, fmt.Sprintf("%d calls", i)); err != nil {
			return nil, err
		}
		c := &s.Calls[i]
		reverted, err := e.enqueuedCall(ctx, journal, c)
		if err != nil {
			return nil, fmt.Errorf("enqueued call %d to %v failed: %w", i, c.Contract, err)
		}
		request := common.PublicCallRequest{
			ContractAddress: c.Contract,
			CalldataHash:    common.HashFields(c.Calldata...),
		}
		if err := journal.TraceEnqueuedCall(request, c.Calldata, reverted); err != nil {
			return nil, err
		}
		res.reverted = append(res.reverted, reverted)
	}
	return res, nil
}

// enqueuedCall runs a call in a fork of the given journal and merges or
// rejects the fork depending on the outcome of the call.
func (e *executor) enqueuedCall(ctx context.Context, journal *state.StateManager, c *call) (bool, error) {
	e.log.Debug("enqueued call", zap.String("function", journal.PublicFunctionDebugName(ctx, c.Contract, c.Calldata)))
	fork := journal.Fork()
	reverted, err := e.execute(ctx, fork, c)
	if err != nil {
		return false, err
	}
	if reverted {
		return true, journal.Reject(fork)
	}
	return false, journal.Merge(fork)
}

// execute runs the steps of a call on the given journal. Recoverable errors
// revert the call, all other errors abort the execution.
func (e *executor) execute(ctx context.Context, journal *state.StateManager, c *call) (bool, error) {
	for i := range c.Steps {
		err := e.step(ctx, journal, c.Contract, &c.Steps[i])
		if err == nil {
			continue
		}
		if state.IsRecoverable(err) {
			e.log.Info("call reverted",
				zap.Stringer("contract", c.Contract),
				zap.Int("step", i),
				zap.Error(err),
			)
			return true, nil
		}
		return false, fmt.Errorf("step %d (%s): %w", i, c.Steps[i].Op, err)
	}
	return c.Revert, nil
}

func (e *executor) step(ctx context.Context, journal *state.StateManager, contract common.Address, s *step) error {
	var err error
	switch s.Op {
	case "sload":
		_, err = journal.ReadStorage(ctx, contract, s.Slot)
	case "sstore":
		err = journal.WriteStorage(ctx, contract, s.Slot, s.Value, false)
	case "nullifierExists":
		_, err = journal.CheckNullifierExists(ctx, contract, s.Value)
	case "emitNullifier":
		err = journal.WriteNullifier(ctx, contract, s.Value)
	case "noteHashExists":
		_, err = journal.CheckNoteHashExists(ctx, contract, s.Value, s.LeafIndex)
	case "emitNoteHash":
		err = journal.WriteNoteHash(ctx, contract, s.Value)
	case "l1ToL2MessageExists":
		_, err = journal.CheckL1ToL2MessageExists(ctx, contract, s.Value, s.LeafIndex)
	case "sendL2ToL1Message":
		err = journal.WriteL2ToL1Message(contract, s.Recipient, s.Value)
	case "emitLog":
		err = journal.WritePublicLog(contract, s.Fields)
	case "getContractInstance":
		_, err = journal.GetContractInstance(ctx, s.Target)
	case "getBytecode":
		_, _, err = journal.GetBytecode(ctx, s.Target)
	case "call":
		if s.Call == nil {
			return fmt.Errorf("missing call")
		}
		fork := journal.Fork()
		reverted, err := e.execute(ctx, fork, s.Call)
		if err != nil {
			return err
		}
		if reverted {
			return journal.Reject(fork)
		}
		return journal.Merge(fork)
	default:
		return fmt.Errorf("unknown operation %q", s.Op)
	}
	return err
}
