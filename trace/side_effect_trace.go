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
	"math"

	"github.com/Fantom-foundation/avmstate/common"
	"github.com/Fantom-foundation/avmstate/common/immutable"
	"github.com/Fantom-foundation/avmstate/common/witness"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	// ErrSideEffectLimitReached is returned if a transaction exceeds one of
	// its side-effect limits. The error is recoverable.
	ErrSideEffectLimitReached = common.ConstError("side effect limit reached")

	// ErrIncompatibleTracer is returned when merging a tracer of a different
	// implementation.
	ErrIncompatibleTracer = common.ConstError("incompatible tracer")

	// ErrAlreadyMerged is returned when merging a tracer a second time.
	ErrAlreadyMerged = common.ConstError("tracer already merged")
)

// Limits bound the number of side effects of a single transaction.
type Limits struct {
	MaxNoteHashes       int
	MaxNullifiers       int
	MaxL2ToL1Messages   int
	MaxPublicLogs       int
	MaxPublicDataWrites int
}

// DefaultLimits returns the per-transaction limits of the network.
func DefaultLimits() Limits {
	return Limits{
		MaxNoteHashes:       64,
		MaxNullifiers:       64,
		MaxL2ToL1Messages:   8,
		MaxPublicLogs:       8,
		MaxPublicDataWrites: 64,
	}
}

// Unlimited returns limits that are never reached.
func Unlimited() Limits {
	return Limits{
		MaxNoteHashes:       math.MaxInt,
		MaxNullifiers:       math.MaxInt,
		MaxL2ToL1Messages:   math.MaxInt,
		MaxPublicLogs:       math.MaxInt,
		MaxPublicDataWrites: math.MaxInt,
	}
}

// Counts are the number of limited side effects emitted.
type Counts struct {
	NoteHashes       int
	Nullifiers       int
	L2ToL1Messages   int
	PublicLogs       int
	PublicDataWrites int
}

func (c Counts) add(o Counts) Counts {
	return Counts{
		NoteHashes:       c.NoteHashes + o.NoteHashes,
		Nullifiers:       c.Nullifiers + o.Nullifiers,
		L2ToL1Messages:   c.L2ToL1Messages + o.L2ToL1Messages,
		PublicLogs:       c.PublicLogs + o.PublicLogs,
		PublicDataWrites: c.PublicDataWrites + o.PublicDataWrites,
	}
}

func (c Counts) sub(o Counts) Counts {
	return Counts{
		NoteHashes:       c.NoteHashes - o.NoteHashes,
		Nullifiers:       c.Nullifiers - o.Nullifiers,
		L2ToL1Messages:   c.L2ToL1Messages - o.L2ToL1Messages,
		PublicLogs:       c.PublicLogs - o.PublicLogs,
		PublicDataWrites: c.PublicDataWrites - o.PublicDataWrites,
	}
}

// SideEffectTrace is a Tracer keeping all side effects in memory in the
// order they were emitted.
type SideEffectTrace struct {
	limits  Limits
	counter uint32
	entries []Entry

	// counts covers the non-reverted side effects of this frame and all
	// enclosing frames; base is the part contributed by enclosing frames.
	counts Counts
	base   Counts

	merged bool
}

var _ Tracer = (*SideEffectTrace)(nil)

// NewSideEffectTrace creates an empty trace for a new transaction.
func NewSideEffectTrace(limits Limits) *SideEffectTrace {
	return &SideEffectTrace{limits: limits}
}

// Entries returns the recorded side effects in emission order.
func (t *SideEffectTrace) Entries() []Entry {
	return slices.Clone(t.entries)
}

// Counter returns the side-effect counter, the number of side effects
// emitted by the transaction so far.
func (t *SideEffectTrace) Counter() uint32 {
	return t.counter
}

// Counts returns the number of non-reverted limited side effects.
func (t *SideEffectTrace) Counts() Counts {
	return t.counts
}

// CountByKind summarizes the recorded side effects.
func (t *SideEffectTrace) CountByKind() map[Kind]int {
	res := map[Kind]int{}
	for _, e := range t.entries {
		res[e.Kind]++
	}
	return res
}

// Kinds returns the kinds of recorded side effects in ascending order.
func (t *SideEffectTrace) Kinds() []Kind {
	kinds := maps.Keys(t.CountByKind())
	slices.Sort(kinds)
	return kinds
}

func (t *SideEffectTrace) record(kind Kind, contract common.Address, data any) {
	t.entries = append(t.entries, Entry{
		Counter:  t.counter,
		Kind:     kind,
		Contract: contract,
		Data:     data,
	})
	t.counter++
}

func checkLimit(what string, count, limit int) error {
	if count >= limit {
		return fmt.Errorf("%w: reached maximum of %d %s", ErrSideEffectLimitReached, limit, what)
	}
	return nil
}

func (t *SideEffectTrace) TracePublicStorageRead(contract common.Address, slot, value common.Field, hint witness.PublicDataReadHint) error {
	t.record(KindPublicStorageRead, contract, PublicStorageRead{Slot: slot, Value: value, Hint: hint})
	return nil
}

func (t *SideEffectTrace) TracePublicStorageWrite(contract common.Address, slot, value common.Field, protocolWrite bool, hint witness.PublicDataWriteHint) error {
	// Protocol writes like fee payments are not counted against the limit.
	if !protocolWrite {
		if err := checkLimit("public data writes", t.counts.PublicDataWrites, t.limits.MaxPublicDataWrites); err != nil {
			return err
		}
		t.counts.PublicDataWrites++
	}
	t.record(KindPublicStorageWrite, contract, PublicStorageWrite{Slot: slot, Value: value, ProtocolWrite: protocolWrite, Hint: hint})
	return nil
}

func (t *SideEffectTrace) TraceNoteHashCheck(contract common.Address, noteHash common.Field, leafIndex uint64, exists bool, path witness.SiblingPath) error {
	t.record(KindNoteHashCheck, contract, NoteHashCheck{NoteHash: noteHash, LeafIndex: leafIndex, Exists: exists, Path: path})
	return nil
}

func (t *SideEffectTrace) TraceNewNoteHash(uniqueNoteHash common.Field, leafIndex uint64, path witness.SiblingPath) error {
	if err := checkLimit("note hashes", t.counts.NoteHashes, t.limits.MaxNoteHashes); err != nil {
		return err
	}
	t.counts.NoteHashes++
	t.record(KindNewNoteHash, common.Address{}, NewNoteHash{UniqueNoteHash: uniqueNoteHash, LeafIndex: leafIndex, Path: path})
	return nil
}

func (t *SideEffectTrace) TraceNullifierCheck(siloedNullifier common.Field, exists bool, hint witness.NullifierReadHint) error {
	t.record(KindNullifierCheck, common.Address{}, NullifierCheck{SiloedNullifier: siloedNullifier, Exists: exists, Hint: hint})
	return nil
}

func (t *SideEffectTrace) TraceNewNullifier(siloedNullifier common.Field, hint witness.NullifierWriteHint) error {
	if err := checkLimit("nullifiers", t.counts.Nullifiers, t.limits.MaxNullifiers); err != nil {
		return err
	}
	t.counts.Nullifiers++
	t.record(KindNewNullifier, common.Address{}, NewNullifier{SiloedNullifier: siloedNullifier, Hint: hint})
	return nil
}

func (t *SideEffectTrace) TraceL1ToL2MessageCheck(contract common.Address, msgHash common.Field, leafIndex uint64, exists bool, path witness.SiblingPath) error {
	t.record(KindL1ToL2MessageCheck, contract, L1ToL2MessageCheck{MsgHash: msgHash, LeafIndex: leafIndex, Exists: exists, Path: path})
	return nil
}

func (t *SideEffectTrace) TraceNewL2ToL1Message(contract common.Address, recipient, content common.Field) error {
	if err := checkLimit("L2 to L1 messages", t.counts.L2ToL1Messages, t.limits.MaxL2ToL1Messages); err != nil {
		return err
	}
	t.counts.L2ToL1Messages++
	t.record(KindNewL2ToL1Message, contract, L2ToL1Message{Recipient: recipient, Content: content})
	return nil
}

func (t *SideEffectTrace) TracePublicLog(contract common.Address, fields []common.Field) error {
	if err := checkLimit("public logs", t.counts.PublicLogs, t.limits.MaxPublicLogs); err != nil {
		return err
	}
	t.counts.PublicLogs++
	t.record(KindPublicLog, contract, PublicLog{Fields: slices.Clone(fields)})
	return nil
}

func (t *SideEffectTrace) TraceGetContractInstance(contract common.Address, exists bool, instance *common.ContractInstance, hints witness.ContractHints) error {
	t.record(KindGetContractInstance, contract, ContractInstanceRead{Exists: exists, Instance: copyOf(instance), Hints: hints})
	return nil
}

func (t *SideEffectTrace) TraceGetBytecode(contract common.Address, exists bool, bytecode immutable.Bytes, instance *common.ContractInstance, class *common.ContractClassPreimage, hints witness.ContractHints) error {
	t.record(KindGetBytecode, contract, BytecodeRead{
		Exists:   exists,
		Bytecode: bytecode,
		Instance: copyOf(instance),
		Class:    copyOf(class),
		Hints:    hints,
	})
	return nil
}

func (t *SideEffectTrace) TraceEnqueuedCall(request common.PublicCallRequest, calldata []common.Field, reverted bool) error {
	t.record(KindEnqueuedCall, request.ContractAddress, EnqueuedCall{Request: request, Calldata: slices.Clone(calldata), Reverted: reverted})
	return nil
}

func (t *SideEffectTrace) NoteHashCount() uint64 {
	return uint64(t.counts.NoteHashes)
}

func (t *SideEffectTrace) Fork() Tracer {
	return &SideEffectTrace{
		limits:  t.limits,
		counter: t.counter,
		counts:  t.counts,
		base:    t.counts,
	}
}

func (t *SideEffectTrace) Merge(child Tracer, reverted bool) error {
	c, ok := child.(*SideEffectTrace)
	if !ok {
		return fmt.Errorf("%w: %T", ErrIncompatibleTracer, child)
	}
	if c.merged {
		return ErrAlreadyMerged
	}
	c.merged = true
	for _, e := range c.entries {
		e.Reverted = e.Reverted || reverted
		t.entries = append(t.entries, e)
	}
	t.counter = c.counter
	if !reverted {
		t.counts = t.counts.add(c.counts.sub(c.base))
	}
	return nil
}

func copyOf[T any](v *T) *T {
	if v == nil {
		return nil
	}
	res := *v
	return &res
}
