// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package state

import (
	"context"
	"fmt"

	"github.com/Fantom-foundation/avmstate/common"
	"github.com/Fantom-foundation/avmstate/common/immutable"
	"github.com/Fantom-foundation/avmstate/common/witness"
	"github.com/Fantom-foundation/avmstate/trace"
	"github.com/Fantom-foundation/avmstate/tree"
	"github.com/Fantom-foundation/avmstate/worldstate"
	"go.uber.org/zap"
)

type frameLifeCycleState int

// The life-cycle states of a call frame
//   - Active   ... the frame accepts state accesses and may be forked
//   - Merged   ... the frame's effects were accepted by its parent
//   - Rejected ... the frame's effects were discarded by its parent
//
// The only transitions are
//
//	Active -- Merge  --> Merged
//	Active -- Reject --> Rejected
//
// Merging or rejecting a frame that is not Active is an invariant violation.
const (
	kActive frameLifeCycleState = iota
	kMerged
	kRejected
)

func (s frameLifeCycleState) String() string {
	switch s {
	case kActive:
		return "Active"
	case kMerged:
		return "Merged"
	case kRejected:
		return "Rejected"
	}
	return "?"
}

// StateManager is the state journal of a transaction's public execution. It
// mediates all accesses to public state, keeps the state modifications of
// the current call frame, and reports every access to its tracer.
//
// Nested calls are executed on a forked StateManager. When the nested call
// completes, the fork is either merged into its parent, making its
// modifications visible, or rejected, discarding them. The side effects of
// rejected frames remain in the trace, marked as reverted.
//
// In proof mode the journal maintains ephemeral copies of the world state's
// trees and attaches membership witnesses to all traced side effects.
//
// A StateManager is not safe for concurrent use. Only the innermost active
// frame of a call tree may be accessed.
type StateManager struct {
	// The committed state the transaction is executed on.
	db worldstate.WorldStateDB

	// Receives all side effects of this frame.
	tracer trace.Tracer

	// Caches of storage writes and emitted nullifiers of this frame.
	storage    *PublicStorage
	nullifiers *NullifierSet

	// The trees of this frame, nil if merkle operations are disabled.
	forest *tree.Forest

	doMerkleOperations bool

	// The first nullifier of the transaction, used for note hash nonces.
	firstNullifier common.Field

	// The frame this frame was forked from, nil for the root frame.
	parent    *StateManager
	lifeCycle frameLifeCycleState

	log *zap.Logger
}

// NewStateManager creates the journal of the root frame of a transaction.
func NewStateManager(ctx context.Context, db worldstate.WorldStateDB, tracer trace.Tracer, firstNullifier common.Field, config Config) (*StateManager, error) {
	log := config.Logger
	if log == nil {
		log = zap.NewNop()
	}
	var forest *tree.Forest
	if config.DoMerkleOperations {
		var err error
		forest, err = tree.NewForest(ctx, db.GetMerkleInterface())
		if err != nil {
			return nil, fmt.Errorf("failed to create ephemeral trees: %w", err)
		}
	}
	return &StateManager{
		db:                 db,
		tracer:             tracer,
		storage:            NewPublicStorage(db),
		nullifiers:         NewNullifierSet(db),
		forest:             forest,
		doMerkleOperations: config.DoMerkleOperations,
		firstNullifier:     firstNullifier,
		lifeCycle:          kActive,
		log:                log.Named("state"),
	}, nil
}

// Tracer returns the tracer of this frame.
func (m *StateManager) Tracer() trace.Tracer {
	return m.tracer
}

func (m *StateManager) DoMerkleOperations() bool {
	return m.doMerkleOperations
}

func (m *StateManager) FirstNullifier() common.Field {
	return m.firstNullifier
}

// TreeRoot returns the current root of one of the frame's trees.
func (m *StateManager) TreeRoot(id tree.TreeID) (common.Field, error) {
	if m.forest == nil {
		return common.Zero, ErrNoMerkleOperations
	}
	return m.forest.GetRoot(id)
}

// TreeSize returns the current number of leaves of one of the frame's trees.
func (m *StateManager) TreeSize(id tree.TreeID) (uint64, error) {
	if m.forest == nil {
		return 0, ErrNoMerkleOperations
	}
	return m.forest.GetSize(id)
}

// --- Public Storage ---

// WriteStorage sets a public storage slot. Protocol writes are performed on
// behalf of the protocol and do not count towards the transaction's limits.
func (m *StateManager) WriteStorage(ctx context.Context, contract common.Address, slot, value common.Field, protocolWrite bool) error {
	m.log.Debug("storage write",
		zap.Stringer("contract", contract),
		zap.Stringer("slot", slot),
		zap.Stringer("value", value),
		zap.Bool("protocol", protocolWrite),
	)
	// The cache is only updated once the tree accepted the write.
	var hint witness.PublicDataWriteHint
	if m.doMerkleOperations {
		leafSlot := common.ComputePublicDataLeafSlot(contract, slot)
		var err error
		hint, err = m.forest.WritePublicData(ctx, leafSlot, value)
		if err != nil {
			return fmt.Errorf("failed to write public data leaf %v: %w", leafSlot, err)
		}
		if hint.NewLeafPreimage.Value != value {
			return invariantViolation("public data leaf %v holds %v after writing %v", leafSlot, hint.NewLeafPreimage.Value, value)
		}
	}
	m.storage.Write(contract, slot, value)
	return m.tracer.TracePublicStorageWrite(contract, slot, value, protocolWrite, hint)
}

// ReadStorage returns the value of a public storage slot, zero if it was
// never written, and traces the read.
func (m *StateManager) ReadStorage(ctx context.Context, contract common.Address, slot common.Field) (common.Field, error) {
	value, hint, err := m.publicDataMembership(ctx, contract, slot)
	if err != nil {
		return common.Zero, err
	}
	if err := m.tracer.TracePublicStorageRead(contract, slot, value, hint); err != nil {
		return common.Zero, err
	}
	return value, nil
}

// PeekStorage returns the value of a public storage slot like ReadStorage,
// but the read is not traced.
func (m *StateManager) PeekStorage(ctx context.Context, contract common.Address, slot common.Field) (common.Field, error) {
	value, cached, err := m.storage.Read(ctx, contract, slot)
	if err != nil {
		return common.Zero, err
	}
	m.log.Debug("storage peek",
		zap.Stringer("contract", contract),
		zap.Stringer("slot", slot),
		zap.Stringer("value", value),
		zap.Bool("cached", cached),
	)
	return value, nil
}

// publicDataMembership looks up a storage slot and, in proof mode, produces
// the witness of its value. The cached value and the value in the tree must
// agree.
func (m *StateManager) publicDataMembership(ctx context.Context, contract common.Address, slot common.Field) (common.Field, witness.PublicDataReadHint, error) {
	value, cached, err := m.storage.Read(ctx, contract, slot)
	if err != nil {
		return common.Zero, witness.PublicDataReadHint{}, err
	}
	m.log.Debug("storage read",
		zap.Stringer("contract", contract),
		zap.Stringer("slot", slot),
		zap.Stringer("value", value),
		zap.Bool("cached", cached),
	)
	if !m.doMerkleOperations {
		return value, witness.PublicDataReadHint{}, nil
	}

	leafSlot := common.ComputePublicDataLeafSlot(contract, slot)
	treeValue, present, hint, err := m.forest.ReadPublicData(ctx, leafSlot)
	if err != nil {
		return common.Zero, witness.PublicDataReadHint{}, fmt.Errorf("failed to read public data leaf %v: %w", leafSlot, err)
	}
	if present {
		if treeValue != value {
			return common.Zero, witness.PublicDataReadHint{}, invariantViolation("value mismatch for public data leaf %v: cache %v, tree %v", leafSlot, value, treeValue)
		}
	} else {
		if !witness.SkipsKey(hint.LeafPreimage, leafSlot) {
			return common.Zero, witness.PublicDataReadHint{}, invariantViolation("public data low leaf %v does not skip leaf slot %v", hint.LeafPreimage, leafSlot)
		}
		if !value.IsZero() {
			return common.Zero, witness.PublicDataReadHint{}, invariantViolation("leaf slot %v is absent from the public data tree but holds %v", leafSlot, value)
		}
	}
	return value, hint, nil
}

// --- Note Hashes ---

// CheckNoteHashExists checks whether the committed note hash tree holds the
// given unique note hash at the given leaf index.
func (m *StateManager) CheckNoteHashExists(ctx context.Context, contract common.Address, noteHash common.Field, leafIndex uint64) (bool, error) {
	found, exists, err := m.checkCommittedLeaf(ctx, tree.NoteHashTree, noteHash, leafIndex)
	if err != nil {
		return false, err
	}
	path, err := m.committedLeafPath(ctx, tree.NoteHashTree, leafIndex)
	if err != nil {
		return false, err
	}
	m.log.Debug("note hash check",
		zap.Stringer("contract", contract),
		zap.Stringer("noteHash", noteHash),
		zap.Uint64("leafIndex", leafIndex),
		zap.Stringer("found", found),
		zap.Bool("exists", exists),
	)
	if err := m.tracer.TraceNoteHashCheck(contract, found, leafIndex, exists, path); err != nil {
		return false, err
	}
	return exists, nil
}

// checkCommittedLeaf compares the leaf at the given index of a committed
// append-only tree with the given value.
func (m *StateManager) checkCommittedLeaf(ctx context.Context, id tree.TreeID, value common.Field, leafIndex uint64) (common.Field, bool, error) {
	var (
		found   common.Field
		present bool
		err     error
	)
	switch id {
	case tree.NoteHashTree:
		found, present, err = m.db.GetCommitmentValue(ctx, leafIndex)
	case tree.L1ToL2MessageTree:
		found, present, err = m.db.GetL1ToL2LeafValue(ctx, leafIndex)
	default:
		return common.Zero, false, fmt.Errorf("%w: %v", tree.ErrNotAppendOnly, id)
	}
	if err != nil {
		return common.Zero, false, err
	}
	if !present {
		return common.Zero, false, nil
	}
	return found, found == value, nil
}

func (m *StateManager) committedLeafPath(ctx context.Context, id tree.TreeID, leafIndex uint64) (witness.SiblingPath, error) {
	if !m.doMerkleOperations {
		return nil, nil
	}
	path, err := m.forest.GetSiblingPath(ctx, id, leafIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to get path of leaf %d in %v: %w", leafIndex, id, err)
	}
	return path, nil
}

// WriteNoteHash emits a note hash of the given contract. The note hash is
// siloed and made unique before it is inserted.
func (m *StateManager) WriteNoteHash(ctx context.Context, contract common.Address, noteHash common.Field) error {
	return m.WriteSiloedNoteHash(ctx, common.SiloNoteHash(contract, noteHash))
}

// WriteSiloedNoteHash makes a siloed note hash unique and inserts it. The
// nonce is derived from the number of note hashes emitted so far by the
// transaction.
func (m *StateManager) WriteSiloedNoteHash(ctx context.Context, siloedNoteHash common.Field) error {
	nonce := common.ComputeNoteHashNonce(m.firstNullifier, m.tracer.NoteHashCount())
	return m.WriteUniqueNoteHash(ctx, common.ComputeUniqueNoteHash(nonce, siloedNoteHash))
}

func (m *StateManager) WriteUniqueNoteHash(ctx context.Context, uniqueNoteHash common.Field) error {
	var (
		leafIndex uint64
		path      witness.SiblingPath
	)
	if m.doMerkleOperations {
		var err error
		leafIndex, path, err = m.forest.AppendNoteHash(ctx, uniqueNoteHash)
		if err != nil {
			return fmt.Errorf("failed to append note hash %v: %w", uniqueNoteHash, err)
		}
	}
	m.log.Debug("new note hash", zap.Stringer("noteHash", uniqueNoteHash), zap.Uint64("leafIndex", leafIndex))
	return m.tracer.TraceNewNoteHash(uniqueNoteHash, leafIndex, path)
}

// --- Nullifiers ---

// CheckNullifierExists checks whether a nullifier of the given contract
// exists and traces the check.
func (m *StateManager) CheckNullifierExists(ctx context.Context, contract common.Address, nullifier common.Field) (bool, error) {
	siloed := common.SiloNullifier(contract, nullifier)
	exists, hint, err := m.nullifierMembership(ctx, siloed)
	if err != nil {
		return false, err
	}
	if err := m.tracer.TraceNullifierCheck(siloed, exists, hint); err != nil {
		return false, err
	}
	return exists, nil
}

// nullifierMembership determines whether a siloed nullifier exists. The
// nullifier set is consulted first. In proof mode the nullifier tree must
// agree and provides the witness: the nullifier's own leaf if present, its
// low leaf otherwise.
func (m *StateManager) nullifierMembership(ctx context.Context, siloedNullifier common.Field) (bool, witness.NullifierReadHint, error) {
	exists, pending, err := m.nullifiers.CheckExists(ctx, siloedNullifier)
	if err != nil {
		return false, witness.NullifierReadHint{}, err
	}
	m.log.Debug("nullifier check",
		zap.Stringer("nullifier", siloedNullifier),
		zap.Bool("exists", exists),
		zap.Bool("pending", pending),
	)
	if !m.doMerkleOperations {
		return exists, witness.NullifierReadHint{}, nil
	}

	present, hint, err := m.forest.ReadNullifier(ctx, siloedNullifier)
	if err != nil {
		return false, witness.NullifierReadHint{}, fmt.Errorf("failed to read nullifier %v: %w", siloedNullifier, err)
	}
	if present != exists {
		return false, witness.NullifierReadHint{}, invariantViolation("nullifier %v exists in cache: %t, in tree: %t", siloedNullifier, exists, present)
	}
	if !present && !witness.SkipsKey(hint.LowLeafPreimage, siloedNullifier) {
		return false, witness.NullifierReadHint{}, invariantViolation("nullifier low leaf %v does not skip %v", hint.LowLeafPreimage, siloedNullifier)
	}
	return exists, hint, nil
}

// WriteNullifier emits a nullifier of the given contract.
func (m *StateManager) WriteNullifier(ctx context.Context, contract common.Address, nullifier common.Field) error {
	return m.WriteSiloedNullifier(ctx, common.SiloNullifier(contract, nullifier))
}

// WriteSiloedNullifier inserts a siloed nullifier. If the nullifier already
// exists, the witness of its presence is traced as a nullifier check and a
// NullifierCollisionError is returned.
func (m *StateManager) WriteSiloedNullifier(ctx context.Context, siloedNullifier common.Field) error {
	exists, readHint, err := m.nullifierMembership(ctx, siloedNullifier)
	if err != nil {
		return err
	}
	if exists {
		m.log.Debug("nullifier collision", zap.Stringer("nullifier", siloedNullifier))
		if err := m.tracer.TraceNullifierCheck(siloedNullifier, true, readHint); err != nil {
			return err
		}
		return &NullifierCollisionError{Nullifier: siloedNullifier}
	}

	if err := m.nullifiers.Append(ctx, siloedNullifier); err != nil {
		return err
	}
	var hint witness.NullifierWriteHint
	if m.doMerkleOperations {
		hint, err = m.forest.AppendNullifier(ctx, siloedNullifier)
		if err != nil {
			return fmt.Errorf("failed to append nullifier %v: %w", siloedNullifier, err)
		}
	}
	m.log.Debug("new nullifier", zap.Stringer("nullifier", siloedNullifier))
	return m.tracer.TraceNewNullifier(siloedNullifier, hint)
}

// WriteSiloedNullifiersFromPrivate inserts the non-revertible nullifiers of
// the private part of a transaction in the given order. Zero entries are
// padding and skipped. The first failure stops the insertion.
func (m *StateManager) WriteSiloedNullifiersFromPrivate(ctx context.Context, siloedNullifiers []common.Field) error {
	for _, nullifier := range siloedNullifiers {
		if nullifier.IsZero() {
			continue
		}
		if err := m.WriteSiloedNullifier(ctx, nullifier); err != nil {
			return err
		}
	}
	return nil
}

// --- Messages and Logs ---

// CheckL1ToL2MessageExists checks whether the committed L1 to L2 message
// tree holds the given message hash at the given leaf index.
func (m *StateManager) CheckL1ToL2MessageExists(ctx context.Context, contract common.Address, msgHash common.Field, leafIndex uint64) (bool, error) {
	found, exists, err := m.checkCommittedLeaf(ctx, tree.L1ToL2MessageTree, msgHash, leafIndex)
	if err != nil {
		return false, err
	}
	path, err := m.committedLeafPath(ctx, tree.L1ToL2MessageTree, leafIndex)
	if err != nil {
		return false, err
	}
	m.log.Debug("l1 to l2 message check",
		zap.Stringer("msgHash", msgHash),
		zap.Uint64("leafIndex", leafIndex),
		zap.Stringer("found", found),
		zap.Bool("exists", exists),
	)
	if err := m.tracer.TraceL1ToL2MessageCheck(contract, found, leafIndex, exists, path); err != nil {
		return false, err
	}
	return exists, nil
}

func (m *StateManager) WriteL2ToL1Message(contract common.Address, recipient, content common.Field) error {
	m.log.Debug("new l2 to l1 message",
		zap.Stringer("contract", contract),
		zap.Stringer("recipient", recipient),
		zap.Stringer("content", content),
	)
	return m.tracer.TraceNewL2ToL1Message(contract, recipient, content)
}

func (m *StateManager) WritePublicLog(contract common.Address, fields []common.Field) error {
	m.log.Debug("new public log", zap.Stringer("contract", contract), zap.Int("fields", len(fields)))
	return m.tracer.TracePublicLog(contract, fields)
}

// --- Contracts ---

// GetContractInstance returns the instance deployed at the given address, or
// nil if there is none. For contracts other than the protocol contracts the
// retrieval is accompanied by witnesses of the deployment nullifier and the
// contract's scheduled updates.
func (m *StateManager) GetContractInstance(ctx context.Context, contract common.Address) (*common.ContractInstance, error) {
	instance, err := m.db.GetContractInstance(ctx, contract)
	if err != nil {
		return nil, err
	}
	exists := instance != nil
	hints, err := m.contractHints(ctx, contract, exists)
	if err != nil {
		return nil, err
	}
	m.log.Debug("contract instance", zap.Stringer("contract", contract), zap.Bool("exists", exists))
	if err := m.tracer.TraceGetContractInstance(contract, exists, instance, hints); err != nil {
		return nil, err
	}
	return instance, nil
}

// GetBytecode returns the public bytecode of the contract deployed at the
// given address. The flag is false if there is no such contract.
func (m *StateManager) GetBytecode(ctx context.Context, contract common.Address) (immutable.Bytes, bool, error) {
	instance, err := m.db.GetContractInstance(ctx, contract)
	if err != nil {
		return immutable.Bytes{}, false, err
	}
	exists := instance != nil
	hints, err := m.contractHints(ctx, contract, exists)
	if err != nil {
		return immutable.Bytes{}, false, err
	}
	if !exists {
		m.log.Debug("bytecode of missing contract", zap.Stringer("contract", contract))
		if err := m.tracer.TraceGetBytecode(contract, false, immutable.Bytes{}, nil, nil, hints); err != nil {
			return immutable.Bytes{}, false, err
		}
		return immutable.Bytes{}, false, nil
	}

	classID := instance.CurrentClassID
	class, err := m.db.GetContractClass(ctx, classID)
	if err != nil {
		return immutable.Bytes{}, false, err
	}
	if class == nil {
		return immutable.Bytes{}, false, invariantViolation("class %v of contract %v not found", classID, contract)
	}
	commitment, found, err := m.db.GetBytecodeCommitment(ctx, classID)
	if err != nil {
		return immutable.Bytes{}, false, err
	}
	if !found {
		return immutable.Bytes{}, false, invariantViolation("bytecode commitment of class %v not found", classID)
	}
	preimage := common.ContractClassPreimage{
		ArtifactHash:             class.ArtifactHash,
		PrivateFunctionsRoot:     class.PrivateFunctionsRoot,
		PublicBytecodeCommitment: commitment,
	}
	if got := preimage.ClassID(); got != classID {
		return immutable.Bytes{}, false, invariantViolation("class preimage of %v hashes to %v", classID, got)
	}

	m.log.Debug("bytecode",
		zap.Stringer("contract", contract),
		zap.Stringer("class", classID),
		zap.Int("size", class.PackedBytecode.Len()),
	)
	if err := m.tracer.TraceGetBytecode(contract, true, class.PackedBytecode, instance, &preimage, hints); err != nil {
		return immutable.Bytes{}, false, err
	}
	return class.PackedBytecode, true, nil
}

// contractHints produces the witnesses of a contract retrieval. The
// deployment nullifier must exist exactly if the instance does. Protocol
// contracts and retrievals outside of proof mode carry empty hints; the
// consistency checks are performed regardless.
func (m *StateManager) contractHints(ctx context.Context, contract common.Address, exists bool) (witness.ContractHints, error) {
	if common.IsProtocolContractAddress(contract) {
		return witness.ContractHints{}, nil
	}
	deploymentNullifier := common.ComputeDeploymentNullifier(contract)
	deployed, nullifierHint, err := m.nullifierMembership(ctx, deploymentNullifier)
	if err != nil {
		return witness.ContractHints{}, err
	}
	if deployed != exists {
		return witness.ContractHints{}, invariantViolation("contract %v exists: %t, deployment nullifier exists: %t", contract, exists, deployed)
	}
	updateHint, updatePreimage, err := m.contractUpdateHints(ctx, contract)
	if err != nil {
		return witness.ContractHints{}, err
	}
	if !m.doMerkleOperations {
		return witness.ContractHints{}, nil
	}
	return witness.ContractHints{
		DeploymentNullifier: nullifierHint,
		UpdateMembership:    updateHint,
		UpdatePreimage:      updatePreimage,
	}, nil
}

// contractUpdateHints reads the scheduled update of a contract from the
// storage of the deployer contract. The hash slot is read with its
// membership witness, the preimage slots are peeked. A non-zero hash must
// match the preimage, a zero hash requires an empty preimage.
func (m *StateManager) contractUpdateHints(ctx context.Context, contract common.Address) (witness.PublicDataReadHint, []common.Field, error) {
	valuesSlot, hashSlot := common.ComputeContractUpdateSlots(contract)
	hash, hint, err := m.publicDataMembership(ctx, common.DeployerAddress, hashSlot)
	if err != nil {
		return witness.PublicDataReadHint{}, nil, err
	}
	preimage := make([]common.Field, common.UpdatesValuesLen)
	for i := range preimage {
		preimage[i], err = m.PeekStorage(ctx, common.DeployerAddress, valuesSlot.AddUint64(uint64(i)))
		if err != nil {
			return witness.PublicDataReadHint{}, nil, err
		}
	}
	if hash.IsZero() {
		for _, value := range preimage {
			if !value.IsZero() {
				return witness.PublicDataReadHint{}, nil, invariantViolation("update hash of contract %v is zero, but preimage is %v", contract, preimage)
			}
		}
	} else if got := common.HashFields(preimage...); got != hash {
		return witness.PublicDataReadHint{}, nil, invariantViolation("update hash of contract %v is %v, preimage hashes to %v", contract, hash, got)
	}
	return hint, preimage, nil
}

// TraceEnqueuedCall records a public call enqueued by the transaction.
func (m *StateManager) TraceEnqueuedCall(request common.PublicCallRequest, calldata []common.Field, reverted bool) error {
	m.log.Debug("enqueued call",
		zap.Stringer("contract", request.ContractAddress),
		zap.Int("calldata", len(calldata)),
		zap.Bool("reverted", reverted),
	)
	return m.tracer.TraceEnqueuedCall(request, calldata, reverted)
}

// PublicFunctionDebugName names the public function invoked by the given
// calldata, whose first element is the function selector. Unknown functions
// are named by their contract address and selector. Lookup failures are
// logged and fall back to this format.
func (m *StateManager) PublicFunctionDebugName(ctx context.Context, contract common.Address, calldata []common.Field) string {
	if len(calldata) == 0 {
		return fmt.Sprintf("%v:<no selector>", contract)
	}
	selector := calldata[0]
	if names, ok := m.db.(worldstate.DebugFunctionNames); ok {
		name, found, err := names.GetDebugFunctionName(ctx, contract, selector)
		if err != nil {
			m.log.Warn("function name lookup failed", zap.Stringer("contract", contract), zap.Error(err))
		} else if found {
			return name
		}
	}
	return fmt.Sprintf("%v:%v", contract, selector)
}

// --- Fork, Merge, Reject ---

// Fork creates the journal of a nested call. The fork starts with the state
// of this frame; its modifications become visible to this frame only once
// it is merged.
func (m *StateManager) Fork() *StateManager {
	var forest *tree.Forest
	if m.forest != nil {
		forest = m.forest.Fork()
	}
	return &StateManager{
		db:                 m.db,
		tracer:             m.tracer.Fork(),
		storage:            m.storage.Fork(),
		nullifiers:         m.nullifiers.Fork(),
		forest:             forest,
		doMerkleOperations: m.doMerkleOperations,
		firstNullifier:     m.firstNullifier,
		parent:             m,
		lifeCycle:          kActive,
		log:                m.log,
	}
}

// Merge accepts the modifications of a forked frame. The frame's trees
// replace those of this frame and its side effects are appended to this
// frame's trace.
func (m *StateManager) Merge(child *StateManager) error {
	return m.merge(child, false)
}

// Reject discards the modifications of a forked frame. Its side effects are
// still appended to this frame's trace, marked as reverted.
func (m *StateManager) Reject(child *StateManager) error {
	return m.merge(child, true)
}

func (m *StateManager) merge(child *StateManager, reverted bool) error {
	if child.parent != m {
		return invariantViolation("merging a frame not forked from this frame")
	}
	if child.lifeCycle != kActive {
		return invariantViolation("merging a frame that is already %v", child.lifeCycle)
	}
	if reverted {
		child.lifeCycle = kRejected
	} else {
		child.lifeCycle = kMerged
	}

	if err := m.tracer.Merge(child.tracer, reverted); err != nil {
		return fmt.Errorf("failed to merge trace: %w", err)
	}
	if !reverted {
		m.storage.AcceptAndMerge(child.storage)
		m.nullifiers.AcceptAndMerge(child.nullifiers)
		m.forest = child.forest
	}
	child.forest = nil

	if m.forest != nil {
		root, err := m.forest.GetRoot(tree.NullifierTree)
		if err != nil {
			return err
		}
		m.log.Debug("merged frame", zap.Bool("reverted", reverted), zap.Stringer("nullifierRoot", root))
	} else {
		m.log.Debug("merged frame", zap.Bool("reverted", reverted))
	}
	return nil
}
