// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package memory

import (
	"context"
	"fmt"

	"github.com/Fantom-foundation/avmstate/common"
	"github.com/Fantom-foundation/avmstate/common/witness"
	"github.com/Fantom-foundation/avmstate/tree"
	"github.com/Fantom-foundation/avmstate/worldstate"
)

const (
	ErrUnknownClass        = common.ConstError("unknown contract class")
	ErrUnknownContract     = common.ConstError("unknown contract")
	ErrAlreadyDeployed     = common.ConstError("contract already deployed")
	ErrDuplicatedNullifier = common.ConstError("nullifier already present")
)

// WorldState is an in-memory world state. It is built up by genesis
// operations and serves as the committed state of transactions executed by
// the state journal. The trees of the world state are maintained by a
// tree.Forest on top of an empty database.
//
// A WorldState is not safe for concurrent use. It must not be modified while
// a transaction is executed on it.
type WorldState struct {
	forest      *tree.Forest
	instances   map[common.Address]common.ContractInstance
	classes     map[common.Field]common.ContractClass
	commitments map[common.Field]common.Field
	debugNames  map[common.Address]map[common.Field]string
	blockNumber uint64
}

var (
	_ worldstate.WorldStateDB       = (*WorldState)(nil)
	_ worldstate.DebugFunctionNames = (*WorldState)(nil)
)

// New creates an empty world state with trees of the given heights.
func New(ctx context.Context, heights tree.Heights) (*WorldState, error) {
	db, err := tree.NewEmptyDB(heights)
	if err != nil {
		return nil, err
	}
	forest, err := tree.NewForest(ctx, db)
	if err != nil {
		return nil, err
	}
	return &WorldState{
		forest:      forest,
		instances:   map[common.Address]common.ContractInstance{},
		classes:     map[common.Field]common.ContractClass{},
		commitments: map[common.Field]common.Field{},
		debugNames:  map[common.Address]map[common.Field]string{},
	}, nil
}

// BlockNumber is the number of the block transactions are executed in. It
// determines which scheduled contract updates are in effect.
func (w *WorldState) BlockNumber() uint64 {
	return w.blockNumber
}

func (w *WorldState) SetBlockNumber(block uint64) {
	w.blockNumber = block
}

// RegisterContractClass publishes a contract class and returns its id.
// Registering a class twice is a no-op.
func (w *WorldState) RegisterContractClass(class common.ContractClass) common.Field {
	preimage := class.Preimage()
	id := preimage.ClassID()
	w.classes[id] = class
	w.commitments[id] = preimage.PublicBytecodeCommitment
	return id
}

// DeployContract deploys a new instance of a registered class and emits its
// deployment nullifier. The current class of the instance is its original
// class.
func (w *WorldState) DeployContract(ctx context.Context, instance common.ContractInstance) error {
	if _, found := w.classes[instance.OriginalClassID]; !found {
		return fmt.Errorf("%w: %v", ErrUnknownClass, instance.OriginalClassID)
	}
	if _, found := w.instances[instance.Address]; found {
		return fmt.Errorf("%w: %v", ErrAlreadyDeployed, instance.Address)
	}
	instance.CurrentClassID = instance.OriginalClassID
	if err := w.InsertNullifier(ctx, common.ComputeDeploymentNullifier(instance.Address)); err != nil {
		return err
	}
	w.instances[instance.Address] = instance
	return nil
}

// ScheduleContractUpdate records an update of the class of a deployed
// contract in the storage of the deployer contract.
func (w *WorldState) ScheduleContractUpdate(ctx context.Context, address common.Address, update common.ContractUpdate) error {
	if _, found := w.instances[address]; !found {
		return fmt.Errorf("%w: %v", ErrUnknownContract, address)
	}
	if _, found := w.classes[update.NextClassID]; !found {
		return fmt.Errorf("%w: %v", ErrUnknownClass, update.NextClassID)
	}
	valuesSlot, hashSlot := common.ComputeContractUpdateSlots(address)
	for i, value := range update.ToFields() {
		if err := w.SetStorage(ctx, common.DeployerAddress, valuesSlot.AddUint64(uint64(i)), value); err != nil {
			return err
		}
	}
	return w.SetStorage(ctx, common.DeployerAddress, hashSlot, update.Hash())
}

// SetStorage sets the value of a public storage slot.
func (w *WorldState) SetStorage(ctx context.Context, contract common.Address, slot, value common.Field) error {
	_, err := w.forest.WritePublicData(ctx, common.ComputePublicDataLeafSlot(contract, slot), value)
	return err
}

// InsertNullifier adds a siloed nullifier to the nullifier tree.
func (w *WorldState) InsertNullifier(ctx context.Context, siloedNullifier common.Field) error {
	present, err := w.hasNullifier(ctx, siloedNullifier)
	if err != nil {
		return err
	}
	if present {
		return fmt.Errorf("%w: %v", ErrDuplicatedNullifier, siloedNullifier)
	}
	_, err = w.forest.AppendNullifier(ctx, siloedNullifier)
	return err
}

// AppendNoteHash adds a unique note hash to the note hash tree and returns
// its leaf index.
func (w *WorldState) AppendNoteHash(ctx context.Context, uniqueNoteHash common.Field) (uint64, error) {
	index, _, err := w.forest.AppendNoteHash(ctx, uniqueNoteHash)
	return index, err
}

// AppendL1ToL2Message adds a message hash to the L1 to L2 message tree and
// returns its leaf index.
func (w *WorldState) AppendL1ToL2Message(ctx context.Context, msgHash common.Field) (uint64, error) {
	index, _, err := w.forest.AppendLeaf(ctx, tree.L1ToL2MessageTree, msgHash)
	return index, err
}

// GetTreeInfo summarizes the current state of a tree.
func (w *WorldState) GetTreeInfo(ctx context.Context, id tree.TreeID) (tree.TreeInfo, error) {
	return w.forest.GetTreeInfo(ctx, id)
}

// NumContracts returns the number of deployed contracts.
func (w *WorldState) NumContracts() int {
	return len(w.instances)
}

// NumClasses returns the number of registered contract classes.
func (w *WorldState) NumClasses() int {
	return len(w.classes)
}

func (w *WorldState) GetContractInstance(ctx context.Context, address common.Address) (*common.ContractInstance, error) {
	instance, found := w.instances[address]
	if !found {
		return nil, nil
	}
	update, err := w.readUpdate(ctx, address)
	if err != nil {
		return nil, err
	}
	instance.CurrentClassID = update.ClassIDAt(w.blockNumber, instance.OriginalClassID)
	return &instance, nil
}

func (w *WorldState) readUpdate(ctx context.Context, address common.Address) (common.ContractUpdate, error) {
	valuesSlot, _ := common.ComputeContractUpdateSlots(address)
	fields := make([]common.Field, common.UpdatesValuesLen)
	for i := range fields {
		value, err := w.StorageRead(ctx, common.DeployerAddress, valuesSlot.AddUint64(uint64(i)))
		if err != nil {
			return common.ContractUpdate{}, err
		}
		fields[i] = value
	}
	return common.ContractUpdateFromFields(fields)
}

func (w *WorldState) GetContractClass(_ context.Context, classID common.Field) (*common.ContractClass, error) {
	class, found := w.classes[classID]
	if !found {
		return nil, nil
	}
	return &class, nil
}

func (w *WorldState) GetBytecodeCommitment(_ context.Context, classID common.Field) (common.Field, bool, error) {
	commitment, found := w.commitments[classID]
	return commitment, found, nil
}

func (w *WorldState) GetCommitmentValue(ctx context.Context, leafIndex uint64) (common.Field, bool, error) {
	return w.forest.GetLeafValue(ctx, tree.NoteHashTree, leafIndex)
}

func (w *WorldState) GetL1ToL2LeafValue(ctx context.Context, leafIndex uint64) (common.Field, bool, error) {
	return w.forest.GetLeafValue(ctx, tree.L1ToL2MessageTree, leafIndex)
}

func (w *WorldState) StorageRead(ctx context.Context, contract common.Address, slot common.Field) (common.Field, error) {
	res, err := w.forest.GetLeafOrLowLeafInfo(ctx, tree.PublicDataTree, common.ComputePublicDataLeafSlot(contract, slot))
	if err != nil {
		return common.Zero, err
	}
	if !res.AlreadyPresent {
		return common.Zero, nil
	}
	leaf, ok := res.Preimage.(witness.PublicDataLeafPreimage)
	if !ok {
		return common.Zero, fmt.Errorf("%w: %T", tree.ErrInvalidLeaf, res.Preimage)
	}
	return leaf.Value, nil
}

func (w *WorldState) GetNullifierIndex(ctx context.Context, siloedNullifier common.Field) (uint64, bool, error) {
	res, err := w.forest.GetLeafOrLowLeafInfo(ctx, tree.NullifierTree, siloedNullifier)
	if err != nil {
		return 0, false, err
	}
	if !res.AlreadyPresent {
		return 0, false, nil
	}
	return res.Index, true, nil
}

func (w *WorldState) hasNullifier(ctx context.Context, siloedNullifier common.Field) (bool, error) {
	_, found, err := w.GetNullifierIndex(ctx, siloedNullifier)
	return found, err
}

// GetMerkleInterface returns a frozen snapshot of the current trees.
// Subsequent modifications of the world state are not visible in the
// snapshot.
func (w *WorldState) GetMerkleInterface() tree.MerkleDB {
	return w.forest.Fork()
}

// RegisterFunctionName records the name of a public function of a contract
// for diagnostics.
func (w *WorldState) RegisterFunctionName(address common.Address, selector common.Field, name string) {
	names, found := w.debugNames[address]
	if !found {
		names = map[common.Field]string{}
		w.debugNames[address] = names
	}
	names[selector] = name
}

func (w *WorldState) GetDebugFunctionName(_ context.Context, address common.Address, selector common.Field) (string, bool, error) {
	name, found := w.debugNames[address][selector]
	return name, found, nil
}
