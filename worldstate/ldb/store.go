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
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/Fantom-foundation/avmstate/common"
	"github.com/Fantom-foundation/avmstate/tree"
	"github.com/Fantom-foundation/avmstate/worldstate"
	"github.com/Fantom-foundation/avmstate/worldstate/memory"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
	"go.uber.org/zap"
)

// TableSpace divides the key-value storage into spaces by adding a prefix to
// the key.
type TableSpace byte

const (
	// MetaKey is a tablespace for store properties fixed at creation
	MetaKey TableSpace = 'M'
	// OpLogKey is a tablespace for the log of genesis operations
	OpLogKey TableSpace = 'O'
)

const (
	ErrHeightsMismatch = common.ConstError("tree heights differ from those the store was created with")
	ErrNotInitialized  = common.ConstError("store has not been initialized")
)

// dbKey is a tablespace prefix followed by at most 8 bytes of key.
type dbKey [9]byte

func toDBKey(t TableSpace, key []byte) dbKey {
	var res dbKey
	res[0] = byte(t)
	if n := copy(res[1:], key); n < len(key) {
		panic(fmt.Sprintf("input key does not fit into dbkey: %d > %d", len(key), len(res)-1))
	}
	return res
}

func opKey(seq uint64) dbKey {
	var key [8]byte
	binary.BigEndian.PutUint64(key[:], seq)
	return toDBKey(OpLogKey, key[:])
}

var heightsKey = toDBKey(MetaKey, []byte("heights"))

// Store is a world state persisted in LevelDB. Genesis operations are
// recorded in an operation log in the order they are applied; opening a store
// replays the log into an in-memory world state serving all lookups.
//
// A Store is safe for concurrent use.
type Store struct {
	db      *leveldb.DB
	state   *memory.WorldState
	heights tree.Heights
	seq     uint64
	logger  *zap.Logger
	mu      sync.Mutex
}

var _ worldstate.WorldStateDB = (*Store)(nil)

// Open opens or creates the store located in the given directory. The heights
// of a new store are fixed on creation; reopening it with different heights
// fails with ErrHeightsMismatch.
func Open(ctx context.Context, path string, heights tree.Heights, logger *zap.Logger) (*Store, error) {
	return openFile(ctx, path, &heights, logger)
}

// OpenExisting opens a store created before with the tree heights it was
// created with. Directories not holding a store fail with ErrNotInitialized.
func OpenExisting(ctx context.Context, path string, logger *zap.Logger) (*Store, error) {
	return openFile(ctx, path, nil, logger)
}

func openFile(ctx context.Context, path string, heights *tree.Heights, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("ldb")

	db, err := leveldb.OpenFile(path, &opt.Options{ErrorIfMissing: heights == nil})
	if err != nil {
		return nil, fmt.Errorf("failed to open LevelDB at %s: %w", path, err)
	}
	store, err := open(ctx, db, heights, logger)
	if err != nil {
		return nil, errors.Join(err, db.Close())
	}
	logger.Info("opened world state",
		zap.String("path", path),
		zap.Uint64("operations", store.seq),
		zap.Uint64("block", store.state.BlockNumber()),
	)
	return store, nil
}

func open(ctx context.Context, db *leveldb.DB, requested *tree.Heights, logger *zap.Logger) (*Store, error) {
	var heights tree.Heights
	stored, err := db.Get(heightsKey[:], nil)
	switch {
	case errors.Is(err, leveldb.ErrNotFound):
		if requested == nil {
			return nil, ErrNotInitialized
		}
		heights = *requested
		encoded, err := json.Marshal(heights)
		if err != nil {
			return nil, err
		}
		if err := db.Put(heightsKey[:], encoded, nil); err != nil {
			return nil, fmt.Errorf("failed to store tree heights: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to read tree heights: %w", err)
	default:
		if err := json.Unmarshal(stored, &heights); err != nil {
			return nil, fmt.Errorf("failed to decode tree heights: %w", err)
		}
		if requested != nil && *requested != heights {
			return nil, fmt.Errorf("%w: stored %v, requested %v", ErrHeightsMismatch, heights, *requested)
		}
	}

	state, err := memory.New(ctx, heights)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db, state: state, heights: heights, logger: logger}

	prefix := util.BytesPrefix([]byte{byte(OpLogKey)})
	iter := db.NewIterator(prefix, nil)
	defer iter.Release()
	for iter.Next() {
		var op operation
		if err := json.Unmarshal(iter.Value(), &op); err != nil {
			return nil, fmt.Errorf("failed to decode operation %d: %w", store.seq, err)
		}
		if err := op.apply(ctx, state); err != nil {
			return nil, fmt.Errorf("failed to replay operation %d (%v): %w", store.seq, op.Kind, err)
		}
		store.seq++
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("failed to read operation log: %w", err)
	}
	logger.Debug("replayed operation log", zap.Uint64("operations", store.seq))
	return store, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger.Info("closing world state", zap.Uint64("operations", s.seq))
	return s.db.Close()
}

// Heights returns the tree depths the store was created with.
func (s *Store) Heights() tree.Heights {
	return s.heights
}

// NumOperations returns the number of recorded genesis operations.
func (s *Store) NumOperations() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq
}

// record applies the operation to the in-memory state and appends it to the
// log. Operations rejected by the world state are not recorded.
func (s *Store) record(ctx context.Context, op operation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := op.apply(ctx, s.state); err != nil {
		return err
	}
	encoded, err := json.Marshal(op)
	if err != nil {
		return err
	}
	key := opKey(s.seq)
	if err := s.db.Put(key[:], encoded, &opt.WriteOptions{Sync: true}); err != nil {
		return fmt.Errorf("failed to persist operation %d: %w", s.seq, err)
	}
	s.seq++
	return nil
}

func (s *Store) SetBlockNumber(ctx context.Context, block uint64) error {
	return s.record(ctx, operation{Kind: opSetBlockNumber, Block: block})
}

func (s *Store) RegisterContractClass(ctx context.Context, class common.ContractClass) (common.Field, error) {
	if err := s.record(ctx, operation{Kind: opRegisterClass, Class: &class}); err != nil {
		return common.Zero, err
	}
	return class.Preimage().ClassID(), nil
}

func (s *Store) DeployContract(ctx context.Context, instance common.ContractInstance) error {
	return s.record(ctx, operation{Kind: opDeployContract, Instance: &instance})
}

func (s *Store) ScheduleContractUpdate(ctx context.Context, address common.Address, update common.ContractUpdate) error {
	return s.record(ctx, operation{Kind: opScheduleUpdate, Address: address, Update: &update})
}

func (s *Store) SetStorage(ctx context.Context, contract common.Address, slot, value common.Field) error {
	return s.record(ctx, operation{Kind: opSetStorage, Address: contract, Key: slot, Value: value})
}

func (s *Store) InsertNullifier(ctx context.Context, siloedNullifier common.Field) error {
	return s.record(ctx, operation{Kind: opInsertNullifier, Value: siloedNullifier})
}

func (s *Store) AppendNoteHash(ctx context.Context, uniqueNoteHash common.Field) error {
	return s.record(ctx, operation{Kind: opAppendNoteHash, Value: uniqueNoteHash})
}

func (s *Store) AppendL1ToL2Message(ctx context.Context, msgHash common.Field) error {
	return s.record(ctx, operation{Kind: opAppendL1ToL2Message, Value: msgHash})
}

// BlockNumber is the block number of the last SetBlockNumber operation.
func (s *Store) BlockNumber() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.BlockNumber()
}

// NumContracts returns the number of deployed contracts.
func (s *Store) NumContracts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.NumContracts()
}

// NumClasses returns the number of registered contract classes.
func (s *Store) NumClasses() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.NumClasses()
}

func (s *Store) GetTreeInfo(ctx context.Context, id tree.TreeID) (tree.TreeInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.GetTreeInfo(ctx, id)
}

func (s *Store) GetContractInstance(ctx context.Context, address common.Address) (*common.ContractInstance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.GetContractInstance(ctx, address)
}

func (s *Store) GetContractClass(ctx context.Context, classID common.Field) (*common.ContractClass, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.GetContractClass(ctx, classID)
}

func (s *Store) GetBytecodeCommitment(ctx context.Context, classID common.Field) (common.Field, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.GetBytecodeCommitment(ctx, classID)
}

func (s *Store) GetCommitmentValue(ctx context.Context, leafIndex uint64) (common.Field, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.GetCommitmentValue(ctx, leafIndex)
}

func (s *Store) GetL1ToL2LeafValue(ctx context.Context, leafIndex uint64) (common.Field, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.GetL1ToL2LeafValue(ctx, leafIndex)
}

func (s *Store) StorageRead(ctx context.Context, contract common.Address, slot common.Field) (common.Field, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.StorageRead(ctx, contract, slot)
}

func (s *Store) GetNullifierIndex(ctx context.Context, siloedNullifier common.Field) (uint64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.GetNullifierIndex(ctx, siloedNullifier)
}

// GetMerkleInterface returns a frozen snapshot of the current trees.
func (s *Store) GetMerkleInterface() tree.MerkleDB {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.GetMerkleInterface()
}
