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
	"fmt"

	"github.com/Fantom-foundation/avmstate/common"
	lru "github.com/hashicorp/golang-lru/v2"
)

// CacheConfig sizes the caches of a CachedWorldState.
type CacheConfig struct {
	InstanceCacheSize   int // number of contract instances
	ClassCacheSize      int // number of contract classes
	CommitmentCacheSize int // number of bytecode commitments
}

func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		InstanceCacheSize:   1024,
		ClassCacheSize:      256,
		CommitmentCacheSize: 256,
	}
}

// CachedWorldState is a read-through cache for contract data of a world
// state. Contract instances, classes and bytecode commitments are immutable
// for the lifetime of a world state snapshot and are fetched repeatedly by
// nested calls, so they are kept in LRU caches. All other lookups are
// forwarded. The cache is safe for concurrent use if the wrapped world
// state is.
type CachedWorldState struct {
	WorldStateDB
	instances   *lru.Cache[common.Address, *common.ContractInstance]
	classes     *lru.Cache[common.Field, *common.ContractClass]
	commitments *lru.Cache[common.Field, common.Field]
}

var (
	_ WorldStateDB       = (*CachedWorldState)(nil)
	_ DebugFunctionNames = (*CachedWorldState)(nil)
)

// NewCachedWorldState wraps the given world state.
func NewCachedWorldState(db WorldStateDB, config CacheConfig) (*CachedWorldState, error) {
	instances, err := lru.New[common.Address, *common.ContractInstance](config.InstanceCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create instance cache: %w", err)
	}
	classes, err := lru.New[common.Field, *common.ContractClass](config.ClassCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create class cache: %w", err)
	}
	commitments, err := lru.New[common.Field, common.Field](config.CommitmentCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create commitment cache: %w", err)
	}
	return &CachedWorldState{
		WorldStateDB: db,
		instances:    instances,
		classes:      classes,
		commitments:  commitments,
	}, nil
}

func (c *CachedWorldState) GetContractInstance(ctx context.Context, address common.Address) (*common.ContractInstance, error) {
	if res, found := c.instances.Get(address); found {
		return clone(res), nil
	}
	res, err := c.WorldStateDB.GetContractInstance(ctx, address)
	if err != nil {
		return nil, err
	}
	c.instances.Add(address, clone(res))
	return res, nil
}

func (c *CachedWorldState) GetContractClass(ctx context.Context, classID common.Field) (*common.ContractClass, error) {
	if res, found := c.classes.Get(classID); found {
		return clone(res), nil
	}
	res, err := c.WorldStateDB.GetContractClass(ctx, classID)
	if err != nil {
		return nil, err
	}
	c.classes.Add(classID, clone(res))
	return res, nil
}

func (c *CachedWorldState) GetBytecodeCommitment(ctx context.Context, classID common.Field) (common.Field, bool, error) {
	if res, found := c.commitments.Get(classID); found {
		return res, true, nil
	}
	res, found, err := c.WorldStateDB.GetBytecodeCommitment(ctx, classID)
	if err != nil || !found {
		return res, found, err
	}
	c.commitments.Add(classID, res)
	return res, true, nil
}

func clone[T any](v *T) *T {
	if v == nil {
		return nil
	}
	res := *v
	return &res
}

// GetDebugFunctionName forwards to the wrapped world state if it knows
// function names.
func (c *CachedWorldState) GetDebugFunctionName(ctx context.Context, address common.Address, selector common.Field) (string, bool, error) {
	names, ok := c.WorldStateDB.(DebugFunctionNames)
	if !ok {
		return "", false, nil
	}
	return names.GetDebugFunctionName(ctx, address, selector)
}
