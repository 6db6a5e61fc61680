// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package tree

import (
	"context"
	"fmt"

	"github.com/Fantom-foundation/avmstate/common"
	"github.com/Fantom-foundation/avmstate/common/witness"
)

// EmptyDB is a MerkleDB of a world state without any content. Indexed trees
// are pre-filled with a zero leaf at index 0 serving as the low leaf of every
// key, append-only trees are empty.
type EmptyDB struct {
	heights Heights
	zeros   [numTrees][]common.Field
	// prefilled[id][l] is the hash of the subtree at level l containing the
	// pre-filled leaf.
	prefilled [numTrees][]common.Field
}

var _ MerkleDB = (*EmptyDB)(nil)

func NewEmptyDB(heights Heights) (*EmptyDB, error) {
	if err := heights.check(); err != nil {
		return nil, err
	}
	db := &EmptyDB{heights: heights}
	for _, id := range AllTrees() {
		depth := heights.Of(id)
		zeros := zeroHashes(depth)
		db.zeros[id] = zeros
		if !id.IsIndexed() {
			continue
		}
		kind, _ := id.kind()
		prefilled := make([]common.Field, depth+1)
		prefilled[0] = kind.newLeaf(common.Zero, common.Zero).Hash()
		for level := 1; level <= depth; level++ {
			prefilled[level] = common.HashPair(prefilled[level-1], zeros[level-1])
		}
		db.prefilled[id] = prefilled
	}
	return db, nil
}

func (db *EmptyDB) GetTreeInfo(_ context.Context, id TreeID) (TreeInfo, error) {
	if _, err := id.kind(); err != nil {
		return TreeInfo{}, err
	}
	depth := db.heights.Of(id)
	if id.IsIndexed() {
		return TreeInfo{Root: db.prefilled[id][depth], Size: 1, Depth: depth}, nil
	}
	return TreeInfo{Root: db.zeros[id][depth], Size: 0, Depth: depth}, nil
}

func (db *EmptyDB) GetSiblingPath(_ context.Context, id TreeID, index uint64) (witness.SiblingPath, error) {
	if _, err := id.kind(); err != nil {
		return nil, err
	}
	depth := db.heights.Of(id)
	if index >= uint64(1)<<depth {
		return nil, fmt.Errorf("%w: %d in %v", ErrIndexOutOfRange, index, id)
	}
	res := make(witness.SiblingPath, depth)
	for level := 0; level < depth; level++ {
		sibling := (index >> level) ^ 1
		if sibling == 0 && id.IsIndexed() {
			res[level] = db.prefilled[id][level]
		} else {
			res[level] = db.zeros[id][level]
		}
	}
	return res, nil
}

func (db *EmptyDB) GetPreviousValueIndex(_ context.Context, id TreeID, key common.Field) (uint64, bool, error) {
	if !id.IsIndexed() {
		return 0, false, fmt.Errorf("%w: %v", ErrNotIndexed, id)
	}
	return 0, key.IsZero(), nil
}

func (db *EmptyDB) GetLeafPreimage(_ context.Context, id TreeID, index uint64) (witness.IndexedLeaf, bool, error) {
	kind, err := id.kind()
	if err != nil {
		return nil, false, err
	}
	if kind == appendOnlyLeaves {
		return nil, false, fmt.Errorf("%w: %v", ErrNotIndexed, id)
	}
	if index != 0 {
		return nil, false, nil
	}
	return kind.newLeaf(common.Zero, common.Zero), true, nil
}

func (db *EmptyDB) GetLeafValue(_ context.Context, id TreeID, index uint64) (common.Field, bool, error) {
	kind, err := id.kind()
	if err != nil {
		return common.Zero, false, err
	}
	if kind != appendOnlyLeaves {
		return common.Zero, false, fmt.Errorf("%w: %v", ErrNotAppendOnly, id)
	}
	return common.Zero, false, nil
}
