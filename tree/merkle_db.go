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

	"github.com/Fantom-foundation/avmstate/common"
	"github.com/Fantom-foundation/avmstate/common/witness"
)

//go:generate mockgen -source merkle_db.go -destination merkle_db_mocks.go -package tree

// TreeInfo summarizes the state of a single tree.
type TreeInfo struct {
	Root  common.Field
	Size  uint64 // number of leaves, including pre-filled leaves
	Depth int
}

// MerkleDB provides read access to a committed snapshot of the world state
// trees. Implementations must not change the observed snapshot while it is
// used as the base of a Forest.
type MerkleDB interface {
	// GetTreeInfo returns the root, size and depth of the given tree.
	GetTreeInfo(ctx context.Context, id TreeID) (TreeInfo, error)

	// GetSiblingPath returns the sibling path of the leaf at the given index.
	GetSiblingPath(ctx context.Context, id TreeID, index uint64) (witness.SiblingPath, error)

	// GetPreviousValueIndex locates the leaf holding the given key in an
	// indexed tree, or its low leaf if the key is not present. The flag
	// reports whether the key is present.
	GetPreviousValueIndex(ctx context.Context, id TreeID, key common.Field) (uint64, bool, error)

	// GetLeafPreimage returns the indexed leaf at the given index, if any.
	GetLeafPreimage(ctx context.Context, id TreeID, index uint64) (witness.IndexedLeaf, bool, error)

	// GetLeafValue returns the value at the given index of an append-only
	// tree, if any.
	GetLeafValue(ctx context.Context, id TreeID, index uint64) (common.Field, bool, error)
}

// Error codes shared by the tree implementations.
const (
	ErrUnknownTree       = common.ConstError("unknown tree")
	ErrNotIndexed        = common.ConstError("tree is not an indexed tree")
	ErrNotAppendOnly     = common.ConstError("tree is not an append-only tree")
	ErrKeyAlreadyPresent = common.ConstError("key already present in tree")
	ErrTreeFull          = common.ConstError("tree is full")
	ErrIndexOutOfRange   = common.ConstError("leaf index out of range")
	ErrInvalidLeaf       = common.ConstError("leaf of unexpected type")
)
