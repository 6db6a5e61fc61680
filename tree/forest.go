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

// Forest is the leaf accumulator of the state journal. It maintains an
// ephemeral copy of every world state tree on top of a committed snapshot
// and produces the membership, non-membership and insertion witnesses
// required for proving state accesses.
//
// Forking a forest is cheap: local modifications are shared with the fork
// until either side modifies them. A forest is not safe for concurrent use,
// but distinct forks may be used by distinct goroutines as long as the
// underlying MerkleDB supports concurrent reads.
//
// A Forest is a MerkleDB itself. Forests may thus be layered, allowing a
// world state to expose a frozen fork of its trees as committed snapshot.
type Forest struct {
	db    MerkleDB
	trees [numTrees]*ephemeralTree
}

var _ MerkleDB = (*Forest)(nil)

// LeafOrLowLeaf is the result of locating a key in an indexed tree.
type LeafOrLowLeaf struct {
	Preimage       witness.IndexedLeaf
	Index          uint64
	AlreadyPresent bool
}

// NewForest creates a forest without local modifications on top of the
// given committed snapshot.
func NewForest(ctx context.Context, db MerkleDB) (*Forest, error) {
	res := &Forest{db: db}
	for _, id := range AllTrees() {
		info, err := db.GetTreeInfo(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch info of %v: %w", id, err)
		}
		t, err := newEphemeralTree(id, info)
		if err != nil {
			return nil, err
		}
		res.trees[id] = t
	}
	return res, nil
}

// Fork creates an independent copy of this forest. Modifications of the
// copy are not visible in this forest and vice versa.
func (f *Forest) Fork() *Forest {
	res := &Forest{db: f.db}
	for i, t := range f.trees {
		res.trees[i] = t.fork()
	}
	return res
}

func (f *Forest) tree(id TreeID) (*ephemeralTree, error) {
	if id < 0 || id >= numTrees {
		return nil, fmt.Errorf("%w: %d", ErrUnknownTree, int(id))
	}
	return f.trees[id], nil
}

// GetRoot returns the current root of the given tree.
func (f *Forest) GetRoot(id TreeID) (common.Field, error) {
	t, err := f.tree(id)
	if err != nil {
		return common.Zero, err
	}
	return t.root(), nil
}

// GetSize returns the current number of leaves of the given tree.
func (f *Forest) GetSize(id TreeID) (uint64, error) {
	t, err := f.tree(id)
	if err != nil {
		return 0, err
	}
	return t.size, nil
}

func (f *Forest) GetTreeInfo(_ context.Context, id TreeID) (TreeInfo, error) {
	t, err := f.tree(id)
	if err != nil {
		return TreeInfo{}, err
	}
	return t.info(), nil
}

func (f *Forest) GetSiblingPath(ctx context.Context, id TreeID, index uint64) (witness.SiblingPath, error) {
	t, err := f.tree(id)
	if err != nil {
		return nil, err
	}
	return t.siblingPath(ctx, f.db, index)
}

// GetLeafOrLowLeafInfo locates the given key in an indexed tree. If the key
// is present, the leaf holding it is returned, otherwise its low leaf.
func (f *Forest) GetLeafOrLowLeafInfo(ctx context.Context, id TreeID, key common.Field) (LeafOrLowLeaf, error) {
	t, err := f.tree(id)
	if err != nil {
		return LeafOrLowLeaf{}, err
	}
	return t.lowLeaf(ctx, f.db, key)
}

func (f *Forest) GetPreviousValueIndex(ctx context.Context, id TreeID, key common.Field) (uint64, bool, error) {
	res, err := f.GetLeafOrLowLeafInfo(ctx, id, key)
	if err != nil {
		return 0, false, err
	}
	return res.Index, res.AlreadyPresent, nil
}

func (f *Forest) GetLeafPreimage(ctx context.Context, id TreeID, index uint64) (witness.IndexedLeaf, bool, error) {
	t, err := f.tree(id)
	if err != nil {
		return nil, false, err
	}
	return t.leafPreimage(ctx, f.db, index)
}

func (f *Forest) GetLeafValue(ctx context.Context, id TreeID, index uint64) (common.Field, bool, error) {
	t, err := f.tree(id)
	if err != nil {
		return common.Zero, false, err
	}
	return t.leafValue(ctx, f.db, index)
}

// AppendLeaf appends a value to an append-only tree and returns its index
// and insertion path.
func (f *Forest) AppendLeaf(ctx context.Context, id TreeID, value common.Field) (uint64, witness.SiblingPath, error) {
	t, err := f.tree(id)
	if err != nil {
		return 0, nil, err
	}
	return t.appendValue(ctx, f.db, value)
}

// AppendNoteHash appends a unique note hash to the note hash tree.
func (f *Forest) AppendNoteHash(ctx context.Context, noteHash common.Field) (uint64, witness.SiblingPath, error) {
	return f.AppendLeaf(ctx, NoteHashTree, noteHash)
}

// ReadNullifier produces the witness for the presence or absence of the
// given siloed nullifier.
func (f *Forest) ReadNullifier(ctx context.Context, nullifier common.Field) (bool, witness.NullifierReadHint, error) {
	t := f.trees[NullifierTree]
	low, err := t.lowLeaf(ctx, f.db, nullifier)
	if err != nil {
		return false, witness.NullifierReadHint{}, err
	}
	preimage, ok := low.Preimage.(witness.NullifierLeafPreimage)
	if !ok {
		return false, witness.NullifierReadHint{}, fmt.Errorf("%w: %T in %v", ErrInvalidLeaf, low.Preimage, NullifierTree)
	}
	path, err := t.siblingPath(ctx, f.db, low.Index)
	if err != nil {
		return false, witness.NullifierReadHint{}, err
	}
	return low.AlreadyPresent, witness.NullifierReadHint{
		LowLeafPreimage: preimage,
		LowLeafIndex:    low.Index,
		LowLeafPath:     path,
	}, nil
}

// AppendNullifier inserts a new siloed nullifier into the nullifier tree.
// Inserting a nullifier already present fails with ErrKeyAlreadyPresent.
func (f *Forest) AppendNullifier(ctx context.Context, nullifier common.Field) (witness.NullifierWriteHint, error) {
	t := f.trees[NullifierTree]
	res, err := t.insert(ctx, f.db, t.kind.newLeaf(nullifier, common.Zero))
	if err != nil {
		return witness.NullifierWriteHint{}, err
	}
	low, ok := res.lowLeaf.(witness.NullifierLeafPreimage)
	if !ok {
		return witness.NullifierWriteHint{}, fmt.Errorf("%w: %T in %v", ErrInvalidLeaf, res.lowLeaf, NullifierTree)
	}
	return witness.NullifierWriteHint{
		LowLeafPreimage: low,
		LowLeafIndex:    res.lowLeafIndex,
		LowLeafPath:     res.lowLeafPath,
		InsertionPath:   res.insertionPath,
	}, nil
}

// ReadPublicData produces the witness for the value of the given leaf slot.
// The returned flag reports whether the slot is present in the tree; absent
// slots hold zero.
func (f *Forest) ReadPublicData(ctx context.Context, leafSlot common.Field) (common.Field, bool, witness.PublicDataReadHint, error) {
	t := f.trees[PublicDataTree]
	low, err := t.lowLeaf(ctx, f.db, leafSlot)
	if err != nil {
		return common.Zero, false, witness.PublicDataReadHint{}, err
	}
	preimage, ok := low.Preimage.(witness.PublicDataLeafPreimage)
	if !ok {
		return common.Zero, false, witness.PublicDataReadHint{}, fmt.Errorf("%w: %T in %v", ErrInvalidLeaf, low.Preimage, PublicDataTree)
	}
	path, err := t.siblingPath(ctx, f.db, low.Index)
	if err != nil {
		return common.Zero, false, witness.PublicDataReadHint{}, err
	}
	hint := witness.PublicDataReadHint{
		LeafPreimage: preimage,
		LeafIndex:    low.Index,
		LeafPath:     path,
	}
	if !low.AlreadyPresent {
		return common.Zero, false, hint, nil
	}
	return preimage.Value, true, hint, nil
}

// WritePublicData sets the value of a leaf slot in the public data tree.
// Slots already present are updated in place, new slots are inserted.
func (f *Forest) WritePublicData(ctx context.Context, leafSlot, value common.Field) (witness.PublicDataWriteHint, error) {
	t := f.trees[PublicDataTree]
	low, err := t.lowLeaf(ctx, f.db, leafSlot)
	if err != nil {
		return witness.PublicDataWriteHint{}, err
	}
	if low.AlreadyPresent {
		old, ok := low.Preimage.(witness.PublicDataLeafPreimage)
		if !ok {
			return witness.PublicDataWriteHint{}, fmt.Errorf("%w: %T in %v", ErrInvalidLeaf, low.Preimage, PublicDataTree)
		}
		path, err := t.siblingPath(ctx, f.db, low.Index)
		if err != nil {
			return witness.PublicDataWriteHint{}, err
		}
		updated := old
		updated.Value = value
		t.setIndexedLeaf(low.Index, updated, path)
		return witness.PublicDataWriteHint{
			LowLeafPreimage: old,
			LowLeafIndex:    low.Index,
			LowLeafPath:     path,
			NewLeafPreimage: updated,
			Update:          true,
		}, nil
	}

	res, err := t.insert(ctx, f.db, t.kind.newLeaf(leafSlot, value))
	if err != nil {
		return witness.PublicDataWriteHint{}, err
	}
	lowLeaf, ok := res.lowLeaf.(witness.PublicDataLeafPreimage)
	if !ok {
		return witness.PublicDataWriteHint{}, fmt.Errorf("%w: %T in %v", ErrInvalidLeaf, res.lowLeaf, PublicDataTree)
	}
	newLeaf, ok := res.newLeaf.(witness.PublicDataLeafPreimage)
	if !ok {
		return witness.PublicDataWriteHint{}, fmt.Errorf("%w: %T in %v", ErrInvalidLeaf, res.newLeaf, PublicDataTree)
	}
	return witness.PublicDataWriteHint{
		LowLeafPreimage: lowLeaf,
		LowLeafIndex:    res.lowLeafIndex,
		LowLeafPath:     res.lowLeafPath,
		NewLeafPreimage: newLeaf,
		InsertionPath:   res.insertionPath,
	}, nil
}
