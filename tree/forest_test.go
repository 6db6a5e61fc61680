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
	"math/rand"
	"testing"

	"github.com/Fantom-foundation/avmstate/common"
	"github.com/Fantom-foundation/avmstate/common/witness"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func smallHeights() Heights {
	return Heights{NoteHash: 4, Nullifier: 6, PublicData: 6, L1ToL2Message: 3}
}

func newTestForest(t *testing.T, heights Heights) *Forest {
	t.Helper()
	db, err := NewEmptyDB(heights)
	require.NoError(t, err)
	forest, err := NewForest(context.Background(), db)
	require.NoError(t, err)
	return forest
}

func root(t *testing.T, f *Forest, id TreeID) common.Field {
	t.Helper()
	res, err := f.GetRoot(id)
	require.NoError(t, err)
	return res
}

func TestEmptyDB_RootsMatchPathsOfAllLeaves(t *testing.T) {
	ctx := context.Background()
	db, err := NewEmptyDB(smallHeights())
	require.NoError(t, err)
	for _, id := range AllTrees() {
		info, err := db.GetTreeInfo(ctx, id)
		require.NoError(t, err)
		for index := uint64(0); index < 4; index++ {
			path, err := db.GetSiblingPath(ctx, id, index)
			require.NoError(t, err)
			leaf := common.Zero
			if id.IsIndexed() && index == 0 {
				preimage, found, err := db.GetLeafPreimage(ctx, id, 0)
				require.NoError(t, err)
				require.True(t, found)
				leaf = preimage.Hash()
			}
			require.Equal(t, info.Root, path.ComputeRoot(leaf, index), "tree %v, index %d", id, index)
		}
	}
}

func TestEmptyDB_RejectsInvalidHeights(t *testing.T) {
	_, err := NewEmptyDB(Heights{NoteHash: 0, Nullifier: 4, PublicData: 4, L1ToL2Message: 4})
	require.Error(t, err)
}

func TestForest_StartsWithRootsOfCommittedState(t *testing.T) {
	ctx := context.Background()
	db, err := NewEmptyDB(smallHeights())
	require.NoError(t, err)
	forest, err := NewForest(ctx, db)
	require.NoError(t, err)
	for _, id := range AllTrees() {
		info, err := db.GetTreeInfo(ctx, id)
		require.NoError(t, err)
		require.Equal(t, info.Root, root(t, forest, id))
		size, err := forest.GetSize(id)
		require.NoError(t, err)
		require.Equal(t, info.Size, size)
	}
}

func TestForest_AppendNoteHash_ProducesValidInsertionPaths(t *testing.T) {
	ctx := context.Background()
	forest := newTestForest(t, smallHeights())
	for i := uint64(0); i < 10; i++ {
		value := common.NewField(100 + i)
		index, path, err := forest.AppendNoteHash(ctx, value)
		require.NoError(t, err)
		require.Equal(t, i, index)
		require.True(t, path.Verify(root(t, forest, NoteHashTree), value, index))

		got, found, err := forest.GetLeafValue(ctx, NoteHashTree, index)
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, value, got)
	}
	_, found, err := forest.GetLeafValue(ctx, NoteHashTree, 10)
	require.NoError(t, err)
	require.False(t, found)
}

func TestForest_AppendLeaf_FailsWhenTreeIsFull(t *testing.T) {
	ctx := context.Background()
	forest := newTestForest(t, smallHeights())
	for i := 0; i < 8; i++ {
		_, _, err := forest.AppendLeaf(ctx, L1ToL2MessageTree, common.NewField(uint64(i+1)))
		require.NoError(t, err)
	}
	_, _, err := forest.AppendLeaf(ctx, L1ToL2MessageTree, common.NewField(9))
	require.ErrorIs(t, err, ErrTreeFull)
}

func TestForest_AppendLeaf_RejectsIndexedTrees(t *testing.T) {
	forest := newTestForest(t, smallHeights())
	_, _, err := forest.AppendLeaf(context.Background(), NullifierTree, common.NewField(1))
	require.ErrorIs(t, err, ErrNotAppendOnly)
}

func TestForest_AppendNullifier_ProducesValidWitnesses(t *testing.T) {
	ctx := context.Background()
	forest := newTestForest(t, smallHeights())
	nullifier := common.NewField(42)

	before := root(t, forest, NullifierTree)
	hint, err := forest.AppendNullifier(ctx, nullifier)
	require.NoError(t, err)
	after := root(t, forest, NullifierTree)
	require.NotEqual(t, before, after)

	// The low leaf witness proves absence against the root before the insertion.
	require.True(t, (witness.NullifierReadHint{
		LowLeafPreimage: hint.LowLeafPreimage,
		LowLeafIndex:    hint.LowLeafIndex,
		LowLeafPath:     hint.LowLeafPath,
	}).ProvesAbsence(before, nullifier))

	// The new leaf inherits the successor of the low leaf.
	newLeaf := witness.NullifierLeafPreimage{
		Nullifier:     nullifier,
		NextNullifier: hint.LowLeafPreimage.NextNullifier,
		NextIndex:     hint.LowLeafPreimage.NextIndex,
	}
	require.True(t, hint.InsertionPath.Verify(after, newLeaf.Hash(), 1))

	exists, read, err := forest.ReadNullifier(ctx, nullifier)
	require.NoError(t, err)
	require.True(t, exists)
	require.True(t, read.ProvesPresence(after, nullifier))
}

func TestForest_AppendNullifier_RejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	forest := newTestForest(t, smallHeights())
	_, err := forest.AppendNullifier(ctx, common.NewField(7))
	require.NoError(t, err)
	before := root(t, forest, NullifierTree)
	_, err = forest.AppendNullifier(ctx, common.NewField(7))
	require.ErrorIs(t, err, ErrKeyAlreadyPresent)
	require.Equal(t, before, root(t, forest, NullifierTree))
}

func TestForest_LowLeafSkipsAllAbsentKeys(t *testing.T) {
	ctx := context.Background()
	forest := newTestForest(t, smallHeights())
	r := rand.New(rand.NewSource(1))
	present := map[uint64]bool{}
	for _, v := range r.Perm(40)[:20] {
		key := uint64(2*v + 1)
		_, err := forest.AppendNullifier(ctx, common.NewField(key))
		require.NoError(t, err)
		present[key] = true
	}

	rootHash := root(t, forest, NullifierTree)
	for key := uint64(1); key < 90; key++ {
		exists, hint, err := forest.ReadNullifier(ctx, common.NewField(key))
		require.NoError(t, err)
		require.Equal(t, present[key], exists, "key %d", key)
		if exists {
			require.True(t, hint.ProvesPresence(rootHash, common.NewField(key)), "key %d", key)
		} else {
			require.True(t, hint.ProvesAbsence(rootHash, common.NewField(key)), "key %d", key)
		}
	}
}

func TestForest_WritePublicData_InsertsAndUpdates(t *testing.T) {
	ctx := context.Background()
	forest := newTestForest(t, smallHeights())
	slot := common.NewField(12)

	value, exists, read, err := forest.ReadPublicData(ctx, slot)
	require.NoError(t, err)
	require.False(t, exists)
	require.True(t, value.IsZero())
	require.True(t, read.ProvesValue(root(t, forest, PublicDataTree), slot, common.Zero))

	hint, err := forest.WritePublicData(ctx, slot, common.NewField(5))
	require.NoError(t, err)
	require.False(t, hint.Update)
	require.NotNil(t, hint.InsertionPath)
	require.Equal(t, common.NewField(5), hint.NewLeafPreimage.Value)
	require.True(t, hint.InsertionPath.Verify(root(t, forest, PublicDataTree), hint.NewLeafPreimage.Hash(), 1))

	before := root(t, forest, PublicDataTree)
	hint, err = forest.WritePublicData(ctx, slot, common.NewField(6))
	require.NoError(t, err)
	require.True(t, hint.Update)
	require.Nil(t, hint.InsertionPath)
	require.Equal(t, uint64(1), hint.LowLeafIndex)
	require.Equal(t, common.NewField(5), hint.LowLeafPreimage.Value)
	require.True(t, hint.LowLeafPath.Verify(before, hint.LowLeafPreimage.Hash(), 1))
	require.True(t, hint.LowLeafPath.Verify(root(t, forest, PublicDataTree), hint.NewLeafPreimage.Hash(), 1))

	value, exists, read, err = forest.ReadPublicData(ctx, slot)
	require.NoError(t, err)
	require.True(t, exists)
	require.Equal(t, common.NewField(6), value)
	require.True(t, read.ProvesValue(root(t, forest, PublicDataTree), slot, value))

	size, err := forest.GetSize(PublicDataTree)
	require.NoError(t, err)
	require.Equal(t, uint64(2), size)
}

func TestForest_Fork_IsolatesModifications(t *testing.T) {
	ctx := context.Background()
	parent := newTestForest(t, smallHeights())
	_, err := parent.AppendNullifier(ctx, common.NewField(10))
	require.NoError(t, err)
	parentRoot := root(t, parent, NullifierTree)

	child := parent.Fork()
	require.Equal(t, parentRoot, root(t, child, NullifierTree))
	_, err = child.AppendNullifier(ctx, common.NewField(20))
	require.NoError(t, err)
	require.Equal(t, parentRoot, root(t, parent, NullifierTree))

	exists, _, err := parent.ReadNullifier(ctx, common.NewField(20))
	require.NoError(t, err)
	require.False(t, exists)
	exists, _, err = child.ReadNullifier(ctx, common.NewField(10))
	require.NoError(t, err)
	require.True(t, exists)

	// Modifications of the parent do not leak into the child either.
	_, err = parent.AppendNullifier(ctx, common.NewField(30))
	require.NoError(t, err)
	exists, _, err = child.ReadNullifier(ctx, common.NewField(30))
	require.NoError(t, err)
	require.False(t, exists)
}

func TestForest_LayeredForestsAgreeWithFlatForest(t *testing.T) {
	ctx := context.Background()
	flat := newTestForest(t, smallHeights())
	base := newTestForest(t, smallHeights())

	first := []uint64{50, 10, 30}
	second := []uint64{20, 60, 40, 5}
	for _, v := range first {
		_, err := flat.AppendNullifier(ctx, common.NewField(v))
		require.NoError(t, err)
		_, err = base.AppendNullifier(ctx, common.NewField(v))
		require.NoError(t, err)
		_, _, err = flat.AppendNoteHash(ctx, common.NewField(v))
		require.NoError(t, err)
		_, _, err = base.AppendNoteHash(ctx, common.NewField(v))
		require.NoError(t, err)
	}

	layered, err := NewForest(ctx, base.Fork())
	require.NoError(t, err)
	for _, v := range second {
		want, err := flat.AppendNullifier(ctx, common.NewField(v))
		require.NoError(t, err)
		got, err := layered.AppendNullifier(ctx, common.NewField(v))
		require.NoError(t, err)
		require.Equal(t, want, got, "insertion of %d", v)

		wantIndex, wantPath, err := flat.AppendNoteHash(ctx, common.NewField(v))
		require.NoError(t, err)
		gotIndex, gotPath, err := layered.AppendNoteHash(ctx, common.NewField(v))
		require.NoError(t, err)
		require.Equal(t, wantIndex, gotIndex)
		require.Equal(t, wantPath, gotPath)
	}
	for _, id := range AllTrees() {
		require.Equal(t, root(t, flat, id), root(t, layered, id), "tree %v", id)
	}
}

func TestForest_CommittedPathIsOnlyFetchedWhenNeeded(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := NewMockMerkleDB(ctrl)
	ctx := context.Background()
	heights := smallHeights()

	empty, err := NewEmptyDB(heights)
	require.NoError(t, err)
	for _, id := range AllTrees() {
		info, err := empty.GetTreeInfo(ctx, id)
		require.NoError(t, err)
		db.EXPECT().GetTreeInfo(ctx, id).Return(info, nil)
	}
	forest, err := NewForest(ctx, db)
	require.NoError(t, err)

	// Appending to an empty append-only tree never touches committed data.
	for i := 0; i < 4; i++ {
		_, _, err := forest.AppendNoteHash(ctx, common.NewField(uint64(i+1)))
		require.NoError(t, err)
	}

	// Inserting into an indexed tree needs the committed low leaf, but no
	// committed path since all siblings are empty or local.
	zeroLeaf, _, err := empty.GetLeafPreimage(ctx, NullifierTree, 0)
	require.NoError(t, err)
	db.EXPECT().GetPreviousValueIndex(ctx, NullifierTree, common.NewField(9)).Return(uint64(0), false, nil)
	db.EXPECT().GetLeafPreimage(ctx, NullifierTree, uint64(0)).Return(zeroLeaf, true, nil)

	_, err = forest.AppendNullifier(ctx, common.NewField(9))
	require.NoError(t, err)
}

func TestForest_UnknownTreesAreRejected(t *testing.T) {
	forest := newTestForest(t, smallHeights())
	_, err := forest.GetRoot(TreeID(17))
	require.ErrorIs(t, err, ErrUnknownTree)
	_, err = forest.GetSiblingPath(context.Background(), TreeID(-1), 0)
	require.ErrorIs(t, err, ErrUnknownTree)
}

func TestForest_IndexedLookupsOnAppendOnlyTreesFail(t *testing.T) {
	forest := newTestForest(t, smallHeights())
	_, err := forest.GetLeafOrLowLeafInfo(context.Background(), NoteHashTree, common.NewField(1))
	require.ErrorIs(t, err, ErrNotIndexed)
}

func TestTreeID_String(t *testing.T) {
	require.Equal(t, "NullifierTree", NullifierTree.String())
	require.Equal(t, "TreeID(9)", TreeID(9).String())
	require.True(t, PublicDataTree.IsIndexed())
	require.False(t, L1ToL2MessageTree.IsIndexed())
}
