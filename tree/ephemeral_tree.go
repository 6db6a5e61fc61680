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
	"github.com/google/btree"
)

const btreeDegree = 16

type nodeEntry struct {
	level int
	index uint64
	hash  common.Field
}

func lessNode(a, b nodeEntry) bool {
	if a.level != b.level {
		return a.level < b.level
	}
	return a.index < b.index
}

type leafEntry struct {
	index uint64
	leaf  witness.IndexedLeaf // set for indexed trees
	value common.Field        // set for append-only trees
}

func lessLeaf(a, b leafEntry) bool {
	return a.index < b.index
}

type keyEntry struct {
	key   common.Field
	index uint64
}

func lessKey(a, b keyEntry) bool {
	return a.key.Cmp(b.key) < 0
}

// ephemeralTree is a single tree with local modifications layered on top of
// a committed snapshot provided by a MerkleDB. Only modified nodes, leaves
// and keys are stored locally. All local state is kept in b-trees which are
// cloned lazily on fork.
type ephemeralTree struct {
	id        TreeID
	kind      leafKind
	depth     int
	zeros     []common.Field
	committed TreeInfo
	size      uint64

	nodes  *btree.BTreeG[nodeEntry]
	leaves *btree.BTreeG[leafEntry]
	keys   *btree.BTreeG[keyEntry] // keys of leaves appended locally
}

func newEphemeralTree(id TreeID, info TreeInfo) (*ephemeralTree, error) {
	kind, err := id.kind()
	if err != nil {
		return nil, err
	}
	if info.Depth < 1 || info.Depth > 63 {
		return nil, fmt.Errorf("invalid depth %d of %v", info.Depth, id)
	}
	return &ephemeralTree{
		id:        id,
		kind:      kind,
		depth:     info.Depth,
		zeros:     zeroHashes(info.Depth),
		committed: info,
		size:      info.Size,
		nodes:     btree.NewG(btreeDegree, lessNode),
		leaves:    btree.NewG(btreeDegree, lessLeaf),
		keys:      btree.NewG(btreeDegree, lessKey),
	}, nil
}

func (t *ephemeralTree) fork() *ephemeralTree {
	res := *t
	res.nodes = t.nodes.Clone()
	res.leaves = t.leaves.Clone()
	res.keys = t.keys.Clone()
	return &res
}

func (t *ephemeralTree) capacity() uint64 {
	return uint64(1) << t.depth
}

func (t *ephemeralTree) root() common.Field {
	if e, found := t.nodes.Get(nodeEntry{level: t.depth}); found {
		return e.hash
	}
	return t.committed.Root
}

func (t *ephemeralTree) info() TreeInfo {
	return TreeInfo{Root: t.root(), Size: t.size, Depth: t.depth}
}

// siblingPath assembles the sibling path of a leaf from locally modified
// nodes, hashes of empty subtrees, and the committed snapshot. The committed
// path is only fetched if needed.
func (t *ephemeralTree) siblingPath(ctx context.Context, db MerkleDB, index uint64) (witness.SiblingPath, error) {
	if index >= t.capacity() {
		return nil, fmt.Errorf("%w: %d in %v", ErrIndexOutOfRange, index, t.id)
	}
	res := make(witness.SiblingPath, t.depth)
	var committed witness.SiblingPath
	for level := 0; level < t.depth; level++ {
		sibling := (index >> level) ^ 1
		if e, found := t.nodes.Get(nodeEntry{level: level, index: sibling}); found {
			res[level] = e.hash
			continue
		}
		if sibling<<level >= t.committed.Size {
			res[level] = t.zeros[level]
			continue
		}
		if committed == nil {
			path, err := db.GetSiblingPath(ctx, t.id, index)
			if err != nil {
				return nil, err
			}
			if len(path) != t.depth {
				return nil, fmt.Errorf("invalid sibling path length %d for %v of depth %d", len(path), t.id, t.depth)
			}
			committed = path
		}
		res[level] = committed[level]
	}
	return res, nil
}

// writeLeafHash stores the given leaf hash and recomputes all nodes on the
// path to the root. The given path must be the current sibling path of the
// leaf.
func (t *ephemeralTree) writeLeafHash(index uint64, hash common.Field, path witness.SiblingPath) {
	cur := hash
	t.nodes.ReplaceOrInsert(nodeEntry{level: 0, index: index, hash: cur})
	for level := 0; level < t.depth; level++ {
		if (index>>level)&1 == 0 {
			cur = common.HashPair(cur, path[level])
		} else {
			cur = common.HashPair(path[level], cur)
		}
		t.nodes.ReplaceOrInsert(nodeEntry{level: level + 1, index: index >> (level + 1), hash: cur})
	}
}

func (t *ephemeralTree) setIndexedLeaf(index uint64, leaf witness.IndexedLeaf, path witness.SiblingPath) {
	t.leaves.ReplaceOrInsert(leafEntry{index: index, leaf: leaf})
	t.writeLeafHash(index, leaf.Hash(), path)
}

func (t *ephemeralTree) leafPreimage(ctx context.Context, db MerkleDB, index uint64) (witness.IndexedLeaf, bool, error) {
	if t.kind == appendOnlyLeaves {
		return nil, false, fmt.Errorf("%w: %v", ErrNotIndexed, t.id)
	}
	if e, found := t.leaves.Get(leafEntry{index: index}); found {
		return e.leaf, true, nil
	}
	if index >= t.committed.Size {
		return nil, false, nil
	}
	return db.GetLeafPreimage(ctx, t.id, index)
}

func (t *ephemeralTree) leafValue(ctx context.Context, db MerkleDB, index uint64) (common.Field, bool, error) {
	if t.kind != appendOnlyLeaves {
		return common.Zero, false, fmt.Errorf("%w: %v", ErrNotAppendOnly, t.id)
	}
	if e, found := t.leaves.Get(leafEntry{index: index}); found {
		return e.value, true, nil
	}
	if index >= t.committed.Size {
		return common.Zero, false, nil
	}
	return db.GetLeafValue(ctx, t.id, index)
}

// lowLeaf locates the leaf holding the given key or, if absent, the leaf
// with the largest key smaller than the given key. Candidates are the low
// leaf of the committed snapshot and the closest locally appended key; the
// one with the larger key wins.
func (t *ephemeralTree) lowLeaf(ctx context.Context, db MerkleDB, key common.Field) (LeafOrLowLeaf, error) {
	if t.kind == appendOnlyLeaves {
		return LeafOrLowLeaf{}, fmt.Errorf("%w: %v", ErrNotIndexed, t.id)
	}
	index, _, err := db.GetPreviousValueIndex(ctx, t.id, key)
	if err != nil {
		return LeafOrLowLeaf{}, err
	}
	var local keyEntry
	foundLocal := false
	t.keys.DescendLessOrEqual(keyEntry{key: key}, func(e keyEntry) bool {
		local, foundLocal = e, true
		return false
	})

	leaf, found, err := t.leafPreimage(ctx, db, index)
	if err != nil {
		return LeafOrLowLeaf{}, err
	}
	if !found {
		return LeafOrLowLeaf{}, fmt.Errorf("missing low leaf %d of %v in %v", index, key, t.id)
	}
	if foundLocal && local.key.Cmp(leaf.GetKey()) > 0 {
		index = local.index
		if leaf, found, err = t.leafPreimage(ctx, db, index); err != nil {
			return LeafOrLowLeaf{}, err
		} else if !found {
			return LeafOrLowLeaf{}, fmt.Errorf("missing local leaf %d of %v", index, t.id)
		}
	}
	return LeafOrLowLeaf{
		Preimage:       leaf,
		Index:          index,
		AlreadyPresent: leaf.GetKey() == key,
	}, nil
}

// appendValue appends a value to an append-only tree.
func (t *ephemeralTree) appendValue(ctx context.Context, db MerkleDB, value common.Field) (uint64, witness.SiblingPath, error) {
	if t.kind != appendOnlyLeaves {
		return 0, nil, fmt.Errorf("%w: %v", ErrNotAppendOnly, t.id)
	}
	if t.size >= t.capacity() {
		return 0, nil, fmt.Errorf("%w: %v", ErrTreeFull, t.id)
	}
	index := t.size
	path, err := t.siblingPath(ctx, db, index)
	if err != nil {
		return 0, nil, err
	}
	t.leaves.ReplaceOrInsert(leafEntry{index: index, value: value})
	t.writeLeafHash(index, value, path)
	t.size++
	return index, path, nil
}

// insertion describes the effect of inserting a new key into an indexed
// tree.
type insertion struct {
	lowLeaf       witness.IndexedLeaf // before re-linking
	lowLeafIndex  uint64
	lowLeafPath   witness.SiblingPath
	newLeaf       witness.IndexedLeaf
	newLeafIndex  uint64
	insertionPath witness.SiblingPath
}

// insert adds a new leaf to an indexed tree. The low leaf of the new key is
// re-linked to point to the new leaf, which inherits the low leaf's former
// successor.
func (t *ephemeralTree) insert(ctx context.Context, db MerkleDB, leaf witness.IndexedLeaf) (insertion, error) {
	key := leaf.GetKey()
	low, err := t.lowLeaf(ctx, db, key)
	if err != nil {
		return insertion{}, err
	}
	if low.AlreadyPresent {
		return insertion{}, fmt.Errorf("%w: %v in %v", ErrKeyAlreadyPresent, key, t.id)
	}
	if t.size >= t.capacity() {
		return insertion{}, fmt.Errorf("%w: %v", ErrTreeFull, t.id)
	}
	lowPath, err := t.siblingPath(ctx, db, low.Index)
	if err != nil {
		return insertion{}, err
	}
	newIndex := t.size
	newLeaf := leaf.WithNext(low.Preimage.GetNextKey(), low.Preimage.GetNextIndex())
	t.setIndexedLeaf(low.Index, low.Preimage.WithNext(key, newIndex), lowPath)

	insertionPath, err := t.siblingPath(ctx, db, newIndex)
	if err != nil {
		return insertion{}, err
	}
	t.setIndexedLeaf(newIndex, newLeaf, insertionPath)
	t.keys.ReplaceOrInsert(keyEntry{key: key, index: newIndex})
	t.size++

	return insertion{
		lowLeaf:       low.Preimage,
		lowLeafIndex:  low.Index,
		lowLeafPath:   lowPath,
		newLeaf:       newLeaf,
		newLeafIndex:  newIndex,
		insertionPath: insertionPath,
	}, nil
}
