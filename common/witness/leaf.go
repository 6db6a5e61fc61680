// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package witness

import (
	"fmt"

	"github.com/Fantom-foundation/avmstate/common"
)

// IndexedLeaf is a leaf of an indexed merkle tree. Leaves of an indexed tree
// form a linked list sorted by key: every leaf points to the leaf holding the
// next larger key. A next index of zero marks the end of the list.
type IndexedLeaf interface {
	// GetKey returns the key this leaf is sorted by.
	GetKey() common.Field

	// GetNextKey returns the key of the successor leaf, or zero if this leaf
	// holds the largest key of the tree.
	GetNextKey() common.Field

	// GetNextIndex returns the index of the successor leaf, or zero if this
	// leaf holds the largest key of the tree.
	GetNextIndex() uint64

	// Hash computes the value stored in the merkle tree for this leaf.
	Hash() common.Field

	// WithNext returns a copy of this leaf pointing to the given successor.
	WithNext(nextKey common.Field, nextIndex uint64) IndexedLeaf

	// IsEmpty is true for the zero leaf.
	IsEmpty() bool
}

// SkipsKey reports whether the given leaf is a valid low leaf of the given
// key, that is whether it proves that the key is not part of the tree. This
// is the case if the leaf's key is smaller than the key and the key is
// smaller than the next key, or the leaf is the last in the list.
func SkipsKey(leaf IndexedLeaf, key common.Field) bool {
	if leaf.GetKey().Cmp(key) >= 0 {
		return false
	}
	return leaf.GetNextIndex() == 0 || leaf.GetNextKey().Cmp(key) > 0
}

// NullifierLeafPreimage is a leaf of the nullifier tree.
type NullifierLeafPreimage struct {
	Nullifier     common.Field
	NextNullifier common.Field
	NextIndex     uint64
}

func (l NullifierLeafPreimage) GetKey() common.Field {
	return l.Nullifier
}

func (l NullifierLeafPreimage) GetNextKey() common.Field {
	return l.NextNullifier
}

func (l NullifierLeafPreimage) GetNextIndex() uint64 {
	return l.NextIndex
}

func (l NullifierLeafPreimage) Hash() common.Field {
	return common.HashFields(l.Nullifier, common.NewField(l.NextIndex), l.NextNullifier)
}

func (l NullifierLeafPreimage) WithNext(nextKey common.Field, nextIndex uint64) IndexedLeaf {
	l.NextNullifier = nextKey
	l.NextIndex = nextIndex
	return l
}

func (l NullifierLeafPreimage) IsEmpty() bool {
	return l == NullifierLeafPreimage{}
}

func (l NullifierLeafPreimage) String() string {
	return fmt.Sprintf("Nullifier{%v, next: %v@%d}", l.Nullifier, l.NextNullifier, l.NextIndex)
}

// PublicDataLeafPreimage is a leaf of the public data tree, mapping a leaf
// slot to its value.
type PublicDataLeafPreimage struct {
	Slot      common.Field
	Value     common.Field
	NextSlot  common.Field
	NextIndex uint64
}

func (l PublicDataLeafPreimage) GetKey() common.Field {
	return l.Slot
}

func (l PublicDataLeafPreimage) GetNextKey() common.Field {
	return l.NextSlot
}

func (l PublicDataLeafPreimage) GetNextIndex() uint64 {
	return l.NextIndex
}

func (l PublicDataLeafPreimage) Hash() common.Field {
	return common.HashFields(l.Slot, l.Value, common.NewField(l.NextIndex), l.NextSlot)
}

func (l PublicDataLeafPreimage) WithNext(nextKey common.Field, nextIndex uint64) IndexedLeaf {
	l.NextSlot = nextKey
	l.NextIndex = nextIndex
	return l
}

func (l PublicDataLeafPreimage) IsEmpty() bool {
	return l == PublicDataLeafPreimage{}
}

func (l PublicDataLeafPreimage) String() string {
	return fmt.Sprintf("PublicData{%v=%v, next: %v@%d}", l.Slot, l.Value, l.NextSlot, l.NextIndex)
}
