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
	"fmt"

	"github.com/Fantom-foundation/avmstate/common"
	"github.com/Fantom-foundation/avmstate/common/witness"
)

// TreeID names one of the merkle trees making up the world state.
type TreeID int

const (
	NoteHashTree TreeID = iota
	NullifierTree
	PublicDataTree
	L1ToL2MessageTree
	numTrees
)

// AllTrees lists all trees of the world state.
func AllTrees() []TreeID {
	return []TreeID{NoteHashTree, NullifierTree, PublicDataTree, L1ToL2MessageTree}
}

func (id TreeID) String() string {
	switch id {
	case NoteHashTree:
		return "NoteHashTree"
	case NullifierTree:
		return "NullifierTree"
	case PublicDataTree:
		return "PublicDataTree"
	case L1ToL2MessageTree:
		return "L1ToL2MessageTree"
	}
	return fmt.Sprintf("TreeID(%d)", int(id))
}

// IsIndexed reports whether the leaves of the tree are indexed leaves
// forming a sorted linked list.
func (id TreeID) IsIndexed() bool {
	kind, err := id.kind()
	return err == nil && kind != appendOnlyLeaves
}

// leafKind is the kind of leaves stored in a tree.
type leafKind int

const (
	appendOnlyLeaves leafKind = iota
	nullifierLeaves
	publicDataLeaves
)

// kind resolves the leaf kind of a tree. This is the only place mapping
// trees to leaf kinds.
func (id TreeID) kind() (leafKind, error) {
	switch id {
	case NoteHashTree, L1ToL2MessageTree:
		return appendOnlyLeaves, nil
	case NullifierTree:
		return nullifierLeaves, nil
	case PublicDataTree:
		return publicDataLeaves, nil
	}
	return 0, fmt.Errorf("%w: %d", ErrUnknownTree, int(id))
}

// newLeaf creates an unlinked leaf of the given kind.
func (k leafKind) newLeaf(key, value common.Field) witness.IndexedLeaf {
	switch k {
	case nullifierLeaves:
		return witness.NullifierLeafPreimage{Nullifier: key}
	case publicDataLeaves:
		return witness.PublicDataLeafPreimage{Slot: key, Value: value}
	}
	panic(fmt.Sprintf("no indexed leaves for leaf kind %d", k))
}

// Heights defines the depth of each tree.
type Heights struct {
	NoteHash      int
	Nullifier     int
	PublicData    int
	L1ToL2Message int
}

// DefaultHeights returns the tree depths used by the network.
func DefaultHeights() Heights {
	return Heights{
		NoteHash:      40,
		Nullifier:     40,
		PublicData:    40,
		L1ToL2Message: 39,
	}
}

// Of returns the depth of the given tree.
func (h Heights) Of(id TreeID) int {
	switch id {
	case NoteHashTree:
		return h.NoteHash
	case NullifierTree:
		return h.Nullifier
	case PublicDataTree:
		return h.PublicData
	case L1ToL2MessageTree:
		return h.L1ToL2Message
	}
	return 0
}

func (h Heights) check() error {
	for _, id := range AllTrees() {
		if d := h.Of(id); d < 1 || d > 63 {
			return fmt.Errorf("invalid depth %d of %v", d, id)
		}
	}
	return nil
}

// zeroHashes computes the hashes of empty subtrees for each level up to the
// given depth.
func zeroHashes(depth int) []common.Field {
	res := make([]common.Field, depth+1)
	for level := 1; level <= depth; level++ {
		res[level] = common.HashPair(res[level-1], res[level-1])
	}
	return res
}
