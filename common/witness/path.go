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
	"github.com/Fantom-foundation/avmstate/common"
	"golang.org/x/exp/slices"
)

// SiblingPath lists the siblings of the nodes on the path from a leaf to the
// root of a merkle tree, starting with the sibling of the leaf.
type SiblingPath []common.Field

// ComputeRoot folds the given leaf hash located at the given index with the
// siblings of this path into a root hash.
func (p SiblingPath) ComputeRoot(leafHash common.Field, index uint64) common.Field {
	cur := leafHash
	for level, sibling := range p {
		if (index>>level)&1 == 0 {
			cur = common.HashPair(cur, sibling)
		} else {
			cur = common.HashPair(sibling, cur)
		}
	}
	return cur
}

// Verify checks that the given leaf hash is located at the given index of a
// tree with the given root.
func (p SiblingPath) Verify(root, leafHash common.Field, index uint64) bool {
	return p.ComputeRoot(leafHash, index) == root
}

func (p SiblingPath) Clone() SiblingPath {
	return slices.Clone(p)
}
