// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package state

import (
	"context"

	"github.com/Fantom-foundation/avmstate/common"
	"github.com/Fantom-foundation/avmstate/worldstate"
	"golang.org/x/exp/maps"
)

// NullifierSet tracks the siloed nullifiers emitted by a call frame and its
// ancestors. Nullifiers committed before the transaction are looked up in
// the world state.
type NullifierSet struct {
	db      worldstate.WorldStateDB
	parent  *NullifierSet
	pending map[common.Field]struct{}
}

func NewNullifierSet(db worldstate.WorldStateDB) *NullifierSet {
	return &NullifierSet{
		db:      db,
		pending: map[common.Field]struct{}{},
	}
}

// CheckExists reports whether the siloed nullifier exists. The pending flag
// is set if it was emitted by this frame or one of its ancestors rather than
// being committed in the world state.
func (s *NullifierSet) CheckExists(ctx context.Context, siloedNullifier common.Field) (exists, pending bool, err error) {
	for cur := s; cur != nil; cur = cur.parent {
		if _, found := cur.pending[siloedNullifier]; found {
			return true, true, nil
		}
	}
	_, found, err := s.db.GetNullifierIndex(ctx, siloedNullifier)
	if err != nil {
		return false, false, err
	}
	return found, false, nil
}

// Append records a new siloed nullifier. Nullifiers that already exist are
// rejected with a NullifierCollisionError.
func (s *NullifierSet) Append(ctx context.Context, siloedNullifier common.Field) error {
	exists, _, err := s.CheckExists(ctx, siloedNullifier)
	if err != nil {
		return err
	}
	if exists {
		return &NullifierCollisionError{Nullifier: siloedNullifier}
	}
	s.pending[siloedNullifier] = struct{}{}
	return nil
}

// Fork creates the nullifier set of a nested call.
func (s *NullifierSet) Fork() *NullifierSet {
	return &NullifierSet{
		db:      s.db,
		parent:  s,
		pending: map[common.Field]struct{}{},
	}
}

// AcceptAndMerge adopts all nullifiers of the given forked set.
func (s *NullifierSet) AcceptAndMerge(child *NullifierSet) {
	maps.Copy(s.pending, child.pending)
}

// Size returns the number of nullifiers emitted by this frame, excluding
// those of its ancestors.
func (s *NullifierSet) Size() int {
	return len(s.pending)
}
