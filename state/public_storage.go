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

type slotID struct {
	contract common.Address
	slot     common.Field
}

// PublicStorage caches the storage writes of a call frame. Reads are served
// by the frame's own writes, then by the writes of its ancestors and finally
// by the world state.
type PublicStorage struct {
	db     worldstate.WorldStateDB
	parent *PublicStorage
	writes map[slotID]common.Field
}

func NewPublicStorage(db worldstate.WorldStateDB) *PublicStorage {
	return &PublicStorage{
		db:     db,
		writes: map[slotID]common.Field{},
	}
}

// Read returns the current value of a storage slot. The cached flag is set if
// the value was written by this frame or one of its ancestors.
func (s *PublicStorage) Read(ctx context.Context, contract common.Address, slot common.Field) (value common.Field, cached bool, err error) {
	id := slotID{contract, slot}
	for cur := s; cur != nil; cur = cur.parent {
		if value, found := cur.writes[id]; found {
			return value, true, nil
		}
	}
	value, err = s.db.StorageRead(ctx, contract, slot)
	if err != nil {
		return common.Zero, false, err
	}
	return value, false, nil
}

func (s *PublicStorage) Write(contract common.Address, slot, value common.Field) {
	s.writes[slotID{contract, slot}] = value
}

// Fork creates the storage cache of a nested call.
func (s *PublicStorage) Fork() *PublicStorage {
	return &PublicStorage{
		db:     s.db,
		parent: s,
		writes: map[slotID]common.Field{},
	}
}

// AcceptAndMerge adopts all writes of the given forked cache.
func (s *PublicStorage) AcceptAndMerge(child *PublicStorage) {
	maps.Copy(s.writes, child.writes)
}
