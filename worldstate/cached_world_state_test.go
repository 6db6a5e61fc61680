// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package worldstate

import (
	"context"
	"errors"
	"testing"

	"github.com/Fantom-foundation/avmstate/common"
	"go.uber.org/mock/gomock"
)

func TestCachedWorldState_InstancesAreFetchedOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := NewMockWorldStateDB(ctrl)
	ctx := context.Background()
	addr := common.NewAddress(100)
	instance := &common.ContractInstance{Address: addr, CurrentClassID: common.NewField(7)}

	db.EXPECT().GetContractInstance(ctx, addr).Return(instance, nil)

	cached, err := NewCachedWorldState(db, DefaultCacheConfig())
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	for i := 0; i < 3; i++ {
		got, err := cached.GetContractInstance(ctx, addr)
		if err != nil {
			t.Fatalf("failed to fetch instance: %v", err)
		}
		if *got != *instance {
			t.Errorf("unexpected instance, wanted %v, got %v", instance, got)
		}
	}
}

func TestCachedWorldState_MissingInstancesAreCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := NewMockWorldStateDB(ctrl)
	ctx := context.Background()
	addr := common.NewAddress(100)

	db.EXPECT().GetContractInstance(ctx, addr).Return(nil, nil)

	cached, err := NewCachedWorldState(db, DefaultCacheConfig())
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	for i := 0; i < 2; i++ {
		got, err := cached.GetContractInstance(ctx, addr)
		if err != nil || got != nil {
			t.Errorf("unexpected result %v, %v", got, err)
		}
	}
}

func TestCachedWorldState_ReturnedValuesAreCopies(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := NewMockWorldStateDB(ctrl)
	ctx := context.Background()
	classID := common.NewField(3)
	class := &common.ContractClass{ArtifactHash: common.NewField(1)}

	db.EXPECT().GetContractClass(ctx, classID).Return(class, nil)

	cached, err := NewCachedWorldState(db, DefaultCacheConfig())
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	first, _ := cached.GetContractClass(ctx, classID)
	first.ArtifactHash = common.NewField(99)
	second, _ := cached.GetContractClass(ctx, classID)
	if second.ArtifactHash != common.NewField(1) {
		t.Errorf("cached class was modified through returned value")
	}
}

func TestCachedWorldState_ErrorsAreNotCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := NewMockWorldStateDB(ctrl)
	ctx := context.Background()
	classID := common.NewField(3)
	injected := errors.New("injected")

	gomock.InOrder(
		db.EXPECT().GetBytecodeCommitment(ctx, classID).Return(common.Zero, false, injected),
		db.EXPECT().GetBytecodeCommitment(ctx, classID).Return(common.NewField(5), true, nil),
	)

	cached, err := NewCachedWorldState(db, DefaultCacheConfig())
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	if _, _, err := cached.GetBytecodeCommitment(ctx, classID); !errors.Is(err, injected) {
		t.Errorf("expected injected error, got %v", err)
	}
	for i := 0; i < 2; i++ {
		got, found, err := cached.GetBytecodeCommitment(ctx, classID)
		if err != nil || !found || got != common.NewField(5) {
			t.Errorf("unexpected result %v, %t, %v", got, found, err)
		}
	}
}

func TestCachedWorldState_OtherLookupsAreForwarded(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := NewMockWorldStateDB(ctrl)
	ctx := context.Background()
	addr := common.NewAddress(1)

	db.EXPECT().StorageRead(ctx, addr, common.NewField(2)).Return(common.NewField(3), nil).Times(2)

	cached, err := NewCachedWorldState(db, DefaultCacheConfig())
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	for i := 0; i < 2; i++ {
		if got, err := cached.StorageRead(ctx, addr, common.NewField(2)); err != nil || got != common.NewField(3) {
			t.Errorf("unexpected result %v, %v", got, err)
		}
	}
}

func TestCachedWorldState_InvalidSizesAreRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	config := DefaultCacheConfig()
	config.ClassCacheSize = 0
	if _, err := NewCachedWorldState(NewMockWorldStateDB(ctrl), config); err == nil {
		t.Errorf("zero cache size should be rejected")
	}
}

func TestCachedWorldState_DebugFunctionNamesAreForwardedIfKnown(t *testing.T) {
	ctrl := gomock.NewController(t)
	ctx := context.Background()
	addr := common.NewAddress(1)

	plain, err := NewCachedWorldState(NewMockWorldStateDB(ctrl), DefaultCacheConfig())
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	if _, found, err := plain.GetDebugFunctionName(ctx, addr, common.NewField(2)); found || err != nil {
		t.Errorf("world state without names should not report any, got %t, %v", found, err)
	}

	names := NewMockDebugFunctionNames(ctrl)
	names.EXPECT().GetDebugFunctionName(ctx, addr, common.NewField(2)).Return("mint", true, nil)
	db := struct {
		*MockWorldStateDB
		*MockDebugFunctionNames
	}{NewMockWorldStateDB(ctrl), names}

	cached, err := NewCachedWorldState(db, DefaultCacheConfig())
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	if name, found, err := cached.GetDebugFunctionName(ctx, addr, common.NewField(2)); !found || err != nil || name != "mint" {
		t.Errorf("unexpected result %q, %t, %v", name, found, err)
	}
}
