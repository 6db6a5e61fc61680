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

import "github.com/Fantom-foundation/avmstate/common"

// NullifierReadHint is a witness for the presence or absence of a nullifier
// in the nullifier tree. For present nullifiers the leaf holds the nullifier
// itself, for absent nullifiers it is the low leaf skipping over it. Outside
// of proof mode hints are empty.
type NullifierReadHint struct {
	LowLeafPreimage NullifierLeafPreimage
	LowLeafIndex    uint64
	LowLeafPath     SiblingPath
}

// IsEmpty reports whether this hint was produced outside of proof mode.
func (h NullifierReadHint) IsEmpty() bool {
	return h.LowLeafPath == nil && h.LowLeafIndex == 0 && h.LowLeafPreimage.IsEmpty()
}

// ProvesPresence checks that this hint proves that the given nullifier is
// part of the tree with the given root.
func (h NullifierReadHint) ProvesPresence(root, nullifier common.Field) bool {
	return h.LowLeafPreimage.Nullifier == nullifier &&
		h.LowLeafPath.Verify(root, h.LowLeafPreimage.Hash(), h.LowLeafIndex)
}

// ProvesAbsence checks that this hint proves that the given nullifier is not
// part of the tree with the given root.
func (h NullifierReadHint) ProvesAbsence(root, nullifier common.Field) bool {
	return SkipsKey(h.LowLeafPreimage, nullifier) &&
		h.LowLeafPath.Verify(root, h.LowLeafPreimage.Hash(), h.LowLeafIndex)
}

// NullifierWriteHint is the witness of a nullifier insertion. The low leaf
// and its path are captured before the low leaf is re-linked to the new
// leaf, the insertion path after.
type NullifierWriteHint struct {
	LowLeafPreimage NullifierLeafPreimage
	LowLeafIndex    uint64
	LowLeafPath     SiblingPath
	InsertionPath   SiblingPath
}

func (h NullifierWriteHint) IsEmpty() bool {
	return h.LowLeafPath == nil && h.InsertionPath == nil && h.LowLeafIndex == 0 && h.LowLeafPreimage.IsEmpty()
}

// PublicDataReadHint is a witness for the value of a storage slot. If the
// slot is present in the public data tree the leaf holds it, otherwise the
// leaf is the low leaf of the slot and the value is zero.
type PublicDataReadHint struct {
	LeafPreimage PublicDataLeafPreimage
	LeafIndex    uint64
	LeafPath     SiblingPath
}

func (h PublicDataReadHint) IsEmpty() bool {
	return h.LeafPath == nil && h.LeafIndex == 0 && h.LeafPreimage.IsEmpty()
}

// ProvesValue checks that this hint proves that the given leaf slot holds
// the given value in the public data tree with the given root.
func (h PublicDataReadHint) ProvesValue(root, leafSlot, value common.Field) bool {
	if !h.LeafPath.Verify(root, h.LeafPreimage.Hash(), h.LeafIndex) {
		return false
	}
	if h.LeafPreimage.Slot == leafSlot {
		return h.LeafPreimage.Value == value
	}
	return value.IsZero() && SkipsKey(h.LeafPreimage, leafSlot)
}

// PublicDataWriteHint is the witness of a public data tree write. For
// updates of existing slots the low leaf is the leaf of the slot itself and
// there is no insertion path.
type PublicDataWriteHint struct {
	LowLeafPreimage PublicDataLeafPreimage
	LowLeafIndex    uint64
	LowLeafPath     SiblingPath
	NewLeafPreimage PublicDataLeafPreimage
	Update          bool
	InsertionPath   SiblingPath
}

func (h PublicDataWriteHint) IsEmpty() bool {
	return h.LowLeafPath == nil && h.InsertionPath == nil && !h.Update &&
		h.LowLeafIndex == 0 && h.LowLeafPreimage.IsEmpty() && h.NewLeafPreimage.IsEmpty()
}

// ContractHints accompany every contract instance and bytecode retrieval of
// a non-protocol contract. They prove the (non-)existence of the deployment
// nullifier and the state of scheduled updates of the contract class.
type ContractHints struct {
	DeploymentNullifier NullifierReadHint
	UpdateMembership    PublicDataReadHint
	UpdatePreimage      []common.Field
}
