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
	"errors"
	"fmt"

	"github.com/Fantom-foundation/avmstate/common"
	"github.com/Fantom-foundation/avmstate/trace"
)

const (
	// ErrNullifierCollision is reported when writing a nullifier that is
	// already present. The error is recoverable: the current call fails,
	// its enclosing frame continues.
	ErrNullifierCollision = common.ConstError("nullifier collision")

	// ErrInvariantViolation signals an inconsistency between the journal,
	// its trees and the world state, or a misuse of the fork protocol. It is
	// fatal: processing of the whole call tree must be aborted and the
	// affected frames must not be merged.
	ErrInvariantViolation = common.ConstError("state invariant violation")

	// ErrNoMerkleOperations is returned when querying trees of a journal
	// running without merkle operations.
	ErrNoMerkleOperations = common.ConstError("merkle operations are disabled")
)

// NullifierCollisionError is the error returned when writing a siloed
// nullifier that already exists in the cache or in the nullifier tree.
type NullifierCollisionError struct {
	Nullifier common.Field
}

func (e *NullifierCollisionError) Error() string {
	return fmt.Sprintf("%v: siloed nullifier %v already exists", ErrNullifierCollision, e.Nullifier)
}

func (e *NullifierCollisionError) Unwrap() error {
	return ErrNullifierCollision
}

func invariantViolation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariantViolation, fmt.Sprintf(format, args...))
}

// IsFatal reports whether the given error aborts the processing of the call
// tree.
func IsFatal(err error) bool {
	return errors.Is(err, ErrInvariantViolation)
}

// IsRecoverable reports whether the given error only fails the current call.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrNullifierCollision) || errors.Is(err, trace.ErrSideEffectLimitReached)
}
