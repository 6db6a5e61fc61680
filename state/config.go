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

import "go.uber.org/zap"

// Config configures a StateManager and all frames forked from it.
type Config struct {
	// DoMerkleOperations enables proof mode: trees are maintained for all
	// writes and every traced side effect carries its membership witness.
	// Without it only the caches are maintained and hints are empty.
	DoMerkleOperations bool

	// Logger receives debug records of all state accesses. If nil, nothing
	// is logged.
	Logger *zap.Logger
}

func DefaultConfig() Config {
	return Config{
		DoMerkleOperations: false,
		Logger:             zap.NewNop(),
	}
}
