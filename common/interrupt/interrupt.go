// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.
package interrupt

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Fantom-foundation/avmstate/common"
	"go.uber.org/zap"
)

const ErrCanceled = common.ConstError("interrupted")

// IsCancelled returns true if the given context's CancelFunc has been called.
func IsCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// Check returns ErrCanceled if the given context is done. The progress
// description is attached to the error.
func Check(ctx context.Context, progress string) error {
	if IsCancelled(ctx) {
		return fmt.Errorf("%w after %s", ErrCanceled, progress)
	}
	return nil
}

// Register cancels the returned context when the process receives SIGINT or
// SIGTERM, allowing long-running tools to stop between two operations and to
// close their databases. The returned stop function releases the signal
// handler.
func Register(parent context.Context, logger *zap.Logger) (context.Context, context.CancelFunc) {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(parent)
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		defer signal.Stop(c)
		select {
		case sig := <-c:
			logger.Warn("closing, please wait until proper shutdown", zap.Stringer("signal", sig))
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}
