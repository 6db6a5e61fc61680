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
	"errors"
	"syscall"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

func TestRegister_SignalCancelsContext(t *testing.T) {
	ctx, stop := Register(context.Background(), zaptest.NewLogger(t))
	defer stop()
	if err := syscall.Kill(syscall.Getpid(), syscall.SIGINT); err != nil {
		t.Fatal("failed to create a SIGINT signal")
	}
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("context was not canceled by signal")
	}
}

func TestRegister_StopCancelsContext(t *testing.T) {
	ctx, stop := Register(context.Background(), nil)
	stop()
	if !IsCancelled(ctx) {
		t.Errorf("context should be canceled after stop")
	}
}

func TestCheck_ReportsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	if err := Check(ctx, "3 operations"); err != nil {
		t.Fatalf("context was not canceled but got %v", err)
	}
	cancel()
	if err := Check(ctx, "3 operations"); !errors.Is(err, ErrCanceled) {
		t.Errorf("expected cancellation error, got %v", err)
	}
}
