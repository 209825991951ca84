// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that allows
// starting and stopping multiple workers in a unified way.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Start launches the worker's loop and returns immediately. The loop ends
// when ctx is cancelled or Stop is called. Stop blocks until the loop has
// exited and is a no-op for a worker that is not running.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}

// RefreshTokenSweeper deletes expired refresh tokens and reports how many
// were removed.
type RefreshTokenSweeper interface {
	SweepExpiredRefreshTokens(ctx context.Context) (int64, error)
}
