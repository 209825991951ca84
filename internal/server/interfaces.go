// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "context"

// Server defines the lifecycle contract of the application server.
//
// RunServer blocks until a termination signal arrives or the listener fails,
// then shuts everything down. Shutdown may also be called directly and is
// safe to call more than once.
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer()

	// Shutdown gracefully stops the server and runs the shutdown hooks.
	Shutdown()
}

// ShutdownHook releases a resource once the listener has stopped. Hooks run
// in registration order and share the shutdown deadline carried by ctx.
type ShutdownHook func(ctx context.Context) error
