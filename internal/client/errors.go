// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "errors"

var (
	// ErrUnknownCommand is returned for a command name the client does not
	// implement.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrUsage is returned when a command receives the wrong arguments.
	ErrUsage = errors.New("usage")
)
