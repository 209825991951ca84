// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line client of the bookmarks auth
// API.
//
// Each invocation runs one command against the server through
// [adapter.ServerAdapter] and prints the result as JSON. Tokens issued by
// register and login are printed so they can be passed to later
// invocations.
package client
