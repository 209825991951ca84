// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header does not carry a non-empty "Bearer " credential.
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrTokenUserNotFound is returned when a valid access token belongs to
	// a user that no longer exists or is inactive.
	ErrTokenUserNotFound = errors.New("access token owner not found")

	// ErrNoAuthenticatedUser is returned by protected handlers reached
	// without the auth middleware having stored a user in the context.
	ErrNoAuthenticatedUser = errors.New("no authenticated user in request context")

	// ErrTooManyRequests is returned when a client exceeds the login rate.
	ErrTooManyRequests = errors.New("too many requests")

	// ErrRouteNotFound is returned for unknown paths and unsupported methods.
	ErrRouteNotFound = errors.New("route not found")

	// ErrInvalidGzipBody is returned for request bodies that claim gzip
	// encoding but cannot be decompressed.
	ErrInvalidGzipBody = errors.New("invalid gzip request body")
)
