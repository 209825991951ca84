// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-bookmarks/models"
)

// Sentinel errors matching the HTTP status of a failed API call. Every
// [*APIError] unwraps to one of them.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
	ErrUnexpectedStatus    = errors.New("unexpected status")

	// ErrNoRefreshToken is returned by Refresh and Logout when the adapter
	// holds no refresh token.
	ErrNoRefreshToken = errors.New("no refresh token")
)

// APIError is a failed API call decoded from the error envelope.
type APIError struct {
	StatusCode int
	Type       models.ErrorType
	Message    string
	Details    any

	sentinel error
}

func (e *APIError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("%s (%d): %s", e.sentinel, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s (%d %s): %s", e.sentinel, e.StatusCode, e.Type, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.sentinel
}
