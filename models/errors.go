// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ErrorType classifies a failed request in the error envelope.
type ErrorType string

const (
	ValidationError     ErrorType = "VALIDATION_ERROR"
	AuthenticationError ErrorType = "AUTHENTICATION_ERROR"
	AuthorizationError  ErrorType = "AUTHORIZATION_ERROR"
	NotFoundError       ErrorType = "NOT_FOUND"
	ConflictError       ErrorType = "CONFLICT"
	InternalError       ErrorType = "INTERNAL_ERROR"
	BadRequestError     ErrorType = "BAD_REQUEST"
	TooManyRequests     ErrorType = "TOO_MANY_REQUESTS"
)
