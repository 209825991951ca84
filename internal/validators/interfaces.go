// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks typed request structs before they reach the
// service layer.
//
// A [Validator] receives a request value and, optionally, the names of the
// fields to check. Failures are reported as a [*ValidationError] listing each
// offending field with a client-facing message, so transports can render them
// without knowing the rules.
package validators

import "context"

// Validator validates the provided input and optionally restricts validation
// to specific named fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
