// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	// ErrInvalidCredentials is returned by Login for an unknown username, an
	// inactive account or a wrong password alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWrongPassword      = errors.New("wrong password")

	ErrInvalidToken        = errors.New("invalid token")
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	ErrUserNotFound        = errors.New("user not found")

	ErrTokenSigning    = errors.New("error signing access token")
	ErrTokenGeneration = errors.New("error generating refresh token")
	ErrPasswordHashing = errors.New("error hashing password")
)
