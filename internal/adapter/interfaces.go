// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is a Go client for the bookmarks auth API.
//
// [ServerAdapter] keeps the session of one user: the access and refresh
// tokens returned by Register and Login are stored and attached to later
// calls. A protected call rejected with 401 is retried once after obtaining
// a new access token with the stored refresh token.
//
// Failed calls return [*APIError], which unwraps to a status sentinel such
// as [ErrConflict] or [ErrUnauthorized] for use with [errors.Is].
package adapter

import (
	"context"

	"github.com/MKhiriev/go-bookmarks/models"
)

// ServerAdapter defines communication with the bookmarks auth API.
type ServerAdapter interface {
	// SetTokens replaces the stored access and refresh tokens.
	SetTokens(accessToken, refreshToken string)

	// Tokens returns the stored access and refresh tokens.
	Tokens() (accessToken, refreshToken string)

	// Register creates an account and stores the issued token pair.
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error)

	// Login authenticates and stores the issued token pair.
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error)

	// Refresh exchanges the stored refresh token for a new access token.
	Refresh(ctx context.Context) (models.RefreshResponse, error)

	// Logout revokes the stored refresh token and forgets both tokens.
	Logout(ctx context.Context) error

	// Profile returns the authenticated user.
	Profile(ctx context.Context) (models.User, error)

	// UpdateEmail changes the e-mail of the authenticated user.
	UpdateEmail(ctx context.Context, email string) (models.User, error)

	// ChangePassword replaces the password. The server revokes every
	// session of the user, so the stored tokens are forgotten on success.
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error

	// Deactivate soft-deletes the authenticated account and forgets the
	// stored tokens.
	Deactivate(ctx context.Context) error

	// Health reports service liveness and whether the stored access token
	// is accepted.
	Health(ctx context.Context) (models.HealthResponse, error)
}
