// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-bookmarks/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// TokenService issues and verifies access and refresh tokens and manages the
// refresh-token session store.
type TokenService interface {
	// IssueAccessToken signs a short-lived access token for user.
	// Returns an error wrapping [ErrTokenSigning] when signing fails.
	IssueAccessToken(ctx context.Context, user models.User) (models.AccessToken, error)

	// IssueRefreshToken generates and persists a random refresh token.
	IssueRefreshToken(ctx context.Context, user models.User) (models.RefreshToken, error)

	// VerifyAccessToken checks signature, expiry and the type claim.
	// A rejected token is reported as ok == false, never as an error.
	VerifyAccessToken(ctx context.Context, token string) (payload models.AccessTokenPayload, ok bool)

	// VerifyRefreshToken resolves a live refresh token to its owner.
	// Unknown or expired tokens yield ok == false; storage failures are
	// returned as errors.
	VerifyRefreshToken(ctx context.Context, token string) (userID int64, ok bool, err error)

	// RemoveRefreshToken deletes a refresh token. Removing an unknown token
	// is not an error.
	RemoveRefreshToken(ctx context.Context, token string) (bool, error)

	// RemoveUserRefreshTokens ends every session of a user.
	RemoveUserRefreshTokens(ctx context.Context, userID int64) (int64, error)

	// SweepExpiredRefreshTokens deletes every expired refresh token and
	// returns the number of removed rows.
	SweepExpiredRefreshTokens(ctx context.Context) (int64, error)
}

// AuthService implements account registration, credential checks and the
// session lifecycle on top of [TokenService].
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.User, models.TokenPair, error)
	Login(ctx context.Context, req models.LoginRequest) (models.User, models.TokenPair, error)
	RefreshAccessToken(ctx context.Context, req models.RefreshTokenRequest) (models.AccessToken, error)
	Logout(ctx context.Context, req models.RefreshTokenRequest) error

	// Authenticate resolves an access token to an active user.
	// Returns [ErrInvalidToken] or [ErrUserNotFound] for rejected requests.
	Authenticate(ctx context.Context, accessToken string) (models.User, error)

	GetProfile(ctx context.Context, userID int64) (models.User, error)
	UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (models.User, error)
	ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error
	Deactivate(ctx context.Context, userID int64) error
}

// PasswordHasher is the one-way password transform used for credentials.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) bool
}
