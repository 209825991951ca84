// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-bookmarks/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository is the credential store: user accounts in the "users" table.
type UserRepository interface {
	// CreateUser inserts a new active user and returns the stored row.
	// Returns [ErrUsernameAlreadyExists] or [ErrEmailAlreadyExists] on a
	// unique violation.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByUsername returns the user with the given username regardless
	// of its active flag, or [ErrUserNotFound].
	FindUserByUsername(ctx context.Context, username string) (models.User, error)

	// FindActiveUserByID returns an active user by id, or [ErrUserNotFound].
	FindActiveUserByID(ctx context.Context, userID int64) (models.User, error)

	// UpdateUserEmail changes the e-mail of an active user and returns the
	// updated row.
	UpdateUserEmail(ctx context.Context, userID int64, email string, now time.Time) (models.User, error)

	// UpdateUserPassword replaces the password digest of an active user.
	UpdateUserPassword(ctx context.Context, userID int64, passwordHash string, now time.Time) error

	// DeactivateUser soft-deletes an active user by clearing is_active.
	DeactivateUser(ctx context.Context, userID int64, now time.Time) error
}

// RefreshTokenRepository is the session store: refresh tokens in the
// "refresh_tokens" table.
type RefreshTokenRepository interface {
	// SaveRefreshToken inserts a token row. A duplicate (user_id, token) pair
	// is silently ignored.
	SaveRefreshToken(ctx context.Context, token models.RefreshToken) error

	// FindValidRefreshToken returns the row holding token if it expires
	// strictly after now, or [ErrRefreshTokenNotFound].
	FindValidRefreshToken(ctx context.Context, token string, now time.Time) (models.RefreshToken, error)

	// DeleteRefreshToken removes every row holding token and reports whether
	// anything was removed.
	DeleteRefreshToken(ctx context.Context, token string) (bool, error)

	// DeleteUserRefreshTokens removes all tokens of a user and returns how
	// many rows were removed.
	DeleteUserRefreshTokens(ctx context.Context, userID int64) (int64, error)

	// DeleteExpiredRefreshTokens removes rows whose expiry is before now and
	// returns how many rows were removed.
	DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error)
}

// ErrorClassificator decides whether a failed database call may be retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
