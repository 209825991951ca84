// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-bookmarks/internal/logger"
	"github.com/MKhiriev/go-bookmarks/models"
)

// refreshTokenRepository is the PostgreSQL-backed implementation of
// [RefreshTokenRepository] over the "refresh_tokens" table.
type refreshTokenRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewRefreshTokenRepository constructs a [RefreshTokenRepository] backed by
// the provided database connection and logger.
func NewRefreshTokenRepository(db *DB, logger *logger.Logger) RefreshTokenRepository {
	logger.Debug().Msg("creating refresh token repository")
	return &refreshTokenRepository{
		db:     db,
		logger: logger,
	}
}

// SaveRefreshToken inserts token. The insert is idempotent thanks to
// ON CONFLICT (user_id, token) DO NOTHING, so it is safe to retry.
func (r *refreshTokenRepository) SaveRefreshToken(ctx context.Context, token models.RefreshToken) error {
	log := logger.FromContext(ctx)

	query, args, err := buildSaveRefreshTokenQuery(token)
	if err != nil {
		log.Err(err).Str("func", "*refreshTokenRepository.SaveRefreshToken").Msg("failed to build query")
		return err
	}

	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		_, execErr := r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).
			Str("func", "*refreshTokenRepository.SaveRefreshToken").
			Int64("user_id", token.UserID).
			Msg("failed to save refresh token")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// FindValidRefreshToken looks up an unexpired row holding token.
func (r *refreshTokenRepository) FindValidRefreshToken(ctx context.Context, token string, now time.Time) (models.RefreshToken, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindValidRefreshTokenQuery(token, now)
	if err != nil {
		return models.RefreshToken{}, err
	}

	var found models.RefreshToken
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		return r.db.QueryRowContext(ctx, query, args...).Scan(
			&found.ID,
			&found.UserID,
			&found.Token,
			&found.ExpiresAt,
			&found.CreatedAt,
		)
	})

	switch {
	case err == nil:
		return found, nil
	case errors.Is(err, sql.ErrNoRows):
		return models.RefreshToken{}, ErrRefreshTokenNotFound
	default:
		log.Err(err).Str("func", "*refreshTokenRepository.FindValidRefreshToken").Msg("failed to query refresh token")
		return models.RefreshToken{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
}

// DeleteRefreshToken removes token. Deleting an unknown token is not an
// error; the boolean reports whether a row existed.
func (r *refreshTokenRepository) DeleteRefreshToken(ctx context.Context, token string) (bool, error) {
	query, args, err := buildDeleteRefreshTokenQuery(token)
	if err != nil {
		return false, err
	}

	affected, err := r.deleteRows(ctx, "*refreshTokenRepository.DeleteRefreshToken", query, args)
	return affected > 0, err
}

// DeleteUserRefreshTokens ends every session of userID.
func (r *refreshTokenRepository) DeleteUserRefreshTokens(ctx context.Context, userID int64) (int64, error) {
	query, args, err := buildDeleteUserRefreshTokensQuery(userID)
	if err != nil {
		return 0, err
	}

	return r.deleteRows(ctx, "*refreshTokenRepository.DeleteUserRefreshTokens", query, args)
}

// DeleteExpiredRefreshTokens removes rows with expires_at < now.
func (r *refreshTokenRepository) DeleteExpiredRefreshTokens(ctx context.Context, now time.Time) (int64, error) {
	query, args, err := buildDeleteExpiredRefreshTokensQuery(now)
	if err != nil {
		return 0, err
	}

	return r.deleteRows(ctx, "*refreshTokenRepository.DeleteExpiredRefreshTokens", query, args)
}

func (r *refreshTokenRepository) deleteRows(ctx context.Context, funcName, query string, args []any) (int64, error) {
	log := logger.FromContext(ctx)

	var affected int64
	err := r.db.withRetry(ctx, func(ctx context.Context) error {
		result, execErr := r.db.ExecContext(ctx, query, args...)
		if execErr != nil {
			return execErr
		}
		affected, execErr = result.RowsAffected()
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to delete refresh tokens")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected, nil
}
