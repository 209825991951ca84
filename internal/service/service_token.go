// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-bookmarks/internal/config"
	"github.com/MKhiriev/go-bookmarks/internal/logger"
	"github.com/MKhiriev/go-bookmarks/internal/store"
	"github.com/MKhiriev/go-bookmarks/internal/utils"
	"github.com/MKhiriev/go-bookmarks/models"
)

// tokenService is the concrete implementation of TokenService.
// Access tokens are stateless HS256 JWTs; refresh tokens are random strings
// persisted through a RefreshTokenRepository.
type tokenService struct {
	refreshTokenRepository store.RefreshTokenRepository

	// tokenSignKey is the HMAC secret used to sign and verify access tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued access token.
	// Tokens whose issuer does not match this value are rejected.
	tokenIssuer string

	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration

	// now is the clock used for issuance and expiry checks.
	now func() time.Time

	logger *logger.Logger
}

// NewTokenService constructs a TokenService from the application config.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewTokenService(refreshTokenRepository store.RefreshTokenRepository, cfg config.App, logger *logger.Logger) TokenService {
	return &tokenService{
		refreshTokenRepository: refreshTokenRepository,
		tokenSignKey:           cfg.TokenSignKey,
		tokenIssuer:            cfg.TokenIssuer,
		accessTokenTTL:         cfg.AccessTokenTTL,
		refreshTokenTTL:        cfg.RefreshTokenTTL,
		now:                    time.Now,
		logger:                 logger,
	}
}

// IssueAccessToken signs an access token carrying the user's id, username
// and e-mail with type "access".
func (t *tokenService) IssueAccessToken(ctx context.Context, user models.User) (models.AccessToken, error) {
	token, err := utils.GenerateAccessToken(user, t.tokenIssuer, t.accessTokenTTL, t.tokenSignKey, t.now())
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", user.UserID).Msg("access token signing failed")
		return models.AccessToken{}, fmt.Errorf("%w: %w", ErrTokenSigning, err)
	}

	return token, nil
}

// IssueRefreshToken generates a random token, stores it with an absolute
// expiry and returns the stored value.
func (t *tokenService) IssueRefreshToken(ctx context.Context, user models.User) (models.RefreshToken, error) {
	log := logger.FromContext(ctx)

	value, err := utils.GenerateRandomToken(utils.RefreshTokenBytes)
	if err != nil {
		log.Err(err).Msg("refresh token generation failed")
		return models.RefreshToken{}, fmt.Errorf("%w: %w", ErrTokenGeneration, err)
	}

	now := t.now()
	token := models.RefreshToken{
		UserID:    user.UserID,
		Token:     value,
		ExpiresAt: now.Add(t.refreshTokenTTL),
		CreatedAt: now,
	}

	if err = t.refreshTokenRepository.SaveRefreshToken(ctx, token); err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("refresh token saving failed")
		return models.RefreshToken{}, fmt.Errorf("refresh token saving failed: %w", err)
	}

	return token, nil
}

// VerifyAccessToken parses token and reports whether it is a valid,
// unexpired access token. Rejections are logged at debug level only.
func (t *tokenService) VerifyAccessToken(ctx context.Context, token string) (models.AccessTokenPayload, bool) {
	payload, err := utils.ParseAccessToken(token, t.tokenSignKey, t.tokenIssuer, t.now())
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("access token rejected")
		return models.AccessTokenPayload{}, false
	}

	return *payload, true
}

// VerifyRefreshToken looks the token up among non-expired rows. The returned
// row is checked against the same instant, so a token is never accepted at
// or past its expiry.
func (t *tokenService) VerifyRefreshToken(ctx context.Context, token string) (int64, bool, error) {
	now := t.now()
	found, err := t.refreshTokenRepository.FindValidRefreshToken(ctx, token, now)
	if errors.Is(err, store.ErrRefreshTokenNotFound) {
		return 0, false, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("refresh token lookup failed")
		return 0, false, fmt.Errorf("refresh token lookup failed: %w", err)
	}
	if found.IsExpired(now) {
		logger.FromContext(ctx).Warn().Int64("user_id", found.UserID).Msg("expired refresh token returned by lookup")
		return 0, false, nil
	}

	return found.UserID, true, nil
}

func (t *tokenService) RemoveRefreshToken(ctx context.Context, token string) (bool, error) {
	removed, err := t.refreshTokenRepository.DeleteRefreshToken(ctx, token)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("refresh token removal failed")
		return false, fmt.Errorf("refresh token removal failed: %w", err)
	}

	return removed, nil
}

func (t *tokenService) RemoveUserRefreshTokens(ctx context.Context, userID int64) (int64, error) {
	removed, err := t.refreshTokenRepository.DeleteUserRefreshTokens(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", userID).Msg("user refresh tokens removal failed")
		return 0, fmt.Errorf("user refresh tokens removal failed: %w", err)
	}

	return removed, nil
}

// SweepExpiredRefreshTokens removes rows with expires_at strictly before now.
// Rows expiring exactly at now are left for the next run.
func (t *tokenService) SweepExpiredRefreshTokens(ctx context.Context) (int64, error) {
	removed, err := t.refreshTokenRepository.DeleteExpiredRefreshTokens(ctx, t.now())
	if err != nil {
		return 0, fmt.Errorf("expired refresh tokens sweep failed: %w", err)
	}

	return removed, nil
}
