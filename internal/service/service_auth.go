// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-bookmarks/internal/logger"
	"github.com/MKhiriev/go-bookmarks/internal/store"
	"github.com/MKhiriev/go-bookmarks/models"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification and the session
// lifecycle using a UserRepository for persistence, a PasswordHasher for
// credentials and a TokenService for tokens.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	tokenService   TokenService
	passwordHasher PasswordHasher

	// now stamps updated_at on profile, password and deactivation writes.
	now func() time.Time

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, tokenService TokenService, passwordHasher PasswordHasher, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		tokenService:   tokenService,
		passwordHasher: passwordHasher,
		now:            time.Now,
		logger:         logger,
	}
}

// Register creates a new active user and opens its first session.
//
// Returns the persisted user with both tokens or:
//   - store.ErrUsernameAlreadyExists / store.ErrEmailAlreadyExists (wrapped)
//     if the username or e-mail is taken.
//   - ErrPasswordHashing, ErrTokenSigning or a storage error otherwise.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.User, models.TokenPair, error) {
	log := logger.FromContext(ctx)

	passwordHash, err := a.passwordHasher.Hash(req.Password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, models.TokenPair{}, fmt.Errorf("%w: %w", ErrPasswordHashing, err)
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		IsActive:     true,
	})
	if err != nil {
		log.Err(err).Str("username", req.Username).Msg("user creation ended with error")
		return models.User{}, models.TokenPair{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	pair, err := a.issueTokenPair(ctx, registeredUser)
	if err != nil {
		return models.User{}, models.TokenPair{}, err
	}

	log.Info().Int64("user_id", registeredUser.UserID).Msg("user registered")
	return registeredUser, pair, nil
}

// Login authenticates a user by username and password and opens a new
// session. Unknown usernames, inactive accounts and wrong passwords all
// produce ErrInvalidCredentials so callers cannot tell them apart.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.User, models.TokenPair, error) {
	log := logger.FromContext(ctx)

	foundUser, err := a.userRepository.FindUserByUsername(ctx, req.Username)
	if errors.Is(err, store.ErrUserNotFound) {
		log.Debug().Str("username", req.Username).Msg("login for unknown username")
		return models.User{}, models.TokenPair{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("username", req.Username).Msg("user search by username failed")
		return models.User{}, models.TokenPair{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if !foundUser.IsActive {
		log.Debug().Int64("user_id", foundUser.UserID).Msg("login for inactive user")
		return models.User{}, models.TokenPair{}, ErrInvalidCredentials
	}

	if !a.passwordHasher.Verify(req.Password, foundUser.PasswordHash) {
		log.Debug().Int64("user_id", foundUser.UserID).Msg("wrong password")
		return models.User{}, models.TokenPair{}, ErrInvalidCredentials
	}

	pair, err := a.issueTokenPair(ctx, foundUser)
	if err != nil {
		return models.User{}, models.TokenPair{}, err
	}

	return foundUser, pair, nil
}

// RefreshAccessToken exchanges a live refresh token for a new access token.
// The refresh token itself is kept; it stays valid until logout, sweep or
// its own expiry.
func (a *authService) RefreshAccessToken(ctx context.Context, req models.RefreshTokenRequest) (models.AccessToken, error) {
	userID, ok, err := a.tokenService.VerifyRefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return models.AccessToken{}, err
	}
	if !ok {
		return models.AccessToken{}, ErrInvalidRefreshToken
	}

	user, err := a.userRepository.FindActiveUserByID(ctx, userID)
	if errors.Is(err, store.ErrUserNotFound) {
		// deactivated after the token was issued
		return models.AccessToken{}, ErrInvalidRefreshToken
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", userID).Msg("user search by id failed")
		return models.AccessToken{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return a.tokenService.IssueAccessToken(ctx, user)
}

// Logout removes the refresh token. Unknown tokens are ignored.
func (a *authService) Logout(ctx context.Context, req models.RefreshTokenRequest) error {
	removed, err := a.tokenService.RemoveRefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Debug().Bool("removed", removed).Msg("logout")
	return nil
}

// Authenticate verifies accessToken and loads its active owner.
func (a *authService) Authenticate(ctx context.Context, accessToken string) (models.User, error) {
	payload, ok := a.tokenService.VerifyAccessToken(ctx, accessToken)
	if !ok {
		return models.User{}, ErrInvalidToken
	}

	userID, err := payload.GetUserID()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	return a.GetProfile(ctx, userID)
}

// GetProfile returns the active user with the given id or ErrUserNotFound.
func (a *authService) GetProfile(ctx context.Context, userID int64) (models.User, error) {
	user, err := a.userRepository.FindActiveUserByID(ctx, userID)
	if err != nil {
		return models.User{}, a.userLookupError(ctx, userID, err)
	}

	return user, nil
}

// UpdateProfile changes the e-mail of an active user.
func (a *authService) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (models.User, error) {
	user, err := a.userRepository.UpdateUserEmail(ctx, req.UserID, req.Email, a.now())
	if err != nil {
		return models.User{}, a.userLookupError(ctx, req.UserID, err)
	}

	return user, nil
}

// ChangePassword replaces the password after checking the current one and
// ends every session of the user, so other devices must log in again.
func (a *authService) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	log := logger.FromContext(ctx)

	user, err := a.GetProfile(ctx, req.UserID)
	if err != nil {
		return err
	}

	if !a.passwordHasher.Verify(req.CurrentPassword, user.PasswordHash) {
		log.Debug().Int64("user_id", user.UserID).Msg("wrong current password")
		return ErrWrongPassword
	}

	passwordHash, err := a.passwordHasher.Hash(req.NewPassword)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return fmt.Errorf("%w: %w", ErrPasswordHashing, err)
	}

	if err = a.userRepository.UpdateUserPassword(ctx, user.UserID, passwordHash, a.now()); err != nil {
		return a.userLookupError(ctx, user.UserID, err)
	}

	removed, err := a.tokenService.RemoveUserRefreshTokens(ctx, user.UserID)
	if err != nil {
		return err
	}

	log.Info().Int64("user_id", user.UserID).Int64("sessions_ended", removed).Msg("password changed")
	return nil
}

// Deactivate soft-deletes the account and ends every session.
func (a *authService) Deactivate(ctx context.Context, userID int64) error {
	if err := a.userRepository.DeactivateUser(ctx, userID, a.now()); err != nil {
		return a.userLookupError(ctx, userID, err)
	}

	if _, err := a.tokenService.RemoveUserRefreshTokens(ctx, userID); err != nil {
		return err
	}

	logger.FromContext(ctx).Info().Int64("user_id", userID).Msg("user deactivated")
	return nil
}

func (a *authService) issueTokenPair(ctx context.Context, user models.User) (models.TokenPair, error) {
	access, err := a.tokenService.IssueAccessToken(ctx, user)
	if err != nil {
		return models.TokenPair{}, err
	}

	refresh, err := a.tokenService.IssueRefreshToken(ctx, user)
	if err != nil {
		return models.TokenPair{}, err
	}

	return models.TokenPair{Access: access, Refresh: refresh}, nil
}

// userLookupError translates store.ErrUserNotFound into ErrUserNotFound and
// wraps everything else.
func (a *authService) userLookupError(ctx context.Context, userID int64, err error) error {
	if errors.Is(err, store.ErrUserNotFound) {
		return fmt.Errorf("%w: %w", ErrUserNotFound, err)
	}

	logger.FromContext(ctx).Err(err).Int64("user_id", userID).Msg("user query failed")
	return fmt.Errorf("user query failed: %w", err)
}
