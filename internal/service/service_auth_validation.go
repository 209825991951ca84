// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-bookmarks/internal/validators"
	"github.com/MKhiriev/go-bookmarks/models"
)

// AuthServiceWrapper defines middleware composition for AuthService.
// Implementations wrap an existing AuthService to add behavior such as
// validating.
type AuthServiceWrapper interface {
	Wrap(AuthService) AuthService // returns a decorated AuthService applying additional behavior
}

// AuthValidationService rejects malformed requests before they reach the
// wrapped AuthService. Validation failures wrap *validators.ValidationError.
type AuthValidationService struct {
	inner     AuthService
	validator validators.Validator
}

func NewAuthValidationService() AuthServiceWrapper {
	return &AuthValidationService{
		validator: validators.NewAuthValidator(),
	}
}

func (v *AuthValidationService) Register(ctx context.Context, req models.RegisterRequest) (models.User, models.TokenPair, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.User{}, models.TokenPair{}, fmt.Errorf("error during registration request validation: %w", err)
	}

	return v.inner.Register(ctx, req)
}

func (v *AuthValidationService) Login(ctx context.Context, req models.LoginRequest) (models.User, models.TokenPair, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.User{}, models.TokenPair{}, fmt.Errorf("error during login request validation: %w", err)
	}

	return v.inner.Login(ctx, req)
}

func (v *AuthValidationService) RefreshAccessToken(ctx context.Context, req models.RefreshTokenRequest) (models.AccessToken, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.AccessToken{}, fmt.Errorf("error during refresh request validation: %w", err)
	}

	return v.inner.RefreshAccessToken(ctx, req)
}

func (v *AuthValidationService) Logout(ctx context.Context, req models.RefreshTokenRequest) error {
	if err := v.validator.Validate(ctx, req); err != nil {
		return fmt.Errorf("error during logout request validation: %w", err)
	}

	return v.inner.Logout(ctx, req)
}

func (v *AuthValidationService) Authenticate(ctx context.Context, accessToken string) (models.User, error) {
	return v.inner.Authenticate(ctx, accessToken)
}

func (v *AuthValidationService) GetProfile(ctx context.Context, userID int64) (models.User, error) {
	return v.inner.GetProfile(ctx, userID)
}

func (v *AuthValidationService) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (models.User, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.User{}, fmt.Errorf("error during profile update validation: %w", err)
	}

	return v.inner.UpdateProfile(ctx, req)
}

func (v *AuthValidationService) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	if err := v.validator.Validate(ctx, req); err != nil {
		return fmt.Errorf("error during password change validation: %w", err)
	}

	return v.inner.ChangePassword(ctx, req)
}

func (v *AuthValidationService) Deactivate(ctx context.Context, userID int64) error {
	return v.inner.Deactivate(ctx, userID)
}

func (v *AuthValidationService) Wrap(wrapper AuthService) AuthService {
	v.inner = wrapper
	return v
}
