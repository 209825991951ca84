// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-bookmarks/internal/mock"
	"github.com/MKhiriev/go-bookmarks/internal/validators"
	"github.com/MKhiriev/go-bookmarks/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestValidationSvc(t *testing.T) (AuthService, *mock.MockAuthService) {
	t.Helper()
	inner := mock.NewMockAuthService(gomock.NewController(t))
	return NewAuthValidationService().Wrap(inner), inner
}

func TestAuthValidationService_RejectsBeforeInner(t *testing.T) {
	svc, _ := newTestValidationSvc(t)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
	}{
		{
			name: "register",
			call: func() error {
				_, _, err := svc.Register(ctx, models.RegisterRequest{Username: "a", Email: "nope", Password: "short"})
				return err
			},
		},
		{
			name: "login",
			call: func() error {
				_, _, err := svc.Login(ctx, models.LoginRequest{})
				return err
			},
		},
		{
			name: "refresh",
			call: func() error {
				_, err := svc.RefreshAccessToken(ctx, models.RefreshTokenRequest{})
				return err
			},
		},
		{
			name: "logout",
			call: func() error {
				return svc.Logout(ctx, models.RefreshTokenRequest{RefreshToken: "   "})
			},
		},
		{
			name: "update profile",
			call: func() error {
				_, err := svc.UpdateProfile(ctx, models.UpdateProfileRequest{UserID: 1, Email: "not-an-email"})
				return err
			},
		},
		{
			name: "change password",
			call: func() error {
				return svc.ChangePassword(ctx, models.ChangePasswordRequest{UserID: 1, CurrentPassword: "Password123!", NewPassword: "Password123!"})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.ErrorIs(t, err, validators.ErrValidation)

			var vErr *validators.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.NotEmpty(t, vErr.Fields)
		})
	}
}

func TestAuthValidationService_RegisterFieldDetails(t *testing.T) {
	svc, _ := newTestValidationSvc(t)

	_, _, err := svc.Register(context.Background(), models.RegisterRequest{Username: "alice", Email: "alice@x.com", Password: "short"})

	var vErr *validators.ValidationError
	require.True(t, errors.As(err, &vErr))
	require.Len(t, vErr.Fields, 1)
	assert.Equal(t, validators.FieldPassword, vErr.Fields[0].Field)
}

func TestAuthValidationService_PassesValidRequests(t *testing.T) {
	svc, inner := newTestValidationSvc(t)
	ctx := context.Background()

	register := models.RegisterRequest{Username: "alice", Email: "alice@x.com", Password: "Password123!"}
	inner.EXPECT().Register(ctx, register).Return(alice, models.TokenPair{Access: testAccess}, nil)

	login := models.LoginRequest{Username: "alice", Password: "Password123!"}
	inner.EXPECT().Login(ctx, login).Return(alice, models.TokenPair{}, nil)

	refresh := models.RefreshTokenRequest{RefreshToken: "token"}
	inner.EXPECT().RefreshAccessToken(ctx, refresh).Return(testAccess, nil)
	inner.EXPECT().Logout(ctx, refresh).Return(nil)

	inner.EXPECT().Authenticate(ctx, "jwt").Return(alice, nil)
	inner.EXPECT().GetProfile(ctx, int64(42)).Return(alice, nil)
	inner.EXPECT().Deactivate(ctx, int64(42)).Return(nil)

	user, pair, err := svc.Register(ctx, register)
	require.NoError(t, err)
	assert.Equal(t, alice, user)
	assert.Equal(t, testAccess, pair.Access)

	_, _, err = svc.Login(ctx, login)
	require.NoError(t, err)

	_, err = svc.RefreshAccessToken(ctx, refresh)
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx, refresh))

	_, err = svc.Authenticate(ctx, "jwt")
	require.NoError(t, err)
	_, err = svc.GetProfile(ctx, 42)
	require.NoError(t, err)
	require.NoError(t, svc.Deactivate(ctx, 42))
}
