// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-bookmarks/internal/config"
	myHTTP "github.com/MKhiriev/go-bookmarks/internal/handler/http"
	"github.com/MKhiriev/go-bookmarks/internal/logger"
	"github.com/MKhiriev/go-bookmarks/internal/mock"
	"github.com/MKhiriev/go-bookmarks/internal/service"
	"github.com/MKhiriev/go-bookmarks/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newRouterAdapter serves the real router backed by a mocked AuthService,
// so requests built by the adapter are checked against the actual routes,
// JSON shapes and Authorization handling.
func newRouterAdapter(t *testing.T) (*httpServerAdapter, *mock.MockAuthService) {
	t.Helper()

	auth := mock.NewMockAuthService(gomock.NewController(t))
	cfg := config.StructuredConfig{
		App: config.App{Env: config.EnvTest},
		Server: config.Server{
			HTTPAddress:     ":0",
			RequestTimeout:  5 * time.Second,
			LoginRateLimit:  100,
			LoginRateWindow: time.Minute,
		},
	}

	h := myHTTP.NewHandler(&service.Services{AuthService: auth}, cfg, logger.Nop())
	srv := httptest.NewServer(h.Init())
	t.Cleanup(srv.Close)

	return newTestAdapter(t, srv.URL), auth
}

func TestRouter_SessionLifecycle(t *testing.T) {
	a, auth := newRouterAdapter(t)
	ctx := context.Background()

	alice := models.User{UserID: 7, Username: "alice", Email: "alice@x.com", IsActive: true}
	pair := models.TokenPair{
		Access:  models.AccessToken{SignedString: "access-1", ExpiresAt: time.Now().Add(15 * time.Minute)},
		Refresh: models.RefreshToken{UserID: 7, Token: "refresh-1"},
	}

	gomock.InOrder(
		auth.EXPECT().Login(gomock.Any(), models.LoginRequest{Username: "alice", Password: "Password123!"}).
			Return(alice, pair, nil),
		auth.EXPECT().Authenticate(gomock.Any(), "access-1").Return(alice, nil),
		auth.EXPECT().GetProfile(gomock.Any(), int64(7)).Return(alice, nil),
		auth.EXPECT().Authenticate(gomock.Any(), "access-1").Return(models.User{}, service.ErrInvalidToken),
		auth.EXPECT().RefreshAccessToken(gomock.Any(), models.RefreshTokenRequest{RefreshToken: "refresh-1"}).
			Return(models.AccessToken{SignedString: "access-2", ExpiresAt: time.Now().Add(15 * time.Minute)}, nil),
		auth.EXPECT().Authenticate(gomock.Any(), "access-2").Return(alice, nil),
		auth.EXPECT().UpdateProfile(gomock.Any(), models.UpdateProfileRequest{UserID: 7, Email: "new@x.com"}).
			Return(models.User{UserID: 7, Username: "alice", Email: "new@x.com", IsActive: true}, nil),
		auth.EXPECT().Logout(gomock.Any(), models.RefreshTokenRequest{RefreshToken: "refresh-1"}).Return(nil),
	)

	login, err := a.Login(ctx, models.LoginRequest{Username: "alice", Password: "Password123!"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), login.User.UserID)

	profile, err := a.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", profile.Email)

	updated, err := a.UpdateEmail(ctx, "new@x.com")
	require.NoError(t, err)
	assert.Equal(t, "new@x.com", updated.Email)

	access, _ := a.Tokens()
	assert.Equal(t, "access-2", access)

	require.NoError(t, a.Logout(ctx))
}

func TestRouter_ErrorEnvelope(t *testing.T) {
	a, auth := newRouterAdapter(t)

	auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(models.User{}, models.TokenPair{}, service.ErrInvalidCredentials)

	_, err := a.Login(context.Background(), models.LoginRequest{Username: "alice", Password: "wrong"})

	require.ErrorIs(t, err, ErrUnauthorized)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, models.AuthenticationError, apiErr.Type)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
}

func TestRouter_HealthWithoutToken(t *testing.T) {
	a, _ := newRouterAdapter(t)

	got, err := a.Health(context.Background())

	require.NoError(t, err)
	assert.Equal(t, models.HealthResponse{Status: "ok"}, got)
}
