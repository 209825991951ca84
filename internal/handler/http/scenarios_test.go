// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-bookmarks/internal/config"
	"github.com/MKhiriev/go-bookmarks/internal/logger"
	"github.com/MKhiriev/go-bookmarks/internal/service"
	"github.com/MKhiriev/go-bookmarks/internal/store"
	"github.com/MKhiriev/go-bookmarks/internal/utils"
	"github.com/MKhiriev/go-bookmarks/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	scenarioSignKey = "scenario-sign-key-0123456789"
	scenarioIssuer  = "go-bookmarks"
)

// memoryUsers is an in-memory UserRepository.
type memoryUsers struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]models.User
}

func (m *memoryUsers) CreateUser(_ context.Context, user models.User) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == user.Username {
			return models.User{}, store.ErrUsernameAlreadyExists
		}
		if u.Email == user.Email {
			return models.User{}, store.ErrEmailAlreadyExists
		}
	}
	m.nextID++
	user.UserID = m.nextID
	user.IsActive = true
	m.users[user.UserID] = user
	return user, nil
}

func (m *memoryUsers) FindUserByUsername(_ context.Context, username string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, store.ErrUserNotFound
}

func (m *memoryUsers) FindActiveUserByID(_ context.Context, userID int64) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok || !u.IsActive {
		return models.User{}, store.ErrUserNotFound
	}
	return u, nil
}

func (m *memoryUsers) UpdateUserEmail(_ context.Context, userID int64, email string, now time.Time) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok || !u.IsActive {
		return models.User{}, store.ErrUserNotFound
	}
	u.Email, u.UpdatedAt = email, now
	m.users[userID] = u
	return u, nil
}

func (m *memoryUsers) UpdateUserPassword(_ context.Context, userID int64, passwordHash string, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok || !u.IsActive {
		return store.ErrUserNotFound
	}
	u.PasswordHash, u.UpdatedAt = passwordHash, now
	m.users[userID] = u
	return nil
}

func (m *memoryUsers) DeactivateUser(_ context.Context, userID int64, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok || !u.IsActive {
		return store.ErrUserNotFound
	}
	u.IsActive, u.UpdatedAt = false, now
	m.users[userID] = u
	return nil
}

// memoryTokens is an in-memory RefreshTokenRepository.
type memoryTokens struct {
	mu     sync.Mutex
	tokens map[string]models.RefreshToken
}

func (m *memoryTokens) SaveRefreshToken(_ context.Context, token models.RefreshToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tokens[token.Token]; !ok {
		m.tokens[token.Token] = token
	}
	return nil
}

func (m *memoryTokens) FindValidRefreshToken(_ context.Context, token string, now time.Time) (models.RefreshToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tokens[token]
	if !ok || t.IsExpired(now) {
		return models.RefreshToken{}, store.ErrRefreshTokenNotFound
	}
	return t, nil
}

func (m *memoryTokens) DeleteRefreshToken(_ context.Context, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.tokens[token]
	delete(m.tokens, token)
	return ok, nil
}

func (m *memoryTokens) DeleteUserRefreshTokens(_ context.Context, userID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for k, t := range m.tokens {
		if t.UserID == userID {
			delete(m.tokens, k)
			n++
		}
	}
	return n, nil
}

func (m *memoryTokens) DeleteExpiredRefreshTokens(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for k, t := range m.tokens {
		if t.ExpiresAt.Before(now) {
			delete(m.tokens, k)
			n++
		}
	}
	return n, nil
}

// newScenarioServer wires the real services over in-memory repositories
// behind the full router.
func newScenarioServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := testConfig()
	cfg.App = config.App{
		Env:              config.EnvTest,
		TokenSignKey:     scenarioSignKey,
		TokenIssuer:      scenarioIssuer,
		AccessTokenTTL:   15 * time.Minute,
		RefreshTokenTTL:  7 * 24 * time.Hour,
		PasswordHashCost: 4,
	}

	storages := &store.Storages{
		UserRepository:         &memoryUsers{users: make(map[int64]models.User)},
		RefreshTokenRepository: &memoryTokens{tokens: make(map[string]models.RefreshToken)},
	}

	services := service.NewServices(storages, cfg, logger.Nop())
	srv := httptest.NewServer(NewHandler(services, cfg, logger.Nop()).Init())
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, srv *httptest.Server, method, path, token, body string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func registerAlice(t *testing.T, srv *httptest.Server) models.AuthResponse {
	t.Helper()
	resp := call(t, srv, http.MethodPost, "/api/auth/register", "",
		`{"username":"alice","email":"alice@x.com","password":"Password123!"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var data models.AuthResponse
	decodeSuccess(t, resp.Body, &data)
	return data
}

func TestScenario_RegisterThenProfile(t *testing.T) {
	srv := newScenarioServer(t)

	auth := registerAlice(t, srv)
	assert.NotEmpty(t, auth.AccessToken)
	assert.Len(t, auth.RefreshToken, 2*utils.RefreshTokenBytes)
	assert.InDelta(t, 900, auth.ExpiresIn, 2)

	resp := call(t, srv, http.MethodGet, "/api/auth/profile", auth.AccessToken, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profile models.ProfileResponse
	decodeSuccess(t, resp.Body, &profile)
	assert.Equal(t, "alice", profile.User.Username)
	assert.Equal(t, "alice@x.com", profile.User.Email)
	assert.Equal(t, auth.User.UserID, profile.User.UserID)
}

func TestScenario_DuplicateRegistration(t *testing.T) {
	srv := newScenarioServer(t)
	registerAlice(t, srv)

	resp := call(t, srv, http.MethodPost, "/api/auth/register", "",
		`{"username":"alice","email":"other@x.com","password":"Password123!"}`)

	require.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "Username already exists", decodeError(t, resp.Body).Error.Message)
}

func TestScenario_WrongPasswordAndUnknownUserLookAlike(t *testing.T) {
	srv := newScenarioServer(t)
	registerAlice(t, srv)

	wrong := call(t, srv, http.MethodPost, "/api/auth/login", "", `{"username":"alice","password":"WrongPass1!"}`)
	unknown := call(t, srv, http.MethodPost, "/api/auth/login", "", `{"username":"bob","password":"WrongPass1!"}`)

	require.Equal(t, http.StatusUnauthorized, wrong.StatusCode)
	require.Equal(t, http.StatusUnauthorized, unknown.StatusCode)
	assert.Equal(t, decodeError(t, wrong.Body), decodeError(t, unknown.Body))
}

func TestScenario_ExpiredAccessToken(t *testing.T) {
	srv := newScenarioServer(t)
	auth := registerAlice(t, srv)

	expired, err := utils.GenerateAccessToken(auth.User, scenarioIssuer, 15*time.Minute, scenarioSignKey, time.Now().Add(-time.Hour))
	require.NoError(t, err)

	resp := call(t, srv, http.MethodGet, "/api/auth/profile", expired.SignedString, "")

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	env := decodeError(t, resp.Body)
	assert.Equal(t, models.AuthenticationError, env.Error.Type)
	assert.Equal(t, "Invalid token", env.Error.Message)
}

func TestScenario_RefreshAndLogout(t *testing.T) {
	srv := newScenarioServer(t)
	auth := registerAlice(t, srv)
	body := `{"refreshToken":"` + auth.RefreshToken + `"}`

	resp := call(t, srv, http.MethodPost, "/api/auth/refresh-token", "", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var refreshed models.RefreshResponse
	decodeSuccess(t, resp.Body, &refreshed)

	profile := call(t, srv, http.MethodGet, "/api/auth/profile", refreshed.AccessToken, "")
	require.Equal(t, http.StatusOK, profile.StatusCode)

	logout := call(t, srv, http.MethodPost, "/api/auth/logout", "", body)
	require.Equal(t, http.StatusOK, logout.StatusCode)

	again := call(t, srv, http.MethodPost, "/api/auth/refresh-token", "", body)
	require.Equal(t, http.StatusUnauthorized, again.StatusCode)
	assert.Equal(t, models.AuthenticationError, decodeError(t, again.Body).Error.Type)

	// logout is idempotent
	twice := call(t, srv, http.MethodPost, "/api/auth/logout", "", body)
	assert.Equal(t, http.StatusOK, twice.StatusCode)
}

func TestScenario_UnknownRefreshToken(t *testing.T) {
	srv := newScenarioServer(t)

	resp := call(t, srv, http.MethodPost, "/api/auth/refresh-token", "", `{"refreshToken":"never-issued"}`)

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestScenario_ChangePasswordRevokesSessions(t *testing.T) {
	srv := newScenarioServer(t)
	auth := registerAlice(t, srv)

	resp := call(t, srv, http.MethodPut, "/api/auth/change-password", auth.AccessToken,
		`{"currentPassword":"Password123!","newPassword":"NewPassword456!"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	refresh := call(t, srv, http.MethodPost, "/api/auth/refresh-token", "", `{"refreshToken":"`+auth.RefreshToken+`"}`)
	assert.Equal(t, http.StatusUnauthorized, refresh.StatusCode)

	oldLogin := call(t, srv, http.MethodPost, "/api/auth/login", "", `{"username":"alice","password":"Password123!"}`)
	assert.Equal(t, http.StatusUnauthorized, oldLogin.StatusCode)

	newLogin := call(t, srv, http.MethodPost, "/api/auth/login", "", `{"username":"alice","password":"NewPassword456!"}`)
	assert.Equal(t, http.StatusOK, newLogin.StatusCode)
}

func TestScenario_DeactivatedUserIsLockedOut(t *testing.T) {
	srv := newScenarioServer(t)
	auth := registerAlice(t, srv)

	resp := call(t, srv, http.MethodDelete, "/api/auth/profile", auth.AccessToken, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	profile := call(t, srv, http.MethodGet, "/api/auth/profile", auth.AccessToken, "")
	require.Equal(t, http.StatusUnauthorized, profile.StatusCode)
	assert.Equal(t, "User not found", decodeError(t, profile.Body).Error.Message)

	login := call(t, srv, http.MethodPost, "/api/auth/login", "", `{"username":"alice","password":"Password123!"}`)
	assert.Equal(t, http.StatusUnauthorized, login.StatusCode)
}

func TestScenario_HealthReportsCaller(t *testing.T) {
	srv := newScenarioServer(t)
	auth := registerAlice(t, srv)

	var anonymous, known models.HealthResponse
	decodeSuccess(t, call(t, srv, http.MethodGet, "/api/health", "", "").Body, &anonymous)
	decodeSuccess(t, call(t, srv, http.MethodGet, "/api/health", auth.AccessToken, "").Body, &known)

	assert.False(t, anonymous.Authenticated)
	assert.True(t, known.Authenticated)
	assert.Equal(t, "alice", known.Username)
}

func TestScenario_ValidationFailure(t *testing.T) {
	srv := newScenarioServer(t)

	resp := call(t, srv, http.MethodPost, "/api/auth/register", "", `{"username":"a!","email":"nope","password":"short"}`)

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	env := decodeError(t, resp.Body)
	assert.Equal(t, models.ValidationError, env.Error.Type)
	assert.Contains(t, string(env.Error.Details), `"field":"username"`)
	assert.Contains(t, string(env.Error.Details), `"field":"email"`)
	assert.Contains(t, string(env.Error.Details), `"field":"password"`)
}
