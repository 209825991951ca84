// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-bookmarks/internal/logger"
	"github.com/MKhiriev/go-bookmarks/models"
	"github.com/go-resty/resty/v2"
)

const (
	defaultBaseURL = "http://localhost:8080"
	defaultTimeout = 15 * time.Second
)

// HTTPClientConfig configures [NewHTTPServerAdapter].
type HTTPClientConfig struct {
	// BaseURL is the API root, e.g. "http://localhost:8080". A missing
	// scheme defaults to http.
	BaseURL string
	Timeout time.Duration
}

// envelope is the success envelope with a typed data payload.
type envelope[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type httpServerAdapter struct {
	client *resty.Client

	mu           sync.RWMutex
	accessToken  string
	refreshToken string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the resty implementation of
// [ServerAdapter]. Returns an error if cfg.BaseURL cannot be parsed.
func NewHTTPServerAdapter(cfg HTTPClientConfig, logger *logger.Logger) (ServerAdapter, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetError(&models.ErrorResponse{})

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetTokens(accessToken, refreshToken string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.accessToken = strings.TrimSpace(accessToken)
	h.refreshToken = strings.TrimSpace(refreshToken)
}

func (h *httpServerAdapter) Tokens() (string, string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.accessToken, h.refreshToken
}

func (h *httpServerAdapter) setAccessToken(accessToken string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.accessToken = accessToken
}

func (h *httpServerAdapter) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	var result envelope[models.AuthResponse]

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		Post("/api/auth/register")
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResponse{}, err
	}

	h.SetTokens(result.Data.AccessToken, result.Data.RefreshToken)
	return result.Data, nil
}

func (h *httpServerAdapter) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	var result envelope[models.AuthResponse]

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&result).
		Post("/api/auth/login")
	if err != nil {
		return models.AuthResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AuthResponse{}, err
	}

	h.SetTokens(result.Data.AccessToken, result.Data.RefreshToken)
	return result.Data, nil
}

func (h *httpServerAdapter) Refresh(ctx context.Context) (models.RefreshResponse, error) {
	_, refreshToken := h.Tokens()
	if refreshToken == "" {
		return models.RefreshResponse{}, ErrNoRefreshToken
	}

	var result envelope[models.RefreshResponse]

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(models.RefreshTokenRequest{RefreshToken: refreshToken}).
		SetResult(&result).
		Post("/api/auth/refresh-token")
	if err != nil {
		return models.RefreshResponse{}, fmt.Errorf("refresh token request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RefreshResponse{}, err
	}

	h.setAccessToken(result.Data.AccessToken)
	return result.Data, nil
}

func (h *httpServerAdapter) Logout(ctx context.Context) error {
	_, refreshToken := h.Tokens()
	if refreshToken == "" {
		return ErrNoRefreshToken
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(models.RefreshTokenRequest{RefreshToken: refreshToken}).
		Post("/api/auth/logout")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	h.SetTokens("", "")
	return nil
}

func (h *httpServerAdapter) Profile(ctx context.Context) (models.User, error) {
	var result envelope[models.ProfileResponse]

	err := h.doAuthed(ctx, "get profile", func(req *resty.Request) (*resty.Response, error) {
		return req.SetResult(&result).Get("/api/auth/profile")
	})
	if err != nil {
		return models.User{}, err
	}

	return result.Data.User, nil
}

func (h *httpServerAdapter) UpdateEmail(ctx context.Context, email string) (models.User, error) {
	var result envelope[models.ProfileResponse]

	err := h.doAuthed(ctx, "update profile", func(req *resty.Request) (*resty.Response, error) {
		return req.
			SetBody(models.UpdateProfileRequest{Email: email}).
			SetResult(&result).
			Put("/api/auth/profile")
	})
	if err != nil {
		return models.User{}, err
	}

	return result.Data.User, nil
}

func (h *httpServerAdapter) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	err := h.doAuthed(ctx, "change password", func(req *resty.Request) (*resty.Response, error) {
		return req.
			SetBody(models.ChangePasswordRequest{CurrentPassword: currentPassword, NewPassword: newPassword}).
			Put("/api/auth/change-password")
	})
	if err != nil {
		return err
	}

	h.SetTokens("", "")
	return nil
}

func (h *httpServerAdapter) Deactivate(ctx context.Context) error {
	err := h.doAuthed(ctx, "deactivate", func(req *resty.Request) (*resty.Response, error) {
		return req.Delete("/api/auth/profile")
	})
	if err != nil {
		return err
	}

	h.SetTokens("", "")
	return nil
}

func (h *httpServerAdapter) Health(ctx context.Context) (models.HealthResponse, error) {
	var result envelope[models.HealthResponse]

	resp, err := h.authedRequest(ctx).
		SetResult(&result).
		Get("/api/health")
	if err != nil {
		return models.HealthResponse{}, fmt.Errorf("health request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.HealthResponse{}, err
	}

	return result.Data, nil
}

// doAuthed sends an authenticated request built by send. When the server
// rejects the access token itself it refreshes the token once and repeats
// the request. Other 401s, such as a wrong current password, are returned
// as is.
func (h *httpServerAdapter) doAuthed(ctx context.Context, op string, send func(*resty.Request) (*resty.Response, error)) error {
	resp, err := send(h.authedRequest(ctx))
	if err != nil {
		return fmt.Errorf("%s request: %w", op, err)
	}
	apiErr := mapHTTPError(resp)
	if !accessTokenRejected(apiErr) {
		return apiErr
	}

	if _, refreshToken := h.Tokens(); refreshToken == "" {
		return apiErr
	}

	if _, refreshErr := h.Refresh(ctx); refreshErr != nil {
		h.logger.Debug().Err(refreshErr).Str("op", op).Msg("access token refresh failed")
		return errors.Join(apiErr, refreshErr)
	}

	resp, err = send(h.authedRequest(ctx))
	if err != nil {
		return fmt.Errorf("%s request: %w", op, err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if accessToken, _ := h.Tokens(); accessToken != "" {
		req.SetAuthToken(accessToken)
	}
	return req
}
