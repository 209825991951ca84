// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-bookmarks/internal/config"
	"github.com/MKhiriev/go-bookmarks/internal/logger"
	"github.com/MKhiriev/go-bookmarks/internal/mock"
	"github.com/MKhiriev/go-bookmarks/internal/service"
	"github.com/MKhiriev/go-bookmarks/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testConfig() config.StructuredConfig {
	return config.StructuredConfig{
		App: config.App{Env: config.EnvTest},
		Server: config.Server{
			HTTPAddress:     ":0",
			RequestTimeout:  5 * time.Second,
			LoginRateLimit:  100,
			LoginRateWindow: time.Minute,
		},
	}
}

// newHandlerWithAuth builds a Handler backed by a gomock AuthService.
func newHandlerWithAuth(t *testing.T) (*Handler, *mock.MockAuthService) {
	t.Helper()
	auth := mock.NewMockAuthService(gomock.NewController(t))
	h := NewHandler(&service.Services{AuthService: auth}, testConfig(), logger.Nop())
	return h, auth
}

// injectNopLogger puts a nop logger into the request context.
func injectNopLogger(r *http.Request) *http.Request {
	nop := logger.Nop()
	return r.WithContext(nop.Logger.WithContext(r.Context()))
}

func newJSONRequest(method, path, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	return injectNopLogger(req)
}

// decodeSuccess decodes a success envelope; data is decoded into dst when
// dst is non-nil.
func decodeSuccess(t *testing.T, body io.Reader, dst any) string {
	t.Helper()
	var env struct {
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(body).Decode(&env))
	if dst != nil {
		require.NoError(t, json.Unmarshal(env.Data, dst))
	}
	return env.Message
}

// errorEnvelope mirrors models.ErrorResponse with raw details.
type errorEnvelope struct {
	Error struct {
		Type    models.ErrorType `json:"type"`
		Message string           `json:"message"`
		Details json.RawMessage  `json:"details"`
	} `json:"error"`
}

func decodeError(t *testing.T, body io.Reader) errorEnvelope {
	t.Helper()
	var env errorEnvelope
	require.NoError(t, json.NewDecoder(body).Decode(&env))
	return env
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}
