// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-bookmarks/internal/logger"
	"github.com/MKhiriev/go-bookmarks/internal/service"
	"github.com/MKhiriev/go-bookmarks/internal/utils"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It extracts the bearer token from the "Authorization" header, resolves it
// to an active user via [service.AuthService.Authenticate] and stores the
// user's id and username in the request context (see [utils.WithUser])
// before delegating to the next handler.
//
// Requests are rejected with 401 AUTHENTICATION_ERROR when:
//   - the header is absent or not of the form "Bearer <token>" ("No token provided");
//   - the token fails verification ("Invalid token");
//   - the token owner is unknown or inactive ("User not found").
//
// Any other failure, such as an unreachable database, yields 500.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, err := h.authenticate(r)
		if err != nil {
			logger.FromRequest(r).Debug().Err(err).Msg("request authentication failed")
			h.writeError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// optionalAuth runs the same checks as auth but never rejects: on any
// failure the request proceeds without user information in its context.
func (h *Handler) optionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, err := h.authenticate(r)
		if err != nil {
			if !errors.Is(err, ErrEmptyAuthorizationHeader) {
				logger.FromRequest(r).Debug().Err(err).Msg("optional authentication failed")
			}
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// authenticate returns the request context enriched with the authenticated
// user, or the reason the request could not be authenticated.
func (h *Handler) authenticate(r *http.Request) (context.Context, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, ErrEmptyAuthorizationHeader
	}

	tokenString, err := utils.ParseBearerToken(authHeader)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAuthorizationHeader, err)
	}

	ctx := r.Context()
	user, err := h.services.AuthService.Authenticate(ctx, tokenString)
	if errors.Is(err, service.ErrUserNotFound) {
		return nil, fmt.Errorf("%w: %w", ErrTokenUserNotFound, err)
	}
	if err != nil {
		return nil, err
	}

	return utils.WithUser(ctx, user.UserID, user.Username), nil
}
