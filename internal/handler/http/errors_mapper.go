// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-bookmarks/internal/service"
	"github.com/MKhiriev/go-bookmarks/internal/store"
	"github.com/MKhiriev/go-bookmarks/internal/utils"
	"github.com/MKhiriev/go-bookmarks/internal/validators"
	"github.com/MKhiriev/go-bookmarks/models"
)

// errorMapping describes how a sentinel error is rendered to clients.
type errorMapping struct {
	target  error
	status  int
	errType models.ErrorType
	message string
}

// errorMappings is checked in order; the first errors.Is match wins.
// Anything unmatched becomes INTERNAL_ERROR.
var errorMappings = []errorMapping{
	{validators.ErrValidation, http.StatusBadRequest, models.ValidationError, "Validation failed"},
	{utils.ErrMalformedJSON, http.StatusBadRequest, models.BadRequestError, "Invalid JSON body"},
	{ErrInvalidGzipBody, http.StatusBadRequest, models.BadRequestError, "Invalid gzip body"},

	{ErrEmptyAuthorizationHeader, http.StatusUnauthorized, models.AuthenticationError, "No token provided"},
	{ErrInvalidAuthorizationHeader, http.StatusUnauthorized, models.AuthenticationError, "No token provided"},
	{ErrNoAuthenticatedUser, http.StatusUnauthorized, models.AuthenticationError, "Authentication required"},
	{ErrTokenUserNotFound, http.StatusUnauthorized, models.AuthenticationError, "User not found"},
	{service.ErrInvalidToken, http.StatusUnauthorized, models.AuthenticationError, "Invalid token"},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, models.AuthenticationError, "Invalid credentials"},
	{service.ErrWrongPassword, http.StatusUnauthorized, models.AuthenticationError, "Current password is incorrect"},
	{service.ErrInvalidRefreshToken, http.StatusUnauthorized, models.AuthenticationError, "Invalid or expired refresh token"},

	{service.ErrUserNotFound, http.StatusNotFound, models.NotFoundError, "User not found"},
	{store.ErrUserNotFound, http.StatusNotFound, models.NotFoundError, "User not found"},
	{ErrRouteNotFound, http.StatusNotFound, models.NotFoundError, "Route not found"},

	{store.ErrUsernameAlreadyExists, http.StatusConflict, models.ConflictError, "Username already exists"},
	{store.ErrEmailAlreadyExists, http.StatusConflict, models.ConflictError, "Email already exists"},

	{ErrTooManyRequests, http.StatusTooManyRequests, models.TooManyRequests, "Too many requests, please try again later"},
}

var internalErrorMapping = errorMapping{
	status:  http.StatusInternalServerError,
	errType: models.InternalError,
	message: "Internal server error",
}

func mappingFromError(err error) errorMapping {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m
		}
	}
	return internalErrorMapping
}
