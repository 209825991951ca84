// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"errors"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-bookmarks/models"
	"github.com/go-resty/resty/v2"
)

// mapHTTPError turns a non-2xx response into an [*APIError]. The error
// envelope is used when present, otherwise the raw body becomes the message.
func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	apiErr := &APIError{
		StatusCode: resp.StatusCode(),
		sentinel:   sentinelFromStatus(resp.StatusCode()),
	}

	if envelope, ok := resp.Error().(*models.ErrorResponse); ok && envelope.Error.Type != "" {
		apiErr.Type = envelope.Error.Type
		apiErr.Message = envelope.Error.Message
		apiErr.Details = envelope.Error.Details
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(resp.Body()))
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode())
	}
	return apiErr
}

func sentinelFromStatus(status int) error {
	switch status {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrConflict
	case http.StatusTooManyRequests:
		return ErrTooManyRequests
	case http.StatusBadGateway:
		return ErrBadGateway
	case http.StatusInternalServerError:
		return ErrInternalServerError
	default:
		return ErrUnexpectedStatus
	}
}

// Messages the auth gate answers with when the access token is missing,
// expired or malformed.
const (
	msgInvalidToken    = "Invalid token"
	msgNoTokenProvided = "No token provided"
)

// accessTokenRejected reports whether err is a 401 caused by the access token
// rather than by the request itself.
func accessTokenRejected(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnauthorized {
		return false
	}

	return apiErr.Message == msgInvalidToken || apiErr.Message == msgNoTokenProvided
}
