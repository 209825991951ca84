// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-bookmarks/models"
)

// Field name constants used to specify which fields should be validated.
// They double as the "field" value reported to clients.
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldRefreshToken    = "refreshToken"
	FieldCurrentPassword = "currentPassword"
	FieldNewPassword     = "newPassword"
)

const (
	usernameMinLength = 3
	usernameMaxLength = 50
	emailMaxLength    = 100
	passwordMinLength = 8
	passwordMaxLength = 128
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// AuthValidator checks the request bodies of the auth endpoints.
// Unlike a fail-fast validator it collects every failing field and returns
// them together as a [*ValidationError].
type AuthValidator struct{}

func NewAuthValidator() Validator {
	return &AuthValidator{}
}

func (v *AuthValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RegisterRequest:
		return v.validateRegister(value, fields...)
	case *models.RegisterRequest:
		return v.validateRegister(*value, fields...)

	case models.LoginRequest:
		return v.validateLogin(value, fields...)
	case *models.LoginRequest:
		return v.validateLogin(*value, fields...)

	case models.RefreshTokenRequest:
		return v.validateRefreshToken(value, fields...)
	case *models.RefreshTokenRequest:
		return v.validateRefreshToken(*value, fields...)

	case models.ChangePasswordRequest:
		return v.validateChangePassword(value, fields...)
	case *models.ChangePasswordRequest:
		return v.validateChangePassword(*value, fields...)

	case models.UpdateProfileRequest:
		return v.validateUpdateProfile(value, fields...)
	case *models.UpdateProfileRequest:
		return v.validateUpdateProfile(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *AuthValidator) validateRegister(req models.RegisterRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldEmail, FieldPassword}
	}

	verr := &ValidationError{}
	for _, f := range fields {
		switch f {
		case FieldUsername:
			checkUsername(verr, req.Username)
		case FieldEmail:
			checkEmail(verr, FieldEmail, req.Email)
		case FieldPassword:
			checkPassword(verr, FieldPassword, req.Password)
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	return verr.orNil()
}

func (v *AuthValidator) validateLogin(req models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldPassword}
	}

	verr := &ValidationError{}
	for _, f := range fields {
		switch f {
		case FieldUsername:
			checkRequired(verr, FieldUsername, req.Username, "Username is required")
		case FieldPassword:
			checkRequired(verr, FieldPassword, req.Password, "Password is required")
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	return verr.orNil()
}

func (v *AuthValidator) validateRefreshToken(req models.RefreshTokenRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldRefreshToken}
	}

	verr := &ValidationError{}
	for _, f := range fields {
		switch f {
		case FieldRefreshToken:
			checkRequired(verr, FieldRefreshToken, req.RefreshToken, "Refresh token is required")
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	return verr.orNil()
}

func (v *AuthValidator) validateChangePassword(req models.ChangePasswordRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldCurrentPassword, FieldNewPassword}
	}

	verr := &ValidationError{}
	for _, f := range fields {
		switch f {
		case FieldCurrentPassword:
			checkRequired(verr, FieldCurrentPassword, req.CurrentPassword, "Current password is required")
		case FieldNewPassword:
			if checkPassword(verr, FieldNewPassword, req.NewPassword) && req.NewPassword == req.CurrentPassword {
				verr.add(FieldNewPassword, "New password must be different from the current password")
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	return verr.orNil()
}

func (v *AuthValidator) validateUpdateProfile(req models.UpdateProfileRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail}
	}

	verr := &ValidationError{}
	for _, f := range fields {
		switch f {
		case FieldEmail:
			checkEmail(verr, FieldEmail, req.Email)
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	return verr.orNil()
}

func checkRequired(verr *ValidationError, field, value, message string) bool {
	if strings.TrimSpace(value) == "" {
		verr.add(field, message)
		return false
	}
	return true
}

func checkUsername(verr *ValidationError, username string) {
	n := utf8.RuneCountInString(username)
	switch {
	case n < usernameMinLength || n > usernameMaxLength:
		verr.add(FieldUsername, fmt.Sprintf("Username must be between %d and %d characters", usernameMinLength, usernameMaxLength))
	case !usernamePattern.MatchString(username):
		verr.add(FieldUsername, "Username can only contain letters, numbers, and underscores")
	}
}

func checkEmail(verr *ValidationError, field, email string) {
	if !checkRequired(verr, field, email, "Email is required") {
		return
	}
	if utf8.RuneCountInString(email) > emailMaxLength {
		verr.add(field, fmt.Sprintf("Email must be at most %d characters", emailMaxLength))
		return
	}
	if !isEmail(email) {
		verr.add(field, "Email must be a valid email address")
	}
}

func checkPassword(verr *ValidationError, field, password string) bool {
	n := utf8.RuneCountInString(password)
	if n < passwordMinLength || n > passwordMaxLength {
		verr.add(field, fmt.Sprintf("Password must be between %d and %d characters", passwordMinLength, passwordMaxLength))
		return false
	}
	return true
}

// isEmail accepts a bare addr-spec with a dotted domain. Display names
// ("Bob <bob@example.com>") are rejected.
func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}

	at := strings.LastIndexByte(s, '@')
	domain := s[at+1:]
	return strings.Contains(domain, ".") && !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}
