// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/MKhiriev/go-bookmarks/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldsOf(t *testing.T, err error) []string {
	t.Helper()

	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %v", err)
	assert.ErrorIs(t, err, ErrValidation)

	names := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		names = append(names, f.Field)
	}
	return names
}

func TestAuthValidator_Register(t *testing.T) {
	v := NewAuthValidator()
	ctx := context.Background()

	valid := models.RegisterRequest{Username: "alice_01", Email: "alice@example.com", Password: "password123"}

	tests := []struct {
		name       string
		mutate     func(r *models.RegisterRequest)
		wantFields []string
	}{
		{name: "valid", mutate: func(*models.RegisterRequest) {}},
		{name: "username too short", mutate: func(r *models.RegisterRequest) { r.Username = "ab" }, wantFields: []string{FieldUsername}},
		{name: "username too long", mutate: func(r *models.RegisterRequest) { r.Username = strings.Repeat("a", 51) }, wantFields: []string{FieldUsername}},
		{name: "username max length", mutate: func(r *models.RegisterRequest) { r.Username = strings.Repeat("a", 50) }},
		{name: "username bad chars", mutate: func(r *models.RegisterRequest) { r.Username = "alice-01" }, wantFields: []string{FieldUsername}},
		{name: "email missing", mutate: func(r *models.RegisterRequest) { r.Email = "" }, wantFields: []string{FieldEmail}},
		{name: "email malformed", mutate: func(r *models.RegisterRequest) { r.Email = "alice@" }, wantFields: []string{FieldEmail}},
		{name: "email without dot", mutate: func(r *models.RegisterRequest) { r.Email = "alice@localhost" }, wantFields: []string{FieldEmail}},
		{name: "email display name", mutate: func(r *models.RegisterRequest) { r.Email = "Alice <alice@example.com>" }, wantFields: []string{FieldEmail}},
		{
			name:       "email too long",
			mutate:     func(r *models.RegisterRequest) { r.Email = strings.Repeat("a", 90) + "@example.com" },
			wantFields: []string{FieldEmail},
		},
		{name: "password too short", mutate: func(r *models.RegisterRequest) { r.Password = "short" }, wantFields: []string{FieldPassword}},
		{name: "password too long", mutate: func(r *models.RegisterRequest) { r.Password = strings.Repeat("p", 129) }, wantFields: []string{FieldPassword}},
		{
			name: "everything wrong",
			mutate: func(r *models.RegisterRequest) {
				*r = models.RegisterRequest{}
			},
			wantFields: []string{FieldUsername, FieldEmail, FieldPassword},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := v.Validate(ctx, req)
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantFields, fieldsOf(t, err))
		})
	}
}

func TestAuthValidator_PointerAndFieldScoping(t *testing.T) {
	v := NewAuthValidator()
	req := &models.RegisterRequest{Username: "ab", Email: "bad", Password: "password123"}

	assert.Equal(t, []string{FieldUsername, FieldEmail}, fieldsOf(t, v.Validate(context.Background(), req)))
	assert.Equal(t, []string{FieldEmail}, fieldsOf(t, v.Validate(context.Background(), req, FieldEmail)))
	assert.NoError(t, v.Validate(context.Background(), req, FieldPassword))
	assert.ErrorIs(t, v.Validate(context.Background(), req, "nickname"), ErrUnknownField)
}

func TestAuthValidator_Login(t *testing.T) {
	v := NewAuthValidator()

	assert.NoError(t, v.Validate(context.Background(), models.LoginRequest{Username: "alice", Password: "x"}))
	assert.Equal(t,
		[]string{FieldUsername, FieldPassword},
		fieldsOf(t, v.Validate(context.Background(), models.LoginRequest{Username: "  "})),
	)
}

func TestAuthValidator_RefreshToken(t *testing.T) {
	v := NewAuthValidator()

	assert.NoError(t, v.Validate(context.Background(), &models.RefreshTokenRequest{RefreshToken: "abc"}))
	assert.Equal(t, []string{FieldRefreshToken}, fieldsOf(t, v.Validate(context.Background(), models.RefreshTokenRequest{})))
}

func TestAuthValidator_ChangePassword(t *testing.T) {
	v := NewAuthValidator()

	tests := []struct {
		name       string
		req        models.ChangePasswordRequest
		wantFields []string
	}{
		{name: "valid", req: models.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "password456"}},
		{name: "missing current", req: models.ChangePasswordRequest{NewPassword: "password456"}, wantFields: []string{FieldCurrentPassword}},
		{name: "new too short", req: models.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "short"}, wantFields: []string{FieldNewPassword}},
		{name: "same as current", req: models.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "password123"}, wantFields: []string{FieldNewPassword}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(context.Background(), tt.req)
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantFields, fieldsOf(t, err))
		})
	}
}

func TestAuthValidator_UpdateProfile(t *testing.T) {
	v := NewAuthValidator()

	assert.NoError(t, v.Validate(context.Background(), models.UpdateProfileRequest{Email: "new@example.com"}))
	assert.Equal(t, []string{FieldEmail}, fieldsOf(t, v.Validate(context.Background(), models.UpdateProfileRequest{Email: "nope"})))
}

func TestAuthValidator_UnsupportedType(t *testing.T) {
	err := NewAuthValidator().Validate(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestValidationError_Message(t *testing.T) {
	verr := &ValidationError{}
	assert.NoError(t, verr.orNil())

	verr.add(FieldEmail, "Email is required")
	assert.Equal(t, "validation failed: email: Email is required", verr.Error())
}
