// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RefreshTokenRequest is the body of POST /api/auth/refresh-token and
// POST /api/auth/logout.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// ChangePasswordRequest is the body of PUT /api/auth/change-password.
// UserID is taken from the authenticated request context, never from JSON.
type ChangePasswordRequest struct {
	UserID          int64  `json:"-"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// UpdateProfileRequest is the body of PUT /api/auth/profile.
// UserID is taken from the authenticated request context, never from JSON.
type UpdateProfileRequest struct {
	UserID int64  `json:"-"`
	Email  string `json:"email"`
}
