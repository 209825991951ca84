// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User represents an account entity used for authentication and authorization.
// It contains identity attributes and credential-related data.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	// It is immutable once assigned by the database.
	UserID int64 `json:"id"`

	// Username is the unique login name, 3 to 50 characters long.
	Username string `json:"username"`

	// Email is the unique e-mail address of the user, at most 100 characters.
	Email string `json:"email"`

	// PasswordHash stores the bcrypt digest of the user's password.
	// It is never exposed via JSON.
	PasswordHash string `json:"-"`

	// IsActive is false for soft-deleted accounts. Inactive users cannot
	// log in and their access tokens are rejected by the auth gate.
	IsActive bool `json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
