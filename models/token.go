// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenType is the value of the "type" claim carried by every access
// token. Tokens signed with the same secret but bearing another type are
// rejected by the auth gate.
const AccessTokenType = "access"

// AccessTokenPayload is the claim set of a signed access token.
//
// It embeds [jwt.RegisteredClaims] for the standard "sub", "iat" and "exp"
// claims (seconds-resolution epoch) and adds the user's public identity plus
// the type discriminator.
type AccessTokenPayload struct {
	jwt.RegisteredClaims

	// Username is the login name of the token owner at issuance time.
	Username string `json:"username"`

	// Email is the e-mail of the token owner at issuance time.
	Email string `json:"email"`

	// Type must equal [AccessTokenType] for the token to be accepted.
	Type string `json:"type"`
}

// GetUserID extracts the user identifier from the "sub" (subject) claim,
// parses it as a base-10 int64, and returns the result.
//
// Returns an error if the subject claim is missing, empty, or cannot be
// converted to int64.
func (p *AccessTokenPayload) GetUserID() (int64, error) {
	userIDString, err := p.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := strconv.ParseInt(userIDString, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	return userID, nil
}

// AccessToken is a freshly signed access token.
type AccessToken struct {
	// SignedString is the compact JWS representation of the token
	// (base64url-encoded header.payload.signature).
	SignedString string

	// ExpiresAt is the absolute expiry embedded in the "exp" claim.
	ExpiresAt time.Time
}

// ExpiresIn returns the number of whole seconds left until the token expires,
// relative to now. Expired tokens report zero.
func (t AccessToken) ExpiresIn(now time.Time) int64 {
	left := int64(t.ExpiresAt.Sub(now).Seconds())
	if left < 0 {
		return 0
	}
	return left
}

// RefreshToken is a persisted session artifact exchanged for new access
// tokens. The Token value is an opaque random string.
type RefreshToken struct {
	ID        int64
	UserID    int64
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired reports whether the token is no longer usable at the given time.
// A token is valid only while ExpiresAt is strictly after now.
func (t RefreshToken) IsExpired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}

// TableName returns the name of the database table
// associated with the RefreshToken model.
func (t RefreshToken) TableName() string {
	return "refresh_tokens"
}

// TokenPair is issued on registration and login.
type TokenPair struct {
	Access  AccessToken
	Refresh RefreshToken
}
