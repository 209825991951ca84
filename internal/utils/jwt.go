// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-bookmarks/models"
	"github.com/golang-jwt/jwt/v5"
)

// bearerPrefix is the scheme prefix of an Authorization header carrying an
// access token.
const bearerPrefix = "Bearer "

var (
	// ErrInvalidJWTParams is returned when a token is requested with an empty
	// signing key, a non-positive lifetime, or an empty subject.
	ErrInvalidJWTParams = errors.New("invalid params for generating JWT token")

	// ErrNotAccessToken is returned when a correctly signed token carries a
	// "type" claim other than [models.AccessTokenType].
	ErrNotAccessToken = errors.New("token is not an access token")
)

// GenerateAccessToken creates a signed HMAC-SHA256 access token for user.
//
// The token includes the following claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the user ID encoded as a string
//   - IssuedAt  (iat): now
//   - ExpiresAt (exp): now plus tokenDuration
//   - username, email and type="access"
//
// Returns [ErrInvalidJWTParams] if signKey is empty or tokenDuration is not
// positive.
//
// Example usage:
//
//	token, err := utils.GenerateAccessToken(user, "go-bookmarks", 15*time.Minute, "secret", time.Now())
func GenerateAccessToken(user models.User, issuer string, tokenDuration time.Duration, signKey string, now time.Time) (models.AccessToken, error) {
	if signKey == "" || tokenDuration <= 0 {
		return models.AccessToken{}, ErrInvalidJWTParams
	}

	expiresAt := now.Add(tokenDuration)
	claims := &models.AccessTokenPayload{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(user.UserID, 10),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Username: user.Username,
		Email:    user.Email,
		Type:     models.AccessTokenType,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(signKey))
	if err != nil {
		return models.AccessToken{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	// exp is encoded with seconds resolution
	return models.AccessToken{SignedString: signed, ExpiresAt: expiresAt.Truncate(time.Second)}, nil
}

// ParseAccessToken validates tokenString and extracts its claims.
//
// Validation includes:
//   - Signature verification with HS256 only (other algorithms are rejected)
//   - Issuer (iss) check when tokenIssuer is non-empty
//   - Expiration (exp) check against now
//   - type claim equal to "access"
//   - Subject (sub) convertible to an int64 user id
func ParseAccessToken(tokenString, tokenSignKey, tokenIssuer string, now time.Time) (*models.AccessTokenPayload, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	}
	if tokenIssuer != "" {
		opts = append(opts, jwt.WithIssuer(tokenIssuer))
	}

	payload := &models.AccessTokenPayload{}
	_, err := jwt.ParseWithClaims(tokenString, payload, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if payload.Type != models.AccessTokenType {
		return nil, ErrNotAccessToken
	}

	if _, err = payload.GetUserID(); err != nil {
		return nil, err
	}

	return payload, nil
}

// ParseBearerToken extracts the token from an Authorization header of the
// form "Bearer <token>". The scheme is matched case-sensitively.
func ParseBearerToken(authorizationHeader string) (string, error) {
	if !strings.HasPrefix(authorizationHeader, bearerPrefix) {
		return "", errors.New("invalid authorization header")
	}

	token := strings.TrimSpace(strings.TrimPrefix(authorizationHeader, bearerPrefix))
	if token == "" {
		return "", errors.New("empty bearer token")
	}

	return token, nil
}
