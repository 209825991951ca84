// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// RefreshTokenBytes is the amount of entropy in a refresh token.
const RefreshTokenBytes = 48

// GenerateRandomToken returns n cryptographically random bytes encoded as
// lowercase hex (2*n characters).
func GenerateRandomToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("error reading random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
