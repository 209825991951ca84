// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"encoding/hex"
	"testing"
)

func TestGenerateRandomToken(t *testing.T) {
	token, err := GenerateRandomToken(RefreshTokenBytes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(token) != 2*RefreshTokenBytes {
		t.Errorf("expected %d hex chars, got %d", 2*RefreshTokenBytes, len(token))
	}
	if _, err := hex.DecodeString(token); err != nil {
		t.Errorf("token is not hex: %v", err)
	}
}

func TestGenerateRandomToken_Unique(t *testing.T) {
	seen := make(map[string]struct{}, 100)
	for i := 0; i < 100; i++ {
		token, err := GenerateRandomToken(RefreshTokenBytes)
		if err != nil {
			t.Fatal(err)
		}
		if _, dup := seen[token]; dup {
			t.Fatalf("duplicate token generated: %s", token)
		}
		seen[token] = struct{}{}
	}
}
