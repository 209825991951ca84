// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *StructuredConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(*StructuredConfig) {}},
		{
			name:    "short sign key",
			mutate:  func(cfg *StructuredConfig) { cfg.App.TokenSignKey = "short" },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "zero access ttl",
			mutate:  func(cfg *StructuredConfig) { cfg.App.AccessTokenTTL = 0 },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "negative refresh ttl",
			mutate:  func(cfg *StructuredConfig) { cfg.App.RefreshTokenTTL = -1 },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "unknown env",
			mutate:  func(cfg *StructuredConfig) { cfg.App.Env = "staging" },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "hash cost too low",
			mutate:  func(cfg *StructuredConfig) { cfg.App.PasswordHashCost = 1 },
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name:    "missing dsn",
			mutate:  func(cfg *StructuredConfig) { cfg.Storage.DB.DSN = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "missing address",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.HTTPAddress = "" },
			wantErr: ErrInvalidServerConfigs,
		},
		{
			name:    "zero rate limit",
			mutate:  func(cfg *StructuredConfig) { cfg.Server.LoginRateLimit = 0 },
			wantErr: ErrInvalidServerConfigs,
		},
		{
			name:    "zero sweep interval",
			mutate:  func(cfg *StructuredConfig) { cfg.Workers.SweepInterval = 0 },
			wantErr: ErrInvalidWorkerConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestApp_IsProduction(t *testing.T) {
	assert.True(t, App{Env: EnvProduction}.IsProduction())
	assert.False(t, App{Env: EnvDevelopment}.IsProduction())
}
