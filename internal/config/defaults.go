// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

const (
	defaultHTTPAddress      = ":8080"
	defaultRequestTimeout   = 30 * time.Second
	defaultShutdownTimeout  = 10 * time.Second
	defaultLoginRateLimit   = 10
	defaultLoginRateWindow  = time.Minute
	defaultAccessTokenTTL   = 15 * time.Minute
	defaultRefreshTokenTTL  = 7 * 24 * time.Hour
	defaultPasswordHashCost = 10
	defaultTokenIssuer      = "go-bookmarks"
	defaultLogLevel         = "debug"
	defaultMaxOpenConns     = 10
	defaultSweepInterval    = time.Hour
	defaultSweepTimeout     = time.Minute
	defaultDotEnvFile       = ".env"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Env:              EnvDevelopment,
			LogLevel:         defaultLogLevel,
			TokenIssuer:      defaultTokenIssuer,
			AccessTokenTTL:   defaultAccessTokenTTL,
			RefreshTokenTTL:  defaultRefreshTokenTTL,
			PasswordHashCost: defaultPasswordHashCost,
		},
		Storage: Storage{
			DB: DB{MaxOpenConns: defaultMaxOpenConns},
		},
		Server: Server{
			HTTPAddress:     defaultHTTPAddress,
			RequestTimeout:  defaultRequestTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
			LoginRateLimit:  defaultLoginRateLimit,
			LoginRateWindow: defaultLoginRateWindow,
		},
		Workers: Workers{
			SweepInterval: defaultSweepInterval,
			SweepTimeout:  defaultSweepTimeout,
		},
	}
}
