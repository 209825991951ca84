// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for JSON files.
// Durations are written as strings ("15m", "7d").
type StructuredJSONConfig struct {
	App struct {
		Env              string   `json:"env"`
		LogLevel         string   `json:"log_level"`
		SentryDSN        string   `json:"sentry_dsn"`
		Version          string   `json:"version"`
		TokenSignKey     string   `json:"token_sign_key"`
		TokenIssuer      string   `json:"token_issuer"`
		AccessTokenTTL   Duration `json:"access_token_ttl"`
		RefreshTokenTTL  Duration `json:"refresh_token_ttl"`
		PasswordHashCost int      `json:"password_hash_cost"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN          string `json:"dsn"`
			MaxOpenConns int    `json:"max_open_conns"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
		LoginRateLimit  int      `json:"login_rate_limit"`
		LoginRateWindow Duration `json:"login_rate_window"`
		TrustProxy      bool     `json:"trust_proxy"`
	} `json:"server,omitempty"`

	Workers struct {
		SweepInterval Duration `json:"sweep_interval"`
		SweepTimeout  Duration `json:"sweep_timeout"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			Env:              jsonCfg.App.Env,
			LogLevel:         jsonCfg.App.LogLevel,
			SentryDSN:        jsonCfg.App.SentryDSN,
			Version:          jsonCfg.App.Version,
			TokenSignKey:     jsonCfg.App.TokenSignKey,
			TokenIssuer:      jsonCfg.App.TokenIssuer,
			AccessTokenTTL:   time.Duration(jsonCfg.App.AccessTokenTTL),
			RefreshTokenTTL:  time.Duration(jsonCfg.App.RefreshTokenTTL),
			PasswordHashCost: jsonCfg.App.PasswordHashCost,
		},
		Storage: Storage{
			DB: DB{
				DSN:          jsonCfg.Storage.DB.DSN,
				MaxOpenConns: jsonCfg.Storage.DB.MaxOpenConns,
			},
		},
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			RequestTimeout:  time.Duration(jsonCfg.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(jsonCfg.Server.ShutdownTimeout),
			LoginRateLimit:  jsonCfg.Server.LoginRateLimit,
			LoginRateWindow: time.Duration(jsonCfg.Server.LoginRateWindow),
			TrustProxy:      jsonCfg.Server.TrustProxy,
		},
		Workers: Workers{
			SweepInterval: time.Duration(jsonCfg.Workers.SweepInterval),
			SweepTimeout:  time.Duration(jsonCfg.Workers.SweepTimeout),
		},
	}

	return cfg, nil
}
