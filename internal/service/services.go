// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-bookmarks/internal/config"
	"github.com/MKhiriev/go-bookmarks/internal/logger"
	"github.com/MKhiriev/go-bookmarks/internal/store"
	"github.com/MKhiriev/go-bookmarks/internal/utils"
)

type Services struct {
	AuthService  AuthService
	TokenService TokenService
}

// NewServices wires the services on top of storages. AuthService is wrapped
// with request validation.
func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	tokenService := NewTokenService(storages.RefreshTokenRepository, cfg.App, logger)
	authService := NewAuthService(
		storages.UserRepository,
		tokenService,
		utils.NewPasswordHasher(cfg.App.PasswordHashCost),
		logger,
	)

	return &Services{
		AuthService:  NewAuthValidationService().Wrap(authService),
		TokenService: tokenService,
	}
}
