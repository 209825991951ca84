// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"time"

	"github.com/MKhiriev/go-bookmarks/internal/config"
	"github.com/MKhiriev/go-bookmarks/internal/logger"
	"github.com/MKhiriev/go-bookmarks/internal/service"
)

type Handler struct {
	services *service.Services

	// production hides internal error details from clients.
	production bool

	// trustProxy lets RealIP rewrite RemoteAddr from proxy headers.
	trustProxy bool

	requestTimeout time.Duration
	loginLimiter   *loginRateLimiter

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		production:     cfg.App.IsProduction(),
		trustProxy:     cfg.Server.TrustProxy,
		requestTimeout: cfg.Server.RequestTimeout,
		loginLimiter:   newLoginRateLimiter(cfg.Server.LoginRateLimit, cfg.Server.LoginRateWindow),
		logger:         logger,
	}
}
