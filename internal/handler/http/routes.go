// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const defaultRequestTimeout = 30 * time.Second

// Init builds the router.
//
// Behind a trusted proxy the client address is first taken from proxy
// headers. Every request then passes, in order: trace id, access log, panic recovery,
// request timeout, response compression and gzip request decoding. Unknown
// routes and unsupported methods answer 404 NOT_FOUND.
func (h *Handler) Init() *chi.Mux {
	timeout := h.requestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	router := chi.NewRouter()
	if h.trustProxy {
		router.Use(middleware.RealIP)
	}
	router.Use(
		h.withTraceID,
		h.withLogging,
		h.withRecover,
		middleware.Timeout(timeout),
		middleware.Compress(5, "application/json"),
		h.withGzipRequest,
	)

	// must be set before sub-routers are mounted so they inherit them
	router.NotFound(h.notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router, h.notFound))

	router.Route("/api", func(r chi.Router) {
		r.With(h.optionalAuth).Get("/health", h.health)

		r.Route("/auth", func(r chi.Router) {
			// routes without authorization
			r.Post("/register", h.register)
			r.With(h.rateLimitLogin).Post("/login", h.login)
			r.Post("/refresh-token", h.refreshToken)
			r.Post("/logout", h.logout)

			// routes with authorization
			r.Group(func(r chi.Router) {
				r.Use(h.auth)
				r.Get("/profile", h.getProfile)
				r.Put("/profile", h.updateProfile)
				r.Delete("/profile", h.deactivate)
				r.Put("/change-password", h.changePassword)
			})
		})
	})

	return router
}
