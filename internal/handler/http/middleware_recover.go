// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/MKhiriev/go-bookmarks/internal/logger"
)

// withRecover turns a panic anywhere below it into a logged, reported
// 500 INTERNAL_ERROR response. http.ErrAbortHandler is re-raised so the
// server can abort the connection as intended.
func (h *Handler) withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			stack := debug.Stack()
			logger.CapturePanic(r.Context(), rec, stack)
			logger.FromRequest(r).Error().
				Str("method", r.Method).
				Str("uri", r.RequestURI).
				Any("panic", rec).
				Bytes("stack", stack).
				Msg("panic recovered")

			h.writeError(w, r, fmt.Errorf("panic: %v", rec))
		}()

		next.ServeHTTP(w, r)
	})
}
