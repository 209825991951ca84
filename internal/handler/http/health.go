// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-bookmarks/internal/utils"
	"github.com/MKhiriev/go-bookmarks/models"
)

// health reports liveness and whether the caller presented a valid token.
// It sits behind optionalAuth and never rejects.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	resp := models.HealthResponse{Status: "ok"}

	if _, ok := utils.GetUserIDFromContext(r.Context()); ok {
		resp.Authenticated = true
		resp.Username, _ = utils.GetUsernameFromContext(r.Context())
	}

	h.writeSuccess(w, r, http.StatusOK, "Service is healthy", resp)
}
