// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-bookmarks/internal/logger"
	"github.com/MKhiriev/go-bookmarks/internal/utils"
	"github.com/MKhiriev/go-bookmarks/internal/validators"
	"github.com/MKhiriev/go-bookmarks/models"
)

// writeSuccess renders the success envelope. data is omitted when nil.
func (h *Handler) writeSuccess(w http.ResponseWriter, r *http.Request, status int, message string, data any) {
	if _, err := utils.WriteJSON(w, models.Response{Message: message, Data: data}, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("failed to write response")
	}
}

// writeError renders err as the failure envelope.
//
// Validation failures carry their field list in details. Unmapped errors are
// logged in full, reported to Sentry and answered with INTERNAL_ERROR; the
// error text is echoed in details only outside production.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	m := mappingFromError(err)

	body := models.ErrorBody{Type: m.errType, Message: m.message}

	switch m.status {
	case http.StatusInternalServerError:
		log.Err(err).Str("method", r.Method).Str("uri", r.RequestURI).Msg("request failed")
		logger.CaptureError(r.Context(), err)
		if !h.production {
			body.Details = err.Error()
		}
	default:
		log.Debug().Err(err).Int("status", m.status).Msg("request rejected")
	}

	var vErr *validators.ValidationError
	if errors.As(err, &vErr) {
		body.Details = vErr.Fields
	}

	if _, wErr := utils.WriteJSON(w, models.ErrorResponse{Error: body}, m.status); wErr != nil {
		log.Err(wErr).Msg("failed to write error response")
	}
}

// notFound answers unknown routes with the NOT_FOUND envelope.
func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	h.writeError(w, r, ErrRouteNotFound)
}
