// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-bookmarks/internal/logger"
	"github.com/MKhiriev/go-bookmarks/internal/utils"
	"github.com/MKhiriev/go-bookmarks/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, pair, err := h.services.AuthService.Register(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Debug().Int64("id", user.UserID).Msg("user successfully registered")
	h.writeSuccess(w, r, http.StatusCreated, "User registered successfully", authResponse(user, pair))
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, pair, err := h.services.AuthService.Login(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Debug().Int64("id", user.UserID).Msg("user successfully logged in")
	h.writeSuccess(w, r, http.StatusOK, "Login successful", authResponse(user, pair))
}

func (h *Handler) refreshToken(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshTokenRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	token, err := h.services.AuthService.RefreshAccessToken(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeSuccess(w, r, http.StatusOK, "Token refreshed successfully", models.RefreshResponse{
		AccessToken: token.SignedString,
		ExpiresIn:   token.ExpiresIn(time.Now()),
	})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshTokenRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.services.AuthService.Logout(r.Context(), req); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeSuccess(w, r, http.StatusOK, "Logout successful", nil)
}

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		h.writeError(w, r, ErrNoAuthenticatedUser)
		return
	}

	user, err := h.services.AuthService.GetProfile(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeSuccess(w, r, http.StatusOK, "Profile retrieved successfully", models.ProfileResponse{User: user})
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		h.writeError(w, r, ErrNoAuthenticatedUser)
		return
	}

	var req models.UpdateProfileRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	req.UserID = userID

	user, err := h.services.AuthService.UpdateProfile(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeSuccess(w, r, http.StatusOK, "Profile updated successfully", models.ProfileResponse{User: user})
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		h.writeError(w, r, ErrNoAuthenticatedUser)
		return
	}

	var req models.ChangePasswordRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	req.UserID = userID

	if err := h.services.AuthService.ChangePassword(r.Context(), req); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeSuccess(w, r, http.StatusOK, "Password changed successfully", nil)
}

func (h *Handler) deactivate(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		h.writeError(w, r, ErrNoAuthenticatedUser)
		return
	}

	if err := h.services.AuthService.Deactivate(r.Context(), userID); err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeSuccess(w, r, http.StatusOK, "Account deactivated successfully", nil)
}

func authResponse(user models.User, pair models.TokenPair) models.AuthResponse {
	return models.AuthResponse{
		User:         user,
		AccessToken:  pair.Access.SignedString,
		RefreshToken: pair.Refresh.Token,
		ExpiresIn:    pair.Access.ExpiresIn(time.Now()),
	}
}
