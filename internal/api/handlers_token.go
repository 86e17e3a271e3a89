// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

package api

import (
	"net/http"

	"github.com/tomtom215/moodmate/internal/auth"
)

// TokenRequest asks for a development token for subject.
type TokenRequest struct {
	Subject string `json:"subject" validate:"required,max=128,printascii"`
}

// TokenResponse carries a signed bearer token.
type TokenResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
}

// TokenHandler mints development tokens. It is only routed outside
// production.
type TokenHandler struct {
	issuer *auth.Issuer
}

// NewTokenHandler creates a token handler.
func NewTokenHandler(issuer *auth.Issuer) *TokenHandler {
	return &TokenHandler{issuer: issuer}
}

// IssueToken handles POST /api/v1/auth/token.
func (t *TokenHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	token, err := t.issuer.Issue(req.Subject)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, CodeInternal, "Failed to issue token", err)
		return
	}
	respondSuccess(w, r, http.StatusOK, TokenResponse{Token: token, TokenType: "Bearer"})
}
