// MoodMate - Mood and Weather Aware Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodmate

/*
Package auth resolves the user ID of an HTTP request.

Authentication Modes (AUTH_MODE):

 1. jwt (default): Authorization: Bearer <token>. Tokens are HS256 JWTs
    (golang-jwt/jwt/v5) and the sub claim is the user ID. Tokens without
    a subject are rejected with ErrMissingSubject.

 2. none: the X-User-ID header is trusted as-is. Development only; config
    validation refuses it in production.

Usage Example:

	verifier, err := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	if err != nil {
	    return err
	}
	mw := auth.NewMiddleware(auth.ModeJWT, verifier)
	r.With(mw.Authenticate).Get("/api/v1/credits", handler)

	// In the handler
	userID := auth.UserID(r.Context())

Issuer mints tokens for local development and tests.
*/
package auth
