// Tunila - Content-Based Song Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tunila

/*
Package auth identifies the user behind like and unlike requests.

Tunila does not issue credentials itself. The Tunila web backend signs an
HS256 JWT with the shared JWT_SECRET and stores it in the "token" cookie;
its "id" claim is the user ID. This package verifies that token.

Modes (AUTH_MODE):

  - jwt: the token is read from the cookie (name configurable) or from an
    "Authorization: Bearer" header. Missing or invalid tokens get 401 with
    {"success": false, "message": "Not Authorized. Login Again"}.
  - none: no token is required; handlers take the user ID from the request
    body instead. Meant for local development and the standalone Badger
    deployment.

Usage:

	mgr, err := auth.NewJWTManager(&cfg.Security)
	mw := auth.NewMiddleware(mgr, cfg.Security.AuthMode, cfg.Security.JWTCookieName)
	r.With(mw.RequireUser).Post("/like", h.LikeSong)

	// in the handler
	userID, ok := auth.UserIDFromContext(r.Context())
*/
package auth
