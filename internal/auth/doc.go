// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

/*
Package auth provides password hashing and token authentication.

Passwords are hashed with bcrypt (golang.org/x/crypto/bcrypt) at the cost
configured in security.bcrypt_cost.

When security.auth_mode is "jwt", a successful login issues an HS256 token
(github.com/golang-jwt/jwt/v5) carrying the user id, username and role.
Middleware.Authenticate requires "Authorization: Bearer <token>" and stores
the validated Claims in the request context for the authz package. In
"none" mode the middleware passes every request through.

Usage:

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	mw := auth.NewMiddleware(jwtManager, cfg.Security.AuthMode)
	r.Use(mw.Authenticate)
*/
package auth
