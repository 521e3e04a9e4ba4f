// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

package logging

import (
	"github.com/rs/zerolog"
)

// SecurityLogger records authentication events with usernames masked.
type SecurityLogger struct {
	logger zerolog.Logger
}

// NewSecurityLogger creates a security logger on the global logger.
func NewSecurityLogger() *SecurityLogger {
	return &SecurityLogger{
		logger: With().Str("component", "auth").Logger(),
	}
}

// NewSecurityLoggerWithLogger creates a security logger on a specific logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewSecurityLoggerWithLogger(logger zerolog.Logger) *SecurityLogger {
	return &SecurityLogger{
		logger: logger.With().Str("component", "auth").Logger(),
	}
}

// LogLoginSuccess records a successful login.
func (l *SecurityLogger) LogLoginSuccess(userID int64, username, role, ip string) {
	l.logger.Info().
		Str("event", "login_success").
		Int64("user_id", userID).
		Str("username", SanitizeUsername(username)).
		Str("role", role).
		Str("ip", ip).
		Msg("Login succeeded")
}

// LogLoginFailure records a rejected login and why.
func (l *SecurityLogger) LogLoginFailure(username, ip, reason string) {
	l.logger.Warn().
		Str("event", "login_failure").
		Str("username", SanitizeUsername(username)).
		Str("ip", ip).
		Str("reason", reason).
		Msg("Login failed")
}

// LogAccessDenied records a request rejected by the authorization policy.
func (l *SecurityLogger) LogAccessDenied(username, role, method, path string) {
	l.logger.Warn().
		Str("event", "access_denied").
		Str("username", SanitizeUsername(username)).
		Str("role", role).
		Str("method", method).
		Str("path", path).
		Msg("Access denied")
}

// SanitizeUsername keeps the first 2 characters: "johndoe" -> "jo***".
// Characters are runes, so multi-byte names stay valid UTF-8.
func SanitizeUsername(username string) string {
	if username == "" {
		return ""
	}
	runes := []rune(username)
	if len(runes) <= 2 {
		return "***"
	}
	return string(runes[:2]) + "***"
}
