// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

package database

import (
	"errors"
	"fmt"
	"io"
)

// Sentinel errors returned by store operations. Handlers match them with
// errors.Is and map them onto envelope error codes.
var (
	// ErrNotFound means the addressed row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a unique value or association already exists.
	ErrConflict = errors.New("conflict")

	// ErrInvalidReference means a referenced row does not exist.
	ErrInvalidReference = errors.New("invalid reference")
)

// Error is a store error with a client-facing message. Kind is one of the
// sentinel errors above.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func notFound(format string, args ...interface{}) error {
	return &Error{Kind: ErrNotFound, Msg: fmt.Sprintf(format, args...)}
}

func conflict(format string, args ...interface{}) error {
	return &Error{Kind: ErrConflict, Msg: fmt.Sprintf(format, args...)}
}

func invalidRef(format string, args ...interface{}) error {
	return &Error{Kind: ErrInvalidReference, Msg: fmt.Sprintf(format, args...)}
}

// isDomainError reports whether err is one of the expected store outcomes
// rather than a failure of the database itself.
func isDomainError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) || errors.Is(err, ErrInvalidReference)
}

// closeQuietly closes a resource and explicitly ignores any error
// Use this for cleanup operations in error paths where Close() errors are not actionable
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}
