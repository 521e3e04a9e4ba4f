// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared across the process. Field names in
// error messages come from the struct's json tag, and errors convert to the
// API's VALIDATION_ERROR format through ToAPIError.
//
// # Quick Start
//
//	type CreateSingerRequest struct {
//	    Name      string  `json:"name" validate:"required,notblank,max=100"`
//	    BirthDate *string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
//	}
//
//	if err := validation.ValidateStruct(&req); err != nil {
//	    apiErr := err.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
//
// # Custom Tags
//
//   - notblank: string must contain a non-whitespace character
package validation
