// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/musicdb/internal/models"
)

// ListSingers returns every singer.
//
// Method: GET
// Path: /api/singers
func (h *Handler) ListSingers(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}

	start := time.Now()
	singers, err := h.db.ListSingers(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusOK, singers, start)
}

// CreateSinger adds a singer.
//
// Method: POST
// Path: /api/singers
func (h *Handler) CreateSinger(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}

	var req CreateSingerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	start := time.Now()
	singer, err := h.db.CreateSinger(r.Context(), models.NewSinger{
		Name:        strings.TrimSpace(req.Name),
		Avatar:      req.Avatar,
		Description: req.Description,
		BirthDate:   req.BirthDate,
		Nationality: req.Nationality,
	})
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusCreated, singer, start)
}

// GetSinger returns one singer.
//
// Method: GET
// Path: /api/singers/{id}
func (h *Handler) GetSinger(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	start := time.Now()
	singer, err := h.db.GetSinger(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusOK, singer, start)
}

// UpdateSinger applies a partial update.
//
// Method: PUT
// Path: /api/singers/{id}
func (h *Handler) UpdateSinger(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateSingerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	start := time.Now()
	singer, err := h.db.UpdateSinger(r.Context(), id, models.SingerPatch{
		Name:        trimmed(req.Name),
		Avatar:      req.Avatar,
		Description: req.Description,
		BirthDate:   req.BirthDate,
		Nationality: req.Nationality,
	})
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusOK, singer, start)
}

// DeleteSinger removes a singer with their albums and songs.
//
// Method: DELETE
// Path: /api/singers/{id}
func (h *Handler) DeleteSinger(w http.ResponseWriter, r *http.Request) {
	if !h.requireDB(w) {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	start := time.Now()
	if err := h.db.DeleteSinger(r.Context(), id); err != nil {
		respondStoreError(w, err)
		return
	}
	respondData(w, http.StatusOK, models.MessageResponse{Message: "Singer deleted successfully"}, start)
}
