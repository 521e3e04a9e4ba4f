// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/musicdb/internal/logging"
)

func TestAccessLog(t *testing.T) {
	originalLevel := logging.GetLevel()
	defer zerolog.SetGlobalLevel(originalLevel)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	tests := []struct {
		name      string
		status    int
		wantLevel string
		wantMsg   string
	}{
		{"success at debug", http.StatusOK, "debug", "Request handled"},
		{"client error at debug", http.StatusNotFound, "debug", "Request handled"},
		{"server error at warn", http.StatusInternalServerError, "warn", "Request failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			ctx := logging.ContextWithLogger(context.Background(), zerolog.New(&buf))
			req := httptest.NewRequest(http.MethodGet, "/api/singers", nil).WithContext(ctx)

			handler := AccessLog(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			}))
			handler.ServeHTTP(httptest.NewRecorder(), req)

			output := buf.String()
			for _, want := range []string{
				`"level":"` + tt.wantLevel + `"`,
				`"message":"` + tt.wantMsg + `"`,
				`"path":"/api/singers"`,
			} {
				if !strings.Contains(output, want) {
					t.Errorf("expected %s in output: %s", want, output)
				}
			}
		})
	}
}
