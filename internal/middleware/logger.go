// MusicDB - Music Catalog REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/musicdb

package middleware

import (
	"net/http"
	"time"

	"github.com/tomtom215/musicdb/internal/logging"
)

// SlowRequestThreshold is the latency above which a request is logged at warn.
const SlowRequestThreshold = time.Second

// AccessLog writes one structured log line per request. Server errors and
// slow requests are logged at warn, everything else at debug.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapper := newStatusRecorder(w)

		next.ServeHTTP(wrapper, r)

		duration := time.Since(start)
		event := logging.Ctx(r.Context()).Debug()
		msg := "Request handled"
		switch {
		case wrapper.statusCode >= http.StatusInternalServerError:
			event = logging.Ctx(r.Context()).Warn()
			msg = "Request failed"
		case duration > SlowRequestThreshold:
			event = logging.Ctx(r.Context()).Warn()
			msg = "Slow request detected"
		}

		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", wrapper.statusCode).
			Int64("duration_ms", duration.Milliseconds()).
			Str("remote_addr", r.RemoteAddr).
			Msg(msg)
	})
}
