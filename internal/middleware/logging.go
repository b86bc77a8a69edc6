// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package middleware provides the HTTP middleware for the catalog API:
// request logging, panic recovery, bearer-token auth, and per-IP rate
// limiting.
package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// responseWriter wraps http.ResponseWriter to capture the status code
// and the response size for the request log.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	bytes      int
	written    bool
}

// WriteHeader captures the status code before writing it.
func (rw *responseWriter) WriteHeader(code int) {
	if !rw.written {
		rw.statusCode = code
		rw.written = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

// Write ensures a default 200 status if WriteHeader was never called
// and accumulates the body size.
func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.statusCode = http.StatusOK
		rw.written = true
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += n
	return n, err
}

// Logger records one structured line per request. Server errors log at
// error level and client errors at warn, so a log filter on level
// surfaces failures without parsing status codes. The client IP honors
// the same proxy headers as the rate limiter.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		args := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"query", r.URL.RawQuery,
			"status", wrapped.statusCode,
			"bytes", wrapped.bytes,
			"duration_ms", time.Since(start).Milliseconds(),
			"ip", clientIP(r),
		}

		switch {
		case wrapped.statusCode >= 500:
			slog.Error("http request", args...)
		case wrapped.statusCode >= 400:
			slog.Warn("http request", args...)
		default:
			slog.Info("http request", args...)
		}
	})
}
