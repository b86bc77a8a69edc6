// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLogger(t *testing.T) {
	t.Run("calls next handler and returns correct status", func(t *testing.T) {
		var called bool
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			w.WriteHeader(http.StatusOK)
		})

		handler := Logger(inner)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/products?page=2", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if !called {
			t.Error("next handler should have been called")
		}
		if rr.Code != http.StatusOK {
			t.Errorf("status: got %d, want 200", rr.Code)
		}
	})

	t.Run("passes error statuses through unchanged", func(t *testing.T) {
		for _, status := range []int{http.StatusNotFound, http.StatusConflict, http.StatusInternalServerError} {
			inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
			})

			handler := Logger(inner)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/products/missing", nil)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != status {
				t.Errorf("status: got %d, want %d", rr.Code, status)
			}
		}
	})

	t.Run("handles write without explicit WriteHeader", func(t *testing.T) {
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Write body without calling WriteHeader — Go defaults to 200.
			w.Write([]byte(`{"status":"ok"}`))
		})

		handler := Logger(inner)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("status: got %d, want 200", rr.Code)
		}
		if rr.Body.String() != `{"status":"ok"}` {
			t.Errorf("body: got %q", rr.Body.String())
		}
	})
}

// TestResponseWriter verifies the wrapper captures status codes and
// response sizes without altering what the client receives.
func TestResponseWriter(t *testing.T) {
	t.Run("WriteHeader captures status code", func(t *testing.T) {
		rr := httptest.NewRecorder()
		rw := &responseWriter{ResponseWriter: rr, statusCode: http.StatusOK}

		rw.WriteHeader(http.StatusNotFound)

		if rw.statusCode != http.StatusNotFound {
			t.Errorf("statusCode: got %d, want 404", rw.statusCode)
		}
		if !rw.written {
			t.Error("written should be true after WriteHeader")
		}
	})

	t.Run("WriteHeader only captures first call", func(t *testing.T) {
		rr := httptest.NewRecorder()
		rw := &responseWriter{ResponseWriter: rr, statusCode: http.StatusOK}

		rw.WriteHeader(http.StatusNotFound)
		rw.WriteHeader(http.StatusInternalServerError) // Should be ignored.

		if rw.statusCode != http.StatusNotFound {
			t.Errorf("statusCode: got %d, want 404 (first call)", rw.statusCode)
		}
	})

	t.Run("Write sets default 200 status and counts bytes", func(t *testing.T) {
		rr := httptest.NewRecorder()
		rw := &responseWriter{ResponseWriter: rr, statusCode: http.StatusOK}

		rw.Write([]byte(`{"items":[]}`))
		rw.Write([]byte("\n"))

		if rw.statusCode != http.StatusOK {
			t.Errorf("statusCode: got %d, want 200", rw.statusCode)
		}
		if rw.bytes != 13 {
			t.Errorf("bytes: got %d, want 13", rw.bytes)
		}
	})

	t.Run("Write does not override explicit WriteHeader", func(t *testing.T) {
		rr := httptest.NewRecorder()
		rw := &responseWriter{ResponseWriter: rr, statusCode: http.StatusOK}

		rw.WriteHeader(http.StatusCreated)
		rw.Write([]byte(`{"id":"abc"}`))

		if rw.statusCode != http.StatusCreated {
			t.Errorf("statusCode: got %d, want 201", rw.statusCode)
		}
	})
}
