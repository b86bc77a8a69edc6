// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRecoverer(t *testing.T) {
	t.Run("catches panic and answers with the JSON error shape", func(t *testing.T) {
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("something went wrong")
		})

		handler := Recoverer(inner)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		rr := httptest.NewRecorder()

		// Should NOT panic — the middleware catches it.
		handler.ServeHTTP(rr, req)

		if rr.Code != http.StatusInternalServerError {
			t.Errorf("status: got %d, want 500", rr.Code)
		}
		if ct := rr.Header().Get("Content-Type"); !strings.Contains(ct, "application/json") {
			t.Errorf("Content-Type: got %q, want JSON", ct)
		}
		body := rr.Body.String()
		if !strings.Contains(body, `"error":"INTERNAL"`) {
			t.Errorf("body: got %q, want the INTERNAL error shape", body)
		}
		if strings.Contains(body, "something went wrong") {
			t.Errorf("body leaks the panic value: %q", body)
		}
	})

	t.Run("catches non-string panic values", func(t *testing.T) {
		for _, value := range []any{42, strings.NewReader("reader")} {
			inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				panic(value)
			})

			handler := Recoverer(inner)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			if rr.Code != http.StatusInternalServerError {
				t.Errorf("panic(%v): status got %d, want 500", value, rr.Code)
			}
		}
	})

	t.Run("ErrAbortHandler passes through", func(t *testing.T) {
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic(http.ErrAbortHandler)
		})

		handler := Recoverer(inner)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		rr := httptest.NewRecorder()

		defer func() {
			if rec := recover(); rec != http.ErrAbortHandler {
				t.Errorf("expected ErrAbortHandler to propagate, got %v", rec)
			}
		}()
		handler.ServeHTTP(rr, req)
		t.Error("expected the abort panic to propagate")
	})
}

func TestRecovererNoPanic(t *testing.T) {
	t.Run("normal pass-through without panic", func(t *testing.T) {
		var called bool
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok"}`))
		})

		handler := Recoverer(inner)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if !called {
			t.Error("next handler should have been called")
		}
		if rr.Code != http.StatusOK {
			t.Errorf("status: got %d, want 200", rr.Code)
		}
		if rr.Body.String() != `{"status":"ok"}` {
			t.Errorf("body: got %q", rr.Body.String())
		}
	})

	t.Run("preserves response headers", func(t *testing.T) {
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Custom", "test-value")
			w.WriteHeader(http.StatusOK)
		})

		handler := Recoverer(inner)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if got := rr.Header().Get("X-Custom"); got != "test-value" {
			t.Errorf("X-Custom: got %q, want %q", got, "test-value")
		}
	})
}
