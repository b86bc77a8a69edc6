// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up the HTTP routes and middleware chains for the
// catalog API. Routes split into a public read surface, an authenticated
// write surface, and an admin-only delete.
package router

import (
	"time"

	"github.com/go-chi/chi/v5"

	"storepress/internal/handlers"
	"storepress/internal/middleware"
)

// viewLimit bounds how often a single client can report views. The view
// endpoint is unauthenticated and resets the whole cache namespace, so
// it is the one route worth throttling.
const (
	viewLimit  = 30
	viewWindow = time.Minute
)

// New creates the configured chi router with all middleware and route
// groups wired up. jwtSecret verifies the bearer tokens on the write
// surface.
func New(jwtSecret string, items *handlers.Catalog) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/health", handlers.Health)

	r.Route("/api/v1/products", func(r chi.Router) {
		// Public read surface.
		r.Get("/", items.List)
		r.Get("/{slug}", items.Detail)

		// View reporting is public but rate limited per IP.
		r.Group(func(r chi.Router) {
			limiter := middleware.NewRateLimiter(viewLimit, viewWindow)
			r.Use(limiter.Middleware)
			r.Post("/{slug}/views", items.UpdateView)
		})

		// Authenticated write surface.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(jwtSecret))

			r.Post("/", items.Create)
			r.Patch("/{id}/status", items.UpdateStatus)

			// Destructive operations are admin only.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Delete("/{id}", items.Delete)
			})
		})
	})

	return r
}
