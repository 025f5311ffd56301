// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// storefront API. It organizes routes into public, auth, and
// authenticated owner groups with appropriate middleware stacks.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"vitrina/internal/handlers"
	"vitrina/internal/middleware"
	"vitrina/internal/session"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. authLimiter throttles credential endpoints
// per client IP.
func New(sessionStore *session.Store, metrics *middleware.HTTPMetrics, authLimiter *middleware.RateLimiter, auth *handlers.Auth, admin *handlers.Admin, catalog *handlers.Catalog) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(metrics.Middleware)
	r.Use(middleware.LoadSession(sessionStore))

	// Liveness and metrics — no auth.
	r.Get("/healthz", healthHandler)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		// Auth endpoints — rate limited per IP.
		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(authLimiter.Middleware)
				r.Post("/register", auth.Register)
				r.Post("/login", auth.Login)
			})
			r.Post("/logout", auth.Logout)
			r.Get("/session", auth.Session)
		})

		// Public catalog — readable without a session.
		r.Get("/catalog/{businessID}", catalog.Show)

		// Authenticated owner area.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Get("/dashboard", admin.Dashboard)

			r.Route("/business", func(r chi.Router) {
				r.Post("/", admin.CreateBusiness)
				r.Get("/", admin.GetBusiness)
				r.Put("/", admin.UpdateBusiness)
				r.Get("/catalog-qr", admin.CatalogQR)
			})

			r.Route("/products", func(r chi.Router) {
				r.Get("/", admin.ListProducts)
				r.Post("/", admin.CreateProduct)
				r.Get("/{id}", admin.GetProduct)
				r.Put("/{id}", admin.UpdateProduct)
				r.Delete("/{id}", admin.DeleteProduct)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", admin.ListCategories)
				r.Post("/", admin.CreateCategory)
				r.Delete("/{id}", admin.DeleteCategory)
			})
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
