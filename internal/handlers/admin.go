// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"vitrina/internal/cache"
	"vitrina/internal/middleware"
	"vitrina/internal/models"
	"vitrina/internal/session"
	"vitrina/internal/storage"
	"vitrina/internal/store"
)

// dashboardRecentLimit caps the recent-products list on the dashboard.
const dashboardRecentLimit = 5

// Admin groups the authenticated owner-facing endpoints: dashboard,
// business settings, product and category management.
type Admin struct {
	sessions      *session.Store
	businesses    *store.BusinessStore
	products      *store.ProductStore
	categories    *store.CategoryStore
	storage       *storage.Client
	catalogCache  *cache.CatalogCache
	publicBaseURL string
}

// NewAdmin creates a new Admin handler group. storageClient may be nil,
// which disables image uploads.
func NewAdmin(sessions *session.Store, businesses *store.BusinessStore, products *store.ProductStore, categories *store.CategoryStore, storageClient *storage.Client, catalogCache *cache.CatalogCache, publicBaseURL string) *Admin {
	return &Admin{
		sessions:      sessions,
		businesses:    businesses,
		products:      products,
		categories:    categories,
		storage:       storageClient,
		catalogCache:  catalogCache,
		publicBaseURL: publicBaseURL,
	}
}

// ownerBusiness resolves the session owner's business. When no business
// row exists it writes a 409 with code "no_business" — the client routes
// that to its business creation screen — and returns ok=false.
func (h *Admin) ownerBusiness(w http.ResponseWriter, r *http.Request) (*models.Business, *session.Data, bool) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return nil, nil, false
	}

	business, err := h.businesses.FindByOwner(sess.UserID)
	if err != nil {
		slog.Error("business lookup failed", "user_id", sess.UserID, "error", err)
		respondError(w, http.StatusInternalServerError, "an unexpected error occurred")
		return nil, nil, false
	}
	if business == nil {
		respondCode(w, http.StatusConflict, "no_business", "no business configured for this account")
		return nil, sess, false
	}

	return business, sess, true
}

// Dashboard returns the owner's business together with recent products
// and catalog totals.
func (h *Admin) Dashboard(w http.ResponseWriter, r *http.Request) {
	business, _, ok := h.ownerBusiness(w, r)
	if !ok {
		return
	}

	recent, err := h.products.Recent(business.ID, dashboardRecentLimit)
	if err != nil {
		slog.Error("dashboard recent products failed", "business_id", business.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "an unexpected error occurred")
		return
	}

	productCount, err := h.products.CountByBusiness(business.ID)
	if err != nil {
		slog.Error("dashboard product count failed", "business_id", business.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "an unexpected error occurred")
		return
	}

	categoryCount, err := h.categories.CountByBusiness(business.ID)
	if err != nil {
		slog.Error("dashboard category count failed", "business_id", business.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "an unexpected error occurred")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"business":        business,
		"recent_products": recent,
		"product_count":   productCount,
		"category_count":  categoryCount,
	})
}
