// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"vitrina/internal/cache"
	"vitrina/internal/models"
	"vitrina/internal/store"
)

// Catalog serves the public, read-only storefront view.
type Catalog struct {
	businesses   *store.BusinessStore
	categories   *store.CategoryStore
	products     *store.ProductStore
	catalogCache *cache.CatalogCache
}

// NewCatalog creates a new Catalog handler group.
func NewCatalog(businesses *store.BusinessStore, categories *store.CategoryStore, products *store.ProductStore, catalogCache *cache.CatalogCache) *Catalog {
	return &Catalog{
		businesses:   businesses,
		categories:   categories,
		products:     products,
		catalogCache: catalogCache,
	}
}

// catalogResponse is the public catalog payload: the storefront profile,
// its categories (name ASC), and its products (newest first).
type catalogResponse struct {
	Business   models.PublicBusiness `json:"business"`
	Categories []models.Category     `json:"categories"`
	Products   []models.Product      `json:"products"`
}

// Show renders the catalog for one business. The path id may be the
// literal "demo", resolving the seeded demo storefront. An optional
// ?category= narrows products; absent or "all" returns everything.
// Responses are cached per (business, category) with a short TTL.
func (c *Catalog) Show(w http.ResponseWriter, r *http.Request) {
	business, err := c.resolveBusiness(chi.URLParam(r, "businessID"))
	if err != nil {
		slog.Error("catalog business lookup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "an unexpected error occurred")
		return
	}
	if business == nil {
		respondError(w, http.StatusNotFound, "business not found")
		return
	}

	category := r.URL.Query().Get("category")
	if category == "all" {
		category = ""
	}

	// Only the known filter shapes become cache keys. The query value is
	// attacker-controlled on this unauthenticated path; caching arbitrary
	// strings would let anyone grow the keyspace without bound.
	cacheable := category == ""
	if !cacheable {
		_, parseErr := uuid.Parse(category)
		cacheable = parseErr == nil
	}

	var key string
	if cacheable {
		key = cache.Key(business.ID, category)
		if payload, ok := c.catalogCache.Get(r.Context(), key); ok {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			w.Write(payload)
			return
		}
	}

	categories, err := c.categories.ListByBusiness(business.ID)
	if err != nil {
		slog.Error("catalog categories failed", "business_id", business.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "an unexpected error occurred")
		return
	}

	products, err := c.listProducts(business.ID, category)
	if err != nil {
		slog.Error("catalog products failed", "business_id", business.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "an unexpected error occurred")
		return
	}

	resp := catalogResponse{
		Business:   business.Public(),
		Categories: categories,
		Products:   products,
	}

	payload, err := json.Marshal(resp)
	if err != nil {
		slog.Error("catalog marshal failed", "business_id", business.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "an unexpected error occurred")
		return
	}

	if cacheable {
		c.catalogCache.Set(r.Context(), key, payload)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}

// resolveBusiness maps the path segment to a business row. Unparseable
// ids are treated as not found rather than bad requests; the public URL
// is typed and shared by humans.
func (c *Catalog) resolveBusiness(raw string) (*models.Business, error) {
	if raw == "demo" {
		return c.businesses.FindDemo()
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, nil
	}
	return c.businesses.FindByID(id)
}

// listProducts applies the category filter. "" and "all" mean no filter;
// an unknown or foreign category id yields an empty list, not an error.
func (c *Catalog) listProducts(businessID uuid.UUID, category string) ([]models.Product, error) {
	if category == "" || category == "all" {
		return c.products.ListByBusiness(businessID)
	}
	categoryID, err := uuid.Parse(category)
	if err != nil {
		return []models.Product{}, nil
	}
	return c.products.ListByBusinessCategory(businessID, categoryID)
}
