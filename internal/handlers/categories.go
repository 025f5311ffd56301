// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ListCategories returns the owner's categories ordered by name.
func (h *Admin) ListCategories(w http.ResponseWriter, r *http.Request) {
	business, _, ok := h.ownerBusiness(w, r)
	if !ok {
		return
	}

	categories, err := h.categories.ListByBusiness(business.ID)
	if err != nil {
		slog.Error("category list failed", "business_id", business.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "an unexpected error occurred")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

type createCategoryRequest struct {
	Name string `json:"name"`
}

// CreateCategory adds a category inline from the product form. The full
// row comes back so the client can append and preselect it without a
// re-fetch.
func (h *Admin) CreateCategory(w http.ResponseWriter, r *http.Request) {
	business, _, ok := h.ownerBusiness(w, r)
	if !ok {
		return
	}

	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if msg := validateCategory(req.Name); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	category, err := h.categories.Create(business.ID, req.Name)
	if err != nil {
		// Unique (business_id, name) violations land here too.
		slog.Error("category create failed", "business_id", business.ID, "error", err)
		respondError(w, http.StatusConflict, "could not create category; it may already exist")
		return
	}

	h.catalogCache.Invalidate(r.Context(), business.ID)

	slog.Info("category created", "business_id", business.ID, "category_id", category.ID)

	respondJSON(w, http.StatusCreated, map[string]any{"category": category})
}

// DeleteCategory removes a category. Its products survive with the
// category reference cleared; categories owned by another business are
// indistinguishable from absent ones.
func (h *Admin) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	business, _, ok := h.ownerBusiness(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "category not found")
		return
	}

	category, err := h.categories.FindByID(id)
	if err != nil {
		slog.Error("category lookup failed", "category_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "an unexpected error occurred")
		return
	}
	if category == nil || category.BusinessID != business.ID {
		respondError(w, http.StatusNotFound, "category not found")
		return
	}

	if err := h.categories.Delete(id); err != nil {
		slog.Error("category delete failed", "category_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "could not delete category")
		return
	}

	h.catalogCache.Invalidate(r.Context(), business.ID)

	slog.Info("category deleted", "business_id", business.ID, "category_id", id)

	respondJSON(w, http.StatusOK, map[string]any{"ok": true})
}
