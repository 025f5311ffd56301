// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"vitrina/internal/imaging"
	"vitrina/internal/models"
)

// maxProductFormMemory bounds the in-memory portion of product multipart
// forms; larger file parts spill to disk.
const maxProductFormMemory = 4 << 20

// ListProducts returns the owner's products, newest first.
func (h *Admin) ListProducts(w http.ResponseWriter, r *http.Request) {
	business, _, ok := h.ownerBusiness(w, r)
	if !ok {
		return
	}

	products, err := h.products.ListByBusiness(business.ID)
	if err != nil {
		slog.Error("product list failed", "business_id", business.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "an unexpected error occurred")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"products": products})
}

// GetProduct returns a single product for the edit form. Products owned
// by another business are indistinguishable from absent ones.
func (h *Admin) GetProduct(w http.ResponseWriter, r *http.Request) {
	business, _, ok := h.ownerBusiness(w, r)
	if !ok {
		return
	}

	product, ok := h.findOwnedProduct(w, r, business.ID)
	if !ok {
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"product": product})
}

// CreateProduct inserts a new product from the multipart form. When an
// image file is attached, the original and a generated thumbnail are
// uploaded before the insert.
func (h *Admin) CreateProduct(w http.ResponseWriter, r *http.Request) {
	business, _, ok := h.ownerBusiness(w, r)
	if !ok {
		return
	}

	product, ok := h.productFromForm(w, r, business.ID, nil)
	if !ok {
		return
	}

	created, err := h.products.Create(product)
	if err != nil {
		slog.Error("product create failed", "business_id", business.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "could not create product")
		return
	}

	h.catalogCache.Invalidate(r.Context(), business.ID)

	slog.Info("product created", "business_id", business.ID, "product_id", created.ID)

	respondJSON(w, http.StatusCreated, map[string]any{"product": created})
}

// UpdateProduct applies the edit form to an existing product.
func (h *Admin) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	business, _, ok := h.ownerBusiness(w, r)
	if !ok {
		return
	}

	existing, ok := h.findOwnedProduct(w, r, business.ID)
	if !ok {
		return
	}

	product, ok := h.productFromForm(w, r, business.ID, existing)
	if !ok {
		return
	}
	product.ID = existing.ID

	updated, err := h.products.Update(product)
	if err != nil {
		slog.Error("product update failed", "product_id", existing.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "could not update product")
		return
	}
	if updated == nil {
		respondError(w, http.StatusNotFound, "product not found")
		return
	}

	h.catalogCache.Invalidate(r.Context(), business.ID)

	slog.Info("product updated", "business_id", business.ID, "product_id", updated.ID)

	respondJSON(w, http.StatusOK, map[string]any{"product": updated})
}

// DeleteProduct removes a product, then best-effort deletes its stored
// image and thumbnail.
func (h *Admin) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	business, _, ok := h.ownerBusiness(w, r)
	if !ok {
		return
	}

	existing, ok := h.findOwnedProduct(w, r, business.ID)
	if !ok {
		return
	}

	deleted, err := h.products.Delete(existing.ID)
	if err != nil {
		slog.Error("product delete failed", "product_id", existing.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "could not delete product")
		return
	}

	if deleted != nil && h.storage != nil {
		for _, rawURL := range []*string{deleted.ImageURL, deleted.ThumbURL} {
			if rawURL == nil {
				continue
			}
			if key, ok := h.storage.ExtractKey(*rawURL); ok {
				if err := h.storage.Delete(r.Context(), key); err != nil {
					slog.Warn("product image cleanup failed", "key", key, "error", err)
				}
			}
		}
	}

	h.catalogCache.Invalidate(r.Context(), business.ID)

	slog.Info("product deleted", "business_id", business.ID, "product_id", existing.ID)

	respondJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// findOwnedProduct parses the {id} route param and loads the product,
// writing 404 when it is absent or belongs to a different business.
func (h *Admin) findOwnedProduct(w http.ResponseWriter, r *http.Request, businessID uuid.UUID) (*models.Product, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "product not found")
		return nil, false
	}

	product, err := h.products.FindByID(id)
	if err != nil {
		slog.Error("product lookup failed", "product_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "an unexpected error occurred")
		return nil, false
	}
	if product == nil || product.BusinessID != businessID {
		respondError(w, http.StatusNotFound, "product not found")
		return nil, false
	}

	return product, true
}

// productFromForm builds a product from the multipart form, handling
// validation, category ownership, and the optional image upload. existing
// carries the prior image URLs on update; nil on create.
func (h *Admin) productFromForm(w http.ResponseWriter, r *http.Request, businessID uuid.UUID, existing *models.Product) (*models.Product, bool) {
	if err := r.ParseMultipartForm(maxProductFormMemory); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form data")
		return nil, false
	}

	name := strings.TrimSpace(r.FormValue("name"))
	description := strings.TrimSpace(r.FormValue("description"))
	price := strings.TrimSpace(r.FormValue("price"))
	categoryRaw := strings.TrimSpace(r.FormValue("category_id"))

	if msg := validateProduct(name, description, price, categoryRaw); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return nil, false
	}

	categoryID, err := uuid.Parse(categoryRaw)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid category")
		return nil, false
	}
	category, err := h.categories.FindByID(categoryID)
	if err != nil {
		slog.Error("category lookup failed", "category_id", categoryID, "error", err)
		respondError(w, http.StatusInternalServerError, "an unexpected error occurred")
		return nil, false
	}
	if category == nil || category.BusinessID != businessID {
		respondError(w, http.StatusBadRequest, "invalid category")
		return nil, false
	}

	product := &models.Product{
		BusinessID:  businessID,
		CategoryID:  &categoryID,
		Name:        name,
		Description: description,
		Price:       price,
	}

	if raw := strings.TrimSpace(r.FormValue("stock")); raw != "" {
		stock, err := strconv.Atoi(raw)
		if err != nil || stock < 0 {
			respondError(w, http.StatusBadRequest, "stock must be a non-negative integer")
			return nil, false
		}
		product.Stock = &stock
	}
	if raw := strings.TrimSpace(r.FormValue("sku")); raw != "" {
		if len(raw) > maxSKULen {
			respondError(w, http.StatusBadRequest, "sku is too long")
			return nil, false
		}
		product.SKU = &raw
	}

	if existing != nil {
		product.ImageURL = existing.ImageURL
		product.ThumbURL = existing.ThumbURL
	}

	upload, err := readImageUpload(r, "image")
	switch {
	case err == errNoFile:
		// No new image; keep what we have.
	case err != nil:
		respondError(w, http.StatusBadRequest, err.Error())
		return nil, false
	case h.storage == nil:
		respondError(w, http.StatusServiceUnavailable, "file uploads are not configured")
		return nil, false
	default:
		imageURL, thumbURL, err := h.uploadProductImage(r, businessID, upload)
		if err != nil {
			slog.Error("product image upload failed", "business_id", businessID, "error", err)
			respondError(w, http.StatusInternalServerError, "could not upload image")
			return nil, false
		}
		product.ImageURL = &imageURL
		product.ThumbURL = thumbURL
	}

	return product, true
}

// uploadProductImage stores the original image and, when the source is
// large enough, a generated thumbnail next to it.
func (h *Admin) uploadProductImage(r *http.Request, businessID uuid.UUID, upload *imageUpload) (string, *string, error) {
	ts := time.Now().Unix()
	key := fmt.Sprintf("products/%s/%d_%s", businessID, ts, upload.Filename)

	imageURL, err := h.storage.Upload(r.Context(), key, upload.ContentType, bytes.NewReader(upload.Data), int64(len(upload.Data)))
	if err != nil {
		return "", nil, fmt.Errorf("upload image: %w", err)
	}

	// SVGs scale natively; no raster thumbnail.
	if upload.ContentType == "image/svg+xml" {
		return imageURL, nil, nil
	}

	thumb, err := imaging.Thumbnail(bytes.NewReader(upload.Data), imaging.ThumbMaxWidth)
	if err != nil {
		slog.Warn("thumbnail generation failed", "key", key, "error", err)
		return imageURL, nil, nil
	}
	if thumb == nil {
		return imageURL, nil, nil
	}

	thumbKey := fmt.Sprintf("products/%s/%d_thumb_%s.jpg", businessID, ts, strings.TrimSuffix(upload.Filename, filepath.Ext(upload.Filename)))
	thumbURL, err := h.storage.Upload(r.Context(), thumbKey, "image/jpeg", bytes.NewReader(thumb), int64(len(thumb)))
	if err != nil {
		slog.Warn("thumbnail upload failed", "key", thumbKey, "error", err)
		return imageURL, nil, nil
	}

	return imageURL, &thumbURL, nil
}
