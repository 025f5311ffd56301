// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	qrcode "github.com/skip2/go-qrcode"

	"vitrina/internal/middleware"
)

// maxSettingsFormMemory bounds the in-memory portion of the settings
// multipart form; larger file parts spill to disk.
const maxSettingsFormMemory = 4 << 20

type createBusinessRequest struct {
	Name string `json:"name"`
}

// CreateBusiness creates the business for an account that doesn't have
// one yet — accounts whose registration failed after the user insert
// land here on next login.
func (h *Admin) CreateBusiness(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	existing, err := h.businesses.FindByOwner(sess.UserID)
	if err != nil {
		slog.Error("business lookup failed", "user_id", sess.UserID, "error", err)
		respondError(w, http.StatusInternalServerError, "an unexpected error occurred")
		return
	}
	if existing != nil {
		respondError(w, http.StatusConflict, "a business already exists for this account")
		return
	}

	var req createBusinessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "business name is required")
		return
	}

	business, err := h.businesses.Create(sess.UserID, req.Name)
	if err != nil {
		slog.Error("business create failed", "user_id", sess.UserID, "error", err)
		respondError(w, http.StatusInternalServerError, "could not create business")
		return
	}

	// Record the new business on the session so later requests skip the lookup.
	updated := *sess
	updated.BusinessID = &business.ID
	if err := h.sessions.Update(r.Context(), r, &updated); err != nil {
		slog.Error("session update failed", "user_id", sess.UserID, "error", err)
	}

	slog.Info("business created", "user_id", sess.UserID, "business_id", business.ID)

	respondJSON(w, http.StatusCreated, map[string]any{
		"business": business,
		"next":     "/dashboard",
	})
}

// GetBusiness returns the owner's business row for the settings screen.
func (h *Admin) GetBusiness(w http.ResponseWriter, r *http.Request) {
	business, _, ok := h.ownerBusiness(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"business": business})
}

// UpdateBusiness applies the settings form. When a logo file is present
// it is uploaded first, then every field lands in a single row update
// carrying the resolved logo URL. The two steps are not transactional;
// an orphaned object after a failed update is logged and accepted.
func (h *Admin) UpdateBusiness(w http.ResponseWriter, r *http.Request) {
	business, sess, ok := h.ownerBusiness(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxSettingsFormMemory); err != nil {
		respondError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	description := strings.TrimSpace(r.FormValue("description"))
	primaryColor := strings.TrimSpace(r.FormValue("primary_color"))
	website := strings.TrimSpace(r.FormValue("website"))

	if msg := validateBusiness(name, description, primaryColor, website); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	logoURL := business.LogoURL
	upload, err := readImageUpload(r, "logo")
	switch {
	case err == errNoFile:
		// Keep the existing logo.
	case err != nil:
		respondError(w, http.StatusBadRequest, err.Error())
		return
	case h.storage == nil:
		respondError(w, http.StatusServiceUnavailable, "file uploads are not configured")
		return
	default:
		key := fmt.Sprintf("logos/%s/%d_%s", sess.UserID, time.Now().Unix(), upload.Filename)
		url, err := h.storage.Upload(r.Context(), key, upload.ContentType, bytes.NewReader(upload.Data), int64(len(upload.Data)))
		if err != nil {
			slog.Error("logo upload failed", "business_id", business.ID, "error", err)
			respondError(w, http.StatusInternalServerError, "could not upload logo")
			return
		}
		logoURL = &url
	}

	business.Name = name
	business.Description = description
	business.Phone = strings.TrimSpace(r.FormValue("phone"))
	business.ContactEmail = strings.TrimSpace(r.FormValue("contact_email"))
	business.WhatsApp = strings.TrimSpace(r.FormValue("whatsapp"))
	business.Instagram = strings.TrimSpace(r.FormValue("instagram"))
	business.Address = strings.TrimSpace(r.FormValue("address"))
	business.Website = website
	business.LogoURL = logoURL
	if primaryColor != "" {
		business.PrimaryColor = primaryColor
	}

	if err := h.businesses.Update(business); err != nil {
		slog.Error("business update failed", "business_id", business.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "could not save settings")
		return
	}

	h.catalogCache.Invalidate(r.Context(), business.ID)

	slog.Info("business updated", "business_id", business.ID)

	respondJSON(w, http.StatusOK, map[string]any{"business": business})
}

// CatalogQR renders a QR code PNG pointing at the business's public
// catalog page, sized for print.
func (h *Admin) CatalogQR(w http.ResponseWriter, r *http.Request) {
	business, _, ok := h.ownerBusiness(w, r)
	if !ok {
		return
	}

	catalogURL := fmt.Sprintf("%s/catalogo/%s", strings.TrimRight(h.publicBaseURL, "/"), business.ID)

	png, err := qrcode.Encode(catalogURL, qrcode.Medium, 512)
	if err != nil {
		slog.Error("qr encode failed", "business_id", business.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "could not generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "private, max-age=300")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
