// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"vitrina/internal/middleware"
	"vitrina/internal/session"
	"vitrina/internal/store"
)

// Auth groups the authentication endpoints.
type Auth struct {
	sessions   *session.Store
	users      *store.UserStore
	profiles   *store.ProfileStore
	businesses *store.BusinessStore
}

// NewAuth creates a new Auth handler group.
func NewAuth(sessions *session.Store, users *store.UserStore, profiles *store.ProfileStore, businesses *store.BusinessStore) *Auth {
	return &Auth{
		sessions:   sessions,
		users:      users,
		profiles:   profiles,
		businesses: businesses,
	}
}

type registerRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	BusinessName  string `json:"business_name"`
	AcceptedTerms bool   `json:"accepted_terms"`
}

// Register creates a new account: user, then profile, then business, as
// three sequential inserts. A failure partway through leaves the earlier
// rows committed; the login flow routes such accounts to business
// creation, so no compensation runs here.
func (a *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if msg := validateRegister(req.Email, req.Password, req.FirstName, req.LastName, req.BusinessName); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}
	if !req.AcceptedTerms {
		respondError(w, http.StatusBadRequest, "you must accept the terms and conditions")
		return
	}

	existing, err := a.users.FindByEmail(req.Email)
	if err != nil {
		slog.Error("register email lookup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "an unexpected error occurred")
		return
	}
	if existing != nil {
		respondCode(w, http.StatusConflict, "email_taken", "an account with this email already exists")
		return
	}

	user, err := a.users.Create(req.Email, req.Password)
	if err != nil {
		slog.Error("register user create failed", "error", err)
		respondError(w, http.StatusInternalServerError, "could not create account")
		return
	}

	profile, err := a.profiles.Create(user.ID, req.FirstName, req.LastName, req.AcceptedTerms)
	if err != nil {
		slog.Error("register profile create failed", "user_id", user.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "could not create profile")
		return
	}

	business, err := a.businesses.Create(user.ID, req.BusinessName)
	if err != nil {
		slog.Error("register business create failed", "user_id", user.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "could not create business")
		return
	}

	if _, err := a.sessions.Create(r.Context(), w, &session.Data{
		UserID:     user.ID,
		Email:      user.Email,
		Name:       profile.FullName(),
		BusinessID: &business.ID,
	}); err != nil {
		slog.Error("register session create failed", "user_id", user.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "could not create session")
		return
	}

	slog.Info("user registered", "user_id", user.ID, "business_id", business.ID)

	respondJSON(w, http.StatusCreated, map[string]any{
		"user":     user,
		"business": business,
		"next":     "/dashboard",
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials, creates a session, and tells the client
// where to go next: accounts without a business land on the business
// creation screen.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	user, err := a.users.FindByEmail(req.Email)
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		respondError(w, http.StatusInternalServerError, "an unexpected error occurred")
		return
	}
	if user == nil || !a.users.CheckPassword(user, req.Password) {
		respondCode(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
		return
	}

	profile, err := a.profiles.FindByUserID(user.ID)
	if err != nil {
		slog.Error("login profile lookup failed", "user_id", user.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "an unexpected error occurred")
		return
	}

	business, err := a.businesses.FindByOwner(user.ID)
	if err != nil {
		slog.Error("login business lookup failed", "user_id", user.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "an unexpected error occurred")
		return
	}

	data := session.Data{
		UserID: user.ID,
		Email:  user.Email,
	}
	if profile != nil {
		data.Name = profile.FullName()
	}

	next := "/create-business"
	if business != nil {
		data.BusinessID = &business.ID
		next = "/dashboard"
	}

	if _, err := a.sessions.Create(r.Context(), w, &data); err != nil {
		slog.Error("login session create failed", "user_id", user.ID, "error", err)
		respondError(w, http.StatusInternalServerError, "could not create session")
		return
	}

	slog.Info("user logged in", "user_id", user.ID)

	respondJSON(w, http.StatusOK, map[string]any{
		"user": user,
		"next": next,
	})
}

// Logout destroys the session. The cookie is expired before the backend
// delete so the client's guards react even if Valkey is slow.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Error("logout failed", "error", err)
	}
	respondJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// Session returns the current identity. The client calls this once on
// load to resolve its auth state before rendering guarded screens.
func (a *Auth) Session(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	// Sessions can outlive their account. Confirm the user row still
	// exists before the client trusts the cookie.
	user, err := a.users.FindByID(sess.UserID)
	if err != nil {
		slog.Error("session user lookup failed", "user_id", sess.UserID, "error", err)
		respondError(w, http.StatusInternalServerError, "an unexpected error occurred")
		return
	}
	if user == nil {
		if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
			slog.Error("stale session destroy failed", "user_id", sess.UserID, "error", err)
		}
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"user_id":     sess.UserID,
		"email":       sess.Email,
		"name":        sess.Name,
		"business_id": sess.BusinessID,
	})
}
