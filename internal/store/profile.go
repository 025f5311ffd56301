// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"vitrina/internal/models"
)

// ProfileStore manages owner profile rows in the database.
type ProfileStore struct {
	db *sql.DB
}

// NewProfileStore returns a new ProfileStore.
func NewProfileStore(db *sql.DB) *ProfileStore {
	return &ProfileStore{db: db}
}

// Create inserts the profile row for a user. Registration step two.
func (s *ProfileStore) Create(userID uuid.UUID, firstName, lastName string, acceptedTerms bool) (*models.Profile, error) {
	p := &models.Profile{}
	err := s.db.QueryRow(`
		INSERT INTO profiles (user_id, first_name, last_name, accepted_terms)
		VALUES ($1, $2, $3, $4)
		RETURNING user_id, first_name, last_name, accepted_terms, created_at
	`, userID, firstName, lastName, acceptedTerms).Scan(
		&p.UserID, &p.FirstName, &p.LastName, &p.AcceptedTerms, &p.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return p, nil
}

// FindByUserID retrieves the profile for a user. Returns nil if not found.
func (s *ProfileStore) FindByUserID(userID uuid.UUID) (*models.Profile, error) {
	p := &models.Profile{}
	err := s.db.QueryRow(`
		SELECT user_id, first_name, last_name, accepted_terms, created_at
		FROM profiles WHERE user_id = $1
	`, userID).Scan(&p.UserID, &p.FirstName, &p.LastName, &p.AcceptedTerms, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find profile by user id: %w", err)
	}
	return p, nil
}
