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

// BusinessStore manages storefront profiles in the database.
type BusinessStore struct {
	db *sql.DB
}

// NewBusinessStore returns a new BusinessStore.
func NewBusinessStore(db *sql.DB) *BusinessStore {
	return &BusinessStore{db: db}
}

const businessColumns = `id, user_id, name, description, phone, contact_email,
	whatsapp, instagram, address, website, logo_url, primary_color, is_demo,
	created_at, updated_at`

// scanBusiness scans a row into a Business struct.
func scanBusiness(scanner interface{ Scan(...any) error }) (*models.Business, error) {
	var b models.Business
	err := scanner.Scan(
		&b.ID, &b.UserID, &b.Name, &b.Description, &b.Phone, &b.ContactEmail,
		&b.WhatsApp, &b.Instagram, &b.Address, &b.Website, &b.LogoURL,
		&b.PrimaryColor, &b.IsDemo, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// FindByOwner retrieves the single business owned by a user. Returns nil
// when no business exists for the user; the caller decides whether that
// means "redirect to create-business" or an error state.
func (s *BusinessStore) FindByOwner(userID uuid.UUID) (*models.Business, error) {
	row := s.db.QueryRow(`SELECT `+businessColumns+` FROM businesses WHERE user_id = $1`, userID)
	b, err := scanBusiness(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find business by owner: %w", err)
	}
	return b, nil
}

// FindByID retrieves a business by ID. Returns nil if not found.
func (s *BusinessStore) FindByID(id uuid.UUID) (*models.Business, error) {
	row := s.db.QueryRow(`SELECT `+businessColumns+` FROM businesses WHERE id = $1`, id)
	b, err := scanBusiness(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find business by id: %w", err)
	}
	return b, nil
}

// FindDemo retrieves the seeded demo storefront. Returns nil if no demo
// business exists (production databases are never seeded).
func (s *BusinessStore) FindDemo() (*models.Business, error) {
	row := s.db.QueryRow(`SELECT ` + businessColumns + ` FROM businesses WHERE is_demo ORDER BY created_at LIMIT 1`)
	b, err := scanBusiness(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find demo business: %w", err)
	}
	return b, nil
}

// Create inserts a new business for a user with the default brand color.
// Fails with a unique violation if the user already owns a business.
func (s *BusinessStore) Create(userID uuid.UUID, name string) (*models.Business, error) {
	row := s.db.QueryRow(`
		INSERT INTO businesses (user_id, name, primary_color)
		VALUES ($1, $2, $3)
		RETURNING `+businessColumns,
		userID, name, models.DefaultPrimaryColor,
	)
	b, err := scanBusiness(row)
	if err != nil {
		return nil, fmt.Errorf("create business: %w", err)
	}
	return b, nil
}

// Update modifies every settable column of a business in one statement.
// The settings flow builds the full column set client-side, so partial
// updates are not needed.
func (s *BusinessStore) Update(b *models.Business) error {
	_, err := s.db.Exec(`
		UPDATE businesses SET
			name = $1, description = $2, phone = $3, contact_email = $4,
			whatsapp = $5, instagram = $6, address = $7, website = $8,
			logo_url = $9, primary_color = $10, updated_at = NOW()
		WHERE id = $11
	`, b.Name, b.Description, b.Phone, b.ContactEmail, b.WhatsApp,
		b.Instagram, b.Address, b.Website, b.LogoURL, b.PrimaryColor, b.ID)
	if err != nil {
		return fmt.Errorf("update business: %w", err)
	}
	return nil
}
