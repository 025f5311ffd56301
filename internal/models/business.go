// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultPrimaryColor is the brand color assigned to new storefronts.
const DefaultPrimaryColor = "#33C3F0"

// Business is a tenant's storefront profile. Exactly one business exists
// per user (enforced by a unique constraint on user_id).
type Business struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Phone        string    `json:"phone"`
	ContactEmail string    `json:"contact_email"`
	WhatsApp     string    `json:"whatsapp"`
	Instagram    string    `json:"instagram"`
	Address      string    `json:"address"`
	Website      string    `json:"website"`
	LogoURL      *string   `json:"logo_url"`
	PrimaryColor string    `json:"primary_color"`
	IsDemo       bool      `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PublicBusiness is the subset of Business exposed on the public catalog.
type PublicBusiness struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Phone        string    `json:"phone"`
	ContactEmail string    `json:"contact_email"`
	WhatsApp     string    `json:"whatsapp"`
	Instagram    string    `json:"instagram"`
	Address      string    `json:"address"`
	Website      string    `json:"website"`
	LogoURL      *string   `json:"logo_url"`
	PrimaryColor string    `json:"primary_color"`
}

// Public returns the catalog-visible view of the business.
func (b *Business) Public() PublicBusiness {
	return PublicBusiness{
		ID:           b.ID,
		Name:         b.Name,
		Description:  b.Description,
		Phone:        b.Phone,
		ContactEmail: b.ContactEmail,
		WhatsApp:     b.WhatsApp,
		Instagram:    b.Instagram,
		Address:      b.Address,
		Website:      b.Website,
		LogoURL:      b.LogoURL,
		PrimaryColor: b.PrimaryColor,
	}
}
