// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog item belonging to one business and optionally one
// category. Price is carried as a decimal string so values like "19.99"
// survive round-trips exactly; it is never represented as a float.
type Product struct {
	ID          uuid.UUID  `json:"id"`
	BusinessID  uuid.UUID  `json:"business_id"`
	CategoryID  *uuid.UUID `json:"category_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       string     `json:"price"`
	Stock       *int       `json:"stock"`
	SKU         *string    `json:"sku"`
	ImageURL    *string    `json:"image_url"`
	ThumbURL    *string    `json:"thumb_url"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// InCategory reports whether the product belongs to the given category.
func (p *Product) InCategory(id uuid.UUID) bool {
	return p.CategoryID != nil && *p.CategoryID == id
}
