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

// ProductStore manages catalog products in the database.
type ProductStore struct {
	db *sql.DB
}

// NewProductStore returns a new ProductStore.
func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db}
}

const productColumns = `id, business_id, category_id, name, description,
	price::text, stock, sku, image_url, thumb_url, created_at, updated_at`

// scanProduct scans a row into a Product struct.
func scanProduct(scanner interface{ Scan(...any) error }) (*models.Product, error) {
	var p models.Product
	err := scanner.Scan(
		&p.ID, &p.BusinessID, &p.CategoryID, &p.Name, &p.Description,
		&p.Price, &p.Stock, &p.SKU, &p.ImageURL, &p.ThumbURL,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// collectProducts drains a result set into a slice.
func collectProducts(rows *sql.Rows) ([]models.Product, error) {
	defer rows.Close()
	var items []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// ListByBusiness returns all products of a business, newest first.
func (s *ProductStore) ListByBusiness(businessID uuid.UUID) ([]models.Product, error) {
	rows, err := s.db.Query(`
		SELECT `+productColumns+` FROM products
		WHERE business_id = $1
		ORDER BY created_at DESC
	`, businessID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return collectProducts(rows)
}

// ListByBusinessCategory returns a business's products in one category,
// newest first.
func (s *ProductStore) ListByBusinessCategory(businessID, categoryID uuid.UUID) ([]models.Product, error) {
	rows, err := s.db.Query(`
		SELECT `+productColumns+` FROM products
		WHERE business_id = $1 AND category_id = $2
		ORDER BY created_at DESC
	`, businessID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}
	return collectProducts(rows)
}

// Recent returns the most recently created products of a business, bounded
// by limit. Used by the dashboard summary.
func (s *ProductStore) Recent(businessID uuid.UUID, limit int) ([]models.Product, error) {
	rows, err := s.db.Query(`
		SELECT `+productColumns+` FROM products
		WHERE business_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, businessID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent products: %w", err)
	}
	return collectProducts(rows)
}

// CountByBusiness returns the total number of products a business has.
func (s *ProductStore) CountByBusiness(businessID uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM products WHERE business_id = $1`, businessID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

// FindByID retrieves a product by ID. Returns nil if not found.
func (s *ProductStore) FindByID(id uuid.UUID) (*models.Product, error) {
	row := s.db.QueryRow(`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product by id: %w", err)
	}
	return p, nil
}

// Create inserts a new product and returns it as stored.
func (s *ProductStore) Create(p *models.Product) (*models.Product, error) {
	row := s.db.QueryRow(`
		INSERT INTO products (business_id, category_id, name, description, price, stock, sku, image_url, thumb_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+productColumns,
		p.BusinessID, p.CategoryID, p.Name, p.Description, p.Price,
		p.Stock, p.SKU, p.ImageURL, p.ThumbURL,
	)
	created, err := scanProduct(row)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return created, nil
}

// Update modifies an existing product and returns it as stored.
func (s *ProductStore) Update(p *models.Product) (*models.Product, error) {
	row := s.db.QueryRow(`
		UPDATE products SET
			category_id = $1, name = $2, description = $3, price = $4,
			stock = $5, sku = $6, image_url = $7, thumb_url = $8, updated_at = NOW()
		WHERE id = $9
		RETURNING `+productColumns,
		p.CategoryID, p.Name, p.Description, p.Price, p.Stock, p.SKU,
		p.ImageURL, p.ThumbURL, p.ID,
	)
	updated, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return updated, nil
}

// Delete removes a product by ID and returns the deleted row so the caller
// can clean up stored images. Returns nil if the product did not exist.
func (s *ProductStore) Delete(id uuid.UUID) (*models.Product, error) {
	row := s.db.QueryRow(`DELETE FROM products WHERE id = $1 RETURNING `+productColumns, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete product: %w", err)
	}
	return p, nil
}
