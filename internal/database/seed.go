package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: a demo owner
// with a demo storefront, categories, and a handful of products so the
// public demo catalog works out of the box. No-op if users already exist.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	var userID string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		RETURNING id
	`, "demo@vitrina.local", string(hash)).Scan(&userID)
	if err != nil {
		return fmt.Errorf("seed insert user: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO profiles (user_id, first_name, last_name, accepted_terms)
		VALUES ($1, $2, $3, TRUE)
	`, userID, "Demo", "Owner")
	if err != nil {
		return fmt.Errorf("seed insert profile: %w", err)
	}

	var businessID string
	err = db.QueryRow(`
		INSERT INTO businesses (user_id, name, description, phone, contact_email, whatsapp, is_demo)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		RETURNING id
	`, userID, "Mi Tienda Online",
		"Ofrecemos productos de calidad para nuestros clientes. Envíos a toda la ciudad.",
		"+595 973 229 057", "demo@vitrina.local", "+595 973 229 057").Scan(&businessID)
	if err != nil {
		return fmt.Errorf("seed insert business: %w", err)
	}

	categories := []string{"Ropa", "Accesorios", "Hogar"}
	catIDs := make([]string, 0, len(categories))
	for _, name := range categories {
		var id string
		err := db.QueryRow(`
			INSERT INTO categories (business_id, name) VALUES ($1, $2) RETURNING id
		`, businessID, name).Scan(&id)
		if err != nil {
			return fmt.Errorf("seed insert category %q: %w", name, err)
		}
		catIDs = append(catIDs, id)
	}

	products := []struct {
		name  string
		desc  string
		price string
		stock int
		cat   int
	}{
		{"Camiseta de algodón", "Camiseta 100% algodón, disponible en varios colores.", "19.99", 25, 0},
		{"Gorra clásica", "Gorra ajustable con visera curva.", "12.50", 40, 1},
		{"Taza esmaltada", "Taza de metal esmaltado, 350 ml.", "8.75", 60, 2},
		{"Sudadera con capucha", "Sudadera unisex con bolsillo canguro.", "34.90", 15, 0},
		{"Bolso de tela", "Bolso reutilizable de lona resistente.", "9.99", 30, 1},
		{"Vela aromática", "Vela de soja con aroma a lavanda.", "14.25", 20, 2},
	}
	for _, p := range products {
		_, err := db.Exec(`
			INSERT INTO products (business_id, category_id, name, description, price, stock)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, businessID, catIDs[p.cat], p.name, p.desc, p.price, p.stock)
		if err != nil {
			return fmt.Errorf("seed insert product %q: %w", p.name, err)
		}
	}

	slog.Info("database seeded with demo storefront",
		"email", "demo@vitrina.local",
		"password", "demo",
		"business_id", businessID,
	)

	return nil
}
