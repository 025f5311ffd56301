// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"vitrina/internal/database"
	"vitrina/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching local development.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "vitrina")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "vitrina")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	// Run migrations to ensure the schema is current.
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// cleanUsers removes test users by email. Cascades clear their profile,
// business, categories, and products. Call in t.Cleanup().
func cleanUsers(t *testing.T, db *sql.DB, emails ...string) {
	t.Helper()
	for _, email := range emails {
		db.Exec("DELETE FROM users WHERE email = $1", email)
	}
}

// createTestOwner creates a user and business for tests that need a
// tenant to hang rows off. Registers cleanup.
func createTestOwner(t *testing.T, db *sql.DB, email, businessName string) (*models.User, *models.Business) {
	t.Helper()

	users := NewUserStore(db)
	businesses := NewBusinessStore(db)

	t.Cleanup(func() { cleanUsers(t, db, email) })

	user, err := users.Create(email, "testpass123")
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	business, err := businesses.Create(user.ID, businessName)
	if err != nil {
		t.Fatalf("create test business: %v", err)
	}
	return user, business
}

// mustCreateCategory adds a category or fails the test.
func mustCreateCategory(t *testing.T, db *sql.DB, businessID uuid.UUID, name string) *models.Category {
	t.Helper()
	c, err := NewCategoryStore(db).Create(businessID, name)
	if err != nil {
		t.Fatalf("create test category: %v", err)
	}
	return c
}

// mustCreateProduct adds a product or fails the test.
func mustCreateProduct(t *testing.T, db *sql.DB, p *models.Product) *models.Product {
	t.Helper()
	created, err := NewProductStore(db).Create(p)
	if err != nil {
		t.Fatalf("create test product: %v", err)
	}
	return created
}
