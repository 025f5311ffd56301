// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"github.com/google/uuid"

	"vitrina/internal/models"
)

func TestBusinessStoreCreate(t *testing.T) {
	db := testDB(t)

	_, business := createTestOwner(t, db, "test-biz-create@store-test.local", "Panadería Sol")

	if business.ID == uuid.Nil {
		t.Error("expected non-nil UUID")
	}
	if business.Name != "Panadería Sol" {
		t.Errorf("name: got %q, want %q", business.Name, "Panadería Sol")
	}
	if business.PrimaryColor != models.DefaultPrimaryColor {
		t.Errorf("primary color: got %q, want default %q", business.PrimaryColor, models.DefaultPrimaryColor)
	}
	if business.LogoURL != nil {
		t.Error("expected nil logo URL for new business")
	}
	if business.IsDemo {
		t.Error("new business must not be the demo")
	}
}

func TestBusinessStoreFindByOwner(t *testing.T) {
	db := testDB(t)
	s := NewBusinessStore(db)

	user, business := createTestOwner(t, db, "test-biz-owner@store-test.local", "Tienda Uno")

	found, err := s.FindByOwner(user.ID)
	if err != nil {
		t.Fatalf("FindByOwner: %v", err)
	}
	if found == nil {
		t.Fatal("expected business, got nil")
	}
	if found.ID != business.ID {
		t.Errorf("ID mismatch: got %s, want %s", found.ID, business.ID)
	}

	// An owner without a business yields nil, not an error. This is the
	// signal the login flow turns into the create-business screen.
	missing, err := s.FindByOwner(uuid.New())
	if err != nil {
		t.Fatalf("FindByOwner (missing): %v", err)
	}
	if missing != nil {
		t.Error("expected nil for owner without business")
	}
}

func TestBusinessStoreOneBusinessPerOwner(t *testing.T) {
	db := testDB(t)
	s := NewBusinessStore(db)

	user, _ := createTestOwner(t, db, "test-biz-unique@store-test.local", "Primera")

	if _, err := s.Create(user.ID, "Segunda"); err == nil {
		t.Error("expected unique violation creating a second business for the same owner")
	}
}

func TestBusinessStoreUpdate(t *testing.T) {
	db := testDB(t)
	s := NewBusinessStore(db)

	_, business := createTestOwner(t, db, "test-biz-update@store-test.local", "Antes")

	logo := "https://cdn.example.com/vitrina-public/logos/abc/1_logo.png"
	business.Name = "Después"
	business.Description = "Ropa y accesorios"
	business.Phone = "+34 600 000 000"
	business.WhatsApp = "+34600000000"
	business.Instagram = "@despues"
	business.PrimaryColor = "#FF5733"
	business.LogoURL = &logo

	if err := s.Update(business); err != nil {
		t.Fatalf("Update: %v", err)
	}

	found, err := s.FindByID(business.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil {
		t.Fatal("expected business, got nil")
	}
	if found.Name != "Después" {
		t.Errorf("name: got %q, want %q", found.Name, "Después")
	}
	if found.PrimaryColor != "#FF5733" {
		t.Errorf("primary color: got %q, want %q", found.PrimaryColor, "#FF5733")
	}
	if found.LogoURL == nil || *found.LogoURL != logo {
		t.Errorf("logo url: got %v, want %q", found.LogoURL, logo)
	}
}

func TestBusinessStoreFindDemo(t *testing.T) {
	db := testDB(t)
	s := NewBusinessStore(db)

	// FindDemo only finds rows flagged is_demo; an ordinary business is
	// never returned even when it is the only row matching by name.
	_, business := createTestOwner(t, db, "test-biz-demo@store-test.local", "No Demo")

	demo, err := s.FindDemo()
	if err != nil {
		t.Fatalf("FindDemo: %v", err)
	}
	if demo != nil && demo.ID == business.ID {
		t.Error("FindDemo returned a non-demo business")
	}
	if demo != nil && !demo.IsDemo {
		t.Error("FindDemo returned a row without is_demo set")
	}
}
