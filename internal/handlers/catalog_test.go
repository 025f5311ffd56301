// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"vitrina/internal/models"
)

// showCatalog invokes the public catalog handler for a business id with
// an optional category query.
func showCatalog(env *testEnv, businessID, category string) *httptest.ResponseRecorder {
	url := "/api/catalog/" + businessID
	if category != "" {
		url += "?category=" + category
	}
	r := httptest.NewRequest(http.MethodGet, url, nil)
	r = withChiURLParam(r, "businessID", businessID)
	w := httptest.NewRecorder()
	env.Catalog.Show(w, r)
	return w
}

func TestCatalogShow(t *testing.T) {
	env := newTestEnv(t)

	_, business := env.createOwner(t, "catalog-show@handler-test.local", "Escaparate")

	catA, _ := env.Categories.Create(business.ID, "A")
	catB, _ := env.Categories.Create(business.ID, "B")

	for _, p := range []models.Product{
		{BusinessID: business.ID, CategoryID: &catA.ID, Name: "a1", Description: "d", Price: "1.00"},
		{BusinessID: business.ID, CategoryID: &catA.ID, Name: "a2", Description: "d", Price: "2.00"},
		{BusinessID: business.ID, CategoryID: &catB.ID, Name: "b1", Description: "d", Price: "3.00"},
	} {
		p := p
		if _, err := env.Products.Create(&p); err != nil {
			t.Fatalf("create product: %v", err)
		}
	}

	t.Run("unfiltered returns everything", func(t *testing.T) {
		w := showCatalog(env, business.ID.String(), "")
		if w.Code != http.StatusOK {
			t.Fatalf("status: got %d (%s)", w.Code, w.Body.String())
		}
		body := decodeBody(t, w)

		biz := body["business"].(map[string]any)
		if biz["name"] != "Escaparate" {
			t.Errorf("business name: got %v", biz["name"])
		}
		// The public view never exposes the owner.
		if _, leaked := biz["user_id"]; leaked {
			t.Error("public business payload must not carry user_id")
		}

		if n := len(body["products"].([]any)); n != 3 {
			t.Errorf("products: got %d, want 3", n)
		}
		if n := len(body["categories"].([]any)); n != 2 {
			t.Errorf("categories: got %d, want 2", n)
		}
	})

	t.Run("category filter narrows products", func(t *testing.T) {
		w := showCatalog(env, business.ID.String(), catA.ID.String())
		if w.Code != http.StatusOK {
			t.Fatalf("status: got %d", w.Code)
		}
		products := decodeBody(t, w)["products"].([]any)
		if len(products) != 2 {
			t.Fatalf("products: got %d, want 2", len(products))
		}
		for _, raw := range products {
			p := raw.(map[string]any)
			if p["category_id"] != catA.ID.String() {
				t.Errorf("product %v outside category A", p["name"])
			}
		}
	})

	t.Run("all is the same as no filter", func(t *testing.T) {
		w := showCatalog(env, business.ID.String(), "all")
		if w.Code != http.StatusOK {
			t.Fatalf("status: got %d", w.Code)
		}
		if n := len(decodeBody(t, w)["products"].([]any)); n != 3 {
			t.Errorf("products: got %d, want 3", n)
		}
	})
}

func TestCatalogNotFound(t *testing.T) {
	env := newTestEnv(t)

	for _, id := range []string{mustUUID(t, "00000000-0000-0000-0000-00000000dead").String(), "garbage"} {
		w := showCatalog(env, id, "")
		if w.Code != http.StatusNotFound {
			t.Errorf("id %q: got %d, want 404", id, w.Code)
		}
		body := decodeBody(t, w)
		if body["error"] == nil {
			t.Errorf("id %q: expected a JSON error body", id)
		}
	}
}

func TestCatalogCacheInvalidation(t *testing.T) {
	env := newTestEnv(t)

	user, business := env.createOwner(t, "catalog-cache@handler-test.local", "Cacheada")
	sess := ownerSession(user, business)

	cat, _ := env.Categories.Create(business.ID, "Inicial")
	if _, err := env.Products.Create(&models.Product{
		BusinessID: business.ID, CategoryID: &cat.ID, Name: "p1", Description: "d", Price: "1.00",
	}); err != nil {
		t.Fatalf("create product: %v", err)
	}

	// Prime the cache.
	if w := showCatalog(env, business.ID.String(), ""); w.Code != http.StatusOK {
		t.Fatalf("prime: %d", w.Code)
	}

	// A write through the admin handlers invalidates it.
	w := httptest.NewRecorder()
	env.Admin.CreateProduct(w, multipartForm(t, http.MethodPost, "/api/products", map[string]string{
		"name":        "p2",
		"description": "d",
		"price":       "2.00",
		"category_id": cat.ID.String(),
	}, sess))
	if w.Code != http.StatusCreated {
		t.Fatalf("create: %d (%s)", w.Code, w.Body.String())
	}

	// The next read sees the new product rather than the cached payload.
	after := showCatalog(env, business.ID.String(), "")
	if after.Code != http.StatusOK {
		t.Fatalf("after: %d", after.Code)
	}
	if n := len(decodeBody(t, after)["products"].([]any)); n != 2 {
		t.Errorf("products after write: got %d, want 2", n)
	}
}

func TestCatalogUnknownFilterIsNotCached(t *testing.T) {
	env := newTestEnv(t)

	_, business := env.createOwner(t, "catalog-keys@handler-test.local", "Llaves")

	// Arbitrary query values must not become cache entries.
	for _, raw := range []string{"not-a-uuid", "zzz-1", "12345"} {
		w := showCatalog(env, business.ID.String(), raw)
		if w.Code != http.StatusOK {
			t.Fatalf("filter %q: got %d (%s)", raw, w.Code, w.Body.String())
		}
		if n := len(decodeBody(t, w)["products"].([]any)); n != 0 {
			t.Errorf("filter %q: got %d products, want none", raw, n)
		}
	}

	keys, err := env.Valkey.Keys(context.Background(), "catalog:"+business.ID.String()+"*").Result()
	if err != nil {
		t.Fatalf("scan cache keys: %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("cache keys after unknown filters: got %v, want none", keys)
	}
}

func TestCatalogAllSharesUnfilteredCacheEntry(t *testing.T) {
	env := newTestEnv(t)

	_, business := env.createOwner(t, "catalog-all@handler-test.local", "Todo")

	for _, category := range []string{"", "all"} {
		if w := showCatalog(env, business.ID.String(), category); w.Code != http.StatusOK {
			t.Fatalf("category %q: got %d", category, w.Code)
		}
	}

	keys, err := env.Valkey.Keys(context.Background(), "catalog:"+business.ID.String()+"*").Result()
	if err != nil {
		t.Fatalf("scan cache keys: %v", err)
	}
	if len(keys) != 1 {
		t.Errorf("cache keys: got %v, want exactly the unfiltered entry", keys)
	}
}
