// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler integration
// tests. Tests are skipped when PostgreSQL or Valkey are unavailable.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"vitrina/internal/cache"
	"vitrina/internal/database"
	"vitrina/internal/middleware"
	"vitrina/internal/models"
	"vitrina/internal/session"
	"vitrina/internal/storage"
	"vitrina/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "vitrina")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "vitrina")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		// Clean up test session and cache keys.
		for _, pattern := range []string{"session:*", "catalog:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB           *sql.DB
	Valkey       *redis.Client
	Sessions     *session.Store
	Users        *store.UserStore
	Profiles     *store.ProfileStore
	Businesses   *store.BusinessStore
	Categories   *store.CategoryStore
	Products     *store.ProductStore
	CatalogCache *cache.CatalogCache
	Auth         *Auth
	Admin        *Admin
	Catalog      *Catalog
}

// newTestEnv creates a complete test environment with all handler
// dependencies and no object storage, so handlers answer uploads with
// their disabled path.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithStorage(t, nil)
}

// newTestEnvWithStorage is newTestEnv with an explicit storage client,
// typically pointed at an in-process S3 endpoint.
func newTestEnvWithStorage(t *testing.T, storageClient *storage.Client) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	sessions := session.NewStore(vk, false)
	users := store.NewUserStore(db)
	profiles := store.NewProfileStore(db)
	businesses := store.NewBusinessStore(db)
	categories := store.NewCategoryStore(db)
	products := store.NewProductStore(db)
	catalogCache := cache.NewCatalogCache(vk, 1*time.Minute)

	auth := NewAuth(sessions, users, profiles, businesses)
	admin := NewAdmin(sessions, businesses, products, categories, storageClient, catalogCache, "http://localhost:8080")
	catalog := NewCatalog(businesses, categories, products, catalogCache)

	return &testEnv{
		DB:           db,
		Valkey:       vk,
		Sessions:     sessions,
		Users:        users,
		Profiles:     profiles,
		Businesses:   businesses,
		Categories:   categories,
		Products:     products,
		CatalogCache: catalogCache,
		Auth:         auth,
		Admin:        admin,
		Catalog:      catalog,
	}
}

// cleanUsers removes test users by email; cascades clear their rows.
func cleanUsers(t *testing.T, db *sql.DB, emails ...string) {
	t.Helper()
	for _, email := range emails {
		db.Exec("DELETE FROM users WHERE email = $1", email)
	}
}

// createOwner registers a user, profile, and business directly through
// the stores for tests that start past the signup flow.
func (env *testEnv) createOwner(t *testing.T, email, businessName string) (*models.User, *models.Business) {
	t.Helper()

	t.Cleanup(func() { cleanUsers(t, env.DB, email) })

	user, err := env.Users.Create(email, "testpass123")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := env.Profiles.Create(user.ID, "Test", "Owner", true); err != nil {
		t.Fatalf("create profile: %v", err)
	}
	business, err := env.Businesses.Create(user.ID, businessName)
	if err != nil {
		t.Fatalf("create business: %v", err)
	}
	return user, business
}

// ctxWithSession adds session data to a context using the middleware key.
func ctxWithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, middleware.SessionKey, data)
}

// ownerSession builds the session.Data LoadSession would have produced
// for the given owner.
func ownerSession(user *models.User, business *models.Business) *session.Data {
	data := &session.Data{
		UserID: user.ID,
		Email:  user.Email,
		Name:   "Test Owner",
	}
	if business != nil {
		data.BusinessID = &business.ID
	}
	return data
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// mustUUID parses a uuid string or fails the test.
func mustUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	if err != nil {
		t.Fatalf("parse uuid %q: %v", s, err)
	}
	return id
}
