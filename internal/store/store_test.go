// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"storepress/internal/database"
	"storepress/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "storepress")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "storepress")
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

	// Release goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// cleanItems removes test items by slug. Call in t.Cleanup().
func cleanItems(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, slug := range slugs {
		db.Exec("DELETE FROM catalog_items WHERE slug = $1", slug)
	}
}

// cleanCategories removes test categories by slug. Call in t.Cleanup().
func cleanCategories(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, slug := range slugs {
		db.Exec("DELETE FROM categories WHERE slug = $1", slug)
	}
}

// makeCategory inserts a category for item tests and returns it.
func makeCategory(t *testing.T, db *sql.DB, slug string, kind models.CategoryKind, status models.CategoryStatus) *models.Category {
	t.Helper()

	created, err := NewCategoryStore(db).Create(context.Background(), &models.Category{
		Name:   "Test " + slug,
		Slug:   slug,
		Kind:   kind,
		Status: status,
	})
	if err != nil {
		t.Fatalf("create test category: %v", err)
	}
	t.Cleanup(func() { cleanCategories(t, db, slug) })
	return created
}

// makeItem inserts an item for tests and returns it.
func makeItem(t *testing.T, db *sql.DB, title, slug string, category *models.Category) *models.Item {
	t.Helper()

	created, err := NewItemStore(db).Create(context.Background(), &models.Item{
		Title:       title,
		Slug:        slug,
		Content:     "test content",
		Description: "test description",
		Files:       []string{"https://cdn.example.com/test/" + slug + ".jpg"},
		CategoryID:  category.ID,
		Status:      models.ItemStatusDraft,
		Author:      models.Author{ID: "u1", Username: "tester", Role: "admin"},
	})
	if err != nil {
		t.Fatalf("create test item: %v", err)
	}
	t.Cleanup(func() { cleanItems(t, db, slug) })
	return created
}
