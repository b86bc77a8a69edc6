package database

import (
	"database/sql"
	"fmt"
	"log/slog"
)

// Seed populates the database with initial development data: a default
// set of active product categories. No-op if categories already exist.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&count); err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	seedCategories := []struct {
		name, slug, kind string
	}{
		{"General", "general", "product"},
		{"Hardware", "hardware", "product"},
		{"Services", "services", "service"},
	}

	for _, c := range seedCategories {
		_, err := db.Exec(`
			INSERT INTO categories (name, slug, kind, status)
			VALUES ($1, $2, $3, 'active')
		`, c.name, c.slug, c.kind)
		if err != nil {
			return fmt.Errorf("seed insert category %q: %w", c.slug, err)
		}
	}

	slog.Info("database seeded with default categories", "count", len(seedCategories))
	return nil
}
