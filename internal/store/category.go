// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"storepress/internal/models"
)

// CategoryStore manages categories in the database.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, slug, kind, status, created_at, updated_at`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(
		&c.ID, &c.Name, &c.Slug, &c.Kind, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all categories ordered by name.
func (s *CategoryStore) List(ctx context.Context) ([]models.Category, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+categoryColumns+" FROM categories ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// FindByID retrieves a category by its UUID. Returns nil if not found.
func (s *CategoryStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+categoryColumns+" FROM categories WHERE id = $1", id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// Create inserts a new category and returns it with generated fields.
func (s *CategoryStore) Create(ctx context.Context, c *models.Category) (*models.Category, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO categories (name, slug, kind, status)
		VALUES ($1, $2, $3, $4)
		RETURNING `+categoryColumns,
		c.Name, c.Slug, c.Kind, c.Status,
	)
	created, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return created, nil
}

// IsUsable reports whether items may be created under the category:
// it must exist, be active, and apply to the product resource type.
// This is a point-in-time check, not a foreign-key constraint.
func (s *CategoryStore) IsUsable(ctx context.Context, id uuid.UUID) (bool, error) {
	c, err := s.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	if c == nil {
		return false, nil
	}
	return c.UsableForItems(), nil
}
