// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"storepress/internal/models"
)

// ErrDuplicate is returned when an insert violates the unique indexes on
// item title or slug. The schema is the source of truth for uniqueness;
// callers translate this into their own "already exists" outcome.
var ErrDuplicate = errors.New("store: duplicate title or slug")

// ItemStore handles all catalog-item database operations.
type ItemStore struct {
	db *sql.DB
}

// NewItemStore creates a new ItemStore with the given database connection.
func NewItemStore(db *sql.DB) *ItemStore {
	return &ItemStore{db: db}
}

const itemColumns = `id, title, slug, content, description, files, category_id,
       price, views, status, author, created_at, updated_at`

// scanItem scans one row into an Item, decoding the JSONB files and
// author columns.
func scanItem(scanner interface{ Scan(...any) error }) (*models.Item, error) {
	var (
		item   models.Item
		files  []byte
		author []byte
		price  sql.NullFloat64
	)
	err := scanner.Scan(
		&item.ID, &item.Title, &item.Slug, &item.Content, &item.Description,
		&files, &item.CategoryID, &price, &item.Views, &item.Status,
		&author, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(files, &item.Files); err != nil {
		return nil, fmt.Errorf("decode item files: %w", err)
	}
	if err := json.Unmarshal(author, &item.Author); err != nil {
		return nil, fmt.Errorf("decode item author: %w", err)
	}
	if price.Valid {
		item.Price = &price.Float64
	}
	return &item, nil
}

// filterWhere renders an ItemFilter into a WHERE clause and its
// arguments. An empty filter yields an empty clause (match-all).
func filterWhere(f models.ItemFilter) (string, []any) {
	var conds []string
	var args []any

	if f.CreatedAfter != nil && f.CreatedBefore != nil {
		args = append(args, *f.CreatedAfter)
		conds = append(conds, "created_at >= $"+strconv.Itoa(len(args)))
		args = append(args, *f.CreatedBefore)
		conds = append(conds, "created_at <= $"+strconv.Itoa(len(args)))
	}

	if len(f.Statuses) > 0 {
		placeholders := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			args = append(args, string(s))
			placeholders[i] = "$" + strconv.Itoa(len(args))
		}
		conds = append(conds, "status IN ("+strings.Join(placeholders, ", ")+")")
	}

	if len(f.Categories) > 0 {
		placeholders := make([]string, len(f.Categories))
		for i, c := range f.Categories {
			args = append(args, c)
			placeholders[i] = "$" + strconv.Itoa(len(args))
		}
		conds = append(conds, "category_id IN ("+strings.Join(placeholders, ", ")+")")
	}

	if len(conds) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

// List returns one page of items matching the filter, newest first.
// Page numbers are 1-based.
func (s *ItemStore) List(ctx context.Context, f models.ItemFilter, page, limit int) ([]models.Item, error) {
	where, args := filterWhere(f)

	offset := (page - 1) * limit
	args = append(args, limit, offset)
	query := fmt.Sprintf(`
		SELECT %s FROM catalog_items
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, itemColumns, where, len(args)-1, len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// Count returns the number of items matching the filter.
func (s *ItemStore) Count(ctx context.Context, f models.ItemFilter) (int, error) {
	where, args := filterWhere(f)

	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM catalog_items "+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}
	return count, nil
}

// FindByID retrieves an item by its UUID. Returns nil if not found.
func (s *ItemStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM catalog_items WHERE id = $1", id)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find item by id: %w", err)
	}
	return item, nil
}

// FindBySlug retrieves an item by its slug. Returns nil if not found.
func (s *ItemStore) FindBySlug(ctx context.Context, slug string) (*models.Item, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM catalog_items WHERE slug = $1", slug)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find item by slug: %w", err)
	}
	return item, nil
}

// FindByTitleOrSlug retrieves an item matching either value. Used as the
// fast-path existence check before an insert. Returns nil if not found.
func (s *ItemStore) FindByTitleOrSlug(ctx context.Context, title, slug string) (*models.Item, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+itemColumns+" FROM catalog_items WHERE title = $1 OR slug = $2", title, slug)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find item by title or slug: %w", err)
	}
	return item, nil
}

// Create inserts a new item and returns it with generated fields filled
// in. A unique-index violation on title or slug returns ErrDuplicate.
func (s *ItemStore) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	files, err := json.Marshal(item.Files)
	if err != nil {
		return nil, fmt.Errorf("encode item files: %w", err)
	}
	author, err := json.Marshal(item.Author)
	if err != nil {
		return nil, fmt.Errorf("encode item author: %w", err)
	}

	var price sql.NullFloat64
	if item.Price != nil {
		price = sql.NullFloat64{Float64: *item.Price, Valid: true}
	}

	row := s.db.QueryRowContext(ctx, `
		INSERT INTO catalog_items (title, slug, content, description, files,
		                           category_id, price, status, author)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+itemColumns,
		item.Title, item.Slug, item.Content, item.Description, files,
		item.CategoryID, price, item.Status, author,
	)

	created, err := scanItem(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("create item: %w", err)
	}
	return created, nil
}

// UpdateStatus sets an item's status and returns the updated row.
// Returns nil if no item has the given ID.
func (s *ItemStore) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ItemStatus) (*models.Item, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE catalog_items
		SET status = $1, updated_at = now()
		WHERE id = $2
		RETURNING `+itemColumns,
		status, id,
	)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update item status: %w", err)
	}
	return item, nil
}

// IncrementViews atomically adds delta to an item's view counter and
// returns the updated row. The increment happens in a single UPDATE, so
// concurrent calls never lose updates. Returns nil if the slug is unknown.
func (s *ItemStore) IncrementViews(ctx context.Context, slug string, delta int64) (*models.Item, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE catalog_items
		SET views = views + $1, updated_at = now()
		WHERE slug = $2
		RETURNING `+itemColumns,
		delta, slug,
	)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("increment item views: %w", err)
	}
	return item, nil
}

// DeleteByID removes an item and returns the deleted row, or nil if no
// item had the given ID.
func (s *ItemStore) DeleteByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	row := s.db.QueryRowContext(ctx,
		"DELETE FROM catalog_items WHERE id = $1 RETURNING "+itemColumns, id)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete item: %w", err)
	}
	return item, nil
}
