// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalog implements the cache-coherent catalog read/write path:
// the read-through list and detail operations, the multi-step validation
// pipeline gating a create, and the invalidation protocol around every
// mutation.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"storepress/internal/cache"
	"storepress/internal/markdown"
	"storepress/internal/models"
	"storepress/internal/slug"
	"storepress/internal/store"
)

const (
	// Namespace prefixes every catalog cache key.
	Namespace = "products"

	// assetFolder is where uploaded item files land in object storage.
	assetFolder = "products"

	defaultPageSize = 10
	maxPageSize     = 100

	// maxSlugAttempts bounds the collision-disambiguation loop. The DB
	// unique index still backstops the pathological case.
	maxSlugAttempts = 50
)

// ItemRepository is the document-store surface the service depends on.
type ItemRepository interface {
	List(ctx context.Context, f models.ItemFilter, page, limit int) ([]models.Item, error)
	Count(ctx context.Context, f models.ItemFilter) (int, error)
	FindBySlug(ctx context.Context, slug string) (*models.Item, error)
	FindByTitleOrSlug(ctx context.Context, title, slug string) (*models.Item, error)
	Create(ctx context.Context, item *models.Item) (*models.Item, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.ItemStatus) (*models.Item, error)
	IncrementViews(ctx context.Context, slug string, delta int64) (*models.Item, error)
	DeleteByID(ctx context.Context, id uuid.UUID) (*models.Item, error)
}

// CategoryValidator checks that a category is usable for catalog items.
type CategoryValidator interface {
	IsUsable(ctx context.Context, id uuid.UUID) (bool, error)
}

// Cache is the invalidation-capable read-through cache the service uses.
// Implementations absorb backend failures: Get degrades to a miss, the
// write-side operations log and swallow.
type Cache interface {
	Get(ctx context.Context, key string, dest any) bool
	SetList(ctx context.Context, key string, v any)
	SetDetail(ctx context.Context, key string, v any)
	Delete(ctx context.Context, key string)
	DeleteByPattern(ctx context.Context, pattern string)
	Reset(ctx context.Context, namespace string)
}

// Uploader stores item asset files and returns their public URLs.
type Uploader interface {
	UploadMultiple(ctx context.Context, folder string, files []*multipart.FileHeader) ([]string, error)
}

// Service composes the repository, category validator, cache, and
// uploader into the public catalog operations. All collaborators are
// injected at construction; the service holds no ambient state.
type Service struct {
	items      ItemRepository
	categories CategoryValidator
	cache      Cache
	uploader   Uploader
}

// NewService creates the catalog service.
func NewService(items ItemRepository, categories CategoryValidator, c Cache, uploader Uploader) *Service {
	return &Service{items: items, categories: categories, cache: c, uploader: uploader}
}

// ListQuery carries the raw list parameters as supplied by the caller.
type ListQuery struct {
	Page     int
	Limit    int
	Start    string
	End      string
	Status   string
	Category string
}

// normalize applies paging defaults and bounds.
func (q ListQuery) normalize() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = defaultPageSize
	}
	if q.Limit > maxPageSize {
		q.Limit = maxPageSize
	}
	return q
}

// List returns one page of catalog items, read through the cache.
// On a miss the page is rebuilt from the store and cached under the
// list TTL class. Store read failures surface to the caller.
func (s *Service) List(ctx context.Context, q ListQuery) (*models.Page, error) {
	q = q.normalize()

	key := cache.ListKey(Namespace, cache.ListParams{
		Page:     q.Page,
		Limit:    q.Limit,
		Start:    q.Start,
		End:      q.End,
		Status:   q.Status,
		Category: q.Category,
	})

	var cached models.Page
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	filter := BuildFilter(q.Start, q.End, q.Status, q.Category)

	items, err := s.items.List(ctx, filter, q.Page, q.Limit)
	if err != nil {
		return nil, fmt.Errorf("list catalog items: %w", err)
	}
	total, err := s.items.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count catalog items: %w", err)
	}

	page := models.NewPage(items, total, q.Page, q.Limit)
	s.cache.SetList(ctx, key, page)
	return page, nil
}

// FindBySlug returns a single item, read through the cache under the
// detail TTL class. The item's Markdown content is rendered to HTML when
// the detail is first assembled.
func (s *Service) FindBySlug(ctx context.Context, itemSlug string) (*models.Item, error) {
	key := cache.DetailKey(Namespace, itemSlug)

	var cached models.Item
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	item, err := s.items.FindBySlug(ctx, itemSlug)
	if err != nil {
		return nil, fmt.Errorf("find catalog item: %w", err)
	}
	if item == nil {
		return nil, fail(KindNotFound, "item not found")
	}

	if html, err := markdown.ToHTML(item.Content); err == nil {
		item.ContentHTML = html
	} else {
		slog.Warn("item content render failed", "slug", itemSlug, "error", err)
	}

	s.cache.SetDetail(ctx, key, item)
	return item, nil
}

// CreateInput is the payload for creating a catalog item. Price and
// CategoryID arrive raw; the validation pipeline parses them so every
// gate lives in one place.
type CreateInput struct {
	Title       string
	Content     string
	Description string
	Price       string
	CategoryID  string
	Status      string
}

// Create runs the ordered validation pipeline and persists a new item.
// Each gate short-circuits with its own failure kind, in this order:
// title, slug derivation, category usability and duplicate check (run
// concurrently), price, files, upload, insert. Cache invalidation
// happens after the insert succeeds, so a concurrent reader can never
// repopulate the cache with pre-write state after the invalidation.
func (s *Service) Create(ctx context.Context, in CreateInput, author models.Author, files []*multipart.FileHeader) (*models.Item, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fail(KindTitleRequired, "title is required to generate slug")
	}

	itemSlug := slug.Generate(title)
	if itemSlug == "" {
		return nil, fail(KindTitleRequired, "title is required to generate slug")
	}

	categoryID, err := uuid.Parse(in.CategoryID)
	if err != nil {
		return nil, fail(KindCategoryInvalid, "category validation failed")
	}

	// Duplicate pre-check and category usability have no data dependency,
	// so they run concurrently. The pre-check is a fast-path courtesy
	// only: the unique indexes on title and slug are the real guarantee.
	var (
		existing    *models.Item
		categoryOK  bool
		g, groupCtx = errgroup.WithContext(ctx)
	)
	g.Go(func() error {
		var err error
		existing, err = s.items.FindByTitleOrSlug(groupCtx, title, itemSlug)
		return err
	})
	g.Go(func() error {
		var err error
		categoryOK, err = s.categories.IsUsable(groupCtx, categoryID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("create pre-checks: %w", err)
	}

	if !categoryOK {
		return nil, fail(KindCategoryInvalid, "category validation failed")
	}

	if existing != nil {
		if existing.Title == title {
			return nil, fail(KindAlreadyExists, "this item already exists")
		}
		// Slug collision from a different title: disambiguate with a
		// numeric suffix. Once assigned the slug never changes.
		itemSlug, err = s.disambiguateSlug(ctx, itemSlug)
		if err != nil {
			return nil, err
		}
	}

	var price *float64
	if in.Price != "" {
		// ParseFloat accepts "NaN" and "Inf"; neither is a price, and a
		// non-finite float poisons every JSON encode of the item.
		parsed, err := strconv.ParseFloat(in.Price, 64)
		if err != nil || parsed < 0 || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return nil, fail(KindPriceInvalid, "price must be a valid non-negative number")
		}
		price = &parsed
	}

	if len(files) == 0 {
		return nil, fail(KindFileRequired, "at least one file is required")
	}

	status := models.ItemStatusDraft
	if in.Status != "" {
		parsed, ok := models.ParseItemStatus(in.Status)
		if !ok {
			return nil, fail(KindInvalidStatus, "invalid status value")
		}
		status = parsed
	}

	urls, err := s.uploadFiles(ctx, files)
	if err != nil {
		// The cause stays in the logs; clients get the generic kind.
		slog.Error("item file upload failed", "title", title, "error", err)
		return nil, fail(KindFileUploadFailed, "file upload failed")
	}

	created, err := s.items.Create(ctx, &models.Item{
		Title:       title,
		Slug:        itemSlug,
		Content:     in.Content,
		Description: in.Description,
		Files:       urls,
		CategoryID:  categoryID,
		Price:       price,
		Status:      status,
		Author:      author,
	})
	if errors.Is(err, store.ErrDuplicate) {
		// A concurrent writer won the check-then-insert race; same
		// outcome as the pre-check. The uploaded assets are orphaned,
		// which is accepted and logged, not rolled back.
		slog.Warn("item insert lost uniqueness race", "title", title, "slug", itemSlug)
		return nil, fail(KindAlreadyExists, "this item already exists")
	}
	if err != nil {
		slog.Error("item insert failed", "title", title, "error", err)
		return nil, fmt.Errorf("create catalog item: %w", err)
	}

	s.invalidateItem(ctx, created.Slug)

	slog.Info("catalog item created",
		"id", created.ID,
		"slug", created.Slug,
		"author", author.Username,
	)
	return created, nil
}

// Delete removes an item by ID. Deleting an unknown ID reports NotFound;
// delete is deliberately not idempotent, so a second delete of the same
// ID fails the same way.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.items.DeleteByID(ctx, id)
	if err != nil {
		slog.Error("item delete failed", "id", id, "error", err)
		return fmt.Errorf("delete catalog item: %w", err)
	}
	if deleted == nil {
		return fail(KindNotFound, "item not found")
	}

	s.invalidateItem(ctx, deleted.Slug)

	slog.Info("catalog item deleted", "id", id, "slug", deleted.Slug)
	return nil
}

// UpdateStatus changes an item's status. The raw status is validated
// against the closed set once, here at the boundary.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, rawStatus string) (*models.Item, error) {
	status, ok := models.ParseItemStatus(rawStatus)
	if !ok {
		return nil, fail(KindInvalidStatus, "invalid status value")
	}

	item, err := s.items.UpdateStatus(ctx, id, status)
	if err != nil {
		slog.Error("item status update failed", "id", id, "error", err)
		return nil, fmt.Errorf("update item status: %w", err)
	}
	if item == nil {
		return nil, fail(KindNotFound, "item not found")
	}

	s.invalidateItem(ctx, item.Slug)
	return item, nil
}

// UpdateView atomically adds delta to an item's view counter. Increments
// must be non-negative: the counter is monotonic. On success the entire
// catalog namespace is reset rather than targeted keys — increments are
// frequent and stale view counts in any cached list ordering are
// undesirable, so the blunt invalidation is deliberate.
func (s *Service) UpdateView(ctx context.Context, itemSlug string, delta int64) (*models.Item, error) {
	if delta < 0 {
		return nil, fail(KindInvalidViewCount, "view increment must be non-negative")
	}

	item, err := s.items.IncrementViews(ctx, itemSlug, delta)
	if err != nil {
		slog.Error("item view increment failed", "slug", itemSlug, "error", err)
		return nil, fmt.Errorf("increment item views: %w", err)
	}
	if item == nil {
		return nil, fail(KindNotFound, "item not found")
	}

	s.cache.Reset(ctx, Namespace)
	return item, nil
}

// uploadFiles pushes the uploaded files to object storage.
func (s *Service) uploadFiles(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	if s.uploader == nil {
		return nil, fmt.Errorf("file storage not configured")
	}
	return s.uploader.UploadMultiple(ctx, assetFolder, files)
}

// disambiguateSlug finds the first free numeric-suffix variant of a slug.
func (s *Service) disambiguateSlug(ctx context.Context, base string) (string, error) {
	for n := 2; n < 2+maxSlugAttempts; n++ {
		candidate := slug.WithSuffix(base, n)
		taken, err := s.items.FindBySlug(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("disambiguate slug: %w", err)
		}
		if taken == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free slug variant for %q", base)
}

// invalidateItem clears every cached list page plus the item's detail
// entry. List keys live under "{ns}:", detail keys under "{ns}_", so the
// pattern touches exactly the list variants.
func (s *Service) invalidateItem(ctx context.Context, itemSlug string) {
	s.cache.DeleteByPattern(ctx, Namespace+":*")
	s.cache.Delete(ctx, cache.DetailKey(Namespace, itemSlug))
}
