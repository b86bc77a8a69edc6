// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"storepress/internal/catalog"
	"storepress/internal/middleware"
)

// maxCreateFormSize bounds the multipart create payload, files included.
const maxCreateFormSize = 64 << 20 // 64 MB

// Catalog groups the HTTP handlers for the catalog item API.
type Catalog struct {
	service *catalog.Service
}

// NewCatalog creates the catalog handler group.
func NewCatalog(service *catalog.Service) *Catalog {
	return &Catalog{service: service}
}

// List serves GET /api/v1/products. Paging and filter parameters
// arrive as query strings; malformed filter values degrade to no
// filtering rather than failing the request.
func (h *Catalog) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	result, err := h.service.List(r.Context(), catalog.ListQuery{
		Page:     page,
		Limit:    limit,
		Start:    q.Get("start"),
		End:      q.Get("end"),
		Status:   q.Get("status"),
		Category: q.Get("category"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Detail serves GET /api/v1/products/{slug}.
func (h *Catalog) Detail(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.FindBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Create serves POST /api/v1/products. The payload is multipart form
// data: scalar fields plus one or more files under "files". The acting
// user comes from the auth middleware and is recorded as the author.
func (h *Catalog) Create(w http.ResponseWriter, r *http.Request) {
	author, ok := middleware.UserFromCtx(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody{
			Error:   "UNAUTHORIZED",
			Message: "authentication required",
		})
		return
	}

	if err := r.ParseMultipartForm(maxCreateFormSize); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{
			Error:   "INVALID_FORM",
			Message: "expected multipart form data",
		})
		return
	}

	if msg := validateCreateForm(r.FormValue("title"), r.FormValue("content"), r.FormValue("description")); msg != "" {
		writeJSON(w, http.StatusBadRequest, errorBody{
			Error:   "INVALID_FORM",
			Message: msg,
		})
		return
	}

	in := catalog.CreateInput{
		Title:       r.FormValue("title"),
		Content:     r.FormValue("content"),
		Description: r.FormValue("description"),
		Price:       r.FormValue("price"),
		CategoryID:  r.FormValue("category_id"),
		Status:      r.FormValue("status"),
	}

	item, err := h.service.Create(r.Context(), in, author, r.MultipartForm.File["files"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// Delete serves DELETE /api/v1/products/{id}.
func (h *Catalog) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{
			Error:   "INVALID_ID",
			Message: "item id must be a valid UUID",
		})
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// UpdateStatus serves PATCH /api/v1/products/{id}/status with a JSON
// body of {"status": "..."}.
func (h *Catalog) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{
			Error:   "INVALID_ID",
			Message: "item id must be a valid UUID",
		})
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{
			Error:   "INVALID_BODY",
			Message: "expected a JSON body with a status field",
		})
		return
	}

	item, err := h.service.UpdateStatus(r.Context(), id, body.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// UpdateView serves POST /api/v1/products/{slug}/views. The body is
// optional JSON {"views": n}; an absent body counts a single view.
func (h *Catalog) UpdateView(w http.ResponseWriter, r *http.Request) {
	delta := int64(1)
	if r.ContentLength > 0 {
		var body struct {
			Views int64 `json:"views"`
		}
		if err := decodeJSON(r, &body); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{
				Error:   "INVALID_BODY",
				Message: "expected a JSON body with a views field",
			})
			return
		}
		delta = body.Views
	}

	item, err := h.service.UpdateView(r.Context(), chi.URLParam(r, "slug"), delta)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"views": item.Views})
}
