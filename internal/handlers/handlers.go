// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers exposes the catalog service as a JSON HTTP API.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"storepress/internal/catalog"
)

// errorBody is the JSON shape of every failed response.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeJSON serializes v with the given status. Encoding failures are
// logged; headers are already gone at that point.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// writeError maps a service error to an HTTP response. Domain failures
// carry their kind and message to the client; anything else is an
// internal error and the cause stays in the logs.
func writeError(w http.ResponseWriter, err error) {
	var domainErr *catalog.Error
	if errors.As(err, &domainErr) {
		writeJSON(w, statusForKind(domainErr.Kind), errorBody{
			Error:   string(domainErr.Kind),
			Message: domainErr.Message,
		})
		return
	}
	slog.Error("request failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, errorBody{
		Error:   "INTERNAL",
		Message: "internal server error",
	})
}

// statusForKind translates a domain failure kind to an HTTP status.
func statusForKind(kind catalog.Kind) int {
	switch kind {
	case catalog.KindNotFound:
		return http.StatusNotFound
	case catalog.KindAlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

// decodeJSON reads a JSON request body into dest, rejecting unknown
// fields and trailing garbage.
func decodeJSON(r *http.Request, dest any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("unexpected trailing data")
	}
	return nil
}

// Health reports process liveness.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
