// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"storepress/internal/models"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

// userKey is the context key for the authenticated acting user.
const userKey contextKey = "user"

// userClaims are the JWT claims carried by a bearer token. The token is
// issued by the identity service; this middleware only verifies and
// decodes it.
type userClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// RequireAuth verifies the Authorization bearer token and stores the
// acting user in the request context. The user snapshot is what gets
// embedded into items created during this request.
func RequireAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims := &userClaims{}
			token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid || claims.Subject == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			user := models.Author{
				ID:       claims.Subject,
				Username: claims.Username,
				Role:     claims.Role,
			}
			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects users without the admin role.
// Must be applied after RequireAuth in the middleware chain.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromCtx(r.Context())
		if !ok || user.Role != "admin" {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserFromCtx retrieves the acting user stored by RequireAuth.
func UserFromCtx(ctx context.Context) (models.Author, bool) {
	user, ok := ctx.Value(userKey).(models.Author)
	return user, ok
}
