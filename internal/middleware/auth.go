// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"pressroom/internal/access"
	"pressroom/internal/models"
)

type contextKey string

const actorKey contextKey = "actor"

// Auth issues and verifies the JWT bearer tokens used by the API.
type Auth struct {
	secret []byte
}

// NewAuth creates an Auth using the given HMAC signing secret.
func NewAuth(secret string) *Auth {
	return &Auth{secret: []byte(secret)}
}

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs a token for the given user valid for ttl.
func (a *Auth) IssueToken(userID uuid.UUID, role models.Role, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// parseToken verifies a signed token and returns the actor it encodes.
func (a *Auth) parseToken(raw string) (access.Actor, error) {
	var claims tokenClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return a.secret, nil
	})
	if err != nil {
		return access.Anonymous(), err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return access.Anonymous(), err
	}

	if models.Role(claims.Role) == models.RoleAdmin {
		return access.Admin(userID), nil
	}
	return access.User(userID), nil
}

// Authenticate resolves the Authorization header into an actor and stores
// it in the request context. Requests without a bearer token proceed as
// anonymous; requests with an invalid token are rejected.
func (a *Auth) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), access.Anonymous())))
			return
		}

		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		actor, err := a.parseToken(strings.TrimSpace(raw))
		if err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ActorFromContext(r.Context()).Anonymous {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects anonymous requests with 401 and non-admin users
// with 403.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor := ActorFromContext(r.Context())
		if actor.Anonymous {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		if !actor.IsAdmin() {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithActor stores an actor in a context. Used by Authenticate and by
// handler tests that need to simulate an authenticated request.
func WithActor(ctx context.Context, actor access.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFromContext returns the actor stored by Authenticate, or the
// anonymous actor if none is present.
func ActorFromContext(ctx context.Context) access.Actor {
	if actor, ok := ctx.Value(actorKey).(access.Actor); ok {
		return actor
	}
	return access.Anonymous()
}
