package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/mx70/mx70-api/internal/domain/user"
	"github.com/mx70/mx70-api/internal/pkg/jwt"
	"github.com/mx70/mx70-api/internal/pkg/response"
)

type userIDKey struct{}
type roleKey struct{}

// Auth validates the bearer token and stores the caller's identity in context
func Auth(jwtService *jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				response.Unauthorized(w, "Missing authorization header")
				return
			}

			scheme, token, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") {
				response.Unauthorized(w, "Invalid authorization header format")
				return
			}

			claims, err := jwtService.ValidateAccessToken(token)
			if err != nil {
				if errors.Is(err, jwt.ErrExpiredToken) {
					response.Unauthorized(w, "Token expired")
				} else {
					response.Unauthorized(w, "Invalid token")
				}
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey{}, claims.UserID)
			ctx = context.WithValue(ctx, roleKey{}, claims.Role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID extracts the authenticated user ID from context
func GetUserID(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(userIDKey{}).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// GetRole extracts the authenticated role from context
func GetRole(ctx context.Context) string {
	if role, ok := ctx.Value(roleKey{}).(string); ok {
		return role
	}
	return ""
}

// RequireRole rejects callers whose role is not in the allowed set
func RequireRole(roles ...user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			callerRole := user.Role(GetRole(r.Context()))

			for _, role := range roles {
				if callerRole == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.Forbidden(w, "Insufficient permissions")
		})
	}
}

// RequireBusiness restricts a route to local business accounts
func RequireBusiness() func(http.Handler) http.Handler {
	return RequireRole(user.RoleBusiness)
}

// RequireClipper restricts a route to clipper accounts
func RequireClipper() func(http.Handler) http.Handler {
	return RequireRole(user.RoleClipper)
}
