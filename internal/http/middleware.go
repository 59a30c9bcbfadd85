// Package http wires the chi router, the authentication middleware and the
// API rate limiting in front of the handlers.
package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ditservices/asset-tracker/internal/auth"
	"github.com/ditservices/asset-tracker/internal/http/rate_limiter"
	"github.com/ditservices/asset-tracker/internal/models"
)

type contextKey string

const (
	userIDKey = contextKey("user_id")
	roleKey   = contextKey("role")
)

var authService *auth.Service

func SetAuthService(s *auth.Service) {
	authService = s
}

// AuthMiddleware validates the bearer token and stashes the caller identity
// in the request context. Missing, malformed, expired and revoked tokens each
// get their own message so clients can tell a stale session from a bad one.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			http.Error(w, "missing or invalid token", http.StatusUnauthorized)
			return
		}

		claims, err := authService.Validate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				http.Error(w, "token expired", http.StatusUnauthorized)
			case errors.Is(err, auth.ErrRevokedToken):
				http.Error(w, "token revoked", http.StatusUnauthorized)
			default:
				http.Error(w, "invalid token", http.StatusUnauthorized)
			}
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
		ctx = context.WithValue(ctx, roleKey, claims.Role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminOnly rejects callers whose token does not carry the admin role. It
// must run after AuthMiddleware.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetRole(r) != models.RoleAdmin {
			http.Error(w, "admin access required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func GetUserID(r *http.Request) int {
	if val, ok := r.Context().Value(userIDKey).(int); ok {
		return val
	}
	return 0
}

func GetRole(r *http.Request) models.Role {
	if val, ok := r.Context().Value(roleKey).(models.Role); ok {
		return val
	}
	return models.RoleEmployee
}

// RateLimitMiddleware enforces the shared per-IP request budget on the public
// API. Over-limit clients get a 429 with a retry_after hint.
func RateLimitMiddleware(limiter *rate_limiter.FixedWindowLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, retryAfter, err := limiter.Allow(r.Context(), ClientIP(r))
			if err != nil {
				zap.L().Warn("rate limit check failed", zap.Error(err))
			}
			if !allowed {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"error":"rate limit exceeded","retry_after":` +
					strconv.Itoa(retryAfter) + `}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP resolves the caller address, trusting X-Forwarded-For when set.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
