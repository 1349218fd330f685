package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/nearbasket/nearbasket-api/internal/errors"
	"github.com/nearbasket/nearbasket-api/internal/models"
	"github.com/nearbasket/nearbasket-api/internal/utils/response"
)

type contextKey uuid.UUID

var UserContextKey = contextKey(uuid.New())

// IdentityMiddleware resolves the caller identity once, before any core
// operation runs. Handlers only ever see models.Claims; whether those came
// from a bearer token or from the trusted-header mode is decided here.
type IdentityMiddleware struct {
	jwtKey              []byte
	trustHeaderIdentity bool
}

func NewIdentityMiddleware(jwtKey []byte, trustHeaderIdentity bool) *IdentityMiddleware {
	return &IdentityMiddleware{jwtKey: jwtKey, trustHeaderIdentity: trustHeaderIdentity}
}

func (m *IdentityMiddleware) Authenticate(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := LoggerFromContext(r.Context())

		authHeader := r.Header.Get("Authorization")

		if authHeader == "" {
			if m.trustHeaderIdentity {
				m.authenticateFromHeader(next, w, r)
				return
			}

			logger.Warn("Missing authorization header")
			response.Error(w, errors.UnauthorizedError("Authorization header is required"))
			return
		}

		// Token is of format : "Bearer <token>"
		tokenParts := strings.Split(authHeader, " ")

		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			logger.Warn("Invalid authorization header format")
			response.Error(w, errors.UnauthorizedError("Invalid authorization format"))
			return
		}

		tokenString := tokenParts[1]

		claims := &models.Claims{}

		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				logger.Error("Unexpected signing method used in JWT", slog.Any("alg", t.Header["alg"]))
				return nil, errors.BadRequestError("unexpected signing method")
			}
			return m.jwtKey, nil
		})

		if err != nil {
			logger.Warn("JWT parsing failed", slog.String("error", err.Error()))
			response.Error(w, errors.UnauthorizedError("Invalid or expired token"))
			return
		}

		if !token.Valid {
			logger.Warn("Invalid token")
			response.Error(w, errors.UnauthorizedError("Invalid token"))
			return
		}

		if claims.ExpiresAt != nil && claims.ExpiresAt.Time.Before(time.Now()) {
			logger.Warn("Expired token", slog.String("userId", claims.UserID.String()))
			response.Error(w, errors.UnauthorizedError("Token expired"))
			return
		}

		m.serveWithClaims(next, w, r, claims)
	}
}

// authenticateFromHeader accepts a caller-supplied X-User-ID. Guarded by
// config; meant for local and staging deployments without the auth service.
func (m *IdentityMiddleware) authenticateFromHeader(next http.Handler, w http.ResponseWriter, r *http.Request) {
	logger := LoggerFromContext(r.Context())

	raw := r.Header.Get("X-User-ID")
	if raw == "" {
		logger.Warn("Missing X-User-ID header in trusted-header mode")
		response.Error(w, errors.UnauthorizedError("X-User-ID header is required"))
		return
	}

	userID, err := uuid.Parse(raw)
	if err != nil {
		logger.Warn("Invalid X-User-ID header", slog.String("error", err.Error()))
		response.Error(w, errors.UnauthorizedError("X-User-ID must be a valid UUID"))
		return
	}

	claims := &models.Claims{UserID: userID, Role: models.RoleCustomer}

	m.serveWithClaims(next, w, r, claims)
}

func (m *IdentityMiddleware) serveWithClaims(next http.Handler, w http.ResponseWriter, r *http.Request, claims *models.Claims) {
	ctx := context.WithValue(r.Context(), UserContextKey, claims)

	requestScopedLogger := LoggerFromContext(ctx).With(slog.String("userId", claims.UserID.String()))
	ctx = context.WithValue(ctx, LoggerKey, requestScopedLogger)

	next.ServeHTTP(w, r.WithContext(ctx))
}

// RequireRole gates a handler on the resolved role. Must run inside
// Authenticate.
func RequireRole(roles ...string) func(http.Handler) http.HandlerFunc {
	return func(next http.Handler) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			logger := LoggerFromContext(r.Context())

			claims, ok := r.Context().Value(UserContextKey).(*models.Claims)
			if !ok {
				logger.Warn("Missing claims in role check")
				response.Error(w, errors.UnauthorizedError("Authentication required"))
				return
			}

			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}

			logger.Warn("Insufficient role", slog.String("role", claims.Role))
			response.Error(w, errors.ForbiddenError("Insufficient permissions"))
		}
	}
}

// ClaimsFromContext returns the resolved identity, or nil when the request
// skipped authentication.
func ClaimsFromContext(ctx context.Context) *models.Claims {
	if claims, ok := ctx.Value(UserContextKey).(*models.Claims); ok {
		return claims
	}

	return nil
}
