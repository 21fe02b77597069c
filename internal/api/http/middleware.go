package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"sponsorship-backend/internal/errors"
	"sponsorship-backend/internal/security"
)

type contextKey string

const principalKey contextKey = "principal"

// Principal is the authenticated caller extracted from an access token.
type Principal struct {
	UserID uuid.UUID
	Email  string
}

// PrincipalFromContext returns the authenticated principal, or an unauthorized
// error when the middleware did not run.
func PrincipalFromContext(ctx context.Context) (Principal, error) {
	p, ok := ctx.Value(principalKey).(Principal)
	if !ok {
		return Principal{}, errors.Unauthorized("authentication required")
	}
	return p, nil
}

// AuthMiddleware validates the bearer access token and stores the principal in
// the request context.
func AuthMiddleware(tokens security.SessionTokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeError(w, errors.Unauthorized("missing authorization header"))
				return
			}
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				writeError(w, errors.Unauthorized("authorization header must be a bearer token"))
				return
			}

			claims, err := tokens.ValidateToken(raw, security.SessionTokenTypeAccess)
			if err != nil {
				switch err {
				case security.ErrExpiredToken:
					writeError(w, errors.TokenExpired("access token has expired"))
				default:
					writeError(w, errors.Unauthorized("invalid access token"))
				}
				return
			}

			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				writeError(w, errors.Unauthorized("invalid access token"))
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, Principal{UserID: userID, Email: claims.Email})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
