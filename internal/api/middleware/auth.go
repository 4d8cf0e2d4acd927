package middleware

import (
	"context"
	"errors"
	"net/http"

	"contacts_api/internal/common"
	"contacts_api/internal/common/security"
	"contacts_api/internal/domain/model"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const authUserCtxKey contextKey = "authUser"

// Authenticator gates protected routes. It relies on jwtauth.Verifier having
// already parsed the Authorization header; here we only decide pass/reject
// and, on pass, put the decoded identity into the request context. It never
// touches the persistence layer.
func Authenticator(responder *common.Responder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if err != nil || token == nil {
				switch {
				case err == nil, errors.Is(err, jwtauth.ErrNoTokenFound):
					responder.Error(w, common.Unauthorized("Not authorized, no token"))
				case errors.Is(err, jwtauth.ErrExpired):
					responder.Error(w, common.Unauthorized("Token expired"))
				default:
					responder.Error(w, common.Unauthorized("Invalid token"))
				}
				return
			}

			user, err := security.UserFromClaims(claims)
			if err != nil {
				responder.Error(w, common.WrapError(http.StatusUnauthorized, "Invalid token claims", err))
				return
			}

			ctx := context.WithValue(r.Context(), authUserCtxKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext returns the authenticated identity placed by Authenticator.
func GetUserFromContext(ctx context.Context) (model.AuthUser, bool) {
	user, ok := ctx.Value(authUserCtxKey).(model.AuthUser)
	return user, ok
}
