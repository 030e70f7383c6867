package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	id "cleanslate/pkg/domain"
	dErrors "cleanslate/pkg/domain-errors"
	"cleanslate/pkg/platform/httputil"
	"cleanslate/pkg/requestcontext"
)

// TokenValidator checks an access token and returns the user it belongs to.
// The auth token service implements it.
type TokenValidator interface {
	Validate(tokenString string) (id.UserID, error)
}

// Authenticate reads the Authorization header when present and puts the user
// on the request context. Requests without a token pass through anonymous;
// handlers that need a user reject them there.
func Authenticate(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			userID, err := validator.Validate(tokenString)
			if err != nil {
				logger.WarnContext(r.Context(), "rejected token",
					"request_id", requestcontext.RequestID(r.Context()),
					"error", err,
				)
				httputil.WriteError(w, err)
				return
			}
			ctx := requestcontext.WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests that did not authenticate.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requestcontext.UserID(r.Context()) == (id.UserID{}) {
			httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
