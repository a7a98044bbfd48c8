package middlewares

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"petlove/internal/utils"
)

// Authenticate requires a valid "Authorization: Bearer <token>" header and
// stores the user id from the token in the request context.
func Authenticate(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				log.Error().Msg("JWT_SECRET is not set, authentication will fail")
				utils.SendJSONError(w, "Server configuration error: JWT secret missing", http.StatusInternalServerError)
				return
			}

			tokenString := r.Header.Get("Authorization")
			if tokenString == "" {
				utils.SendJSONError(w, "Missing token", http.StatusUnauthorized)
				return
			}

			// Extract the token from the "Bearer <token>" format
			if !strings.HasPrefix(tokenString, "Bearer ") {
				utils.SendJSONError(w, "Invalid token format", http.StatusUnauthorized)
				return
			}
			tokenString = strings.TrimSpace(tokenString[len("Bearer "):])

			userID, role, err := utils.ParseIdentity(tokenString, secret)
			if err != nil {
				log.Debug().Err(err).Msg("Rejected bearer token")
				utils.SendJSONError(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			ctx := utils.WithUserRole(utils.WithUserID(r.Context(), userID), role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SelfOrAdmin lets the request through when the authenticated user is the
// one named by the {param} route variable or is an admin. It must run
// behind Authenticate.
func SelfOrAdmin(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.UserIDFromContext(r.Context())
			if !ok {
				utils.SendJSONError(w, "Missing token", http.StatusUnauthorized)
				return
			}
			if mux.Vars(r)[param] != userID.Hex() && !utils.IsAdmin(r.Context()) {
				log.Warn().Str("user_id", userID.Hex()).Str("path", r.URL.Path).Msg("Rejected access to another user's account")
				utils.SendJSONError(w, "Forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
