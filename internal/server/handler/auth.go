package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/codemaster-gdg/codementor/internal/core"
	"github.com/codemaster-gdg/codementor/internal/storage"
)

type contextKey string

const userContextKey contextKey = "user"

// UserFromContext returns the verified user attached by RequireAuth.
func UserFromContext(ctx context.Context) (*core.User, bool) {
	u, ok := ctx.Value(userContextKey).(*core.User)
	return u, ok
}

// RequireAuth verifies the bearer token on every request and attaches the
// resolved user to the context. A verification failure ends the session with
// 401. The user row is upserted on the way through; that write is best-effort
// because it only feeds display data.
func RequireAuth(verifier core.TokenVerifier, store storage.Store, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
				return
			}

			user, err := verifier.Verify(token)
			if err != nil {
				logger.Debug("token verification failed", "error", err)
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "login required"})
				return
			}

			if err := store.UpsertUser(r.Context(), user); err != nil {
				logger.Warn("failed to upsert user", "user", user.ID, "error", err)
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
