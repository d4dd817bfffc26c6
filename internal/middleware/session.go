package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"storefront/internal/model"

	"github.com/rs/zerolog"
)

// SessionSource reports the current session.
type SessionSource interface {
	Session() model.Session
}

type sessionKey struct{}

// WithSession returns a copy of ctx carrying session.
func WithSession(ctx context.Context, session model.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

// SessionFromContext returns the session stored by RequireSession or RequireAdmin.
func SessionFromContext(ctx context.Context) (model.Session, bool) {
	session, ok := ctx.Value(sessionKey{}).(model.Session)
	return session, ok
}

// RequireSession rejects requests made while nobody is logged in and stores
// the session in the request context otherwise.
func RequireSession(source SessionSource, logger zerolog.Logger) func(http.Handler) http.Handler {
	return requireSession(source, false, logger)
}

// RequireAdmin is RequireSession restricted to administrator sessions.
func RequireAdmin(source SessionSource, logger zerolog.Logger) func(http.Handler) http.Handler {
	return requireSession(source, true, logger)
}

func requireSession(source SessionSource, admin bool, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := source.Session()

			if !session.IsAuthenticated {
				logger.Warn().Str("path", r.URL.Path).Msg("request without session")
				writeError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "login required")
				return
			}

			if admin && !session.IsAdmin {
				logger.Warn().
					Str("path", r.URL.Path).
					Str("username", string(session.Username)).
					Msg("admin route requested by non-admin")
				writeError(w, http.StatusForbidden, model.ErrCodeForbidden, "admin access required")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.ErrorResponse{Error: code, Message: message})
}
