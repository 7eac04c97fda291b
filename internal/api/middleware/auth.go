package middleware

import (
	"errors"
	"net/http"

	"github.com/rohits-web03/safehands/internal/session"
	"github.com/rohits-web03/safehands/internal/utils"
	"github.com/rs/zerolog"
)

// AuthMiddleware resolves the session cookie and stores the session in the
// request context.
func AuthMiddleware(sessions *session.Manager, l zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			cookie, err := r.Cookie(session.CookieName)
			if err != nil || cookie.Value == "" {
				utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
					Success: false,
					Message: "Unauthorized",
				})
				return
			}

			sess, err := sessions.Resolve(r.Context(), cookie.Value)
			if errors.Is(err, session.ErrNoSession) {
				utils.JSONResponse(w, http.StatusUnauthorized, utils.Payload{
					Success: false,
					Message: "Unauthorized",
				})
				return
			}
			if err != nil {
				l.Error().Err(err).Msg("resolve session")
				utils.JSONResponse(w, http.StatusServiceUnavailable, utils.Payload{
					Success: false,
					Message: "Session store unavailable",
				})
				return
			}

			next.ServeHTTP(w, r.WithContext(session.WithContext(r.Context(), sess)))
		})
	}
}
