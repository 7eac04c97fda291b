package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/rohits-web03/safehands/internal/utils"
	"github.com/rs/zerolog"
)

// Recovery intercepts panics from downstream handlers, logs them and
// answers 500.
func Recovery(l zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					l.Error().
						Interface("panic", rec).
						Str("method", r.Method).
						Str("url", r.URL.String()).
						Bytes("stack", debug.Stack()).
						Msg("panic recovered")

					utils.JSONResponse(w, http.StatusInternalServerError, utils.Payload{
						Success: false,
						Message: "Internal server error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
