package apikey

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"bookingSync/internal/lib/api/response"

	"github.com/go-chi/render"
)

const headerName = "x-api-key"

// New rejects requests whose x-api-key header does not match the
// configured key.
func New(log *slog.Logger, key string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(headerName)
			if got == "" {
				log.Warn("request without api key", slog.String("path", r.URL.Path))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("no api key provided"))
				return
			}

			if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				log.Warn("request with invalid api key", slog.String("path", r.URL.Path))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid api key"))
				return
			}

			next.ServeHTTP(w, r)
		}

		return http.HandlerFunc(fn)
	}
}
