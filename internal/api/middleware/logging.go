package middleware

import (
	"log/slog"
	"net/http"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/middleware"
)

// Logging creates request logging middleware for the API.
// Lines carry the request id set by RequestID.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger, func(r *http.Request) string {
		return GetRequestID(r.Context())
	})
}
