package middleware

import (
	"errors"
	"net/http"

	"github.com/baechuer/real-time-ressys/services/account-service/internal/domain"
	"github.com/baechuer/real-time-ressys/services/account-service/internal/transport/http/response"
)

const DefaultMaxBodyBytes int64 = 1 << 20 // 1 MiB

// BodyLimit caps request bodies at maxBytes (<=0 means DefaultMaxBodyBytes).
// A declared Content-Length over the cap is rejected before the handler runs;
// anything else surfaces as a decode error in the handler.
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				response.WriteError(w, r, domain.WithMeta(
					domain.ErrInvalidJSON(errors.New("content-length over limit")),
					map[string]string{"reason": "body too large"},
				))
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
