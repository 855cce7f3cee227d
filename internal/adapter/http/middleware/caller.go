package middleware

import (
	"net/http"

	"github.com/iho/panelledger/internal/domain"
)

// CallerHeader names the user performing the request. Authentication is
// left to the fronting proxy; this service trusts the header.
const CallerHeader = "X-User-ID"

// Caller resolves X-User-ID into the request context. Requests without the
// header pass through and are rejected by handlers that need a caller.
func Caller(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(CallerHeader)
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		id, err := domain.ParseID(raw)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, "invalid "+CallerHeader+" header")
			return
		}

		next.ServeHTTP(w, r.WithContext(domain.WithCallerID(r.Context(), id)))
	})
}
