package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/iho/panelledger/internal/infrastructure/logger"
)

// Recovery turns a panic in a handler into a JSON 500 and logs it with the
// stack. http.ErrAbortHandler is re-raised so net/http aborts the response.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			logger.FromContext(r.Context()).Error().
				Str("panic", fmt.Sprint(rec)).
				Bytes("stack", debug.Stack()).
				Str("route", routePattern(r)).
				Msg("panic recovered")

			writeJSONError(w, http.StatusInternalServerError, "internal server error")
		}()

		next.ServeHTTP(w, r)
	})
}
