package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"github.com/notyourtaha/Auto-Claim-Back-up/pkg/apierror"
)

// Recovery converts handler panics into 500 responses. A panic in the
// admin API must never take the collection pipeline down with it.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("[HTTP] PANIC on %s %s: %v\n%s", r.Method, r.URL.Path, err, debug.Stack())

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				w.Write(apierror.InternalError("internal server error").ToJSON())
			}
		}()

		next.ServeHTTP(w, r)
	})
}
