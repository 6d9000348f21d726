package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/notyourtaha/Auto-Claim-Back-up/pkg/apierror"
)

// AdminKey guards the control endpoints with a shared secret passed in
// X-Admin-Key. An empty configured key disables the guarded group
// entirely rather than leaving it open.
func AdminKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key == "" {
				writeError(w, apierror.ServiceUnavailable("admin API disabled: no admin key configured"))
				return
			}

			provided := r.Header.Get("X-Admin-Key")
			if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
				writeError(w, apierror.Unauthorized("Invalid or missing X-Admin-Key"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// writeError writes an API error response.
func writeError(w http.ResponseWriter, err *apierror.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.StatusCode)
	w.Write(err.ToJSON())
}
