package middleware

import "net/http"

// Unavailable returns middleware that rejects every request with 503. Used to
// keep protected route groups closed when their auth backend is not configured.
func Unavailable(reason string) func(http.Handler) http.Handler {
	return func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSONError(w, http.StatusServiceUnavailable, reason)
		})
	}
}
