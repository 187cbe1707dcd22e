package middleware

import (
	"net/http"
)

// ReadOnlyMiddleware rejects every write while the server runs against a shared
// demo ledger. Super admins and side-effect free POSTs are let through, so it
// must run after JWTAuthMiddleware.
func ReadOnlyMiddleware(readOnly bool) func(http.Handler) http.Handler {
	allowedPosts := map[string]bool{
		"/api/transactions/infer-category": true,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !readOnly || r.Method == http.MethodGet || IsSuperAdmin(r.Context()) {
				next.ServeHTTP(w, r)
				return
			}
			if r.Method == http.MethodPost && allowedPosts[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}
			WriteError(w, http.StatusForbidden, "read-only mode: only GET requests are allowed")
		})
	}
}
