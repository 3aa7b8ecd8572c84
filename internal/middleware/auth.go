package middleware

import (
	"net/http"

	"github.com/burgerhouse/storefront/internal/config"
)

// AdminAuth guards the restaurant console endpoints. The key is passed in
// the "api_key" header; customer endpoints are not behind it.
func AdminAuth(cfg config.AdminConfig) func(next http.Handler) http.Handler {
	keys := make(map[string]struct{}, len(cfg.APIKeys))
	for _, k := range cfg.APIKeys {
		keys[k] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			apiKey := r.Header.Get("api_key")
			if apiKey == "" {
				http.Error(w, "Unauthorized: API key required", http.StatusUnauthorized)
				return
			}
			if _, ok := keys[apiKey]; !ok {
				http.Error(w, "Forbidden: Invalid API key", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
