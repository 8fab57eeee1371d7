package http

import (
	"net"
	"net/http"

	"github.com/Myseie/ShopInventory/internal/auth"
	"github.com/Myseie/ShopInventory/internal/http/handlers"
	rl "github.com/Myseie/ShopInventory/internal/http/rate_limiter"
)

// AuthMiddleware requires a valid bearer token on mutating routes.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := auth.TokenClaims(r.Header.Get("Authorization"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		username, _ := claims["username"].(string)
		ctx := handlers.WithUsername(r.Context(), username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RateLimitMiddleware applies the per-IP token bucket to a route.
func RateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !rl.GetVisitor(ip).Allow() {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
