package server

import (
	"net/http"
	"strings"
)

// SecurityConfig bounds what the HTTP API accepts and how cross-origin
// requests are answered.
type SecurityConfig struct {
	// EnableCORS turns on cross-origin response headers.
	EnableCORS bool
	// AllowedOrigins lists origins allowed to call the API; "*" allows any.
	AllowedOrigins []string
	// AllowedMethods lists the HTTP methods advertised to browsers.
	AllowedMethods []string
	// MaxBodyBytes caps the request body size.
	MaxBodyBytes int64
	// MaxNumberLength caps the decimal radicand string length.
	MaxNumberLength int
	// MinPrecDigits and MaxPrecDigits bound the requested precision.
	MinPrecDigits uint
	MaxPrecDigits uint
	// MaxIterations is the clamp applied to the iteration count.
	MaxIterations uint
}

// DefaultSecurityConfig returns the production limits of the API.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:      true,
		AllowedOrigins:  []string{"*"},
		AllowedMethods:  []string{"GET", "POST", "OPTIONS"},
		MaxBodyBytes:    1 << 20,
		MaxNumberLength: 20000,
		MinPrecDigits:   2,
		MaxPrecDigits:   5000,
		MaxIterations:   2000,
	}
}

// SecurityMiddleware sets the standard security response headers and, when
// enabled, the CORS headers. Preflight OPTIONS requests are answered with
// 204 and never reach the next handler.
func SecurityMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		if config.EnableCORS {
			if origin := allowedOrigin(config, r.Header.Get("Origin")); origin != "" {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", joinMethods(config.AllowedMethods))
				h.Set("Access-Control-Allow-Headers", "Content-Type")
			}
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next(w, r)
	}
}

// allowedOrigin returns the Access-Control-Allow-Origin value for the given
// request origin, or "" when the origin is not allowed.
func allowedOrigin(config SecurityConfig, origin string) string {
	for _, allowed := range config.AllowedOrigins {
		if allowed == "*" {
			return "*"
		}
		if allowed == origin && origin != "" {
			return origin
		}
	}
	return ""
}

func joinMethods(methods []string) string {
	return strings.Join(methods, ", ")
}
