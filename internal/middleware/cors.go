package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// Cors reflects any origin with credentials so browser clients served from
// another host can keep the auth cookies.
func Cors() Middleware {
	options := cors.Options{
		AllowOriginFunc: func(origin string) bool {
			return true
		},
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}
	return cors.New(options).Handler
}
