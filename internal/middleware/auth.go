package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/vancomm/sanji/internal/config"
)

type CtxKey int

const (
	CtxPlayerClaims CtxKey = iota
)

// PlayerClaims returns the claims [Auth] stored in ctx, if any.
func PlayerClaims(ctx context.Context) (*config.PlayerClaims, bool) {
	claims, ok := ctx.Value(CtxPlayerClaims).(*config.PlayerClaims)
	return claims, ok
}

// PlayerID is nil for anonymous requests.
func PlayerID(ctx context.Context) *int64 {
	claims, ok := PlayerClaims(ctx)
	if !ok {
		return nil
	}
	id := claims.PlayerId
	return &id
}

// Auth attaches the player claims carried by the auth cookies to the request
// context. Requests with invalid cookies proceed anonymously and get the
// cookies cleared.
func Auth(logger *slog.Logger, cookies *config.Cookies) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := cookies.ParsePlayerClaims(r)
			if err != nil {
				if _, noCookie := r.Cookie("auth"); noCookie == nil {
					logger.Debug("dropping invalid auth cookies", slog.Any("error", err))
					cookies.Clear(w)
				}
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), CtxPlayerClaims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
