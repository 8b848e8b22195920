package app

import (
	"hash/maphash"
	"math/rand/v2"

	"github.com/vancomm/sanji/internal/handlers"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(
		a.logger, a.sessions, a.bank, a.ws, createRand(),
	)

	a.router.HandleFunc("POST /game", game.NewGame)
	a.router.HandleFunc("GET /game/{id}", game.Fetch)
	a.router.HandleFunc("POST /game/{id}/activate", game.Activate)
	a.router.HandleFunc("POST /game/{id}/next", game.Next)
	a.router.HandleFunc("GET /game/{id}/connect", game.ConnectWS)

	auth := handlers.NewAuthHandler(a.logger, a.players, a.cookies, a.jwt)

	a.router.HandleFunc("POST /auth/register", auth.Register)
	a.router.HandleFunc("POST /auth/login", auth.Login)
	a.router.HandleFunc("POST /auth/logout", auth.Logout)
	a.router.HandleFunc("GET /auth/status", auth.Status)
}
