package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/vancomm/sanji/internal/config"
	"github.com/vancomm/sanji/internal/middleware"
	"github.com/vancomm/sanji/internal/repository"
)

type PlayerRepo interface {
	CreatePlayer(ctx context.Context, params repository.CreatePlayerParams) (*repository.Player, error)
	FetchPlayer(ctx context.Context, username string) (*repository.Player, error)
}

type AuthHandler struct {
	logger  *slog.Logger
	repo    PlayerRepo
	cookies *config.Cookies
	jwt     *config.JWT
}

func NewAuthHandler(
	logger *slog.Logger,
	repo PlayerRepo,
	cookies *config.Cookies,
	jwt *config.JWT,
) *AuthHandler {
	return &AuthHandler{
		logger:  logger,
		repo:    repo,
		cookies: cookies,
		jwt:     jwt,
	}
}

type PlayerInfo struct {
	PlayerId int64  `json:"player_id"`
	Username string `json:"username"`
}

type Status struct {
	LoggedIn bool        `json:"logged_in"`
	Player   *PlayerInfo `json:"player,omitempty"`
}

var (
	ErrBadAuthBody        = fmt.Errorf("request body must contain url-encoded username and password")
	ErrBadPasswordTooLong = fmt.Errorf("password too long")
	ErrUsernameTaken      = fmt.Errorf("username taken")
	ErrBadCredentials     = fmt.Errorf("wrong username or password")
)

// bcrypt ignores everything past this many bytes.
const maxPasswordBytes = 72

func (a *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.PlayerClaims(r.Context())
	if !ok {
		a.cookies.Clear(w)
		sendJSONOrLog(w, a.logger, Status{LoggedIn: false})
		return
	}

	if !a.signIn(w, claims.PlayerId, claims.Username) {
		return
	}
	sendJSONOrLog(w, a.logger, Status{
		LoggedIn: true,
		Player:   &PlayerInfo{claims.PlayerId, claims.Username},
	})
}

func parseCredentials(r *http.Request) (username, password string, err error) {
	if err := r.ParseForm(); err != nil {
		return "", "", ErrBadAuthBody
	}
	username = r.FormValue("username")
	password = r.FormValue("password")
	if username == "" || password == "" {
		return "", "", ErrBadAuthBody
	}
	if len(password) > maxPasswordBytes {
		return "", "", ErrBadPasswordTooLong
	}
	return username, password, nil
}

// signIn refreshes the auth cookies and reports whether it succeeded.
func (a *AuthHandler) signIn(w http.ResponseWriter, playerId int64, username string) bool {
	token, err := a.jwt.Sign(config.NewPlayerClaims(playerId, username))
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		a.logger.Error("unable to sign player claims", slog.Any("error", err))
		return false
	}
	if err := a.cookies.Refresh(w, token); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		a.logger.Error("unable to set auth cookies", slog.Any("error", err))
		return false
	}
	return true
}

func (a *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	username, password, err := parseCredentials(r)
	if err != nil {
		sendError(w, a.logger, http.StatusBadRequest, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		a.logger.Error("unable to hash password", slog.Any("error", err))
		return
	}

	player, err := a.repo.CreatePlayer(r.Context(), repository.CreatePlayerParams{
		Username:     username,
		PasswordHash: hash,
	})
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) &&
		pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		sendError(w, a.logger, http.StatusConflict, ErrUsernameTaken)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		a.logger.Error("unable to insert player", slog.Any("error", err))
		return
	}

	if !a.signIn(w, player.PlayerId, player.Username) {
		return
	}
	a.logger.Info("player registered", slog.String("username", player.Username))
	sendCreated(w, a.logger, PlayerInfo{player.PlayerId, player.Username})
}

func (a *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	username, password, err := parseCredentials(r)
	if err != nil {
		sendError(w, a.logger, http.StatusBadRequest, err)
		return
	}

	player, err := a.repo.FetchPlayer(r.Context(), username)
	if errors.Is(err, pgx.ErrNoRows) {
		sendError(w, a.logger, http.StatusUnauthorized, ErrBadCredentials)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		a.logger.Error("unable to fetch player", slog.Any("error", err))
		return
	}

	err = bcrypt.CompareHashAndPassword(player.PasswordHash, []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		sendError(w, a.logger, http.StatusUnauthorized, ErrBadCredentials)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		a.logger.Error("bcrypt compare error", slog.Any("error", err))
		return
	}

	if !a.signIn(w, player.PlayerId, player.Username) {
		return
	}
	sendJSONOrLog(w, a.logger, PlayerInfo{player.PlayerId, player.Username})
}

func (a *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	a.cookies.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}
