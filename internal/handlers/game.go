package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"

	"github.com/vancomm/sanji/internal/config"
	"github.com/vancomm/sanji/internal/middleware"
	"github.com/vancomm/sanji/internal/sanji"
	"github.com/vancomm/sanji/internal/store"
	"github.com/vancomm/sanji/internal/wordbank"
)

type SessionStore interface {
	Get(id string) (*store.GameSession, error)
	Save(g *store.GameSession) error
	Delete(id string) error
}

type GameHandler struct {
	logger   *slog.Logger
	sessions SessionStore
	bank     wordbank.Bank
	ws       *config.WebSocket
	rnd      *lockedRand
	locks    *keyedMutex
}

func NewGameHandler(
	logger *slog.Logger,
	sessions SessionStore,
	bank wordbank.Bank,
	ws *config.WebSocket,
	rnd *rand.Rand,
) *GameHandler {
	return &GameHandler{
		logger:   logger,
		sessions: sessions,
		bank:     bank,
		ws:       ws,
		rnd:      &lockedRand{rnd: rnd},
		locks:    newKeyedMutex(),
	}
}

var (
	ErrSessionNotFound = errors.New("game session not found")
	ErrForbidden       = errors.New("game session belongs to another player")
)

// statusCode maps the errors the game operations return to HTTP statuses.
func statusCode(err error) int {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, sanji.ErrNotSolved),
		errors.Is(err, sanji.ErrInsufficientWordBank):
		return http.StatusConflict
	case errors.Is(err, sanji.ErrIndexOutOfRange),
		errors.Is(err, sanji.ErrNegativeLevel),
		errors.Is(err, ErrUnknownCommand),
		errors.Is(err, ErrCommandArgs),
		errors.Is(err, ErrBadIndex):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (g *GameHandler) fail(w http.ResponseWriter, err error) {
	status := statusCode(err)
	if status == http.StatusInternalServerError {
		g.logger.Error("game operation failed", slog.Any("error", err))
		w.WriteHeader(status)
		return
	}
	sendError(w, g.logger, status, err)
}

func (g *GameHandler) load(id string) (*store.GameSession, *sanji.Session, error) {
	session, err := g.sessions.Get(id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("unable to fetch session: %w", err)
	}
	s, err := session.Session()
	if err != nil {
		return nil, nil, fmt.Errorf("store returned invalid session state: %w", err)
	}
	return session, s, nil
}

func (g *GameHandler) loadOwned(id string, playerID *int64) (*store.GameSession, *sanji.Session, error) {
	session, s, err := g.load(id)
	if err != nil {
		return nil, nil, err
	}
	if !session.OwnedBy(playerID) {
		return nil, nil, ErrForbidden
	}
	return session, s, nil
}

func (g *GameHandler) create(level int, playerID *int64) (*store.GameSession, *sanji.Session, error) {
	s, err := sanji.NewSession(level, g.bank, g.rnd)
	if err != nil {
		return nil, nil, err
	}
	session, err := store.NewGameSession(playerID, s)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to encode session: %w", err)
	}
	if err := g.sessions.Save(session); err != nil {
		return nil, nil, fmt.Errorf("unable to save session: %w", err)
	}
	g.logger.Debug(
		"created game session",
		slog.String("id", session.ID),
		slog.Int("level", level),
		slog.Any("words", s.Words()),
	)
	return session, s, nil
}

func (g *GameHandler) activate(id string, playerID *int64, index int) (*GameSessionDTO, error) {
	unlock := g.locks.Lock(id)
	defer unlock()

	session, s, err := g.loadOwned(id, playerID)
	if err != nil {
		return nil, err
	}
	res, err := s.Activate(index)
	if err != nil {
		return nil, err
	}
	if err := session.Update(s); err != nil {
		return nil, fmt.Errorf("unable to encode session: %w", err)
	}
	if err := g.sessions.Save(session); err != nil {
		return nil, fmt.Errorf("unable to save session: %w", err)
	}
	if res.Solved && len(res.Locked) > 0 {
		g.logger.Info("stage solved", slog.String("id", id), slog.Int("level", s.Level()))
	}
	return NewGameSessionDTO(session, s, &res), nil
}

// next replaces the solved session id with a fresh one a level higher.
func (g *GameHandler) next(id string, playerID *int64) (*GameSessionDTO, error) {
	unlock := g.locks.Lock(id)
	defer unlock()

	session, s, err := g.loadOwned(id, playerID)
	if err != nil {
		return nil, err
	}
	if !s.Solved() {
		return nil, sanji.ErrNotSolved
	}
	created, next, err := g.create(s.Level()+1, session.PlayerID)
	if err != nil {
		return nil, err
	}
	if err := g.sessions.Delete(id); err != nil {
		return nil, fmt.Errorf("unable to delete session: %w", err)
	}
	return NewGameSessionDTO(created, next, nil), nil
}

func (g *GameHandler) fetch(id string) (*GameSessionDTO, error) {
	unlock := g.locks.Lock(id)
	defer unlock()

	session, s, err := g.load(id)
	if err != nil {
		return nil, err
	}
	return NewGameSessionDTO(session, s, nil), nil
}

func (g *GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseNewGameDTO(r.URL.Query())
	if err != nil {
		sendError(w, g.logger, http.StatusBadRequest, err)
		return
	}

	session, s, err := g.create(dto.Level, middleware.PlayerID(r.Context()))
	if errors.Is(err, sanji.ErrInsufficientWordBank) {
		sendError(w, g.logger, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		g.fail(w, err)
		return
	}

	sendCreated(w, g.logger, NewGameSessionDTO(session, s, nil))
}

func (g *GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	dto, err := g.fetch(r.PathValue("id"))
	if err != nil {
		g.fail(w, err)
		return
	}
	sendJSONOrLog(w, g.logger, dto)
}

func (g *GameHandler) Activate(w http.ResponseWriter, r *http.Request) {
	params, err := ParseActivateDTO(r.URL.Query())
	if err != nil {
		sendError(w, g.logger, http.StatusBadRequest, err)
		return
	}

	dto, err := g.activate(r.PathValue("id"), middleware.PlayerID(r.Context()), params.Index)
	if err != nil {
		g.fail(w, err)
		return
	}
	sendJSONOrLog(w, g.logger, dto)
}

func (g *GameHandler) Next(w http.ResponseWriter, r *http.Request) {
	dto, err := g.next(r.PathValue("id"), middleware.PlayerID(r.Context()))
	if err != nil {
		g.fail(w, err)
		return
	}
	sendCreated(w, g.logger, dto)
}
