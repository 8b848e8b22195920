package handlers

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/sanji/internal/config"
	"github.com/vancomm/sanji/internal/middleware"
	"github.com/vancomm/sanji/internal/repository"
)

type fakePlayers struct {
	mu      sync.Mutex
	players map[string]*repository.Player
}

func (f *fakePlayers) CreatePlayer(_ context.Context, params repository.CreatePlayerParams) (*repository.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.players[params.Username]; ok {
		return nil, &pgconn.PgError{Code: pgerrcode.UniqueViolation}
	}
	player := &repository.Player{
		PlayerId:     int64(len(f.players) + 1),
		Username:     params.Username,
		PasswordHash: params.PasswordHash,
	}
	f.players[params.Username] = player
	return player, nil
}

func (f *fakePlayers) FetchPlayer(_ context.Context, username string) (*repository.Player, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	player, ok := f.players[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return player, nil
}

type testAuth struct {
	handler http.Handler
}

func newTestAuth(t *testing.T) *testAuth {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	j := config.NewJWTFromKeys(key, &key.PublicKey, time.Hour)
	cookies := config.NewCookiesWith("example.com", false, http.SameSiteLaxMode, j)

	auth := NewAuthHandler(slog.Default(), &fakePlayers{players: map[string]*repository.Player{}}, cookies, j)
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/register", auth.Register)
	mux.HandleFunc("POST /auth/login", auth.Login)
	mux.HandleFunc("POST /auth/logout", auth.Logout)
	mux.HandleFunc("GET /auth/status", auth.Status)
	return &testAuth{handler: middleware.Auth(slog.Default(), cookies)(mux)}
}

func (a *testAuth) post(target, username, password string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *testAuth) status(cookies ...*http.Cookie) Status {
	req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	var status Status
	json.Unmarshal(rec.Body.Bytes(), &status)
	return status
}

func TestRegisterAndStatus(t *testing.T) {
	a := newTestAuth(t)

	rec := a.post("/auth/register", "sakura", "hunter2")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 2)

	status := a.status(cookies...)
	assert.True(t, status.LoggedIn)
	require.NotNil(t, status.Player)
	assert.Equal(t, "sakura", status.Player.Username)
	assert.Equal(t, int64(1), status.Player.PlayerId)

	assert.False(t, a.status().LoggedIn)
}

func TestRegisterConflicts(t *testing.T) {
	a := newTestAuth(t)
	require.Equal(t, http.StatusCreated, a.post("/auth/register", "sakura", "hunter2").Code)

	rec := a.post("/auth/register", "sakura", "other")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), ErrUsernameTaken.Error())
}

func TestRegisterBadBody(t *testing.T) {
	a := newTestAuth(t)
	tests := []struct {
		name     string
		username string
		password string
	}{
		{"no username", "", "hunter2"},
		{"no password", "sakura", ""},
		{"long password", "sakura", strings.Repeat("x", 73)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rec := a.post("/auth/register", test.username, test.password)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestLogin(t *testing.T) {
	a := newTestAuth(t)
	require.Equal(t, http.StatusCreated, a.post("/auth/register", "sakura", "hunter2").Code)

	rec := a.post("/auth/login", "sakura", "hunter2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, a.status(rec.Result().Cookies()...).LoggedIn)

	assert.Equal(t, http.StatusUnauthorized, a.post("/auth/login", "sakura", "wrong").Code)
	assert.Equal(t, http.StatusUnauthorized, a.post("/auth/login", "nobody", "hunter2").Code)
}

func TestLogout(t *testing.T) {
	a := newTestAuth(t)
	login := a.post("/auth/register", "sakura", "hunter2")

	rec := a.post("/auth/logout", "", "", login.Result().Cookies()...)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	for _, c := range rec.Result().Cookies() {
		assert.Equal(t, -1, c.MaxAge, c.Name)
	}
}
