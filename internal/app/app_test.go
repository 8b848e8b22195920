package app

import (
	"bytes"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/sanji/internal/config"
	"github.com/vancomm/sanji/internal/store"
	"github.com/vancomm/sanji/internal/wordbank"
)

func newTestApp(t *testing.T, basePath string) *App {
	t.Helper()
	a := New(slog.Default(), nil)
	a.config = &config.App{Addr: ":0", BasePath: basePath}

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	a.jwt = config.NewJWTFromKeys(key, &key.PublicKey, time.Hour)
	a.cookies = config.NewCookiesWith("localhost", false, http.SameSiteLaxMode, a.jwt)
	a.ws, err = config.NewWebSocket()
	require.NoError(t, err)
	a.bank, err = wordbank.Default()
	require.NoError(t, err)

	db, err := store.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	s, err := store.NewStore(db, "sessions")
	require.NoError(t, err)
	a.sessions = store.NewSessions(s)

	a.loadRoutes()
	return a
}

func TestRoutesUnderBasePath(t *testing.T) {
	a := newTestApp(t, "/api")
	h := a.handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/game?level=4", nil))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var dto struct {
		ID    string            `json:"game_session_id"`
		Chips []json.RawMessage `json:"chips"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dto))
	assert.Len(t, dto.Chips, 36)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/game/"+dto.ID, nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/game/"+dto.ID, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatusRouteAnonymous(t *testing.T) {
	a := newTestApp(t, "")

	rec := httptest.NewRecorder()
	a.handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"logged_in": false}`, rec.Body.String())
}

func TestCorsPreflight(t *testing.T) {
	a := newTestApp(t, "")

	req := httptest.NewRequest(http.MethodOptions, "/game", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	a.handler().ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

type fakeMigrator struct {
	closeErr error
	closed   int
}

func (m *fakeMigrator) Version() (uint, bool, error) { return 2, false, nil }

func (m *fakeMigrator) Close() (error, error) {
	m.closed++
	return nil, m.closeErr
}

func TestFinishMigrationClosesMigrator(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	m := &fakeMigrator{}
	finishMigration(logger, m)
	assert.Equal(t, 1, m.closed)
	assert.Contains(t, buf.String(), `"version":2`)
	assert.NotContains(t, buf.String(), "unable to close migrator")

	buf.Reset()
	m = &fakeMigrator{closeErr: errors.New("connection reset")}
	finishMigration(logger, m)
	assert.Equal(t, 1, m.closed)
	assert.Contains(t, buf.String(), "unable to close migrator")
	assert.Contains(t, buf.String(), "connection reset")
}
