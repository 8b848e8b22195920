package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/sanji/internal/sanji"
)

func dialGame(t *testing.T, g *testGame, id, player string) *websocket.Conn {
	t.Helper()
	server := httptest.NewServer(asPlayer(g.mux))
	t.Cleanup(server.Close)

	header := http.Header{}
	if player != "" {
		header.Set("X-Player", player)
	}
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/game/" + id + "/connect"
	c, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func send(t *testing.T, c *websocket.Conn, text string) map[string]json.RawMessage {
	t.Helper()
	require.NoError(t, c.WriteMessage(websocket.TextMessage, []byte(text)))
	_, message, err := c.ReadMessage()
	require.NoError(t, err)
	var reply map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(message, &reply), string(message))
	return reply
}

func sendDTO(t *testing.T, c *websocket.Conn, text string) *GameSessionDTO {
	t.Helper()
	reply := send(t, c, text)
	require.NotContains(t, reply, "error")
	b, err := json.Marshal(reply)
	require.NoError(t, err)
	var dto GameSessionDTO
	require.NoError(t, json.Unmarshal(b, &dto))
	return &dto
}

func TestConnectWS(t *testing.T) {
	g := newTestGame(t)
	created := g.create(0, "")
	c := dialGame(t, g, created.GameSessionId, "")

	dto := sendDTO(t, c, "g")
	assert.Equal(t, created.Chips, dto.Chips)

	free := freeChips(created)
	require.NotEmpty(t, free)
	dto = sendDTO(t, c, fmt.Sprintf("a %d", free[0]))
	assert.Equal(t, sanji.Selected, dto.Chips[free[0]].Status)

	// bad commands answer with an error frame and keep the connection
	for _, text := range []string{"x", "a", "a one", "a 99", "g 1", "n"} {
		reply := send(t, c, text)
		assert.Contains(t, reply, "error", text)
	}

	dto = sendDTO(t, c, fmt.Sprintf("a %d", free[0]))
	assert.Equal(t, sanji.Idle, dto.Chips[free[0]].Status)
}

func TestConnectWSMultipleLines(t *testing.T) {
	g := newTestGame(t)
	created := g.create(0, "")
	free := freeChips(created)
	require.GreaterOrEqual(t, len(free), 2)
	c := dialGame(t, g, created.GameSessionId, "")

	dto := sendDTO(t, c, fmt.Sprintf("a %d\na %d", free[0], free[1]))
	require.NotNil(t, dto.Result)
	assert.True(t, dto.Result.Swapped)
}

func TestConnectWSFollowsNextLevel(t *testing.T) {
	g := newTestGame(t)
	solved := g.solve(g.create(0, "5"), "5")
	require.True(t, solved.Solved)

	c := dialGame(t, g, solved.GameSessionId, "5")
	next := sendDTO(t, c, "n")
	assert.Equal(t, 1, next.Level)
	assert.NotEqual(t, solved.GameSessionId, next.GameSessionId)

	dto := sendDTO(t, c, "g")
	assert.Equal(t, next.GameSessionId, dto.GameSessionId)
}

func TestConnectWSRejectsStrangers(t *testing.T) {
	g := newTestGame(t)
	created := g.create(0, "1")

	rec := g.do(http.MethodGet, "/game/"+created.GameSessionId+"/connect", "2")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = g.do(http.MethodGet, "/game/missing/connect", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
