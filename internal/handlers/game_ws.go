package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/vancomm/sanji/internal/middleware"
)

type wsCommand string

const (
	wsGet      wsCommand = "g"
	wsActivate wsCommand = "a"
	wsNext     wsCommand = "n"
)

var commandNargs = map[wsCommand]int{
	wsGet:      0,
	wsActivate: 1,
	wsNext:     0,
}

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrCommandArgs    = errors.New("invalid number of arguments")
	ErrBadIndex       = errors.New("chip index must be an int")
	ErrInternal       = errors.New("internal error")
)

// wsConn is one websocket client bound to a game session. id follows the
// session across level advances.
type wsConn struct {
	*GameHandler
	id       string
	playerID *int64
}

func (c *wsConn) run(line string) (*GameSessionDTO, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil, ErrUnknownCommand
	}
	cmd := wsCommand(parts[0])
	nargs, ok := commandNargs[cmd]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownCommand, parts[0])
	}
	if nargs != len(parts)-1 {
		return nil, ErrCommandArgs
	}

	switch cmd {
	case wsActivate:
		index, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, ErrBadIndex
		}
		return c.activate(c.id, c.playerID, index)
	case wsNext:
		dto, err := c.next(c.id, c.playerID)
		if err != nil {
			return nil, err
		}
		c.id = dto.GameSessionId
		return dto, nil
	default:
		return c.fetch(c.id)
	}
}

func (g *GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	conn := &wsConn{
		GameHandler: g,
		id:          r.PathValue("id"),
		playerID:    middleware.PlayerID(r.Context()),
	}

	if _, _, err := g.loadOwned(conn.id, conn.playerID); err != nil {
		g.fail(w, err)
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Error("unable to upgrade", slog.Any("error", err))
		return
	}
	defer c.Close()

	if g.ws.ReadLimit > 0 {
		c.SetReadLimit(g.ws.ReadLimit)
	}

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				g.logger.Warn("abnormal ws break", slog.Any("error", err))
			}
			return
		}
		if mt != websocket.TextMessage {
			continue
		}

		text := strings.TrimSpace(string(message))
		g.logger.Debug("ws command", slog.String("id", conn.id), slog.String("text", text))

		var reply any
		for _, line := range strings.Split(text, "\n") {
			dto, err := conn.run(line)
			if err != nil {
				reply = wrapError(err)
				if statusCode(err) == http.StatusInternalServerError {
					g.logger.Error("unable to process command", slog.Any("error", err))
					reply = wrapError(ErrInternal)
				}
				break
			}
			reply = dto
		}

		if err := c.WriteJSON(reply); err != nil {
			g.logger.Error("unable to write json", slog.Any("error", err))
			return
		}
	}
}
