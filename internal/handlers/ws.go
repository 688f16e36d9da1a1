package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5"

	"github.com/sweepline/noguess-server/internal/board"
	"github.com/sweepline/noguess-server/internal/repository"
)

type wsCommand string

const (
	wsNoop    wsCommand = "g"
	wsOpen    wsCommand = "o"
	wsFlag    wsCommand = "f"
	wsChord   wsCommand = "c"
	wsForfeit wsCommand = "r"
)

func parseXY(args []string) (x int, y int, err error) {
	if len(args) != 2 {
		err = fmt.Errorf("invalid args")
		return
	}
	if x, err = strconv.Atoi(args[0]); err != nil {
		err = fmt.Errorf("first argument must be an int")
		return
	}
	if y, err = strconv.Atoi(args[1]); err != nil {
		err = fmt.Errorf("second argument must be an int")
		return
	}
	return
}

func executeMove(game *board.Game, query string) error {
	tokens := strings.Split(query, " ")
	cmd, args := wsCommand(tokens[0]), tokens[1:]
	switch cmd {
	case wsNoop:
		return nil
	case wsForfeit:
		game.Forfeit()
		return nil
	case wsOpen, wsFlag, wsChord:
		x, y, err := parseXY(args)
		if err != nil {
			return err
		}
		if !game.Board.InBounds(x, y) {
			return fmt.Errorf("invalid cell coordinates")
		}
		switch cmd {
		case wsOpen:
			game.Open(x, y)
		case wsFlag:
			game.Flag(x, y)
		case wsChord:
			game.Chord(x, y)
		}
		return nil
	default:
		return fmt.Errorf("unknown command")
	}
}

func (g GameHandler) wsRunGameLoop(
	ctx context.Context,
	conn *websocket.Conn,
	session *repository.GameSession,
	game *board.Game,
) error {
	for {
		mt, buf, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if mt != websocket.TextMessage {
			return nil
		}

		message := strings.TrimSpace(string(buf))
		for _, line := range strings.Split(message, "\n") {
			if err := executeMove(game, strings.TrimSpace(line)); err != nil {
				return err
			}
			if game.Over() {
				break
			}
		}

		params := repository.UpdateGameSessionParams{
			Dead: &game.Dead,
			Won:  &game.Won,
		}
		if game.Over() && !session.EndedAt.Valid {
			params.EndedAt = endedAtNow(session)
		}

		state, err := game.Bytes()
		if err != nil {
			return fmt.Errorf("unable to serialize game state: %w", err)
		}
		params.State = &state

		session, err = g.repo.UpdateGameSession(ctx, session.GameSessionId, params)
		if err != nil {
			return fmt.Errorf("unable to update session in db: %w", err)
		}

		if err := conn.WriteJSON(NewGameSessionDTO(session, game)); err != nil {
			return fmt.Errorf("unable to write json: %w", err)
		}
	}
}

func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	sessionId, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	session, err := g.repo.FetchGameSession(r.Context(), sessionId)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("could not fetch session from db", "error", err)
		return
	}

	game, err := session.Game()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("db returned invalid game_session.state", "error", err)
		return
	}

	conn, err := g.ws.Upgrader.Upgrade(w, r, nil) // headers sent here
	if err != nil {
		g.logger.Error("unable to upgrade", slog.Any("error", err))
		return
	}
	defer conn.Close()

	g.logger.Debug("established WS connection")

	if err := g.wsRunGameLoop(r.Context(), conn, session, game); err != nil {
		if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
			g.logger.Warn("error in ws loop", slog.Any("error", err))
		}
	}
}
