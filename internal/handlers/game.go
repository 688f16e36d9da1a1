package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sweepline/noguess-server/internal/board"
	"github.com/sweepline/noguess-server/internal/config"
	"github.com/sweepline/noguess-server/internal/middleware"
	"github.com/sweepline/noguess-server/internal/repository"
	"github.com/sweepline/noguess-server/internal/solver"
)

type GameHandler struct {
	logger  *slog.Logger
	repo    *repository.Queries
	cookies *config.Cookies
	ws      *config.WebSocket
	rnd     *rand.Rand
}

func NewGameHandler(
	logger *slog.Logger,
	db *pgxpool.Pool,
	cookies *config.Cookies,
	ws *config.WebSocket,
	rnd *rand.Rand,
) *GameHandler {
	return &GameHandler{
		logger:  logger,
		repo:    repository.New(db),
		cookies: cookies,
		ws:      ws,
		rnd:     rnd,
	}
}

func validParams(dto CreateNewGameDTO) error {
	if dto.Width < 1 || dto.Height < 1 {
		return fmt.Errorf("board dimensions must be positive")
	}
	if dto.MineCount < 1 || dto.MineCount >= dto.Width*dto.Height {
		return fmt.Errorf("mine count must leave at least one open cell")
	}
	return nil
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	dto, err := ParseCreateNewGameDTO(query)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}
	if err := validParams(dto); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	var (
		b     *board.Board
		start *board.Point
	)
	if dto.NoGuess {
		var s board.Point
		b, s, err = solver.GenerateNoGuess(
			dto.Width, dto.Height, dto.MineCount, g.rnd, solver.Options{},
		)
		if err != nil {
			w.WriteHeader(http.StatusUnprocessableEntity)
			sendJSONOrLog(w, g.logger, wrapError(err))
			return
		}
		start = &s
	} else {
		b, err = board.Generate(dto.Width, dto.Height, dto.MineCount, g.rnd)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			sendJSONOrLog(w, g.logger, wrapError(err))
			return
		}
	}

	game := &board.Game{Board: b, NoGuess: dto.NoGuess}

	params := repository.CreateGameSessionParams{Start: start}
	claims, loggedIn := r.Context().Value(middleware.CtxPlayerClaims).(*config.PlayerClaims)
	if loggedIn {
		playerId := int(claims.PlayerId)
		params.PlayerId = &playerId
	}

	session, err := g.repo.CreateGameSession(r.Context(), game, params)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to create game session", "error", err)
		return
	}

	sendJSONOrLog(w, g.logger, NewGameSessionDTO(session, game))
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
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
		g.logger.Error("unable to fetch session from db", "error", err)
		return
	}

	game, err := session.Game()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("db returned invalid game_session.state", "error", err)
		return
	}

	sendJSONOrLog(w, g.logger, NewGameSessionDTO(session, game))
}

type GameMove int

const (
	Open GameMove = iota
	Flag
	Chord
)

func ParseGameMove(value string) (GameMove, error) {
	switch value {
	case "open":
		return Open, nil
	case "flag":
		return Flag, nil
	case "chord":
		return Chord, nil
	}
	return 0, fmt.Errorf("move must be one of 'open', 'flag', 'chord'")
}

func (g GameHandler) MakeAMove(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	move, err := ParseGameMove(query.Get("move"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	pos, err := ParsePosition(query)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

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

	if !game.Board.InBounds(pos.X, pos.Y) {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	switch move {
	case Open:
		game.Open(pos.X, pos.Y)
	case Flag:
		game.Flag(pos.X, pos.Y)
	case Chord:
		game.Chord(pos.X, pos.Y)
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
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to serialize game state", "error", err)
		return
	}
	params.State = &state

	session, err = g.repo.UpdateGameSession(r.Context(), session.GameSessionId, params)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to update session in db", "error", err)
		return
	}

	sendJSONOrLog(w, g.logger, NewGameSessionDTO(session, game))
}

func (g GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
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

	game.Forfeit()

	params := repository.UpdateGameSessionParams{
		Dead: &game.Dead,
		Won:  &game.Won,
	}
	if !session.EndedAt.Valid {
		params.EndedAt = endedAtNow(session)
	}

	state, err := game.Bytes()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to serialize game state", "error", err)
		return
	}
	params.State = &state

	session, err = g.repo.UpdateGameSession(r.Context(), session.GameSessionId, params)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to update session in db", "error", err)
		return
	}

	sendJSONOrLog(w, g.logger, NewGameSessionDTO(session, game))
}
