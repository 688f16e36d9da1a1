package handlers

import (
	"strconv"
	"time"

	"github.com/gorilla/schema"

	"github.com/sweepline/noguess-server/internal/board"
	"github.com/sweepline/noguess-server/internal/repository"
)

type CreateNewGameDTO struct {
	Width     int  `schema:"width,required"`
	Height    int  `schema:"height,required"`
	MineCount int  `schema:"mine_count,required"`
	NoGuess   bool `schema:"no_guess"`
}

func ParseCreateNewGameDTO(src map[string][]string) (CreateNewGameDTO, error) {
	var dto CreateNewGameDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	return dto, err
}

type PositionDTO struct {
	X int `schema:"x,required" json:"x"`
	Y int `schema:"y,required" json:"y"`
}

func ParsePosition(src map[string][]string) (PositionDTO, error) {
	var pos PositionDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&pos, src)
	return pos, err
}

type GameSessionDTO struct {
	GameSessionId string       `json:"game_session_id"`
	Grid          []string     `json:"grid"`
	Width         int          `json:"width"`
	Height        int          `json:"height"`
	MineCount     int          `json:"mine_count"`
	NoGuess       bool         `json:"no_guess"`
	Start         *PositionDTO `json:"start,omitempty"`
	Dead          bool         `json:"dead"`
	Won           bool         `json:"won"`
	StartedAt     int64        `json:"started_at"`
	EndedAt       *int64       `json:"ended_at,omitempty"`
}

func NewGameSessionDTO(session *repository.GameSession, game *board.Game) *GameSessionDTO {
	var endedAt *int64
	if session.EndedAt.Valid {
		e := session.EndedAt.Time.UnixMilli()
		endedAt = &e
	}
	var start *PositionDTO
	if session.StartX != nil && session.StartY != nil {
		start = &PositionDTO{X: *session.StartX, Y: *session.StartY}
	}
	return &GameSessionDTO{
		GameSessionId: strconv.Itoa(session.GameSessionId),
		Grid:          game.View(),
		Width:         game.Board.Width,
		Height:        game.Board.Height,
		MineCount:     game.Board.MineCount,
		NoGuess:       game.NoGuess,
		Start:         start,
		Dead:          game.Dead,
		Won:           game.Won,
		StartedAt:     session.StartedAt.Time.UnixMilli(),
		EndedAt:       endedAt,
	}
}

func endedAtNow(session *repository.GameSession) *time.Time {
	now := time.Now().UTC()
	session.EndedAt.Time = now
	session.EndedAt.Valid = true
	return &now
}
