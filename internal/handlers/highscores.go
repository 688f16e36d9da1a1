package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/schema"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sweepline/noguess-server/internal/repository"
)

type Highscores struct {
	logger *slog.Logger
	repo   *repository.Queries
}

func NewHighscores(logger *slog.Logger, db *pgxpool.Pool) *Highscores {
	return &Highscores{
		logger: logger,
		repo:   repository.New(db),
	}
}

type HighscoreFilterDTO struct {
	Username  *string `schema:"username"`
	Width     *int    `schema:"width"`
	Height    *int    `schema:"height"`
	MineCount *int    `schema:"mine_count"`
	NoGuess   *bool   `schema:"no_guess"`
}

func (dto HighscoreFilterDTO) Filter() repository.HighscoreFilter {
	filter := repository.HighscoreFilter{Username: dto.Username}
	if dto.Width != nil && dto.Height != nil && dto.MineCount != nil {
		params := repository.BoardParams{
			Width:     *dto.Width,
			Height:    *dto.Height,
			MineCount: *dto.MineCount,
		}
		if dto.NoGuess != nil {
			params.NoGuess = *dto.NoGuess
		}
		filter.BoardParams = &params
	}
	return filter
}

func (h Highscores) Get(w http.ResponseWriter, r *http.Request) {
	var dto HighscoreFilterDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	if err := dec.Decode(&dto, r.URL.Query()); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}

	highscores, err := h.repo.GetHighscores(r.Context(), dto.Filter())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to fetch highscores", "error", err)
		return
	}

	sendJSONOrLog(w, h.logger, highscores)
}
