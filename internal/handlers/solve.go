package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/schema"

	"github.com/sweepline/noguess-server/internal/board"
	"github.com/sweepline/noguess-server/internal/solver"
)

type SolveHandler struct {
	logger *slog.Logger
}

func NewSolveHandler(logger *slog.Logger) *SolveHandler {
	return &SolveHandler{logger: logger}
}

type SolveDTO struct {
	StepLimit int `schema:"step_limit"`
	MaxRounds int `schema:"max_rounds"`
}

type SolveResultDTO struct {
	Solvable bool         `json:"solvable"`
	Start    *PositionDTO `json:"start,omitempty"`
	Status   string       `json:"status,omitempty"`
	Rounds   int          `json:"rounds,omitempty"`
}

// Solve analyzes a textual mine field posted in the request body. With
// x and y query parameters it simulates a run from that start cell;
// without them it searches for a safe start.
func (s SolveHandler) Solve(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	b, err := board.Parse(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, s.logger, wrapError(err))
		return
	}

	dto, err := parseSolveDTO(query)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, s.logger, wrapError(err))
		return
	}
	opts := solver.Options{
		StepLimit: dto.StepLimit,
		MaxRounds: dto.MaxRounds,
	}

	if query.Has("x") || query.Has("y") {
		pos, err := ParsePosition(query)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			sendJSONOrLog(w, s.logger, wrapError(err))
			return
		}
		s.simulate(w, b, board.Point{X: pos.X, Y: pos.Y}, opts)
		return
	}

	start, result, err := solver.FindSafeStart(b, opts)
	switch {
	case errors.Is(err, solver.ErrNoSafeStart):
		sendJSONOrLog(w, s.logger, SolveResultDTO{Solvable: false})
	case errors.Is(err, solver.ErrBudgetExceeded):
		w.WriteHeader(http.StatusUnprocessableEntity)
		sendJSONOrLog(w, s.logger, wrapError(err))
	case errors.Is(err, solver.ErrInconsistent):
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, s.logger, wrapError(err))
	case err != nil:
		w.WriteHeader(http.StatusInternalServerError)
		s.logger.Error("solver failed", "error", err)
	default:
		sendJSONOrLog(w, s.logger, SolveResultDTO{
			Solvable: true,
			Start:    &PositionDTO{X: start.X, Y: start.Y},
			Status:   result.Status.String(),
			Rounds:   result.Rounds,
		})
	}
}

func (s SolveHandler) simulate(
	w http.ResponseWriter, b *board.Board, start board.Point, opts solver.Options,
) {
	result, err := solver.Simulate(b, start, opts)
	if errors.Is(err, solver.ErrInconsistent) {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, s.logger, wrapError(err))
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, s.logger, wrapError(err))
		return
	}
	sendJSONOrLog(w, s.logger, SolveResultDTO{
		Solvable: result.Status == solver.Solved,
		Start:    &PositionDTO{X: start.X, Y: start.Y},
		Status:   result.Status.String(),
		Rounds:   result.Rounds,
	})
}

func parseSolveDTO(src map[string][]string) (SolveDTO, error) {
	var dto SolveDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	return dto, err
}
