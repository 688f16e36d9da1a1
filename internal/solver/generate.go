package solver

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/sweepline/noguess-server/internal/board"
)

/*
GenerateNoGuess regenerates random boards until one of them can be
cleared without guessing, and returns that board with its SafeStart
cell stamped. Attempts are bounded by opts.MaxAttempts.
*/
func GenerateNoGuess(
	width, height, mineCount int, r *rand.Rand, opts Options,
) (*board.Board, board.Point, error) {
	opts = opts.withDefaults()

	var lastErr error
	for range opts.MaxAttempts {
		b, err := board.Generate(width, height, mineCount, r)
		if err != nil {
			return nil, board.Point{}, err
		}
		start, _, err := FindSafeStart(b, opts)
		if err == nil {
			return b, start, nil
		}
		if !errors.Is(err, ErrNoSafeStart) && !errors.Is(err, ErrBudgetExceeded) {
			return nil, board.Point{}, err
		}
		lastErr = err
	}
	return nil, board.Point{}, fmt.Errorf("could not generate a field: %w", lastErr)
}
