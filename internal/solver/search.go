package solver

import (
	"errors"

	"github.com/sweepline/noguess-server/internal/board"
)

var (
	// ErrNoSafeStart means every candidate start eventually requires a
	// guess. Expected for most random boards; the caller regenerates.
	ErrNoSafeStart = errors.New("solver: no start cell clears the board without guessing")

	// ErrBudgetExceeded means the search gave up before finding a
	// solvable start. Distinct from ErrNoSafeStart: the board may yet
	// have one.
	ErrBudgetExceeded = errors.New("solver: search budget exceeded")
)

/*
FindSafeStart looks for a cell from which the whole board can be
cleared by deduction alone. Zero-count cells go first (their opening
cascade is maximal), then every other non-mine cell. Each candidate is
simulated on its own copy; the board itself is only written once, at
the very end, to stamp the winning cell's SafeStart marker.
*/
func FindSafeStart(b *board.Board, opts Options) (board.Point, *Result, error) {
	var (
		gaveUp       bool
		inconsistent error
	)

	try := func(pt board.Point) (*Result, bool, error) {
		res, err := Simulate(b, pt, opts)
		if errors.Is(err, ErrInconsistent) {
			inconsistent = err
			return nil, false, nil
		}
		if err != nil {
			return nil, false, err
		}
		switch res.Status {
		case Solved:
			return res, true, nil
		case GaveUp:
			gaveUp = true
		}
		return nil, false, nil
	}

	for _, zeros := range []bool{true, false} {
		for y := range b.Height {
			for x := range b.Width {
				c := b.At(x, y)
				if c.Mine || (c.AdjacentMines == 0) != zeros {
					continue
				}
				pt := board.Point{X: x, Y: y}
				res, solved, err := try(pt)
				if err != nil {
					return board.Point{}, nil, err
				}
				if solved {
					b.At(x, y).SafeStart = true
					return pt, res, nil
				}
			}
		}
	}

	switch {
	case inconsistent != nil:
		return board.Point{}, nil, inconsistent
	case gaveUp:
		return board.Point{}, nil, ErrBudgetExceeded
	default:
		return board.Point{}, nil, ErrNoSafeStart
	}
}
