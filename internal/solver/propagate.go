package solver

import (
	"errors"
	"fmt"

	"github.com/sweepline/noguess-server/internal/board"
	"github.com/sweepline/noguess-server/internal/csp"
)

// ErrInconsistent means some frontier cell can be neither safe nor a
// mine: the board's clues contradict each other. This is a malformed
// input, not a stuck game.
var ErrInconsistent = errors.New("solver: board constraints are mutually inconsistent")

type deduction struct {
	safe      []board.Point
	mines     []board.Point
	ambiguous []board.Point
}

/*
propagate classifies every frontier cell by asking the constraint
solver two questions: is there a consistent world where this cell is
safe, and one where it is a mine? A cell with only one possible answer
is forced; a cell with both is ambiguous. A cell with neither
surfaces [ErrInconsistent].
*/
func propagate(p *problem) (*deduction, error) {
	d := &deduction{}
	for _, v := range p.vars {
		canBeSafe, err := p.solver.Extend(csp.Assignment{v: Safe})
		if err != nil {
			return nil, err
		}
		canBeMine, err := p.solver.Extend(csp.Assignment{v: Mine})
		if err != nil {
			return nil, err
		}

		cell := p.cells[v]
		switch {
		case canBeSafe && canBeMine:
			d.ambiguous = append(d.ambiguous, cell)
		case canBeSafe:
			d.safe = append(d.safe, cell)
		case canBeMine:
			d.mines = append(d.mines, cell)
		default:
			return nil, fmt.Errorf("%w: cell %s", ErrInconsistent, v)
		}
	}
	return d, nil
}
