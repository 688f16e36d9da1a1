package solver

import (
	"errors"
	"fmt"

	"github.com/sweepline/noguess-server/internal/board"
	"github.com/sweepline/noguess-server/internal/csp"
)

type Status int

const (
	Running Status = iota
	Solved
	Stuck
	GaveUp
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Solved:
		return "solved"
	case Stuck:
		return "stuck"
	case GaveUp:
		return "gave up"
	default:
		return "unknown"
	}
}

// Options bound the search effort. Zero values mean the defaults.
type Options struct {
	// StepLimit caps tentative bindings per solver invocation.
	StepLimit int
	// MaxRounds caps deduction rounds per simulated game.
	MaxRounds int
	// MaxAttempts caps board regenerations in GenerateNoGuess.
	MaxAttempts int
}

const (
	defaultStepLimit   = 1 << 20
	defaultMaxRounds   = 1 << 12
	defaultMaxAttempts = 100
)

func (o Options) withDefaults() Options {
	if o.StepLimit == 0 {
		o.StepLimit = defaultStepLimit
	}
	if o.MaxRounds == 0 {
		o.MaxRounds = defaultMaxRounds
	}
	if o.MaxAttempts == 0 {
		o.MaxAttempts = defaultMaxAttempts
	}
	return o
}

// Result is the outcome of simulating one game from one start cell.
type Result struct {
	Status Status
	Rounds int
	// Final is the simulation's own board copy after the last round:
	// deduced mines flagged, deduced safe cells revealed.
	Final *board.Board
}

/*
Simulate plays a perfect-deduction game from the given start cell on a
private copy of the board: reveal, rebuild the constraint view,
classify the frontier, flag forced mines, reveal forced safe cells,
repeat. It ends Solved when every non-mine cell is revealed, Stuck
when only ambiguous cells remain, or GaveUp when the effort budget
runs out.
*/
func Simulate(b *board.Board, start board.Point, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	if !b.InBounds(start.X, start.Y) {
		return nil, fmt.Errorf("start %s out of bounds", start)
	}
	if b.At(start.X, start.Y).Mine {
		return nil, fmt.Errorf("start %s is a mine", start)
	}

	cur, ok := b.SimulateReveal(start.X, start.Y)
	if !ok {
		return nil, fmt.Errorf("start %s cascaded into a mine", start)
	}

	res := &Result{Status: Running, Rounds: 1, Final: cur}
	for {
		if cur.Cleared() {
			res.Status = Solved
			res.Final = cur
			return res, nil
		}

		p := extract(cur, opts.StepLimit)
		if len(p.vars) == 0 {
			// Hidden cells remain but none borders a clue; no local
			// deduction can ever touch them.
			res.Status = Stuck
			res.Final = cur
			return res, nil
		}

		ded, err := propagate(p)
		if errors.Is(err, csp.ErrStepLimit) {
			res.Status = GaveUp
			res.Final = cur
			return res, nil
		}
		if err != nil {
			return nil, err
		}

		// Forced mines are flagged, never revealed. Flagging first
		// lets the chord cascade fire for the safe reveals below.
		for _, pt := range ded.mines {
			cur.At(pt.X, pt.Y).Flagged = true
		}

		if len(ded.safe) == 0 {
			res.Status = Stuck
			res.Final = cur
			return res, nil
		}

		for _, pt := range ded.safe {
			next, ok := cur.SimulateReveal(pt.X, pt.Y)
			if !ok {
				return nil, fmt.Errorf(
					"%w: deduced-safe cell %s cascaded into a mine",
					ErrInconsistent, pt,
				)
			}
			cur = next
		}

		res.Rounds++
		if res.Rounds > opts.MaxRounds {
			res.Status = GaveUp
			res.Final = cur
			return res, nil
		}
	}
}
