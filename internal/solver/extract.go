// Package solver decides whether a minefield can be cleared by pure
// deduction from some starting cell, without ever guessing.
package solver

import (
	"github.com/sweepline/noguess-server/internal/board"
	"github.com/sweepline/noguess-server/internal/csp"
)

// Cell values as CSP domain members.
const (
	Safe = 0
	Mine = 1
)

// A problem is the constraint view of one board snapshot: one variable
// per frontier cell (unrevealed, unflagged, next to a revealed numbered
// cell) and one sum constraint per revealed numbered cell that still
// has unresolved neighbors. Problems are rebuilt from scratch every
// round; the board changes underneath them.
type problem struct {
	vars   []csp.Variable
	cells  map[csp.Variable]board.Point
	solver *csp.Solver
}

func varName(p board.Point) csp.Variable {
	return csp.Variable(p.String())
}

func extract(b *board.Board, stepLimit int) *problem {
	p := &problem{
		cells: make(map[csp.Variable]board.Point),
	}

	type constraint struct {
		vars   []csp.Variable
		target int
	}
	var constraints []constraint

	domains := make(map[csp.Variable]csp.Domain)
	for y := range b.Height {
		for x := range b.Width {
			c := b.At(x, y)
			if !c.Revealed || c.AdjacentMines == 0 {
				continue
			}

			var (
				unresolved []board.Point
				flagged    int
			)
			for _, n := range b.Neighbors(x, y) {
				nc := b.At(n.X, n.Y)
				switch {
				case nc.Flagged:
					flagged++
				case !nc.Revealed:
					unresolved = append(unresolved, n)
				}
			}
			if len(unresolved) == 0 {
				continue
			}

			vars := make([]csp.Variable, len(unresolved))
			for i, n := range unresolved {
				v := varName(n)
				vars[i] = v
				if _, seen := domains[v]; !seen {
					domains[v] = csp.Domain{Safe, Mine}
					p.vars = append(p.vars, v)
					p.cells[v] = n
				}
			}
			constraints = append(constraints, constraint{
				vars:   vars,
				target: c.AdjacentMines - flagged,
			})
		}
	}

	p.solver = csp.NewSolver(p.vars, domains).WithStepLimit(stepLimit)
	for _, c := range constraints {
		p.solver.AddConstraint(sumEquals(c.vars, c.target))
	}
	return p
}

/*
sumEquals constrains the number of cells assigned Mine among vars to
equal target. Mid-search some variables are still unbound, so the
predicate only rejects assignments that cannot be completed: too many
mines already, or too few cells left to reach the target.
*/
func sumEquals(vars []csp.Variable, target int) csp.Constraint {
	return func(a csp.Assignment) bool {
		mines, unbound := 0, 0
		for _, v := range vars {
			value, bound := a[v]
			if !bound {
				unbound++
			} else if value == Mine {
				mines++
			}
		}
		return mines <= target && mines+unbound >= target
	}
}
