// Package csp implements a small finite-domain constraint solver:
// named variables, integer domains, and arbitrary predicate
// constraints, searched by depth-first backtracking.
package csp

import "errors"

// ErrStepLimit is returned when a search runs out of its step budget
// before proving the constraint set satisfiable or unsatisfiable.
var ErrStepLimit = errors.New("csp: step limit exceeded")

type (
	Variable   string
	Domain     []int
	Assignment map[Variable]int

	// A Constraint is evaluated against partial assignments during
	// the search. It must treat variables absent from the assignment
	// as unknown: return false only when no completion of the
	// assignment could satisfy it.
	Constraint func(Assignment) bool
)

func (a Assignment) Clone() Assignment {
	c := make(Assignment, len(a))
	for k, v := range a {
		c[k] = v
	}
	return c
}

type Solver struct {
	variables   []Variable
	domains     map[Variable]Domain
	constraints []Constraint
	stepLimit   int
}

// NewSolver builds a solver over the given variables. The search
// assigns variables in the order given here; the order affects speed,
// never the outcome.
func NewSolver(variables []Variable, domains map[Variable]Domain) *Solver {
	return &Solver{variables: variables, domains: domains}
}

func (s *Solver) AddConstraint(c Constraint) {
	s.constraints = append(s.constraints, c)
}

// WithStepLimit caps the number of tentative bindings a single Extend
// call may try. Zero means unlimited.
func (s *Solver) WithStepLimit(n int) *Solver {
	s.stepLimit = n
	return s
}

/*
Extend attempts to complete a partial assignment so that every
constraint holds. On success the assignment holds a full satisfying
mapping. On failure (or error) every tentative binding has been
removed again and the assignment is exactly as the caller passed it
in.
*/
func (s *Solver) Extend(assignment Assignment) (bool, error) {
	// Pre-bound values count too: a caller may hand us an assignment
	// that is already doomed, or already complete.
	if !s.consistent(assignment) {
		return false, nil
	}
	steps := 0
	return s.extend(assignment, &steps)
}

func (s *Solver) extend(assignment Assignment, steps *int) (bool, error) {
	if len(assignment) == len(s.variables) {
		return true, nil
	}

	v, ok := s.selectUnassigned(assignment)
	if !ok {
		// Assignment holds variables this solver does not know about.
		return false, errors.New("csp: assignment does not match variable set")
	}

	for _, value := range s.domains[v] {
		*steps++
		if s.stepLimit > 0 && *steps > s.stepLimit {
			return false, ErrStepLimit
		}

		assignment[v] = value
		if s.consistent(assignment) {
			done, err := s.extend(assignment, steps)
			if done {
				return true, nil
			}
			if err != nil {
				delete(assignment, v)
				return false, err
			}
		}
		// Undo explicitly before trying the next value; nothing may
		// leak out of a failed branch.
		delete(assignment, v)
	}

	return false, nil
}

func (s *Solver) selectUnassigned(assignment Assignment) (Variable, bool) {
	for _, v := range s.variables {
		if _, bound := assignment[v]; !bound {
			return v, true
		}
	}
	return "", false
}

func (s *Solver) consistent(assignment Assignment) bool {
	for _, c := range s.constraints {
		if !c(assignment) {
			return false
		}
	}
	return true
}
