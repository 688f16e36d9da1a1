package csp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func notEqual(a, b Variable) Constraint {
	return func(assignment Assignment) bool {
		x, boundA := assignment[a]
		y, boundB := assignment[b]
		if !boundA || !boundB {
			return true
		}
		return x != y
	}
}

func equal(a, b Variable) Constraint {
	return func(assignment Assignment) bool {
		x, boundA := assignment[a]
		y, boundB := assignment[b]
		if !boundA || !boundB {
			return true
		}
		return x == y
	}
}

func newTripleSolver() *Solver {
	vars := []Variable{"A", "B", "C"}
	domains := map[Variable]Domain{
		"A": {1, 2, 3},
		"B": {1, 2, 3},
		"C": {1, 2, 3},
	}
	return NewSolver(vars, domains)
}

func TestExtendSatisfiable(t *testing.T) {
	s := newTripleSolver()
	s.AddConstraint(notEqual("A", "B"))
	s.AddConstraint(notEqual("B", "C"))
	s.AddConstraint(notEqual("A", "C"))

	assignment := Assignment{}
	ok, err := s.Extend(assignment)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Len(t, assignment, 3)
	assert.NotEqual(t, assignment["A"], assignment["B"])
	assert.NotEqual(t, assignment["B"], assignment["C"])
	assert.NotEqual(t, assignment["A"], assignment["C"])
	assert.ElementsMatch(t,
		[]int{1, 2, 3},
		[]int{assignment["A"], assignment["B"], assignment["C"]},
	)
}

func TestExtendUnsatisfiableLeavesAssignmentUntouched(t *testing.T) {
	s := newTripleSolver()
	s.AddConstraint(notEqual("A", "B"))
	s.AddConstraint(notEqual("B", "C"))
	s.AddConstraint(notEqual("A", "C"))
	s.AddConstraint(equal("A", "B")) // contradicts A != B

	tests := []struct {
		name  string
		input Assignment
	}{
		{"empty", Assignment{}},
		{"prebound", Assignment{"A": 1}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assignment := test.input.Clone()
			ok, err := s.Extend(assignment)
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Equal(t, test.input, assignment)
		})
	}
}

func TestExtendKeepsPreboundValues(t *testing.T) {
	s := newTripleSolver()
	s.AddConstraint(notEqual("A", "B"))
	s.AddConstraint(notEqual("B", "C"))
	s.AddConstraint(notEqual("A", "C"))

	assignment := Assignment{"B": 2}
	ok, err := s.Extend(assignment)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, assignment["B"])
	assert.NotEqual(t, 2, assignment["A"])
	assert.NotEqual(t, 2, assignment["C"])
}

func TestExtendRejectsDoomedPrebinding(t *testing.T) {
	s := newTripleSolver()
	s.AddConstraint(notEqual("A", "B"))

	input := Assignment{"A": 1, "B": 1}
	assignment := input.Clone()
	ok, err := s.Extend(assignment)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, input, assignment)
}

func TestExtendStepLimit(t *testing.T) {
	s := newTripleSolver()
	s.AddConstraint(notEqual("A", "B"))
	s.WithStepLimit(2)

	assignment := Assignment{}
	ok, err := s.Extend(assignment)
	require.ErrorIs(t, err, ErrStepLimit)
	assert.False(t, ok)
	assert.Empty(t, assignment)
}
