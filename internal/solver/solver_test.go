package solver

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweepline/noguess-server/internal/board"
)

// 4x4 field with mines at x1:y1 and x0:y3; x3:y0 opens a zero and the
// rest falls to deduction.
const deducibleBoard = `
	1 1 1 0
	1 M 1 0
	2 2 1 0
	M 1 0 0
`

// 2x2 field with a single cornered mine: every clue reads 1 over the
// same hidden trio, so nothing is ever forced.
const coinFlipBoard = `
	M 1
	1 1
`

func mustParse(t *testing.T, text string) *board.Board {
	t.Helper()
	b, err := board.Parse(strings.NewReader(text))
	require.NoError(t, err)
	return b
}

func TestSimulateSolvesDeducibleBoard(t *testing.T) {
	b := mustParse(t, deducibleBoard)

	res, err := Simulate(b, board.Point{X: 3, Y: 0}, Options{})
	require.NoError(t, err)
	require.Equal(t, Solved, res.Status)

	assert.True(t, res.Final.Cleared())
	for y := range b.Height {
		for x := range b.Width {
			c := res.Final.At(x, y)
			if c.Mine {
				assert.False(t, c.Revealed, "mine %d:%d was opened", x, y)
			} else {
				assert.True(t, c.Revealed, "cell %d:%d left hidden", x, y)
			}
		}
	}
	// The input board is untouched by the simulation.
	assert.False(t, b.At(3, 0).Revealed)
}

func TestSimulateFirstRoundOpensZeroRegion(t *testing.T) {
	b := mustParse(t, deducibleBoard)

	cur, ok := b.SimulateReveal(3, 0)
	require.True(t, ok)
	for _, p := range []board.Point{
		{X: 3, Y: 0}, {X: 3, Y: 1}, {X: 3, Y: 2}, {X: 3, Y: 3}, {X: 2, Y: 3},
	} {
		assert.True(t, cur.At(p.X, p.Y).Revealed,
			"zero region cell %s not opened", p)
	}
}

func TestSimulateStuckOnCoinFlip(t *testing.T) {
	b := mustParse(t, coinFlipBoard)

	for y := range b.Height {
		for x := range b.Width {
			if b.At(x, y).Mine {
				continue
			}
			res, err := Simulate(b, board.Point{X: x, Y: y}, Options{})
			require.NoError(t, err)
			assert.Equal(t, Stuck, res.Status, "start %d:%d", x, y)
			assert.Greater(t, res.Final.Hidden(), 0,
				"stuck board must leave non-mine cells hidden")
		}
	}
}

func TestSimulateRejectsMineStart(t *testing.T) {
	b := mustParse(t, deducibleBoard)
	_, err := Simulate(b, board.Point{X: 1, Y: 1}, Options{})
	assert.Error(t, err)

	_, err = Simulate(b, board.Point{X: -1, Y: 0}, Options{})
	assert.Error(t, err)
}

func TestPropagateNeverForcesBothWays(t *testing.T) {
	b := mustParse(t, deducibleBoard)
	cur, ok := b.SimulateReveal(3, 0)
	require.True(t, ok)

	p := extract(cur, 0)
	require.NotEmpty(t, p.vars)

	ded, err := propagate(p)
	require.NoError(t, err)

	seen := map[board.Point]string{}
	for _, pt := range ded.safe {
		seen[pt] = "safe"
	}
	for _, pt := range ded.mines {
		require.NotContains(t, seen, pt,
			"cell %s forced both safe and mine", pt)
		seen[pt] = "mine"
	}
	for _, pt := range ded.ambiguous {
		require.NotContains(t, seen, pt,
			"ambiguous cell %s also forced", pt)
	}
	// x1:y1 is pinned by the lone clue at x2:y2.
	assert.Contains(t, ded.mines, board.Point{X: 1, Y: 1})
}

func TestPropagateFlagsInconsistency(t *testing.T) {
	b := mustParse(t, deducibleBoard)
	cur, ok := b.SimulateReveal(3, 0)
	require.True(t, ok)

	// Contradict the clues: pretend both hidden neighbors of the
	// top-left clue are flagged while its count still demands more.
	cur.At(0, 0).AdjacentMines = 8
	cur.At(0, 0).Revealed = true

	_, err := propagate(extract(cur, 0))
	assert.ErrorIs(t, err, ErrInconsistent)
}

func TestFindSafeStartDeducibleBoard(t *testing.T) {
	b := mustParse(t, deducibleBoard)

	start, res, err := FindSafeStart(b, Options{})
	require.NoError(t, err)
	assert.Equal(t, board.Point{X: 3, Y: 0}, start)
	assert.Equal(t, Solved, res.Status)
	assert.True(t, b.At(3, 0).SafeStart)

	// Only the start stamp touches the input board.
	assert.False(t, b.At(3, 0).Revealed)
	assert.False(t, b.At(1, 1).Flagged)
}

func TestFindSafeStartCoinFlip(t *testing.T) {
	b := mustParse(t, coinFlipBoard)

	_, _, err := FindSafeStart(b, Options{})
	assert.ErrorIs(t, err, ErrNoSafeStart)
	for i := range b.Cells {
		assert.False(t, b.Cells[i].SafeStart)
	}
}

func TestFindSafeStartBudget(t *testing.T) {
	b := mustParse(t, deducibleBoard)

	_, _, err := FindSafeStart(b, Options{StepLimit: 1})
	assert.ErrorIs(t, err, ErrBudgetExceeded)
}

func TestStepLimitSurfacesAsGaveUp(t *testing.T) {
	b := mustParse(t, deducibleBoard)

	res, err := Simulate(b, board.Point{X: 3, Y: 0}, Options{StepLimit: 1})
	require.NoError(t, err)
	assert.Equal(t, GaveUp, res.Status)
}

func TestGenerateNoGuess(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))

	b, start, err := GenerateNoGuess(5, 5, 3, r, Options{})
	require.NoError(t, err)
	require.True(t, b.InBounds(start.X, start.Y))
	assert.True(t, b.At(start.X, start.Y).SafeStart)
	assert.False(t, b.At(start.X, start.Y).Mine)

	res, err := Simulate(b, start, Options{})
	require.NoError(t, err)
	assert.Equal(t, Solved, res.Status)
}

func TestGenerateNoGuessSizes(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	t.Parallel()

	tests := []struct {
		name                     string
		width, height, mineCount int
	}{
		{"5x5(3)", 5, 5, 3},
		{"8x8(8)", 8, 8, 8},
		{"9x9(10)", 9, 9, 10},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			r := rand.New(rand.NewPCG(1, 2))
			b, start, err := GenerateNoGuess(
				test.width, test.height, test.mineCount, r, Options{},
			)
			require.NoError(t, err)
			res, err := Simulate(b, start, Options{})
			require.NoError(t, err)
			assert.Equal(t, Solved, res.Status)
		})
	}
}

func TestExtractEmptyFrontier(t *testing.T) {
	b := mustParse(t, deducibleBoard)
	p := extract(b, 0)
	assert.Empty(t, p.vars, "nothing revealed, nothing to model")
}
