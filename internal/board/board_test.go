package board

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const docBoard = `
1 1 2 1
1 M 2 M
2 2 3 1
1 M 1 0
`

func mustParse(t *testing.T, text string) *Board {
	t.Helper()
	b, err := Parse(strings.NewReader(text))
	require.NoError(t, err)
	return b
}

func TestParse(t *testing.T) {
	b := mustParse(t, docBoard)

	assert.Equal(t, 4, b.Width)
	assert.Equal(t, 4, b.Height)
	assert.Equal(t, 3, b.MineCount)
	assert.True(t, b.At(1, 1).Mine)
	assert.True(t, b.At(3, 1).Mine)
	assert.True(t, b.At(1, 3).Mine)
	assert.Equal(t, 3, b.At(2, 2).AdjacentMines)
	assert.Equal(t, 0, b.At(3, 3).AdjacentMines)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", "\n  \n"},
		{"ragged", "1 1\n1"},
		{"bad token", "1 x\n1 1"},
		{"count too big", "9 1\n1 1"},
		{"count mismatch", "2 1\n1 M"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(test.text))
			assert.Error(t, err)
		})
	}
}

func TestNeighborsClipped(t *testing.T) {
	b := mustParse(t, docBoard)

	assert.Len(t, b.Neighbors(0, 0), 3)
	assert.Len(t, b.Neighbors(1, 0), 5)
	assert.Len(t, b.Neighbors(1, 1), 8)
	assert.Len(t, b.Neighbors(3, 3), 3)
}

func TestOpenCascadesZeroRegion(t *testing.T) {
	b := mustParse(t, `
		1 1 1 0
		1 M 1 0
		2 2 1 0
		M 1 0 0
	`)

	require.True(t, b.Open(3, 0))

	// The whole zero-connected region opens, plus its numbered rim.
	for _, p := range []Point{
		{3, 0}, {3, 1}, {3, 2}, {3, 3}, {2, 3},
		{2, 0}, {2, 1}, {2, 2}, {1, 2}, {1, 3},
	} {
		assert.True(t, b.At(p.X, p.Y).Revealed, "cell %s should be open", p)
	}
	assert.False(t, b.At(0, 0).Revealed)
	assert.False(t, b.At(1, 1).Revealed)
}

func TestOpenChordsThroughSatisfiedClue(t *testing.T) {
	b := mustParse(t, `
		M 1
		1 1
	`)
	b.ToggleFlag(0, 0)

	// (1,1) reads 1 with one flagged neighbor, so opening it chords
	// the remaining two cells.
	require.True(t, b.Open(1, 1))
	assert.True(t, b.At(1, 0).Revealed)
	assert.True(t, b.At(0, 1).Revealed)
	assert.True(t, b.Cleared())
}

func TestOpenMineLoses(t *testing.T) {
	b := mustParse(t, docBoard)
	assert.False(t, b.Open(1, 1))
	assert.True(t, b.At(1, 1).Revealed)
}

func TestSimulateRevealDoesNotMutate(t *testing.T) {
	b := mustParse(t, docBoard)
	before := b.Clone()

	next, ok := b.SimulateReveal(3, 3)
	require.True(t, ok)
	assert.Equal(t, before, b)
	assert.True(t, next.At(3, 3).Revealed)
	assert.False(t, b.At(3, 3).Revealed)
}

func TestChordRequiresFullFlagCount(t *testing.T) {
	b := mustParse(t, docBoard)
	require.True(t, b.Open(0, 0))

	// No flags placed: chord must be a no-op.
	require.True(t, b.Chord(0, 0))
	assert.False(t, b.At(1, 1).Revealed)
	assert.False(t, b.At(0, 1).Revealed)

	b.ToggleFlag(1, 1)
	require.True(t, b.Chord(0, 0))
	assert.True(t, b.At(0, 1).Revealed)
	assert.True(t, b.At(1, 0).Revealed)
	assert.False(t, b.At(1, 1).Revealed)
}

func TestFlagInvariants(t *testing.T) {
	b := mustParse(t, docBoard)

	b.ToggleFlag(0, 0)
	assert.True(t, b.At(0, 0).Flagged)

	// A flagged cell does not open.
	require.True(t, b.Open(0, 0))
	assert.False(t, b.At(0, 0).Revealed)

	b.ToggleFlag(0, 0)
	assert.False(t, b.At(0, 0).Flagged)

	// A revealed cell does not flag.
	require.True(t, b.Open(0, 0))
	b.ToggleFlag(0, 0)
	assert.False(t, b.At(0, 0).Flagged)
}
