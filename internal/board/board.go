package board

import (
	"fmt"
	"strings"
)

// Cell is a single square of a minefield. AdjacentMines is fixed when
// the board is built and never recomputed afterwards.
type Cell struct {
	Mine          bool
	Revealed      bool
	Flagged       bool
	SafeStart     bool
	AdjacentMines int
}

type Point struct {
	X, Y int
}

func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.X, p.Y)
}

// Board is a rectangular minefield, cells stored row-major.
type Board struct {
	Width, Height int
	MineCount     int
	Cells         []Cell
}

func New(width, height int) (*Board, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("invalid board dimensions %dx%d", width, height)
	}
	return &Board{
		Width:  width,
		Height: height,
		Cells:  make([]Cell, width*height),
	}, nil
}

func (b *Board) InBounds(x, y int) bool {
	return 0 <= x && x < b.Width && 0 <= y && y < b.Height
}

func (b *Board) At(x, y int) *Cell {
	return &b.Cells[y*b.Width+x]
}

// Neighbors returns the up-to-8 surrounding points, clipped at the
// board edges.
func (b *Board) Neighbors(x, y int) []Point {
	points := make([]Point, 0, 8)
	for dy := -1; dy <= +1; dy++ {
		for dx := -1; dx <= +1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if b.InBounds(x+dx, y+dy) {
				points = append(points, Point{x + dx, y + dy})
			}
		}
	}
	return points
}

func (b *Board) FlaggedNeighbors(x, y int) (count int) {
	for _, p := range b.Neighbors(x, y) {
		if b.At(p.X, p.Y).Flagged {
			count++
		}
	}
	return
}

func (b *Board) Clone() *Board {
	cells := make([]Cell, len(b.Cells))
	copy(cells, b.Cells)
	return &Board{
		Width:     b.Width,
		Height:    b.Height,
		MineCount: b.MineCount,
		Cells:     cells,
	}
}

// Cleared reports whether every non-mine cell has been revealed.
func (b *Board) Cleared() bool {
	for i := range b.Cells {
		if !b.Cells[i].Mine && !b.Cells[i].Revealed {
			return false
		}
	}
	return true
}

// Hidden counts unrevealed non-mine cells.
func (b *Board) Hidden() (count int) {
	for i := range b.Cells {
		if !b.Cells[i].Mine && !b.Cells[i].Revealed {
			count++
		}
	}
	return
}

// SimulateReveal opens a cell on a copy of the board, leaving the
// receiver untouched. The second return value is false if the cascade
// hit a mine.
func (b *Board) SimulateReveal(x, y int) (*Board, bool) {
	next := b.Clone()
	ok := next.Open(x, y)
	return next, ok
}

// Open reveals a cell in place, cascading through zero-count cells and
// chording through numbered cells whose flagged neighbors account for
// their full count. Returns false if a mine was revealed.
func (b *Board) Open(x, y int) bool {
	c := b.At(x, y)
	if c.Flagged || c.Revealed {
		return true
	}
	c.Revealed = true
	if c.Mine {
		return false
	}
	if c.AdjacentMines == 0 || b.FlaggedNeighbors(x, y) == c.AdjacentMines {
		for _, p := range b.Neighbors(x, y) {
			n := b.At(p.X, p.Y)
			if !n.Revealed && !n.Flagged {
				if !b.Open(p.X, p.Y) {
					return false
				}
			}
		}
	}
	return true
}

// ToggleFlag flips the flag on an unrevealed cell.
func (b *Board) ToggleFlag(x, y int) {
	c := b.At(x, y)
	if c.Revealed {
		return
	}
	c.Flagged = !c.Flagged
}

// Chord opens every unflagged neighbor of a revealed numbered cell,
// provided its flagged neighbors account for its full count. Returns
// false if a mine was revealed.
func (b *Board) Chord(x, y int) bool {
	c := b.At(x, y)
	if !c.Revealed || c.AdjacentMines == 0 {
		return true
	}
	if b.FlaggedNeighbors(x, y) != c.AdjacentMines {
		return true
	}
	for _, p := range b.Neighbors(x, y) {
		n := b.At(p.X, p.Y)
		if !n.Revealed && !n.Flagged {
			if !b.Open(p.X, p.Y) {
				return false
			}
		}
	}
	return true
}

func (b *Board) String() string {
	var sb strings.Builder
	for y := range b.Height {
		for x := range b.Width {
			c := b.At(x, y)
			var ch string
			switch {
			case c.Flagged:
				ch = "* "
			case !c.Revealed:
				ch = "- "
			case c.Mine:
				ch = "! "
			default:
				ch = fmt.Sprintf("%d ", c.AdjacentMines)
			}
			sb.WriteString(ch)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
