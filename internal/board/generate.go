package board

import (
	"fmt"
	"math/rand/v2"
)

// Generate places mineCount mines at random and fills in the adjacency
// counts.
func Generate(width, height, mineCount int, r *rand.Rand) (*Board, error) {
	b, err := New(width, height)
	if err != nil {
		return nil, err
	}
	if mineCount < 0 || mineCount > width*height {
		return nil, fmt.Errorf(
			"mine count %d does not fit a %dx%d board",
			mineCount, width, height,
		)
	}
	b.MineCount = mineCount

	candidates := make([]int, 0, width*height)
	for i := range b.Cells {
		candidates = append(candidates, i)
	}
	k := len(candidates)
	for range mineCount {
		i := r.IntN(k)
		b.Cells[candidates[i]].Mine = true
		k--
		candidates[i] = candidates[k]
	}

	b.countAdjacent()
	return b, nil
}

func (b *Board) countAdjacent() {
	for y := range b.Height {
		for x := range b.Width {
			if b.At(x, y).Mine {
				continue
			}
			n := 0
			for _, p := range b.Neighbors(x, y) {
				if b.At(p.X, p.Y).Mine {
					n++
				}
			}
			b.At(x, y).AdjacentMines = n
		}
	}
}
