package board

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

/*
Parse reads a board from its textual form: one row per line, cells
separated by whitespace, a digit for an open count or "M" for a mine:

	1 1 2 1
	1 M 2 M
	2 2 3 1
	1 M 1 0

The digit tokens must agree with the actual mine placement.
*/
func Parse(r io.Reader) (*Board, error) {
	var (
		rows  [][]string
		width int
	)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if width == 0 {
			width = len(fields)
		} else if len(fields) != width {
			return nil, fmt.Errorf(
				"ragged board: row %d has %d cells, want %d",
				len(rows), len(fields), width,
			)
		}
		rows = append(rows, fields)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty board")
	}

	b, err := New(width, len(rows))
	if err != nil {
		return nil, err
	}
	counts := make([]int, width*len(rows))
	for y, row := range rows {
		for x, token := range row {
			if strings.EqualFold(token, "M") {
				b.At(x, y).Mine = true
				b.MineCount++
				continue
			}
			n, err := strconv.Atoi(token)
			if err != nil || n < 0 || n > 8 {
				return nil, fmt.Errorf("invalid cell token %q at %d:%d", token, x, y)
			}
			counts[y*width+x] = n
		}
	}

	b.countAdjacent()
	for y := range b.Height {
		for x := range b.Width {
			c := b.At(x, y)
			if !c.Mine && c.AdjacentMines != counts[y*b.Width+x] {
				return nil, fmt.Errorf(
					"cell %d:%d claims %d adjacent mines, found %d",
					x, y, counts[y*b.Width+x], c.AdjacentMines,
				)
			}
		}
	}
	return b, nil
}

func ParseFile(path string) (*Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}
