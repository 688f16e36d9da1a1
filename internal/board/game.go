package board

import (
	"bytes"
	"encoding/gob"
)

// Game wraps a Board with the win/loss bookkeeping a play session
// needs.
type Game struct {
	Board   *Board
	Dead    bool
	Won     bool
	NoGuess bool
}

func DecodeGame(buf []byte) (*Game, error) {
	var g Game
	err := gob.NewDecoder(bytes.NewBuffer(buf)).Decode(&g)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (g *Game) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(g)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Game) Over() bool {
	return g.Dead || g.Won
}

func (g *Game) Open(x, y int) {
	if g.Over() {
		return
	}
	if !g.Board.Open(x, y) {
		g.Dead = true
		return
	}
	g.Won = g.Board.Cleared()
}

func (g *Game) Flag(x, y int) {
	if g.Over() {
		return
	}
	g.Board.ToggleFlag(x, y)
}

func (g *Game) Chord(x, y int) {
	if g.Over() {
		return
	}
	if !g.Board.Chord(x, y) {
		g.Dead = true
		return
	}
	g.Won = g.Board.Cleared()
}

func (g *Game) Forfeit() {
	if !g.Over() {
		g.Dead = true
	}
}

// View renders the player-visible grid, one string per row. Mines stay
// hidden until the game is over.
func (g *Game) View() []string {
	rows := make([]string, g.Board.Height)
	for y := range g.Board.Height {
		row := make([]byte, g.Board.Width)
		for x := range g.Board.Width {
			c := g.Board.At(x, y)
			switch {
			case c.Revealed && c.Mine:
				row[x] = '!'
			case c.Revealed:
				row[x] = byte('0' + c.AdjacentMines)
			case c.Flagged:
				row[x] = '*'
			case g.Over() && c.Mine:
				row[x] = 'M'
			case c.SafeStart:
				row[x] = 'S'
			default:
				row[x] = '-'
			}
		}
		rows[y] = string(row)
	}
	return rows
}
