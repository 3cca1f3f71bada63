package notation

import (
	"fmt"

	"github.com/domino14/onitama/card"
	"github.com/domino14/onitama/game"
)

// Litama is the board encoding used by the litama match server: 25
// characters, '0' empty, '1' and '2' a blue pawn and king, '3' and '4' a red
// pawn and king. Files are listed in the opposite direction from ours.
type Litama struct {
	Board     string
	Blue, Red card.Set
	Table     card.Card
	RedToMove bool
}

// ParseBoard turns a litama board into a position for the side to move.
func ParseBoard(l Litama) (game.Game, error) {
	if len(l.Board) != card.Squares {
		return game.Game{}, fmt.Errorf("litama board must have %d squares, got %d",
			card.Squares, len(l.Board))
	}
	var blue, red uint32
	blueKing, redKing := -1, -1
	for i := range card.Squares {
		p := i + 4 - 2*(i%5)
		switch l.Board[i] {
		case '0':
		case '1':
			blue |= 1 << p
		case '2':
			blue |= 1 << p
			blueKing = p
		case '3':
			red |= 1 << card.Mirror(p)
		case '4':
			red |= 1 << card.Mirror(p)
			redKing = card.Mirror(p)
		default:
			return game.Game{}, fmt.Errorf("unexpected character %q in litama board", l.Board[i])
		}
	}
	if blueKing < 0 || redKing < 0 {
		return game.Game{}, ErrKingCount
	}
	var g game.Game
	if l.RedToMove {
		g = game.New(red, redKing, blue, blueKing, l.Red, l.Blue, l.Table)
	} else {
		g = game.New(blue, blueKing, red, redKing, l.Blue, l.Red, l.Table)
	}
	if err := g.Validate(); err != nil {
		return game.Game{}, err
	}
	return g, nil
}

// LitamaSquare names a square of the side to move the way the litama server
// expects in move commands. flip is set when red is to move.
func LitamaSquare(sq int, flip bool) string {
	if flip {
		sq = card.Mirror(sq)
	}
	return fmt.Sprintf("%c%c", "edcba"[sq%5], "12345"[sq/5])
}
