package movegen

import (
	"fmt"

	"github.com/domino14/onitama/card"
	"github.com/domino14/onitama/game"
)

// MaxMoves bounds the number of moves in any position: five pieces, two
// cards, at most four destinations per card.
const MaxMoves = 40

// Move is a generated move together with the position it leads to. From and
// To are in the frame of the side that moved; Next is seen from the other
// side.
type Move struct {
	From, To int
	Card     card.Card
	Win      bool
	Next     game.Game
}

// Buffer is scratch space for Generate so that callers can generate moves
// without allocating.
type Buffer [MaxMoves]Move

func (m Move) String() string {
	s := fmt.Sprintf("%s %s%s", m.Card, game.SquareName(m.From), game.SquareName(m.To))
	if m.Win {
		s += "#"
	}
	return s
}
