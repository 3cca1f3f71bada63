package movegen

import (
	"fmt"

	"github.com/domino14/onitama/card"
	"github.com/domino14/onitama/game"
)

// TestGame is the standard opening with ox and boar for the mover, horse and
// elephant for the opponent and crab on the table. Perft counts are
// published for it.
func TestGame() game.Game {
	return game.Start(card.Split{Mine: card.NewSet(0, 1), Other: card.NewSet(2, 3), Table: 4})
}

// Perft counts the leaves of the move tree to the given depth. A winning move
// ends its line and counts as one leaf.
func Perft(g game.Game, depth int) uint64 {
	switch {
	case depth < 0:
		panic(fmt.Sprintf("negative perft depth %d", depth))
	case depth == 0:
		return 1
	case depth == 1:
		return uint64(CountMoves(g))
	}
	var buf Buffer
	var n uint64
	for _, m := range Generate(g, &buf) {
		if m.Win {
			n++
			continue
		}
		n += Perft(m.Next, depth-1)
	}
	return n
}
