package movegen

import (
	"context"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domino14/onitama/card"
	"github.com/domino14/onitama/game"
	"github.com/domino14/onitama/notation"
)

var perftCounts = []uint64{1, 10, 130, 1989, 28509, 487780, 7748422}

func TestPerft(t *testing.T) {
	g := TestGame()
	for depth, expected := range perftCounts {
		if depth > 5 && testing.Short() {
			t.Skip("skipping deep perft in short mode")
		}
		assert.Equal(t, expected, Perft(g, depth), "depth %d", depth)
	}
}

func TestPerftParallel(t *testing.T) {
	is := is.New(t)
	n, err := PerftParallel(context.Background(), TestGame(), 4, 3)
	is.NoErr(err)
	is.Equal(n, perftCounts[4])
}

func TestPerftParallelCanceled(t *testing.T) {
	is := is.New(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := PerftParallel(ctx, TestGame(), 4, 2)
	is.True(err != nil)
}

func TestPerftNegativeDepth(t *testing.T) {
	is := is.New(t)
	_, err := PerftParallel(context.Background(), TestGame(), -1, 2)
	is.Equal(err, ErrNegativeDepth)
	assert.PanicsWithValue(t, "negative perft depth -1", func() { Perft(TestGame(), -1) })
}

func TestGenerateOrder(t *testing.T) {
	is := is.New(t)
	var buf Buffer
	moves := Generate(TestGame(), &buf)
	is.Equal(len(moves), 10)
	is.Equal(CountMoves(TestGame()), 10)
	// the king goes first, with ox before boar
	is.Equal(moves[0].From, game.Temple)
	is.Equal(moves[0].Card, card.Card(0))
	is.Equal(moves[0].String(), "ox c1c2")
	for i := 2; i < len(moves); i++ {
		is.True(moves[i].From >= moves[i-1].From || moves[i-1].From == game.Temple)
	}
}

func TestForwardMatchesGenerate(t *testing.T) {
	is := is.New(t)
	var buf Buffer
	moves := Generate(TestGame(), &buf)
	i := 0
	for next, win := range Forward(TestGame()) {
		is.Equal(next, moves[i].Next)
		is.Equal(win, moves[i].Win)
		i++
	}
	is.Equal(i, len(moves))
}

func TestForwardStopsEarly(t *testing.T) {
	is := is.New(t)
	n := 0
	for range Forward(TestGame()) {
		n++
		if n == 3 {
			break
		}
	}
	is.Equal(n, 3)
}

func TestWinningMoves(t *testing.T) {
	is := is.New(t)
	// the king is one step from the opponent's temple and a pawn stands next
	// to the opponent's king
	g, err := notation.Parse("5/2K2/5/3kP/5 ox,boar/horse,elephant crab")
	require.NoError(t, err)
	wins := 0
	var buf Buffer
	for _, m := range Generate(g, &buf) {
		if m.Win {
			wins++
			is.True(m.Next.IsLoss())
		}
	}
	// both cards reach the temple and both take the king
	is.Equal(wins, 4)
}
