package tablebase

import (
	"context"
	"sync"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domino14/onitama/card"
	"github.com/domino14/onitama/eval"
	"github.com/domino14/onitama/game"
	"github.com/domino14/onitama/movegen"
	"github.com/domino14/onitama/notation"
)

type builtTable struct {
	once sync.Once
	tb   *TableBase
}

var (
	builtMu sync.Mutex
	built   = map[string]*builtTable{}
)

// tableFor builds the table for a selection once per run.
func tableFor(t *testing.T, cards string) *TableBase {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping tablebase construction in short mode")
	}
	builtMu.Lock()
	b, ok := built[cards]
	if !ok {
		b = &builtTable{}
		built[cards] = b
	}
	builtMu.Unlock()
	b.once.Do(func() {
		sel, err := card.ParseSelection(cards)
		if err != nil {
			panic(err)
		}
		b.tb = New(sel)
	})
	return b.tb
}

// testTable is the table for the standard test cards.
func testTable(t *testing.T) *TableBase {
	t.Helper()
	return tableFor(t, "ox,boar,horse,elephant,crab")
}

func TestGoldenDistributions(t *testing.T) {
	type testdata struct {
		cards    string
		losses   []int
		wins     []int
		ties     int
		maxLoss  int
		maxWin   int
		checksum uint64
	}
	cases := []testdata{
		{
			cards:    "ox,boar,horse,elephant,crab",
			losses:   []int{381570, 989011, 479059, 233004, 144441, 93037, 75952, 67430},
			wins:     []int{0, 3787692, 1236741, 527301, 299591, 195462, 161458, 132933},
			ties:     2168,
			maxLoss:  29,
			maxWin:   30,
			checksum: 0x73107a52c67ef314,
		},
		{
			cards:    "tiger,crane,dragon,eel,cobra",
			losses:   []int{381570, 763844, 449928, 277542, 212311, 144452, 99457, 66703},
			wins:     []int{0, 3340050, 1623594, 820933, 449097, 279376, 177698, 113990},
			ties:     1640,
			maxLoss:  35,
			maxWin:   35,
			checksum: 0xdb158647f7d1edc4,
		},
	}
	for _, tc := range cases {
		t.Run(tc.cards, func(t *testing.T) {
			tb := tableFor(t, tc.cards)
			d := tb.Distribution()
			require.Len(t, d.Losses, tc.maxLoss+1)
			require.Len(t, d.Wins, tc.maxWin+1)
			assert.Equal(t, tc.losses, d.Losses[:len(tc.losses)])
			assert.Equal(t, tc.wins, d.Wins[:len(tc.wins)])
			assert.Equal(t, tc.ties, d.Ties)
			assert.Equal(t, 9555840, d.Total())
			assert.Equal(t, tc.checksum, tb.Checksum())
		})
	}
}

func TestLossesMatchTerminalCells(t *testing.T) {
	tb := testTable(t)
	terminal := 0
	for idx := range Size {
		c := decode(idx)
		if c.valid() && tb.position(c).IsLoss() {
			terminal++
		}
	}
	d := tb.Distribution()
	require.NotEmpty(t, d.Losses)
	assert.Equal(t, terminal, d.Losses[0])
	assert.Equal(t, Size-invalidCells(), d.Total())
	assert.Positive(t, d.Decided())
}

func invalidCells() int {
	n := 0
	for idx := range Size {
		if !decode(idx).valid() {
			n++
		}
	}
	return n
}

func TestVerifySample(t *testing.T) {
	tb := testTable(t)
	err := tb.Verify(context.Background(), VerifyOptions{Samples: 20000, Threads: 4})
	assert.NoError(t, err)
}

func TestTerminalCellsAreLosses(t *testing.T) {
	tb := testTable(t)
	for idx, v := range tb.data {
		c := decode(idx)
		if !c.valid() {
			assert.Equal(t, eval.Tie, v)
			continue
		}
		if c.otherKing == game.OpponentTemple && v != eval.NewLoss(0) {
			t.Fatalf("cell %+v holds %v", c, v)
		}
	}
}

func TestImmediateCapture(t *testing.T) {
	is := is.New(t)
	tb := testTable(t)
	g, err := notation.Parse("5/5/1k3/1P3/K4 ox,boar/horse,elephant crab")
	is.NoErr(err)
	v, exact := tb.Lookup(g)
	is.True(exact)
	is.Equal(v, eval.NewWin(1))
	is.Equal(tb.Expected(g), v)
}

func TestWinsAreBackedBySuccessors(t *testing.T) {
	is := is.New(t)
	tb := testTable(t)
	g, err := notation.Parse("5/1k3/2P2/1pK2/5 ox,boar/horse,elephant crab")
	is.NoErr(err)
	v := tb.Eval(g)
	is.Equal(tb.Expected(g), v)
	var buf movegen.Buffer
	for _, m := range movegen.Generate(g, &buf) {
		if m.Win {
			continue
		}
		is.True(tb.Eval(m.Next).Backward() <= v)
	}
}

func TestEvalOfDecidedPositions(t *testing.T) {
	is := is.New(t)
	tb := testTable(t)
	start := movegen.TestGame()
	lost := game.New(1<<7, 7, 1<<22, 22, start.MyCards(), start.OtherCards(), start.Table())
	is.Equal(tb.Eval(lost), eval.NewLoss(0))
	assert.Panics(t, func() { tb.Eval(lost.Flip()) })
}

func TestEvalFoldsPawns(t *testing.T) {
	is := is.New(t)
	tb := testTable(t)
	start := movegen.TestGame()
	v, exact := tb.Lookup(start)
	is.True(!exact)
	is.True(!tb.Covers(start))
	is.True(v >= eval.NewLoss(0))
}

func TestForeignCardsPanic(t *testing.T) {
	tb := testTable(t)
	g, err := notation.Parse("5/2k2/5/2K2/5 tiger,cobra/ox,eel dragon")
	require.NoError(t, err)
	assert.False(t, tb.Covers(g))
	assert.Panics(t, func() { tb.Eval(g) })
}

func TestChecksumIsStable(t *testing.T) {
	tb := testTable(t)
	assert.Equal(t, tb.Checksum(), tb.Checksum())
	assert.NotZero(t, tb.Checksum())
}

func TestDistributionPlies(t *testing.T) {
	is := is.New(t)
	d := Distribution{Wins: []int{0, 2}, Losses: []int{2}, Ties: 5}
	is.Equal(d.Decided(), 4)
	is.Equal(d.Total(), 9)
	mean, _ := d.MeanStdDevPlies()
	is.Equal(mean, 0.5)
	plies, weights := d.Plies()
	is.Equal(plies, []float64{0, 1})
	is.Equal(weights, []float64{2, 2})
}
