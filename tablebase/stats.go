package tablebase

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"

	"github.com/domino14/onitama/eval"
)

// Distribution counts the valid cells of a table by value. Wins[n] is the
// number of cells won in n moves and Losses[n] the number lost after n.
type Distribution struct {
	Wins   []int
	Losses []int
	Ties   int
}

// Distribution walks every valid cell of the table.
func (tb *TableBase) Distribution() Distribution {
	d := Distribution{
		Wins:   make([]int, eval.MaxWin+1),
		Losses: make([]int, eval.MaxLoss+1),
	}
	for idx, v := range tb.data {
		if !decode(idx).valid() {
			continue
		}
		switch {
		case v.IsWin():
			d.Wins[v.Distance()]++
		case v.IsLoss():
			d.Losses[v.Distance()]++
		default:
			d.Ties++
		}
	}
	d.Wins = trimZeros(d.Wins)
	d.Losses = trimZeros(d.Losses)
	return d
}

func trimZeros(counts []int) []int {
	_, i, _ := lo.FindLastIndexOf(counts, func(n int) bool { return n != 0 })
	return counts[:i+1]
}

// Decided is the number of cells that are not ties.
func (d Distribution) Decided() int {
	return lo.Sum(d.Wins) + lo.Sum(d.Losses)
}

func (d Distribution) Total() int {
	return d.Decided() + d.Ties
}

// Plies lists the distinct ply counts of decided cells with how many cells
// have each.
func (d Distribution) Plies() (plies, weights []float64) {
	for n, count := range d.Losses {
		if count > 0 {
			plies = append(plies, float64(eval.NewLoss(n).Plies()))
			weights = append(weights, float64(count))
		}
	}
	for n, count := range d.Wins {
		if count > 0 {
			plies = append(plies, float64(eval.NewWin(n).Plies()))
			weights = append(weights, float64(count))
		}
	}
	return plies, weights
}

// MeanStdDevPlies is the mean and standard deviation of the game length over
// decided cells.
func (d Distribution) MeanStdDevPlies() (float64, float64) {
	plies, weights := d.Plies()
	if len(plies) == 0 {
		return 0, 0
	}
	return stat.MeanStdDev(plies, weights)
}

func (d Distribution) String() string {
	var ss strings.Builder
	fmt.Fprintf(&ss, "%-8s%-12s%-12s\n", "Moves", "Wins", "Losses")
	for n := range max(len(d.Wins), len(d.Losses)) {
		fmt.Fprintf(&ss, "%-8d%-12d%-12d\n", n, at(d.Wins, n), at(d.Losses, n))
	}
	fmt.Fprintf(&ss, "Ties: %d, total: %d\n", d.Ties, d.Total())
	return ss.String()
}

func at(counts []int, i int) int {
	if i < len(counts) {
		return counts[i]
	}
	return 0
}
