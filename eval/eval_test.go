package eval

import (
	"math"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
)

func TestOrdering(t *testing.T) {
	is := is.New(t)
	is.True(NewLoss(8) > NewLoss(0))
	is.True(NewWin(1) > NewWin(2))
	for n := 1; n <= MaxWin; n++ {
		is.True(NewWin(n) > Tie)
		for m := 0; m <= MaxLoss; m++ {
			is.True(Tie > NewLoss(m))
			is.True(NewWin(n) > NewLoss(m))
		}
	}
	for a := 0; a <= MaxLoss; a++ {
		for b := 0; b <= MaxLoss; b++ {
			is.Equal(NewLoss(a) > NewLoss(b), a > b)
		}
	}
}

func TestInverseLaws(t *testing.T) {
	for x := math.MinInt8; x <= math.MaxInt8; x++ {
		e := Eval(x)
		if e != -1 {
			assert.Equal(t, e, e.Backward().Forward(), "backward then forward of %v", e)
		}
		if e != math.MinInt8 {
			assert.Equal(t, e, e.Forward().Backward(), "forward then backward of %v", e)
		}
	}
}

func TestBackwardSwapsSides(t *testing.T) {
	is := is.New(t)
	is.Equal(NewLoss(0).Backward(), NewWin(1))
	is.Equal(NewWin(1).Backward(), NewLoss(1))
	is.Equal(NewLoss(1).Backward(), NewWin(2))
	is.Equal(Tie.Backward(), Tie)
	is.Equal(NewWin(2).Forward(), NewLoss(1))
}

func TestSentinelsPanic(t *testing.T) {
	assert.Panics(t, func() { NewLoss(0).Forward() })
	assert.Panics(t, func() { NewLoss(127).Backward() })
	assert.Panics(t, func() { NewWin(0) })
}

func TestPliesAndString(t *testing.T) {
	is := is.New(t)
	is.Equal(NewLoss(0).Plies(), 0)
	is.Equal(NewWin(1).Plies(), 1)
	is.Equal(NewLoss(3).Plies(), 6)
	is.Equal(Tie.Plies(), 255)
	is.Equal(NewWin(4).String(), "Win: 4")
	is.Equal(NewLoss(2).String(), "Loss: 2")
	is.Equal(Tie.String(), "Tie")
}
