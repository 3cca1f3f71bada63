// Package eval defines the game-theoretic value of a position, packed into a
// single byte so that a tablebase can store one per cell.
package eval

import (
	"fmt"
	"math"
)

// Eval is a value from the point of view of the side to move. The natural
// ordering of the underlying int8 is the game ordering: every Win beats Tie,
// Tie beats every Loss, sooner wins and later losses are better.
//
//	Loss(n) = -128 + n
//	Tie     = 0
//	Win(n)  = 128 - n   (n >= 1)
type Eval int8

const Tie Eval = 0

const (
	// MaxLoss is the largest representable loss distance.
	MaxLoss = 127
	// MaxWin is the largest representable win distance.
	MaxWin = 127
	// TiePlies is what Plies reports for a Tie.
	TiePlies = math.MaxUint8
)

// NewWin returns a win in n moves of the side to move. n starts at 1.
func NewWin(n int) Eval {
	if n < 1 || n > MaxWin {
		panic(fmt.Sprintf("win distance out of range: %d", n))
	}
	return Eval(128 - n)
}

// NewLoss returns a loss after n moves of the side to move. Loss(0) means the
// position is already lost.
func NewLoss(n int) Eval {
	if n < 0 || n > MaxLoss {
		panic(fmt.Sprintf("loss distance out of range: %d", n))
	}
	return Eval(-128 + n)
}

func (e Eval) IsWin() bool  { return e > 0 }
func (e Eval) IsLoss() bool { return e < 0 }
func (e Eval) IsTie() bool  { return e == 0 }

// Distance returns n for Win(n) and Loss(n), and 0 for a Tie.
func (e Eval) Distance() int {
	switch {
	case e > 0:
		return 128 - int(e)
	case e < 0:
		return int(e) + 128
	}
	return 0
}

// Backward returns the value of the position one ply earlier, seen from the
// side that moved into this one.
func (e Eval) Backward() Eval {
	switch {
	case e < 0:
		if e == -1 {
			panic("cannot move Loss(127) backward")
		}
		return -(e + 1)
	case e > 0:
		return -e
	}
	return Tie
}

// Forward is the inverse of Backward.
func (e Eval) Forward() Eval {
	switch {
	case e < 0:
		if e == math.MinInt8 {
			panic("cannot move Loss(0) forward")
		}
		return -e
	case e > 0:
		return -e - 1
	}
	return Tie
}

// Plies returns the number of plies until the game ends with best play.
func (e Eval) Plies() int {
	switch {
	case e > 0:
		return 2*e.Distance() - 1
	case e < 0:
		return 2 * e.Distance()
	}
	return TiePlies
}

func (e Eval) String() string {
	switch {
	case e > 0:
		return fmt.Sprintf("Win: %d", e.Distance())
	case e < 0:
		return fmt.Sprintf("Loss: %d", e.Distance())
	}
	return "Tie"
}
