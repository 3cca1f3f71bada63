package game

import (
	"fmt"
	"strings"

	"github.com/domino14/onitama/card"
)

// PieceAt returns the display letter for a square in the mover's frame: K and
// P for the mover, k and p for the opponent, and '.' when it is empty.
func (g Game) PieceAt(sq int) byte {
	bit := uint32(1) << sq
	switch {
	case g.MyPieces()&bit != 0:
		if sq == g.MyKing() {
			return 'K'
		}
		return 'P'
	case card.MirrorMask(g.OtherPieces())&bit != 0:
		if card.Mirror(sq) == g.OtherKing() {
			return 'k'
		}
		return 'p'
	}
	return '.'
}

// ToDisplayText draws the board with the mover at the bottom, followed by
// the cards.
func (g Game) ToDisplayText() string {
	var sb strings.Builder
	sb.WriteString("   a b c d e\n")
	for row := 4; row >= 0; row-- {
		fmt.Fprintf(&sb, "%d ", row+1)
		for col := range 5 {
			sb.WriteByte(' ')
			sb.WriteByte(g.PieceAt(row*5 + col))
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "to move: %s\n", g.myCards)
	fmt.Fprintf(&sb, "waiting: %s\n", g.otherCards)
	fmt.Fprintf(&sb, "table:   %s\n", g.table)
	return sb.String()
}

func (g Game) String() string {
	return g.ToDisplayText()
}

// SquareName returns the name of a square in the mover's frame, e.g. "c1"
// for the mover's temple.
func SquareName(sq int) string {
	return fmt.Sprintf("%c%d", 'a'+sq%5, sq/5+1)
}

// ParseSquare is the inverse of SquareName.
func ParseSquare(s string) (int, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'e' || s[1] < '1' || s[1] > '5' {
		return 0, fmt.Errorf("bad square %q", s)
	}
	return int(s[1]-'1')*5 + int(s[0]-'a'), nil
}
