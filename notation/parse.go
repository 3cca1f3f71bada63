// Package notation reads and writes positions as text. The format is modelled
// on FEN:
//
//	<row5>/<row4>/<row3>/<row2>/<row1> <my cards>/<other cards> <table>
//
// Rows are listed from the opponent's home row down to the mover's, files a
// to e. K and P are the mover's king and pawns, k and p the opponent's, and a
// digit is a run of empty squares. Cards are comma-separated names, e.g.
//
//	pp1pp/2k2/5/5/PPKPP ox,boar/horse,elephant crab
package notation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/domino14/onitama/card"
	"github.com/domino14/onitama/game"
)

var (
	ErrFieldCount = errors.New("must have 3 space-separated fields")
	ErrRowCount   = errors.New("board must have 5 rows")
	ErrRowLength  = errors.New("row does not have 5 squares")
	ErrKingCount  = errors.New("each side needs exactly one king")
)

const rows = 5

// rowToPieces expands one row into five display letters.
func rowToPieces(row string) ([rows]byte, error) {
	var out [rows]byte
	col := 0
	for i := 0; i < len(row); i++ {
		ch := row[i]
		switch {
		case ch >= '1' && ch <= '5':
			for range int(ch - '0') {
				if col >= rows {
					return out, fmt.Errorf("%w: %q", ErrRowLength, row)
				}
				out[col] = '.'
				col++
			}
		case strings.IndexByte("KPkp", ch) >= 0:
			if col >= rows {
				return out, fmt.Errorf("%w: %q", ErrRowLength, row)
			}
			out[col] = ch
			col++
		default:
			return out, fmt.Errorf("unexpected character %q in row %q", ch, row)
		}
	}
	if col != rows {
		return out, fmt.Errorf("%w: %q", ErrRowLength, row)
	}
	return out, nil
}

func parseHand(s string) (card.Set, error) {
	var hand card.Set
	for _, name := range strings.Split(s, ",") {
		c, err := card.FromName(name)
		if err != nil {
			return 0, err
		}
		hand = hand.Add(c)
	}
	return hand, nil
}

// Parse reads a position. The position is validated before it is returned.
func Parse(s string) (game.Game, error) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return game.Game{}, ErrFieldCount
	}
	boardRows := strings.Split(fields[0], "/")
	if len(boardRows) != rows {
		return game.Game{}, ErrRowCount
	}

	var my, other uint32
	myKing, otherKing := -1, -1
	for i, row := range boardRows {
		pieces, err := rowToPieces(row)
		if err != nil {
			return game.Game{}, err
		}
		r := rows - 1 - i
		for col, p := range pieces {
			sq := r*rows + col
			switch p {
			case 'K':
				if myKing >= 0 {
					return game.Game{}, ErrKingCount
				}
				myKing = sq
				my |= 1 << sq
			case 'P':
				my |= 1 << sq
			case 'k':
				if otherKing >= 0 {
					return game.Game{}, ErrKingCount
				}
				otherKing = card.Mirror(sq)
				other |= 1 << card.Mirror(sq)
			case 'p':
				other |= 1 << card.Mirror(sq)
			}
		}
	}
	if myKing < 0 || otherKing < 0 {
		return game.Game{}, ErrKingCount
	}

	hands := strings.Split(fields[1], "/")
	if len(hands) != 2 {
		return game.Game{}, errors.New("cards must be given as <mine>/<theirs>")
	}
	mine, err := parseHand(hands[0])
	if err != nil {
		return game.Game{}, err
	}
	theirs, err := parseHand(hands[1])
	if err != nil {
		return game.Game{}, err
	}
	table, err := card.FromName(fields[2])
	if err != nil {
		return game.Game{}, err
	}

	g := game.New(my, myKing, other, otherKing, mine, theirs, table)
	if err := g.Validate(); err != nil {
		return game.Game{}, fmt.Errorf("invalid position %q: %w", s, err)
	}
	return g, nil
}

// Format writes a position in the notation read by Parse.
func Format(g game.Game) string {
	var sb strings.Builder
	for r := rows - 1; r >= 0; r-- {
		empty := 0
		for col := range rows {
			p := g.PieceAt(r*rows + col)
			if p == '.' {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte('0' + byte(empty))
				empty = 0
			}
			sb.WriteByte(p)
		}
		if empty > 0 {
			sb.WriteByte('0' + byte(empty))
		}
		if r > 0 {
			sb.WriteByte('/')
		}
	}
	fmt.Fprintf(&sb, " %s/%s %s", g.MyCards(), g.OtherCards(), g.Table())
	return sb.String()
}
