// Package card holds the movement cards of the game. A card is a fixed set of
// offsets; the shifted tables map a card and a square to every square that
// card reaches, for both orientations of the board.
package card

import (
	"errors"
	"fmt"
	"strings"
)

// Card is an index into the 16 movement patterns.
type Card uint8

const NumCards = 16

var ErrUnknownCard = errors.New("unknown card")

// Names are in the order used by the litama match server.
var Names = [NumCards]string{
	"ox", "boar", "horse", "elephant", "crab", "tiger", "monkey", "crane",
	"dragon", "mantis", "frog", "rabbit", "goose", "rooster", "eel", "cobra",
}

// Patterns are 5x5 offset masks centered on bit 12. Adding 5 to a square moves
// one row towards the opponent.
var patterns = [NumCards]uint32{
	0b00000_00100_00010_00100_00000, // ox
	0b00000_00100_01010_00000_00000, // boar
	0b00000_00100_01000_00100_00000, // horse
	0b00000_01010_01010_00000_00000, // elephant
	0b00000_00100_10001_00000_00000, // crab
	0b00100_00000_00000_00100_00000, // tiger
	0b00000_01010_00000_01010_00000, // monkey
	0b00000_00100_00000_01010_00000, // crane
	0b00000_10001_00000_01010_00000, // dragon
	0b00000_01010_00000_00100_00000, // mantis
	0b00000_01000_10000_00010_00000, // frog
	0b00000_00010_00001_01000_00000, // rabbit
	0b00000_01000_01010_00010_00000, // goose
	0b00000_00010_01010_01000_00000, // rooster
	0b00000_01000_00010_01000_00000, // eel
	0b00000_00010_01000_00010_00000, // cobra
}

func (c Card) String() string {
	if int(c) >= NumCards {
		return fmt.Sprintf("card(%d)", uint8(c))
	}
	return Names[c]
}

// Pattern returns the raw offset mask of the card.
func (c Card) Pattern() uint32 {
	return patterns[c]
}

// FromName looks a card up by its (case-insensitive) name.
func FromName(name string) (Card, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, cn := range Names {
		if cn == n {
			return Card(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCard, name)
}
