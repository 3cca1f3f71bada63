package card

import (
	"iter"
	"math/bits"
	"strings"
)

// Set is a bitset of cards; bit i is Card(i).
type Set uint16

func NewSet(cards ...Card) Set {
	var s Set
	for _, c := range cards {
		s |= 1 << c
	}
	return s
}

func (s Set) Has(c Card) bool {
	return s&(1<<c) != 0
}

func (s Set) Add(c Card) Set {
	return s | 1<<c
}

func (s Set) Remove(c Card) Set {
	return s &^ (1 << c)
}

func (s Set) Count() int {
	return bits.OnesCount16(uint16(s))
}

// All iterates the cards of the set in ascending order.
func (s Set) All() iter.Seq[Card] {
	return func(yield func(Card) bool) {
		for v := uint16(s); v != 0; v &= v - 1 {
			if !yield(Card(bits.TrailingZeros16(v))) {
				return
			}
		}
	}
}

// Pair returns the two cards of a hand, lowest first. It panics if the set
// does not hold exactly two cards.
func (s Set) Pair() (Card, Card) {
	if s.Count() != 2 {
		panic("card set is not a pair: " + s.String())
	}
	v := uint16(s)
	lo := Card(bits.TrailingZeros16(v))
	v &= v - 1
	return lo, Card(bits.TrailingZeros16(v))
}

func (s Set) String() string {
	var names []string
	for c := range s.All() {
		names = append(names, c.String())
	}
	return strings.Join(names, ",")
}
