package card

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
)

// HandSize is the number of cards each player holds.
const HandSize = 2

// SelectionSize is the number of cards in play for one game.
const SelectionSize = 5

var (
	ErrSelectionSize      = errors.New("a selection needs exactly 5 cards")
	ErrDuplicateSelection = errors.New("a selection cannot repeat a card")
)

// Selection is the set of five cards used by a game, in ascending order.
type Selection [SelectionSize]Card

// Split is one way of dealing a selection: two cards to the mover, two to the
// opponent and one on the table.
type Split struct {
	Mine  Set
	Other Set
	Table Card
}

func NewSelection(cards ...Card) (Selection, error) {
	var sel Selection
	if len(cards) != SelectionSize {
		return sel, fmt.Errorf("%w, got %d", ErrSelectionSize, len(cards))
	}
	if len(lo.Uniq(cards)) != SelectionSize {
		return sel, ErrDuplicateSelection
	}
	for _, c := range cards {
		if int(c) >= NumCards {
			return sel, fmt.Errorf("%w: %d", ErrUnknownCard, c)
		}
	}
	copy(sel[:], cards)
	slices.Sort(sel[:])
	return sel, nil
}

// ParseSelection reads a comma-separated list of five card names.
func ParseSelection(s string) (Selection, error) {
	names := lo.Filter(strings.Split(s, ","), func(n string, _ int) bool {
		return strings.TrimSpace(n) != ""
	})
	cards := make([]Card, 0, len(names))
	for _, n := range names {
		c, err := FromName(n)
		if err != nil {
			return Selection{}, err
		}
		cards = append(cards, c)
	}
	return NewSelection(cards...)
}

// ParseSelections reads several selections separated by semicolons, e.g.
// "ox,boar,horse,elephant,crab;tiger,crane,dragon,eel,cobra".
func ParseSelections(s string) ([]Selection, error) {
	parts := lo.Filter(strings.Split(s, ";"), func(p string, _ int) bool {
		return strings.TrimSpace(p) != ""
	})
	if len(parts) == 0 {
		return nil, ErrSelectionSize
	}
	sels := make([]Selection, 0, len(parts))
	for _, p := range parts {
		sel, err := ParseSelection(p)
		if err != nil {
			return nil, fmt.Errorf("selection %q: %w", p, err)
		}
		sels = append(sels, sel)
	}
	return sels, nil
}

// Set returns the selection as a card set.
func (sel Selection) Set() Set {
	return NewSet(sel[:]...)
}

// Rank returns the position of c within the selection. c must be one of the
// selected cards.
func (sel Selection) Rank(c Card) int {
	for i, sc := range sel {
		if sc == c {
			return i
		}
	}
	panic(fmt.Sprintf("card %v is not part of selection %v", c, sel))
}

// Contains reports whether every card of s is part of the selection.
func (sel Selection) Contains(s Set) bool {
	return s&^sel.Set() == 0
}

// Splits returns the 30 ways to deal the selection, ordered by table card and
// then by the mover's pair.
func (sel Selection) Splits() []Split {
	all := sel.Set()
	splits := make([]Split, 0, 30)
	for _, table := range sel {
		for i := 0; i < SelectionSize; i++ {
			for j := i + 1; j < SelectionSize; j++ {
				if sel[i] == table || sel[j] == table {
					continue
				}
				mine := NewSet(sel[i], sel[j])
				splits = append(splits, Split{
					Mine:  mine,
					Other: all &^ mine &^ NewSet(table),
					Table: table,
				})
			}
		}
	}
	return splits
}

func (sel Selection) String() string {
	return sel.Set().String()
}
