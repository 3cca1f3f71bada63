package shell

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/onitama/cache"
	"github.com/domino14/onitama/card"
	"github.com/domino14/onitama/config"
	"github.com/domino14/onitama/eval"
	"github.com/domino14/onitama/game"
	"github.com/domino14/onitama/movegen"
	"github.com/domino14/onitama/notation"
	"github.com/domino14/onitama/tablebase"
)

// litamaFlip reports whether red is to move in a position loaded from a
// litama board.
func (sc *ShellController) litamaFlip() bool {
	return sc.litamaRed != (len(sc.history)%2 == 1)
}

func (sc *ShellController) setPosition(g game.Game) {
	sc.pos = g
	sc.loaded = true
	sc.moves = nil
}

func (sc *ShellController) cards(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return msg(sc.sel.String()), nil
	}
	sel, err := card.ParseSelection(strings.Join(cmd.args, ","))
	if err != nil {
		return nil, err
	}
	sc.sel = sel
	sc.cfg.Set(config.ConfigCards, sel.String())
	return msg("cards set to " + sel.String()), nil
}

// start deals the two lowest cards to the mover, the next two to the
// opponent and the last one to the table.
func (sc *ShellController) start(cmd *shellcmd) (*Response, error) {
	sc.history = nil
	sc.fromLitama = false
	sc.setPosition(game.Start(card.Split{
		Mine:  card.NewSet(sc.sel[0], sc.sel[1]),
		Other: card.NewSet(sc.sel[2], sc.sel[3]),
		Table: sc.sel[4],
	}))
	return sc.show(cmd)
}

func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: load <position>")
	}
	g, err := notation.Parse(strings.Join(cmd.args, " "))
	if err != nil {
		return nil, err
	}
	sc.history = nil
	sc.fromLitama = false
	sc.setPosition(g)
	return sc.show(cmd)
}

func (sc *ShellController) litama(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) < 4 {
		return nil, errors.New("usage: litama <board> <blue cards> <red cards> <table> [red]")
	}
	hand := func(s string) (card.Set, error) {
		var set card.Set
		for _, name := range strings.Split(s, ",") {
			c, err := card.FromName(name)
			if err != nil {
				return 0, err
			}
			set = set.Add(c)
		}
		return set, nil
	}
	blue, err := hand(cmd.args[1])
	if err != nil {
		return nil, err
	}
	red, err := hand(cmd.args[2])
	if err != nil {
		return nil, err
	}
	table, err := card.FromName(cmd.args[3])
	if err != nil {
		return nil, err
	}
	redToMove := len(cmd.args) > 4 && cmd.args[4] == "red"
	g, err := notation.ParseBoard(notation.Litama{
		Board:     cmd.args[0],
		Blue:      blue,
		Red:       red,
		Table:     table,
		RedToMove: redToMove,
	})
	if err != nil {
		return nil, err
	}
	sc.history = nil
	sc.fromLitama = true
	sc.litamaRed = redToMove
	sc.setPosition(g)
	return sc.show(cmd)
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if !sc.loaded {
		return nil, errNoPosition
	}
	return msg(sc.pos.ToDisplayText() + notation.Format(sc.pos)), nil
}

func (sc *ShellController) generate() []movegen.Move {
	if sc.moves == nil {
		sc.moves = movegen.Generate(sc.pos, &sc.buf)
	}
	return sc.moves
}

// table returns the tablebase for the position's cards if the position uses
// the configured selection.
func (sc *ShellController) table() (*tablebase.TableBase, bool) {
	if !sc.sel.Contains(sc.pos.Cards()) {
		return nil, false
	}
	return cache.Load(sc.sel), true
}

func (sc *ShellController) listMoves(cmd *shellcmd) (*Response, error) {
	if !sc.loaded {
		return nil, errNoPosition
	}
	if sc.pos.IsLoss() || sc.pos.IsOtherLoss() {
		return msg("the game is over"), nil
	}
	var tb *tablebase.TableBase
	if _, ok := cmd.options["eval"]; ok {
		tb, _ = sc.table()
	}
	var ss strings.Builder
	fmt.Fprintf(&ss, "%-4s%-16s%-10s", "#", "Move", "Value")
	if sc.fromLitama {
		fmt.Fprintf(&ss, "%-8s", "Litama")
	}
	ss.WriteString("\n")
	flip := sc.litamaFlip()
	for i, m := range sc.generate() {
		value := ""
		switch {
		case m.Win:
			value = eval.NewWin(1).String()
		case tb != nil:
			value = tb.Eval(m.Next).Backward().String()
		}
		fmt.Fprintf(&ss, "%-4d%-16s%-10s", i+1, m.String(), value)
		if sc.fromLitama {
			fmt.Fprintf(&ss, "%s%s", notation.LitamaSquare(m.From, flip), notation.LitamaSquare(m.To, flip))
		}
		ss.WriteString("\n")
	}
	return msg(ss.String()), nil
}

func (sc *ShellController) findMove(s string) (movegen.Move, error) {
	moves := sc.generate()
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > len(moves) {
			return movegen.Move{}, fmt.Errorf("move number must be between 1 and %d", len(moves))
		}
		return moves[n-1], nil
	}
	for _, m := range moves {
		if strings.TrimSuffix(m.String(), "#") == s {
			return m, nil
		}
	}
	return movegen.Move{}, fmt.Errorf("no legal move %q", s)
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if !sc.loaded {
		return nil, errNoPosition
	}
	if sc.pos.IsLoss() || sc.pos.IsOtherLoss() {
		return nil, errors.New("the game is over")
	}
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: play <number> or play <card> <from><to>")
	}
	m, err := sc.findMove(strings.Join(cmd.args, " "))
	if err != nil {
		return nil, err
	}
	sc.history = append(sc.history, sc.pos)
	sc.setPosition(m.Next)
	resp, err := sc.show(cmd)
	if err == nil && m.Win {
		resp.message += "\n" + m.String() + " wins the game"
	}
	return resp, err
}

func (sc *ShellController) undo(cmd *shellcmd) (*Response, error) {
	if len(sc.history) == 0 {
		return nil, errors.New("nothing to undo")
	}
	prev := sc.history[len(sc.history)-1]
	sc.history = sc.history[:len(sc.history)-1]
	sc.setPosition(prev)
	return sc.show(cmd)
}

func (sc *ShellController) eval(cmd *shellcmd) (*Response, error) {
	if !sc.loaded {
		return nil, errNoPosition
	}
	if sc.pos.IsLoss() {
		return msg(eval.NewLoss(0).String()), nil
	}
	if sc.pos.IsOtherLoss() {
		return msg("the game is over"), nil
	}
	tb, ok := sc.table()
	if !ok {
		return nil, fmt.Errorf("position uses cards outside of %v; set them with cards", sc.sel)
	}
	v, exact := tb.Lookup(sc.pos)
	s := fmt.Sprintf("%v (%d plies)", v, v.Plies())
	if v.IsTie() {
		s = v.String()
	}
	if !exact {
		s += ", estimated from fewer pawns"
	}
	return msg(s), nil
}

func (sc *ShellController) perft(cmd *shellcmd) (*Response, error) {
	if !sc.loaded {
		return nil, errNoPosition
	}
	depth := sc.cfg.GetInt(config.ConfigPerftDepth)
	if len(cmd.args) > 0 {
		d, err := strconv.Atoi(cmd.args[0])
		if err != nil {
			return nil, err
		}
		depth = d
	}
	if depth < 0 {
		return nil, fmt.Errorf("perft depth must not be negative, got %d", depth)
	}
	threads := sc.cfg.GetInt(config.ConfigThreads)
	if t, ok := cmd.options["threads"]; ok {
		n, err := strconv.Atoi(t)
		if err != nil {
			return nil, err
		}
		threads = n
	}
	tstart := time.Now()
	n, err := movegen.PerftParallel(context.Background(), sc.pos, depth, threads)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(tstart)
	log.Debug().Int("depth", depth).Uint64("nodes", n).Dur("elapsed", elapsed).Msg("perft")
	return msg(fmt.Sprintf("perft(%d) = %d", depth, n)), nil
}
