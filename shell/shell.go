package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/onitama/card"
	"github.com/domino14/onitama/config"
	"github.com/domino14/onitama/game"
	"github.com/domino14/onitama/movegen"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errNoPosition        = errors.New("no position loaded; use start or load first")
	errExit              = errors.New("exit")
)

type ShellController struct {
	l   *readline.Instance
	out io.Writer
	cfg *config.Config

	sel     card.Selection
	pos     game.Game
	loaded  bool
	history []game.Game
	moves   []movegen.Move
	buf     movegen.Buffer

	// set when the position came from a litama board; red is whether red
	// was to move when it was loaded.
	fromLitama bool
	litamaRed  bool
}

type shellcmd struct {
	cmd     string
	args    []string
	options map[string]string
}

type Response struct {
	message string
}

func msg(message string) *Response {
	return &Response{message: message}
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

// NewShellController sets up an interactive shell on the terminal.
func NewShellController(cfg *config.Config) (*ShellController, error) {
	sc, err := newController(cfg, os.Stdout)
	if err != nil {
		return nil, err
	}
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31monitama>\033[0m ",
		HistoryFile:     "/tmp/onitama_readline.tmp",
		AutoComplete:    NewShellCompleter(),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return nil, err
	}
	sc.l = l
	sc.out = l.Stdout()
	return sc, nil
}

func newController(cfg *config.Config, out io.Writer) (*ShellController, error) {
	sels, err := card.ParseSelections(cfg.GetString(config.ConfigCards))
	if err != nil {
		return nil, err
	}
	return &ShellController{cfg: cfg, out: out, sel: sels[0]}, nil
}

// isOption tells "-threads" from a negative number argument.
func isOption(field string) bool {
	if !strings.HasPrefix(field, "-") || len(field) < 2 {
		return false
	}
	_, err := strconv.Atoi(field)
	return err != nil
}

func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := fields[0]
	var args []string
	options := map[string]string{}
	for i := 1; i < len(fields); i++ {
		if isOption(fields[i]) {
			if i == len(fields)-1 {
				return nil, errWrongOptionSyntax
			}
			options[fields[i][1:]] = fields[i+1]
			i++
			continue
		}
		args = append(args, fields[i])
	}
	return &shellcmd{cmd: cmd, args: args, options: options}, nil
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

func (sc *ShellController) dispatch(cmd *shellcmd) (*Response, error) {
	switch cmd.cmd {
	case "exit":
		return nil, errExit
	case "help":
		return sc.help(cmd)
	case "cards":
		return sc.cards(cmd)
	case "start":
		return sc.start(cmd)
	case "load":
		return sc.load(cmd)
	case "litama":
		return sc.litama(cmd)
	case "show":
		return sc.show(cmd)
	case "moves":
		return sc.listMoves(cmd)
	case "play":
		return sc.play(cmd)
	case "undo":
		return sc.undo(cmd)
	case "eval":
		return sc.eval(cmd)
	case "perft":
		return sc.perft(cmd)
	default:
		return nil, fmt.Errorf("command %v not found", strconv.Quote(cmd.cmd))
	}
}

// Execute runs one line. It returns errExit when the line asks to quit.
func (sc *ShellController) Execute(line string) error {
	cmd, err := extractFields(line)
	if err == errNoData {
		return nil
	}
	if err != nil {
		sc.showError(err)
		return nil
	}
	log.Debug().Str("cmd", cmd.cmd).Strs("args", cmd.args).Msg("shell-command")
	resp, err := sc.dispatch(cmd)
	if err == errExit {
		return err
	}
	if err != nil {
		sc.showError(err)
		return nil
	}
	if resp != nil && resp.message != "" {
		sc.showMessage(resp.message)
	}
	return nil
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		if err := sc.Execute(strings.TrimSpace(line)); err == errExit {
			sig <- syscall.SIGINT
			break
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}
