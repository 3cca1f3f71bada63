package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/domino14/onitama/card"
)

// ShellCompleter completes command names and card names.
type ShellCompleter struct{}

func NewShellCompleter() *ShellCompleter {
	return &ShellCompleter{}
}

var commandNames = []string{
	"cards", "start", "load", "litama", "show", "moves", "play", "undo",
	"eval", "perft", "help", "exit",
}

// Do implements the readline.AutoComplete interface
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])
	fields, err := shellquote.Split(text)
	if err != nil {
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string
	switch {
	case len(fields) == 0 || (len(fields) == 1 && !endsWithSpace):
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	case fields[0] == "help":
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}
		completions = topics()
	case fields[0] == "cards":
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}
		completions = card.Names[:]
	}

	var out [][]rune
	for _, cand := range completions {
		if strings.HasPrefix(cand, prefix) {
			out = append(out, []rune(cand[len(prefix):]+" "))
		}
	}
	return out, len([]rune(prefix))
}
