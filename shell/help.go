package shell

import (
	"embed"
	"io"
	"io/fs"
	"slices"
	"strings"

	"github.com/samber/lo"
)

//go:embed helptext/*.txt
var helptext embed.FS

func usage(w io.Writer) {
	dat, err := helptext.ReadFile("helptext/usage.txt")
	if err != nil {
		io.WriteString(w, "Error loading helptext: "+err.Error())
		return
	}
	w.Write(dat)
}

func usageTopic(w io.Writer, topic string) {
	dat, err := helptext.ReadFile("helptext/" + topic + ".txt")
	if err != nil {
		io.WriteString(w, "There is no help text for the topic "+topic+"\n")
		return
	}
	w.Write(dat)
}

// topics lists the commands that have their own help page.
func topics() []string {
	entries, _ := helptext.ReadDir("helptext")
	names := lo.FilterMap(entries, func(e fs.DirEntry, _ int) (string, bool) {
		name := strings.TrimSuffix(e.Name(), ".txt")
		return name, name != "usage"
	})
	slices.Sort(names)
	return names
}

func (sc *ShellController) help(cmd *shellcmd) (*Response, error) {
	var sb strings.Builder
	if len(cmd.args) == 0 {
		usage(&sb)
	} else {
		usageTopic(&sb, cmd.args[0])
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}
