package core

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/jpl-au/glossd/cmd"
	"golang.org/x/term"
)

// printMarkdown renders md with glamour when stdout is a terminal and
// prints it raw otherwise, so piped guides stay loadable as LLM context.
func printMarkdown(md string) {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		if rendered, err := glamour.Render(md, "dark"); err == nil {
			fmt.Fprint(cmd.Out(), rendered)
			return
		}
	}
	fmt.Fprint(cmd.Out(), md)
}
