package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"
)

// stdin and stdout are the command's terminal, replaced in tests.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout
)

// printMarkdown prints md to stdout, rendered for the terminal unless raw.
func printMarkdown(md string, raw bool) {
	if raw {
		fmt.Fprint(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err == nil {
		var out string
		if out, err = r.Render(md); err == nil {
			fmt.Fprint(stdout, out)
			return
		}
	}
	log.Debug().Err(err).Msg("cannot render markdown, printing it raw")
	fmt.Fprint(stdout, md)
}
