package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/lexandro/filesubstrings/index"
	"github.com/lexandro/filesubstrings/tools"
)

// renderer prints query results, colored when writing to a terminal.
type renderer struct {
	out      io.Writer
	token    *color.Color
	count    *color.Color
	notFound *color.Color
}

func newRenderer(out io.Writer, noColor bool) *renderer {
	r := &renderer{
		out:      out,
		token:    color.New(color.FgCyan),
		count:    color.New(color.Bold),
		notFound: color.New(color.FgYellow),
	}

	useColor := !noColor && !color.NoColor && isTerminal(out)
	for _, c := range []*color.Color{r.token, r.count, r.notFound} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// isTerminal reports whether w is a TTY.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// substrings prints one "token : count" line per entry.
func (r *renderer) substrings(entries []*index.SubstringEntry) error {
	for _, entry := range entries {
		if _, err := fmt.Fprintf(r.out, "%s : %s\n",
			r.token.Sprint(entry.Token),
			r.count.Sprint(entry.OccurrenceCount()),
		); err != nil {
			return err
		}
	}
	return nil
}

// files prints one name or full path per line, or the not-found message.
func (r *renderer) files(token string, files []*index.FileRef, found bool, fullPath bool) error {
	if !found || len(files) == 0 {
		_, err := fmt.Fprintln(r.out, r.notFound.Sprint(tools.NotFoundMessage(token)))
		return err
	}
	for _, file := range files {
		if _, err := fmt.Fprintln(r.out, file.DisplayName(fullPath)); err != nil {
			return err
		}
	}
	return nil
}
