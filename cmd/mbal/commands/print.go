package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"massbal"
)

var (
	titleLabel = color.New(color.FgCyan, color.Bold).SprintFunc()
	okLabel    = color.New(color.FgGreen, color.Bold).SprintFunc()
	warnLabel  = color.New(color.FgYellow).SprintFunc()
	failLabel  = color.New(color.FgRed, color.Bold).SprintFunc()
)

func printOutcome(w io.Writer, o *Outcome) {
	fmt.Fprintf(w, "%s %s (%s)\n", titleLabel("==>"), o.Name, o.Path)
	fmt.Fprint(w, o.Body)
	for _, warning := range o.Warnings {
		fmt.Fprintf(w, "%s %s\n", warnLabel("warning:"), warning)
	}
	printStatus(w, o.Err)
	fmt.Fprintln(w)
}

func printStatus(w io.Writer, err error) {
	if err != nil {
		fmt.Fprintf(w, "%s [%s] %v\n", failLabel("FAILED"), massbal.Kind(err), err)
		return
	}
	fmt.Fprintln(w, okLabel("OK"))
}
