package main

import (
	"fmt"

	"github.com/kushagras22/chronofs/internal/chronofs"
	"github.com/kushagras22/chronofs/internal/termcolor"
)

func runStatus(repo *chronofs.Repository, args []string, cw *termcolor.Writer) int {
	porcelain := false
	for _, arg := range args {
		if arg == "-s" || arg == "--porcelain" {
			porcelain = true
		}
	}

	entries, err := repo.Status()
	if err != nil {
		return exitCode(err)
	}

	printStatus(entries, cw, porcelain)
	return 0
}

// printStatus writes one line per classified path, state first then path,
// tab-separated. A lone clean record prints just "clean". Porcelain mode
// suppresses color for script consumption.
func printStatus(entries []chronofs.StatusEntry, cw *termcolor.Writer, porcelain bool) {
	for _, e := range entries {
		if e.State == chronofs.StateClean && e.Path == "" {
			fmt.Println("clean")
			continue
		}
		if porcelain {
			fmt.Printf("%s\t%s\n", e.State, e.Path)
			continue
		}
		fmt.Printf("%s\t%s\n", colorState(e.State, cw), e.Path)
	}
}

func colorState(state chronofs.FileState, cw *termcolor.Writer) string {
	s := string(state)
	switch state {
	case chronofs.StateStaged:
		return cw.Green(s)
	case chronofs.StateModified:
		return cw.Yellow(s)
	case chronofs.StateDeleted, chronofs.StateUntracked:
		return cw.Red(s)
	default:
		return s
	}
}
