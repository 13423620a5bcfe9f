package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/kushagras22/chronofs/internal/chronofs"
	"github.com/kushagras22/chronofs/internal/termcolor"
)

func runDiff(repo *chronofs.Repository, args []string, cw *termcolor.Writer) int {
	if len(args) != 2 {
		fmt.Fprintf(os.Stderr, "error: diff requires exactly two side identifiers\n")
		return 1
	}

	text, err := repo.Diff(args[0], args[1])
	if err != nil {
		return exitCode(err)
	}

	printDiff(text, cw)
	return 0
}

// printDiff colorizes a diff text blob line by line: removals red,
// additions green, per-file headers bold. Context lines pass through
// unchanged.
func printDiff(text string, cw *termcolor.Writer) {
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "diff -- "),
			strings.HasPrefix(line, "--- "),
			strings.HasPrefix(line, "+++ "):
			fmt.Println(cw.Bold(line))
		case strings.HasPrefix(line, "-"):
			fmt.Println(cw.Red(line))
		case strings.HasPrefix(line, "+"):
			fmt.Println(cw.Green(line))
		default:
			fmt.Println(line)
		}
	}
}
