package main

import (
	"fmt"
	"os"

	"github.com/kushagras22/chronofs/internal/chronofs"
)

func runLog(repo *chronofs.Repository, args []string) int {
	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "error: unknown option: %q\n", args[0])
		return 1
	}

	stanzas, err := repo.Log()
	if err != nil {
		return exitCode(err)
	}

	for i, stanza := range stanzas {
		if i > 0 {
			fmt.Println()
		}
		fmt.Print(stanza)
	}
	return 0
}
