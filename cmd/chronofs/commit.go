package main

import (
	"fmt"
	"os"

	"github.com/kushagras22/chronofs/internal/chronofs"
)

func runCommit(repo *chronofs.Repository, args []string) int {
	message := ""
	author := ""

	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "-m" && i+1 < len(args):
			i++
			message = args[i]
		case args[i] == "-a" && i+1 < len(args):
			i++
			author = args[i]
		default:
			fmt.Fprintf(os.Stderr, "error: unknown option: %q\n", args[i])
			return 1
		}
	}

	if message == "" {
		fmt.Fprintf(os.Stderr, "error: commit message required (-m)\n")
		return 1
	}

	hash, err := repo.Commit(message, author)
	if err != nil {
		return exitCode(err)
	}
	fmt.Printf("%s\n", hash)
	return 0
}
