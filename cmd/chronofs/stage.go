package main

import (
	"fmt"
	"os"

	"github.com/kushagras22/chronofs/internal/chronofs"
)

func runInit(args []string) int {
	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "error: init takes no arguments\n")
		return 1
	}

	repo, err := chronofs.Open(".")
	if err != nil {
		return exitCode(err)
	}
	if err := repo.Init(); err != nil {
		return exitCode(err)
	}
	fmt.Printf("Initialized repository in %s\n", repo.Root())
	return 0
}

func runAdd(repo *chronofs.Repository, args []string) int {
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "error: nothing specified, nothing added\n")
		return 1
	}

	for _, path := range args {
		if err := repo.Add(path); err != nil {
			return exitCode(err)
		}
	}
	return 0
}
