package main

import (
	"fmt"
	"os"

	"github.com/kushagras22/chronofs/internal/chronofs"
	"github.com/kushagras22/chronofs/internal/progress"
)

func runCheckout(repo *chronofs.Repository, args []string) int {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "error: checkout requires exactly one commit hash\n")
		return 1
	}

	spinner := progress.New("Restoring working tree...")
	spinner.Start()
	err := repo.Checkout(args[0])
	spinner.Stop()

	if err != nil {
		return exitCode(err)
	}
	fmt.Printf("Restored working tree to %s\n", args[0])
	return 0
}
