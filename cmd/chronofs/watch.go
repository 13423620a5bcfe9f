package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/kushagras22/chronofs/internal/chronofs"
	"github.com/kushagras22/chronofs/internal/termcolor"
	"github.com/kushagras22/chronofs/internal/watch"
)

func runWatch(repo *chronofs.Repository, cw *termcolor.Writer) int {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "Watching %s (press Ctrl-C to stop)\n", repo.Root())

	w := watch.New(repo, logger, func(entries []chronofs.StatusEntry) {
		printStatus(entries, cw, false)
		fmt.Println()
	})

	if err := w.Run(ctx); err != nil {
		return exitCode(err)
	}
	return 0
}
