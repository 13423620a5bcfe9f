package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/kushagras22/chronofs/internal/chronofs"
	"github.com/kushagras22/chronofs/internal/cli"
	"github.com/kushagras22/chronofs/internal/objectstore"
	"github.com/kushagras22/chronofs/internal/termcolor"
)

// Build-time variables set via -ldflags.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	gf, args := parseGlobalFlags(os.Args[1:])

	// --version is handled before app.Run because "--" prefixed args
	// would be treated as unknown commands by the dispatcher.
	for _, a := range args {
		if a == "--version" {
			printVersion()
			os.Exit(0)
		}
	}

	cw := termcolor.NewWriter(os.Stdout, gf.colorMode)

	app := cli.NewApp("chronofs", version)
	app.Stderr = os.Stderr

	// repo is declared here and assigned after dispatch determines that
	// the matched command needs it (NeedsRepo). Closures capture the
	// pointer variable, which is populated before they execute.
	var repo *chronofs.Repository

	app.Register(&cli.Command{
		Name:     "init",
		Summary:  "Initialize a repository in the current directory",
		Usage:    "chronofs init",
		Run:      func(args []string) int { return runInit(args) },
	})

	app.Register(&cli.Command{
		Name:      "add",
		Summary:   "Stage file contents for the next commit",
		Usage:     "chronofs add <path>...",
		Examples:  []string{"chronofs add a.txt", "chronofs add src/main.go docs/readme.md"},
		NeedsRepo: true,
		Run:       func(args []string) int { return runAdd(repo, args) },
	})

	app.Register(&cli.Command{
		Name:      "commit",
		Summary:   "Record a snapshot of the staged files",
		Usage:     "chronofs commit -m <message> [-a <author>]",
		Examples:  []string{`chronofs commit -m "initial import"`, `chronofs commit -m "fix parser" -a alice`},
		NeedsRepo: true,
		Run:       func(args []string) int { return runCommit(repo, args) },
	})

	app.Register(&cli.Command{
		Name:      "checkout",
		Summary:   "Restore the working tree to a past snapshot",
		Usage:     "chronofs checkout <hash>",
		NeedsRepo: true,
		Run:       func(args []string) int { return runCheckout(repo, args) },
	})

	app.Register(&cli.Command{
		Name:      "status",
		Summary:   "Classify working tree paths against the index",
		Usage:     "chronofs status [-s|--porcelain]",
		Examples:  []string{"chronofs status", "chronofs status --porcelain"},
		NeedsRepo: true,
		Run:       func(args []string) int { return runStatus(repo, args, cw) },
	})

	app.Register(&cli.Command{
		Name:      "log",
		Summary:   "Show commit history",
		Usage:     "chronofs log",
		NeedsRepo: true,
		Run:       func(args []string) int { return runLog(repo, args) },
	})

	app.Register(&cli.Command{
		Name:      "diff",
		Summary:   "Compare two repository states line by line",
		Usage:     "chronofs diff <left> <right>   (each WORKING, INDEX, HEAD, or a commit hash)",
		Examples:  []string{"chronofs diff INDEX WORKING", "chronofs diff HEAD WORKING"},
		NeedsRepo: true,
		Run:       func(args []string) int { return runDiff(repo, args, cw) },
	})

	app.Register(&cli.Command{
		Name:      "watch",
		Summary:   "Watch the working tree and re-print status on change",
		Usage:     "chronofs watch",
		NeedsRepo: true,
		Run:       func(args []string) int { return runWatch(repo, cw) },
	})

	registerFsCommands(app)

	app.Register(&cli.Command{
		Name:    "version",
		Summary: "Show version information",
		Usage:   "chronofs version",
		Run:     func([]string) int { printVersion(); return 0 },
	})

	// Determine which command will run so we can load the repo only when needed.
	if len(args) > 0 {
		cmd := app.Lookup(args[0])
		if cmd != nil && cmd.NeedsRepo {
			var err error
			repo, err = chronofs.Open(".")
			if err != nil {
				fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
				os.Exit(128)
			}
			if !repo.IsInitialized() {
				fmt.Fprintf(os.Stderr, "fatal: %v\n", chronofs.ErrNotInitialized)
				os.Exit(128)
			}
		}
	}

	os.Exit(app.Run(args, cw))
}

// exitCode maps an operation error to the CLI's exit-code convention:
// 128 for fatal conditions (not a repository, object store corruption),
// 1 for ordinary failures.
func exitCode(err error) int {
	if errors.Is(err, chronofs.ErrNotInitialized) || errors.Is(err, objectstore.ErrMalformed) {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		return 128
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	return 1
}

func printVersion() {
	fmt.Printf("ChronoFS %s\n", version)
	fmt.Printf("  commit:     %s\n", commit)
	fmt.Printf("  built:      %s\n", buildDate)
	fmt.Printf("  go version: %s\n", runtime.Version())
	fmt.Printf("  platform:   %s/%s\n", runtime.GOOS, runtime.GOARCH)
}
