package main

import (
	"fmt"
	"os"

	"github.com/kushagras22/chronofs/internal/cli"
	"github.com/kushagras22/chronofs/internal/fsops"
)

// registerFsCommands adds the fs-* filesystem helper passthroughs. They
// operate on plain paths and need no repository.
func registerFsCommands(app *cli.App) {
	app.Register(&cli.Command{
		Name:    "fs-touch",
		Summary: "Create empty files, making parent directories as needed",
		Usage:   "chronofs fs-touch <path>...",
		Run: func(args []string) int {
			return eachPath(args, "fs-touch", fsops.Touch)
		},
	})

	app.Register(&cli.Command{
		Name:    "fs-mkdirs",
		Summary: "Create directories recursively",
		Usage:   "chronofs fs-mkdirs <path>...",
		Run: func(args []string) int {
			return eachPath(args, "fs-mkdirs", fsops.Mkdirs)
		},
	})

	app.Register(&cli.Command{
		Name:    "fs-rm",
		Summary: "Remove files or directories recursively",
		Usage:   "chronofs fs-rm <path>...",
		Run: func(args []string) int {
			return eachPath(args, "fs-rm", fsops.Remove)
		},
	})

	app.Register(&cli.Command{
		Name:    "fs-mv",
		Summary: "Move or rename a file or directory",
		Usage:   "chronofs fs-mv <from> <to>",
		Run: func(args []string) int {
			if len(args) != 2 {
				fmt.Fprintf(os.Stderr, "error: fs-mv requires a source and a destination\n")
				return 1
			}
			if err := fsops.Move(args[0], args[1]); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				return 1
			}
			return 0
		},
	})

	app.Register(&cli.Command{
		Name:    "fs-cat",
		Summary: "Print a file's contents",
		Usage:   "chronofs fs-cat <path>",
		Run: func(args []string) int {
			if len(args) != 1 {
				fmt.Fprintf(os.Stderr, "error: fs-cat requires exactly one path\n")
				return 1
			}
			data, err := fsops.ReadFile(args[0])
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				return 1
			}
			os.Stdout.Write(data)
			return 0
		},
	})

	app.Register(&cli.Command{
		Name:    "fs-write",
		Summary: "Write a string to a file, replacing its contents",
		Usage:   "chronofs fs-write <path> <content>",
		Run: func(args []string) int {
			if len(args) != 2 {
				fmt.Fprintf(os.Stderr, "error: fs-write requires a path and content\n")
				return 1
			}
			if err := fsops.WriteFile(args[0], []byte(args[1])); err != nil {
				fmt.Fprintf(os.Stderr, "error: %v\n", err)
				return 1
			}
			return 0
		},
	})
}

func eachPath(args []string, name string, op func(string) error) int {
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "error: %s requires at least one path\n", name)
		return 1
	}
	for _, p := range args {
		if err := op(p); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
	}
	return 0
}
